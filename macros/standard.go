package macros

import "github.com/reusee/smachine/insns"

// Standard returns a registry holding the classic arithmetic macros.
//
//	zeros(y)             y = 0
//	equals(y, x)         y = x, x preserved
//	add(y, x1, x2)       y = x1 + x2
//	subtract(y, x1, x2)  y = x1 - x2, never halts when x2 > x1
//	mul(y, x1, x2)       y = x1 * x2
//	jump(label)          unconditional jump through a local counter
func Standard() *Registry {
	r := NewRegistry()
	if err := r.RegisterAll(StandardDefinitions()); err != nil {
		panic(err)
	}
	return r
}

func StandardDefinitions() map[string]*Definition {
	return map[string]*Definition{

		"jump": Define(
			[]string{"label"},
			[]insns.Statement{
				insns.IncStmt("_z"),
				insns.Jnz("_z", "label"),
			},
			"_z",
		),

		"zeros": Define(
			[]string{"y"},
			[]insns.Statement{
				insns.Label("A"),
				insns.DecStmt("y"),
				insns.Jnz("y", "A"),
			},
		),

		"equals": Define(
			[]string{"y", "x"},
			[]insns.Statement{
				insns.CallStmt("zeros", "y"),

				// move x into y and _z
				insns.Label("A"),
				insns.Jnz("x", "B"),
				insns.Goto("C"),
				insns.Label("B"),
				insns.DecStmt("x"),
				insns.IncStmt("y"),
				insns.IncStmt("_z"),
				insns.Goto("A"),

				// restore x from _z
				insns.Label("C"),
				insns.Jnz("_z", "D"),
				insns.Goto("E"),
				insns.Label("D"),
				insns.DecStmt("_z"),
				insns.IncStmt("x"),
				insns.Goto("C"),

				insns.Label("E"),
			},
			"_z",
		),

		"add": Define(
			[]string{"y", "x1", "x2"},
			[]insns.Statement{
				insns.CallStmt("equals", "_y", "x1"),
				insns.CallStmt("equals", "_z", "x2"),

				insns.Label("B"),
				insns.Jnz("_z", "A"),
				insns.Goto("E"),

				insns.Label("A"),
				insns.DecStmt("_z"),
				insns.IncStmt("_y"),
				insns.Goto("B"),

				insns.Label("E"),
				insns.CallStmt("equals", "y", "_y"),
			},
			"_z", "_y",
		),

		"subtract": Define(
			[]string{"y", "x1", "x2"},
			[]insns.Statement{
				insns.CallStmt("equals", "_y", "x1"),
				insns.CallStmt("equals", "_z", "x2"),

				insns.Label("C"),
				insns.Jnz("_z", "A"),
				insns.Goto("E"),

				// loops forever once _y hits zero before _z
				insns.Label("A"),
				insns.Jnz("_y", "B"),
				insns.Goto("A"),

				insns.Label("B"),
				insns.DecStmt("_y"),
				insns.DecStmt("_z"),
				insns.Goto("C"),

				insns.Label("E"),
				insns.CallStmt("equals", "y", "_y"),
			},
			"_z", "_y",
		),

		"mul": Define(
			[]string{"y", "x1", "x2"},
			[]insns.Statement{
				insns.CallStmt("equals", "_z2", "x2"),

				insns.Label("B"),
				insns.Jnz("_z2", "A"),
				insns.Goto("E"),

				insns.Label("A"),
				insns.DecStmt("_z2"),
				insns.CallStmt("add", "_z1", "x1", "_y"),
				insns.CallStmt("equals", "_y", "_z1"),
				insns.Goto("B"),

				insns.Label("E"),
				insns.CallStmt("equals", "y", "_y"),
			},
			"_z1", "_z2", "_y",
		),
	}
}
