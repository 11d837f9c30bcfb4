package insns

import (
	"fmt"
	"strings"
)

// Statement is one line of a program or macro body, as written by its author.
// Exactly one of a primitive (Op set) or a macro call (Call set) is present.
type Statement struct {
	Op    Op
	Var   string
	Label string
	Call  *Call
}

type Call struct {
	Macro string
	Args  []string
}

// Program is an ordered sequence of top-level statements.
type Program []Statement

func IncStmt(v string) Statement {
	return Statement{Op: OpInc, Var: v}
}

func DecStmt(v string) Statement {
	return Statement{Op: OpDec, Var: v}
}

func Goto(l string) Statement {
	return Statement{Op: OpGoto, Label: l}
}

func Jnz(v string, l string) Statement {
	return Statement{Op: OpJumpNonZero, Var: v, Label: l}
}

func Label(l string) Statement {
	return Statement{Op: OpLabel, Label: l}
}

func CallStmt(macro string, args ...string) Statement {
	return Statement{
		Call: &Call{
			Macro: macro,
			Args:  args,
		},
	}
}

func (s Statement) IsCall() bool {
	return s.Call != nil
}

func (s Statement) String() string {
	if s.Call != nil {
		return s.Call.String()
	}
	switch s.Op {
	case OpInc, OpDec:
		return fmt.Sprintf("%s %s", s.Op, s.Var)
	case OpGoto:
		return fmt.Sprintf("goto %s", s.Label)
	case OpJumpNonZero:
		return fmt.Sprintf("jnz %s %s", s.Var, s.Label)
	case OpLabel:
		return s.Label + ":"
	}
	return s.Op.String()
}

func (c Call) String() string {
	return c.Macro + "(" + strings.Join(c.Args, ", ") + ")"
}

// Calls iterates the macro calls in statements.
func Calls(stmts []Statement) func(yield func(*Call) bool) {
	return func(yield func(*Call) bool) {
		for _, stmt := range stmts {
			if stmt.Call == nil {
				continue
			}
			if !yield(stmt.Call) {
				return
			}
		}
	}
}
