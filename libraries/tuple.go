package libraries

import (
	"slices"
	"strings"

	"github.com/reusee/smachine/insns"
)

// ParseTuple reads one statement in tuple form:
//
//	["inc", v]  ["dec", v]  ["jnz", v, L]  ["goto", L]  ["L:"]  [macro, args...]
func ParseTuple(tuple []string) (insns.Statement, error) {
	if len(tuple) == 0 {
		return insns.Statement{}, InvalidTuple{
			Tuple:  tuple,
			Reason: "empty",
		}
	}
	for _, elem := range tuple {
		if elem == "" {
			return insns.Statement{}, InvalidTuple{
				Tuple:  tuple,
				Reason: "empty element",
			}
		}
	}

	arity := func(n int) error {
		if len(tuple)-1 != n {
			return InvalidTuple{
				Tuple:  tuple,
				Reason: "wrong number of operands",
			}
		}
		return nil
	}

	head := tuple[0]
	switch head {

	case "inc":
		if err := arity(1); err != nil {
			return insns.Statement{}, err
		}
		return insns.IncStmt(tuple[1]), nil

	case "dec":
		if err := arity(1); err != nil {
			return insns.Statement{}, err
		}
		return insns.DecStmt(tuple[1]), nil

	case "jnz":
		if err := arity(2); err != nil {
			return insns.Statement{}, err
		}
		return insns.Jnz(tuple[1], tuple[2]), nil

	case "goto":
		if err := arity(1); err != nil {
			return insns.Statement{}, err
		}
		return insns.Goto(tuple[1]), nil

	}

	if label, ok := strings.CutSuffix(head, ":"); ok {
		if err := arity(0); err != nil {
			return insns.Statement{}, err
		}
		if label == "" {
			return insns.Statement{}, InvalidTuple{
				Tuple:  tuple,
				Reason: "empty label",
			}
		}
		return insns.Label(label), nil
	}

	var args []string
	if len(tuple) > 1 {
		args = slices.Clone(tuple[1:])
	}
	return insns.CallStmt(head, args...), nil
}

func ParseTuples(tuples [][]string) ([]insns.Statement, error) {
	ret := make([]insns.Statement, 0, len(tuples))
	for _, tuple := range tuples {
		stmt, err := ParseTuple(tuple)
		if err != nil {
			return nil, err
		}
		ret = append(ret, stmt)
	}
	return ret, nil
}

// Tuple is the inverse of ParseTuple.
func Tuple(stmt insns.Statement) []string {
	switch stmt.Op {
	case insns.OpInc:
		return []string{"inc", stmt.Var}
	case insns.OpDec:
		return []string{"dec", stmt.Var}
	case insns.OpJumpNonZero:
		return []string{"jnz", stmt.Var, stmt.Label}
	case insns.OpGoto:
		return []string{"goto", stmt.Label}
	case insns.OpLabel:
		return []string{stmt.Label + ":"}
	}
	if stmt.Call == nil {
		return nil
	}
	return append([]string{stmt.Call.Macro}, stmt.Call.Args...)
}
