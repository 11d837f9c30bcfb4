package expands

import "github.com/reusee/smachine/insns"

// Expansion is the flat result of expanding a program.
type Expansion struct {
	// Instructions holds primitives and label markers in program order.
	Instructions []insns.Instruction
	// Labels maps each label to the position of its marker in Instructions.
	Labels map[insns.Name]int
	// Invocations records every macro invocation; the invocation with id n is at n-1.
	Invocations []Invocation
}

type Invocation struct {
	ID     int
	Macro  string
	Parent int // 0 for calls made from the top level
	Depth  int
}

// Code returns the executable instructions with label markers elided,
// and the index in that stream of the first instruction following each label.
// A label at the end of the program maps to len(code).
func (e *Expansion) Code() (code []insns.Instruction, targets map[insns.Name]int) {
	code = make([]insns.Instruction, 0, len(e.Instructions))
	positions := make([]int, len(e.Instructions)+1)
	for i, inst := range e.Instructions {
		positions[i] = len(code)
		if inst.Op == insns.OpLabel {
			continue
		}
		code = append(code, inst)
	}
	positions[len(e.Instructions)] = len(code)
	targets = make(map[insns.Name]int, len(e.Labels))
	for label, pos := range e.Labels {
		targets[label] = positions[pos]
	}
	return
}

// Len returns the number of executable instructions.
func (e *Expansion) Len() int {
	n := 0
	for _, inst := range e.Instructions {
		if inst.Op != insns.OpLabel {
			n++
		}
	}
	return n
}

// Names returns the distinct variables referenced by the expansion.
func (e *Expansion) Names() []insns.Name {
	seen := make(map[insns.Name]bool)
	var ret []insns.Name
	for _, inst := range e.Instructions {
		if !inst.Op.HasVar() || seen[inst.Var] {
			continue
		}
		seen[inst.Var] = true
		ret = append(ret, inst.Var)
	}
	return ret
}
