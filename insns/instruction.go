package insns

import "fmt"

// Instruction is a single expanded primitive or label marker.
// Var is set for inc, dec and jnz; Label for goto, jnz and label markers.
type Instruction struct {
	Op    Op
	Var   Name
	Label Name
}

func Inc(v Name) Instruction {
	return Instruction{Op: OpInc, Var: v}
}

func Dec(v Name) Instruction {
	return Instruction{Op: OpDec, Var: v}
}

func GotoLabel(l Name) Instruction {
	return Instruction{Op: OpGoto, Label: l}
}

func JumpNonZero(v Name, l Name) Instruction {
	return Instruction{Op: OpJumpNonZero, Var: v, Label: l}
}

func Marker(l Name) Instruction {
	return Instruction{Op: OpLabel, Label: l}
}

func (i Instruction) String() string {
	switch i.Op {
	case OpInc, OpDec:
		return fmt.Sprintf("%s %s", i.Op, i.Var)
	case OpGoto:
		return fmt.Sprintf("goto %s", i.Label)
	case OpJumpNonZero:
		return fmt.Sprintf("jnz %s %s", i.Var, i.Label)
	case OpLabel:
		return i.Label.String() + ":"
	}
	return i.Op.String()
}
