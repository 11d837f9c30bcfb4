package insns

import "fmt"

type Op uint8

const (
	OpInc Op = iota + 1
	OpDec
	OpGoto
	OpJumpNonZero
	OpLabel
)

func (o Op) String() string {
	switch o {
	case OpInc:
		return "inc"
	case OpDec:
		return "dec"
	case OpGoto:
		return "goto"
	case OpJumpNonZero:
		return "jnz"
	case OpLabel:
		return "label"
	}
	return fmt.Sprintf("op(%d)", uint8(o))
}

// HasVar reports whether instructions of this kind carry a variable operand.
func (o Op) HasVar() bool {
	return o == OpInc || o == OpDec || o == OpJumpNonZero
}

// HasLabel reports whether instructions of this kind carry a label operand.
func (o Op) HasLabel() bool {
	return o == OpGoto || o == OpJumpNonZero || o == OpLabel
}

// IsJump reports whether the label operand is a jump target rather than a declaration.
func (o Op) IsJump() bool {
	return o == OpGoto || o == OpJumpNonZero
}
