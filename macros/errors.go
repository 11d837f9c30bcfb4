package macros

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownMacro       = errors.New("unknown macro")
	ErrMacroArityMismatch = errors.New("macro arity mismatch")
	ErrInvalidDefinition  = errors.New("invalid macro definition")
)

type UnknownMacro struct {
	Macro string
}

func (u UnknownMacro) Error() string {
	return fmt.Sprintf("unknown macro: %s", u.Macro)
}

func (u UnknownMacro) Is(target error) bool {
	return target == ErrUnknownMacro
}

// MacroArityMismatch reports a call site whose argument count differs from the definition.
// Caller is the macro whose body contains the call, empty for top-level calls.
type MacroArityMismatch struct {
	Macro  string
	Caller string
	Want   int
	Got    int
}

func (m MacroArityMismatch) Error() string {
	if m.Caller != "" {
		return fmt.Sprintf("macro %s expects %d args, got %d (called from %s)", m.Macro, m.Want, m.Got, m.Caller)
	}
	return fmt.Sprintf("macro %s expects %d args, got %d", m.Macro, m.Want, m.Got)
}

func (m MacroArityMismatch) Is(target error) bool {
	return target == ErrMacroArityMismatch
}

type InvalidDefinition struct {
	Macro  string
	Reason string
}

func (i InvalidDefinition) Error() string {
	return fmt.Sprintf("invalid macro %q: %s", i.Macro, i.Reason)
}

func (i InvalidDefinition) Is(target error) bool {
	return target == ErrInvalidDefinition
}
