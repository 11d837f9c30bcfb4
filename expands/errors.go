package expands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reusee/smachine/insns"
)

var (
	ErrUndefinedLabel         = errors.New("undefined label")
	ErrDuplicateLabel         = errors.New("duplicated label")
	ErrExpansionDepthExceeded = errors.New("expansion depth exceeded")
	ErrInvalidStatement       = errors.New("invalid statement")
)

type UndefinedLabel struct {
	Label insns.Name
}

func (u UndefinedLabel) Error() string {
	return fmt.Sprintf("undefined label: %s", u.Label)
}

func (u UndefinedLabel) Is(target error) bool {
	return target == ErrUndefinedLabel
}

type DuplicateLabel struct {
	Label insns.Name
}

func (d DuplicateLabel) Error() string {
	return fmt.Sprintf("duplicated label: %s", d.Label)
}

func (d DuplicateLabel) Is(target error) bool {
	return target == ErrDuplicateLabel
}

// ExpansionDepthExceeded reports macro calls nested deeper than the limit.
// Chain lists the active macros from the outermost call.
type ExpansionDepthExceeded struct {
	Macro string
	Depth int
	Chain []string
}

func (e ExpansionDepthExceeded) Error() string {
	return fmt.Sprintf("expansion depth %d exceeded at macro %s: %s",
		e.Depth, e.Macro, strings.Join(e.Chain, " > "))
}

func (e ExpansionDepthExceeded) Is(target error) bool {
	return target == ErrExpansionDepthExceeded
}

type InvalidStatement struct {
	Statement insns.Statement
	Macro     string
}

func (i InvalidStatement) Error() string {
	if i.Macro != "" {
		return fmt.Sprintf("invalid statement in macro %s: %v", i.Macro, i.Statement)
	}
	return fmt.Sprintf("invalid statement: %v", i.Statement)
}

func (i InvalidStatement) Is(target error) bool {
	return target == ErrInvalidStatement
}
