package libraries

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reusee/e5"
)

var wrap = e5.Wrap.With(e5.WrapStacktrace)

var (
	ErrInvalidTuple      = errors.New("invalid statement tuple")
	ErrUnsupportedFormat = errors.New("unsupported library format")
	ErrDuplicateMacro    = errors.New("duplicate macro")
	ErrProgramRedefined  = errors.New("program redefined")
)

// InvalidTuple reports a statement that does not follow the tuple grammar.
type InvalidTuple struct {
	Tuple  []string
	Reason string
}

func (i InvalidTuple) Error() string {
	return fmt.Sprintf("invalid statement [%s]: %s", strings.Join(i.Tuple, ", "), i.Reason)
}

func (i InvalidTuple) Is(target error) bool {
	return target == ErrInvalidTuple
}

type UnsupportedFormat struct {
	Path string
}

func (u UnsupportedFormat) Error() string {
	return fmt.Sprintf("unsupported library format: %s", u.Path)
}

func (u UnsupportedFormat) Is(target error) bool {
	return target == ErrUnsupportedFormat
}

type DuplicateMacro struct {
	Macro string
}

func (d DuplicateMacro) Error() string {
	return fmt.Sprintf("macro defined twice: %s", d.Macro)
}

func (d DuplicateMacro) Is(target error) bool {
	return target == ErrDuplicateMacro
}
