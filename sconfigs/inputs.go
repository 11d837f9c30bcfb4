package sconfigs

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/reusee/smachine/cmds"
	"github.com/reusee/smachine/configs"
)

// Input is one "name=value" assignment of a natural number to an input variable.
type Input struct {
	Name  string
	Value uint64
}

func (i *Input) UnmarshalText(text []byte) error {
	name, value, ok := strings.Cut(string(text), "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return fmt.Errorf("expecting name=value, got %q", text)
	}
	n, err := strconv.ParseUint(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return fmt.Errorf("input %s must be a natural number: %w", name, err)
	}
	i.Name = name
	i.Value = n
	return nil
}

// Inputs holds the initial values of input variables.
type Inputs map[string]uint64

var _ configs.Configurable = Inputs(nil)

func (Inputs) ConfigPath() string {
	return "inputs"
}

var inputFlags = cmds.Collect[Input]("-input", "set an input variable, as name=value")

func (Module) Inputs(
	loader configs.Loader,
) Inputs {
	ret := make(Inputs)
	for _, layer := range configs.Layers[Inputs](loader) {
		for name, value := range layer {
			ret[name] = value
		}
	}
	for _, input := range *inputFlags {
		ret[input.Name] = input.Value
	}
	return ret
}
