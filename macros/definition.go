package macros

import (
	"slices"
	"strings"

	"github.com/reusee/smachine/insns"
	"github.com/samber/lo"
)

// LocalPrefix marks variables meant to be declared as locals.
const LocalPrefix = "_"

type Definition struct {
	Params []string
	Body   []insns.Statement
	Locals []string
}

func Define(params []string, body []insns.Statement, locals ...string) *Definition {
	return &Definition{
		Params: params,
		Body:   body,
		Locals: locals,
	}
}

func (d *Definition) Arity() int {
	return len(d.Params)
}

func (d *Definition) IsParam(name string) bool {
	return slices.Contains(d.Params, name)
}

func (d *Definition) IsLocal(name string) bool {
	return slices.Contains(d.Locals, name)
}

// UndeclaredLocals returns body variables that follow the local naming convention
// but are not declared, and so would leak into the global namespace.
func (d *Definition) UndeclaredLocals() []string {
	var ret []string
	for _, stmt := range d.Body {
		var names []string
		if stmt.Call != nil {
			names = stmt.Call.Args
		} else if stmt.Op.HasVar() {
			names = []string{stmt.Var}
		}
		for _, name := range names {
			if !strings.HasPrefix(name, LocalPrefix) ||
				d.IsParam(name) ||
				d.IsLocal(name) {
				continue
			}
			ret = append(ret, name)
		}
	}
	return lo.Uniq(ret)
}

func (d *Definition) validate(name string) error {
	if name == "" {
		return InvalidDefinition{Macro: name, Reason: "empty name"}
	}
	if dups := lo.FindDuplicates(d.Params); len(dups) > 0 {
		return InvalidDefinition{Macro: name, Reason: "duplicated parameter " + dups[0]}
	}
	if dups := lo.FindDuplicates(d.Locals); len(dups) > 0 {
		return InvalidDefinition{Macro: name, Reason: "duplicated local " + dups[0]}
	}
	if both := lo.Intersect(d.Params, d.Locals); len(both) > 0 {
		return InvalidDefinition{Macro: name, Reason: both[0] + " is both parameter and local"}
	}
	for _, stmt := range d.Body {
		if stmt.Call == nil && stmt.Op == 0 {
			return InvalidDefinition{Macro: name, Reason: "empty statement"}
		}
	}
	return nil
}
