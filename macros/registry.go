package macros

import (
	"maps"
	"slices"

	"github.com/reusee/smachine/insns"
)

// Registry maps macro names to definitions.
type Registry struct {
	defs map[string]*Definition
}

func NewRegistry() *Registry {
	return &Registry{
		defs: make(map[string]*Definition),
	}
}

// Register adds or replaces a definition.
// Calls in the body to already known macros, including the macro itself, are arity checked here;
// calls to unknown macros are checked at expansion.
func (r *Registry) Register(name string, def *Definition) error {
	if err := def.validate(name); err != nil {
		return err
	}
	for call := range insns.Calls(def.Body) {
		callee := r.defs[call.Macro]
		if call.Macro == name {
			callee = def
		}
		if callee == nil {
			continue
		}
		if len(call.Args) != callee.Arity() {
			return MacroArityMismatch{
				Macro:  call.Macro,
				Caller: name,
				Want:   callee.Arity(),
				Got:    len(call.Args),
			}
		}
	}
	r.defs[name] = def
	return nil
}

// RegisterAll registers definitions in name order, stopping at the first error.
func (r *Registry) RegisterAll(defs map[string]*Definition) error {
	for _, name := range slices.Sorted(maps.Keys(defs)) {
		if err := r.Register(name, defs[name]); err != nil {
			return err
		}
	}
	return nil
}

func (r *Registry) Lookup(name string) (*Definition, error) {
	def, ok := r.defs[name]
	if !ok {
		return nil, UnknownMacro{Macro: name}
	}
	return def, nil
}

func (r *Registry) Has(name string) bool {
	_, ok := r.defs[name]
	return ok
}

// Remove deletes the named macros, returning the names that were present.
func (r *Registry) Remove(names ...string) []string {
	var removed []string
	for _, name := range names {
		if _, ok := r.defs[name]; ok {
			delete(r.defs, name)
			removed = append(removed, name)
		}
	}
	return removed
}

func (r *Registry) Names() []string {
	return slices.Sorted(maps.Keys(r.defs))
}

func (r *Registry) Len() int {
	return len(r.defs)
}

// Clone returns a registry sharing definitions but not the table.
func (r *Registry) Clone() *Registry {
	return &Registry{
		defs: maps.Clone(r.defs),
	}
}
