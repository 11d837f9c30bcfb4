package expands

import (
	"slices"

	"github.com/reusee/smachine/insns"
)

// scope is the renaming context of one macro invocation.
// Variables and labels resolve through separate tables so a label never captures a variable of the same name.
type scope struct {
	parent *scope
	id     int
	macro  string
	vars   map[string]insns.Name
	labels map[string]insns.Name
}

func (s *scope) resolveVar(name string) insns.Name {
	for e := s; e != nil; e = e.parent {
		if n, ok := e.vars[name]; ok {
			return n
		}
	}
	return insns.Global(name)
}

func (s *scope) resolveLabel(name string) insns.Name {
	for e := s; e != nil; e = e.parent {
		if n, ok := e.labels[name]; ok {
			return n
		}
	}
	return insns.Global(name)
}

func (s *scope) chain() []string {
	var ret []string
	for e := s; e != nil; e = e.parent {
		ret = append(ret, e.macro)
	}
	slices.Reverse(ret)
	return ret
}

func (s *scope) macroName() string {
	if s == nil {
		return ""
	}
	return s.macro
}
