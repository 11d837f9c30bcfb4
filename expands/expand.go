package expands

import (
	"github.com/reusee/smachine/insns"
	"github.com/reusee/smachine/macros"
)

const DefaultMaxDepth = 64

// Library supplies macro definitions to the expander.
type Library interface {
	Lookup(name string) (*macros.Definition, error)
}

type Options struct {
	MaxDepth int // if zero, default to DefaultMaxDepth
}

type expander struct {
	library     Library
	maxDepth    int
	scope       *scope
	depth       int
	code        []insns.Instruction
	invocations []Invocation
}

// Expand inlines every macro call of program into a flat instruction list.
// Each invocation gets a fresh id; its locals and labels are renamed into that id's namespace,
// formal parameters are substituted by the caller's (already renamed) arguments,
// and any other name resolves through the enclosing invocations or stays global.
func Expand(program insns.Program, library Library, options Options) (*Expansion, error) {
	e := &expander{
		library:  library,
		maxDepth: options.MaxDepth,
	}
	if e.maxDepth <= 0 {
		e.maxDepth = DefaultMaxDepth
	}

	if err := e.statements(program); err != nil {
		return nil, err
	}

	labels := make(map[insns.Name]int)
	for i, inst := range e.code {
		if inst.Op != insns.OpLabel {
			continue
		}
		if _, ok := labels[inst.Label]; ok {
			return nil, DuplicateLabel{
				Label: inst.Label,
			}
		}
		labels[inst.Label] = i
	}
	for _, inst := range e.code {
		if !inst.Op.IsJump() {
			continue
		}
		if _, ok := labels[inst.Label]; !ok {
			return nil, UndefinedLabel{
				Label: inst.Label,
			}
		}
	}

	return &Expansion{
		Instructions: e.code,
		Labels:       labels,
		Invocations:  e.invocations,
	}, nil
}

func (e *expander) statements(stmts []insns.Statement) error {
	for _, stmt := range stmts {
		if stmt.Call != nil {
			if err := e.call(stmt.Call); err != nil {
				return err
			}
			continue
		}

		inst := insns.Instruction{
			Op: stmt.Op,
		}
		switch stmt.Op {
		case insns.OpInc, insns.OpDec:
			inst.Var = e.scope.resolveVar(stmt.Var)
		case insns.OpGoto, insns.OpLabel:
			inst.Label = e.scope.resolveLabel(stmt.Label)
		case insns.OpJumpNonZero:
			inst.Var = e.scope.resolveVar(stmt.Var)
			inst.Label = e.scope.resolveLabel(stmt.Label)
		default:
			return InvalidStatement{
				Statement: stmt,
				Macro:     e.scope.macroName(),
			}
		}
		e.code = append(e.code, inst)
	}
	return nil
}

func (e *expander) call(call *insns.Call) error {
	def, err := e.library.Lookup(call.Macro)
	if err != nil {
		return err
	}
	if len(call.Args) != def.Arity() {
		return macros.MacroArityMismatch{
			Macro:  call.Macro,
			Caller: e.scope.macroName(),
			Want:   def.Arity(),
			Got:    len(call.Args),
		}
	}
	if e.depth >= e.maxDepth {
		return ExpansionDepthExceeded{
			Macro: call.Macro,
			Depth: e.depth + 1,
			Chain: append(e.scope.chain(), call.Macro),
		}
	}

	id := len(e.invocations) + 1
	parent := 0
	if e.scope != nil {
		parent = e.scope.id
	}
	e.invocations = append(e.invocations, Invocation{
		ID:     id,
		Macro:  call.Macro,
		Parent: parent,
		Depth:  e.depth + 1,
	})

	s := &scope{
		parent: e.scope,
		id:     id,
		macro:  call.Macro,
		vars:   make(map[string]insns.Name, len(def.Params)+len(def.Locals)),
		labels: make(map[string]insns.Name),
	}
	for i, param := range def.Params {
		// a formal may be used as a variable or as a label, each resolved in its own namespace
		s.vars[param] = e.scope.resolveVar(call.Args[i])
		s.labels[param] = e.scope.resolveLabel(call.Args[i])
	}
	for _, local := range def.Locals {
		s.vars[local] = insns.Name{
			Base:       local,
			Invocation: id,
		}
	}
	for _, stmt := range def.Body {
		if stmt.Call != nil || !stmt.Op.HasLabel() {
			continue
		}
		if _, ok := s.labels[stmt.Label]; ok {
			continue
		}
		s.labels[stmt.Label] = insns.Name{
			Base:       stmt.Label,
			Invocation: id,
		}
	}

	e.scope = s
	e.depth++
	err = e.statements(def.Body)
	e.depth--
	e.scope = s.parent
	return err
}
