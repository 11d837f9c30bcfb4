package libraries

import (
	"fmt"

	"github.com/reusee/smachine/insns"
	"github.com/reusee/smachine/macros"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

type statementValue struct {
	stmt insns.Statement
}

var _ starlark.Value = statementValue{}

func (s statementValue) String() string {
	return s.stmt.String()
}

func (statementValue) Type() string {
	return "statement"
}

func (statementValue) Freeze() {}

func (statementValue) Truth() starlark.Bool {
	return starlark.True
}

func (statementValue) Hash() (uint32, error) {
	return 0, fmt.Errorf("unhashable type: statement")
}

type collector struct {
	source     *Source
	hasProgram bool
}

// ParseStarlark executes a script with these builtins:
//
//	inc(v) dec(v) jnz(v, L) goto(L) label(L) call(macro, args...)
//	macro(name, params, body, locals=[])
//	program(body)
//
// Bodies are lists whose elements are statements or string tuples.
func ParseStarlark(path string, content []byte, options Options) (*Source, error) {
	c := &collector{
		source: &Source{
			Path:   path,
			Macros: make(map[string]*macros.Definition),
		},
	}

	thread := &starlark.Thread{
		Name: path,
		Print: func(_ *starlark.Thread, msg string) {
			if options.Print != nil {
				options.Print(msg)
			}
		},
	}

	_, err := starlark.ExecFileOptions(&syntax.FileOptions{
		Set:             true,
		While:           true,
		TopLevelControl: true,
	}, thread, path, content, c.builtins())
	if err != nil {
		return nil, wrap(err)
	}

	return c.source, nil
}

func (c *collector) builtins() starlark.StringDict {
	return starlark.StringDict{

		"inc": starlark.NewBuiltin("inc", func(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var v string
			if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &v); err != nil {
				return nil, err
			}
			return statementValue{insns.IncStmt(v)}, nil
		}),

		"dec": starlark.NewBuiltin("dec", func(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var v string
			if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &v); err != nil {
				return nil, err
			}
			return statementValue{insns.DecStmt(v)}, nil
		}),

		"jnz": starlark.NewBuiltin("jnz", func(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var v, l string
			if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 2, &v, &l); err != nil {
				return nil, err
			}
			return statementValue{insns.Jnz(v, l)}, nil
		}),

		"goto": starlark.NewBuiltin("goto", func(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var l string
			if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &l); err != nil {
				return nil, err
			}
			return statementValue{insns.Goto(l)}, nil
		}),

		"label": starlark.NewBuiltin("label", func(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var l string
			if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &l); err != nil {
				return nil, err
			}
			return statementValue{insns.Label(l)}, nil
		}),

		"call": starlark.NewBuiltin("call", func(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			if len(kwargs) > 0 {
				return nil, fmt.Errorf("%s: unexpected keyword arguments", fn.Name())
			}
			strs, err := toStrings(fn.Name(), args)
			if err != nil {
				return nil, err
			}
			if len(strs) == 0 {
				return nil, fmt.Errorf("%s: missing macro name", fn.Name())
			}
			return statementValue{insns.CallStmt(strs[0], strs[1:]...)}, nil
		}),

		"macro": starlark.NewBuiltin("macro", func(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var name string
			var params, body starlark.Iterable
			var locals starlark.Iterable = starlark.NewList(nil)
			if err := starlark.UnpackArgs(fn.Name(), args, kwargs,
				"name", &name,
				"params", &params,
				"body", &body,
				"locals?", &locals,
			); err != nil {
				return nil, err
			}
			if _, ok := c.source.Macros[name]; ok {
				return nil, DuplicateMacro{
					Macro: name,
				}
			}
			paramNames, err := iterStrings(fn.Name(), params)
			if err != nil {
				return nil, err
			}
			localNames, err := iterStrings(fn.Name(), locals)
			if err != nil {
				return nil, err
			}
			stmts, err := toStatements(body)
			if err != nil {
				return nil, fmt.Errorf("macro %s: %w", name, err)
			}
			c.source.Macros[name] = macros.Define(paramNames, stmts, localNames...)
			return starlark.None, nil
		}),

		"program": starlark.NewBuiltin("program", func(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var body starlark.Iterable
			if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &body); err != nil {
				return nil, err
			}
			if c.hasProgram {
				return nil, ErrProgramRedefined
			}
			stmts, err := toStatements(body)
			if err != nil {
				return nil, fmt.Errorf("program: %w", err)
			}
			c.source.Program = stmts
			c.hasProgram = true
			return starlark.None, nil
		}),
	}
}

func toStrings(fnName string, values starlark.Tuple) ([]string, error) {
	ret := make([]string, 0, len(values))
	for i, value := range values {
		str, ok := starlark.AsString(value)
		if !ok {
			return nil, fmt.Errorf("%s: argument %d: want string, got %s", fnName, i, value.Type())
		}
		ret = append(ret, str)
	}
	return ret, nil
}

func iterStrings(fnName string, iterable starlark.Iterable) ([]string, error) {
	return toStrings(fnName, elements(iterable))
}

func toStatements(body starlark.Iterable) ([]insns.Statement, error) {
	var ret []insns.Statement
	for _, elem := range elements(body) {
		switch elem := elem.(type) {

		case statementValue:
			ret = append(ret, elem.stmt)

		case starlark.Iterable:
			tuple, err := iterStrings("tuple", elem)
			if err != nil {
				return nil, err
			}
			stmt, err := ParseTuple(tuple)
			if err != nil {
				return nil, err
			}
			ret = append(ret, stmt)

		default:
			return nil, fmt.Errorf("unexpected %s in body", elem.Type())
		}
	}
	return ret, nil
}

func elements(iterable starlark.Iterable) (ret starlark.Tuple) {
	iter := iterable.Iterate()
	defer iter.Done()
	var value starlark.Value
	for iter.Next(&value) {
		ret = append(ret, value)
	}
	return
}
