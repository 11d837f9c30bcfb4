package debugs

import (
	"github.com/reusee/smachine/machines"
	"go.starlark.net/starlark"
)

// MachineGlobals exposes the state and controls of a machine to starlark:
//
//	vars() globals() pc() steps() halted() code() history_len() snapshot(k)
//	step(trace=False) run() reset() rewind(k)
func MachineGlobals(m *machines.Machine) map[string]any {
	return map[string]any{

		"vars": builtin("vars", func(args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			if err := starlark.UnpackPositionalArgs("vars", args, kwargs, 0); err != nil {
				return nil, err
			}
			return toStarlarkValue(m.Variables()), nil
		}),

		"globals": builtin("globals", func(args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			if err := starlark.UnpackPositionalArgs("globals", args, kwargs, 0); err != nil {
				return nil, err
			}
			return toStarlarkValue(m.Globals()), nil
		}),

		"pc": builtin("pc", func(args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			if err := starlark.UnpackPositionalArgs("pc", args, kwargs, 0); err != nil {
				return nil, err
			}
			return starlark.MakeInt(m.PC()), nil
		}),

		"steps": builtin("steps", func(args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			if err := starlark.UnpackPositionalArgs("steps", args, kwargs, 0); err != nil {
				return nil, err
			}
			return starlark.MakeInt(m.StepCount()), nil
		}),

		"halted": builtin("halted", func(args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			if err := starlark.UnpackPositionalArgs("halted", args, kwargs, 0); err != nil {
				return nil, err
			}
			return starlark.Bool(m.Halted()), nil
		}),

		"code": builtin("code", func(args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			if err := starlark.UnpackPositionalArgs("code", args, kwargs, 0); err != nil {
				return nil, err
			}
			return toStarlarkValue(m.Code()), nil
		}),

		"history_len": m.HistoryLen,

		"snapshot": builtin("snapshot", func(args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var k int
			if err := starlark.UnpackPositionalArgs("snapshot", args, kwargs, 1, &k); err != nil {
				return nil, err
			}
			s, err := m.Snapshot(k)
			if err != nil {
				return nil, err
			}
			return toStarlarkValue(s), nil
		}),

		"step": builtin("step", func(args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var trace bool
			if err := starlark.UnpackArgs("step", args, kwargs, "trace?", &trace); err != nil {
				return nil, err
			}
			ok, err := m.Step(trace)
			if err != nil {
				return nil, err
			}
			return starlark.Bool(ok), nil
		}),

		"run": builtin("run", func(args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			if err := starlark.UnpackPositionalArgs("run", args, kwargs, 0); err != nil {
				return nil, err
			}
			y, err := m.Run()
			if err != nil {
				return nil, err
			}
			return starlark.MakeUint64(y), nil
		}),

		"reset": builtin("reset", func(args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			if err := starlark.UnpackPositionalArgs("reset", args, kwargs, 0); err != nil {
				return nil, err
			}
			m.Reset()
			return starlark.None, nil
		}),

		"rewind": builtin("rewind", func(args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var k int
			if err := starlark.UnpackPositionalArgs("rewind", args, kwargs, 1, &k); err != nil {
				return nil, err
			}
			if err := m.Rewind(k); err != nil {
				return nil, err
			}
			return starlark.None, nil
		}),
	}
}

func builtin(name string, fn func(args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error)) *starlark.Builtin {
	return starlark.NewBuiltin(name, func(_ *starlark.Thread, _ *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		return fn(args, kwargs)
	})
}
