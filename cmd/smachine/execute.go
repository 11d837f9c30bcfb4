package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/reusee/smachine/debugs"
	"github.com/reusee/smachine/expands"
	"github.com/reusee/smachine/libraries"
	"github.com/reusee/smachine/logs"
	"github.com/reusee/smachine/machines"
	"github.com/reusee/smachine/macros"
	"github.com/reusee/smachine/sconfigs"
)

var ErrNoProgram = errors.New("no program given, use -program or set program in config")

// Execute loads, expands and runs the configured program, writing the top-level variables to out.
// With interactive set, a debugger REPL drives the machine instead.
type Execute func(ctx context.Context, out io.Writer, interactive bool) error

func (Module) Execute(
	logger logs.Logger,
	newRun logs.NewRun,
	load libraries.Loader,
	expand expands.Expander,
	newMachine machines.NewMachine,
	tap debugs.Tap,
	programPath sconfigs.ProgramPath,
	libraryPaths sconfigs.LibraryPaths,
	inputs sconfigs.Inputs,
) Execute {
	return func(ctx context.Context, out io.Writer, interactive bool) (err error) {
		if programPath == "" {
			return ErrNoProgram
		}

		ctx, _ = newRun(ctx, string(programPath))
		defer func() {
			err = logs.WrapRun(ctx, err)
		}()

		registry := macros.Standard()
		for _, path := range libraryPaths {
			source, err := load(path)
			if err != nil {
				return err
			}
			if err := source.Register(registry); err != nil {
				return err
			}
		}

		source, err := load(string(programPath))
		if err != nil {
			return err
		}
		if err := source.Register(registry); err != nil {
			return err
		}

		exp, err := expand(source.Program, registry)
		if err != nil {
			return err
		}

		m := newMachine(ctx, exp, inputs, nil)

		if interactive {
			tap(ctx, string(programPath), debugs.MachineGlobals(m))
			return printVariables(out, m.Globals())
		}

		if _, err := m.Run(); err != nil {
			return err
		}
		logger.InfoContext(ctx, "done",
			"steps", m.StepCount(),
		)

		return printVariables(out, m.Globals())
	}
}

// printVariables writes y first, then the other variables by name.
func printVariables(w io.Writer, globals map[string]uint64) error {
	if _, err := fmt.Fprintf(w, "y = %d\n", globals["y"]); err != nil {
		return err
	}
	for _, name := range slices.Sorted(maps.Keys(globals)) {
		if name == "y" {
			continue
		}
		if _, err := fmt.Fprintf(w, "%s = %d\n", name, globals[name]); err != nil {
			return err
		}
	}
	return nil
}
