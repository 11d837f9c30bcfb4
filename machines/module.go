package machines

import (
	"context"

	"github.com/reusee/dscope"
	"github.com/reusee/smachine/expands"
	"github.com/reusee/smachine/logs"
	"github.com/reusee/smachine/sconfigs"
)

type Module struct {
	dscope.Module
	Logs    logs.Module
	Configs sconfigs.Module
}

type NewMachine func(
	ctx context.Context,
	exp *expands.Expansion,
	inputs map[string]uint64,
	observer Observer,
) *Machine

func (Module) NewMachine(
	logger logs.Logger,
	stepLimit sconfigs.StepLimit,
	trace sconfigs.Trace,
) NewMachine {
	return func(
		ctx context.Context,
		exp *expands.Expansion,
		inputs map[string]uint64,
		observer Observer,
	) *Machine {
		l := logger
		if run, ok := logs.RunFromContext(ctx); ok {
			l = logger.With("logs.run", string(run))
		}
		return New(exp, inputs, Options{
			StepLimit: int(stepLimit),
			Trace:     bool(trace),
			Observer:  observer,
			Logger:    l,
		})
	}
}
