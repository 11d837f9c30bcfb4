package logs

import (
	"context"

	"github.com/google/uuid"
)

// Run identifies one execution of a program, from expansion to halt.
type Run string

type runKey struct{}

func RunFromContext(ctx context.Context) (Run, bool) {
	run, ok := ctx.Value(runKey{}).(Run)
	return run, ok
}

type NewRun func(ctx context.Context, program string) (context.Context, Run)

func (Module) NewRun(
	logger Logger,
) NewRun {
	return func(ctx context.Context, program string) (context.Context, Run) {
		var args []any
		if parent, ok := RunFromContext(ctx); ok {
			args = append(args, "parent", string(parent))
		}
		if program != "" {
			args = append(args, "program", program)
		}

		run := Run(uuid.NewString())
		ctx = context.WithValue(ctx, runKey{}, run)
		logger.InfoContext(ctx, "new run", args...)

		return ctx, run
	}
}
