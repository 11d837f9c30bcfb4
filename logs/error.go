package logs

import (
	"context"
	"errors"
	"fmt"
)

// WrapRun annotates err with the run in ctx, if any.
func WrapRun(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	run, ok := RunFromContext(ctx)
	if !ok {
		return err
	}
	return errors.Join(err, fmt.Errorf("run: %s", run))
}
