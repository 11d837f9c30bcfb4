package sconfigs

import (
	"github.com/reusee/smachine/cmds"
	"github.com/reusee/smachine/configs"
	"github.com/reusee/smachine/vars"
)

// StepLimit bounds the number of executed instructions. Zero selects the machine default.
type StepLimit int

var _ configs.Configurable = StepLimit(0)

func (StepLimit) ConfigPath() string {
	return "step_limit"
}

var stepLimitFlag = cmds.Var[int]("-step-limit", "maximum number of executed instructions")

func (Module) StepLimit(
	loader configs.Loader,
) StepLimit {
	return vars.FirstNonZero(
		StepLimit(max(*stepLimitFlag, 0)),
		configs.Get[StepLimit](loader),
	)
}
