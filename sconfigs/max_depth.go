package sconfigs

import (
	"github.com/reusee/smachine/cmds"
	"github.com/reusee/smachine/configs"
	"github.com/reusee/smachine/vars"
)

// MaxDepth bounds macro call nesting during expansion. Zero selects the expander default.
type MaxDepth int

var _ configs.Configurable = MaxDepth(0)

func (MaxDepth) ConfigPath() string {
	return "max_depth"
}

var maxDepthFlag = cmds.Var[int]("-max-depth", "maximum macro nesting depth")

func (Module) MaxDepth(
	loader configs.Loader,
) MaxDepth {
	return vars.FirstNonZero(
		MaxDepth(max(*maxDepthFlag, 0)),
		configs.Get[MaxDepth](loader),
	)
}
