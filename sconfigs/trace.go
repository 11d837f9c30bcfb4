package sconfigs

import (
	"github.com/reusee/smachine/cmds"
	"github.com/reusee/smachine/configs"
)

// Trace enables logging of every executed step.
type Trace bool

var _ configs.Configurable = Trace(false)

func (Trace) ConfigPath() string {
	return "trace"
}

var traceFlag = cmds.Switch("-trace", "log every executed instruction")

func (Module) Trace(
	loader configs.Loader,
) Trace {
	return Trace(*traceFlag) || configs.Get[Trace](loader)
}
