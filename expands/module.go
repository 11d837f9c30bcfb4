package expands

import (
	"github.com/reusee/dscope"
	"github.com/reusee/smachine/insns"
	"github.com/reusee/smachine/logs"
	"github.com/reusee/smachine/sconfigs"
)

type Module struct {
	dscope.Module
	Logs    logs.Module
	Configs sconfigs.Module
}

type Expander func(program insns.Program, library Library) (*Expansion, error)

func (Module) Expander(
	logger logs.Logger,
	maxDepth sconfigs.MaxDepth,
) Expander {
	return func(program insns.Program, library Library) (*Expansion, error) {
		exp, err := Expand(program, library, Options{
			MaxDepth: int(maxDepth),
		})
		if err != nil {
			logger.Debug("expansion failed", "error", err)
			return nil, err
		}
		logger.Debug("expanded",
			"statements", len(program),
			"instructions", exp.Len(),
			"labels", len(exp.Labels),
			"invocations", len(exp.Invocations),
		)
		return exp, nil
	}
}
