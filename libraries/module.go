package libraries

import (
	"github.com/reusee/dscope"
	"github.com/reusee/smachine/logs"
)

type Module struct {
	dscope.Module
	Logs logs.Module
}

type Loader func(path string) (*Source, error)

func (Module) Loader(
	logger logs.Logger,
) Loader {
	return func(path string) (*Source, error) {
		source, err := Load(path, Options{
			Print: func(msg string) {
				logger.Info("print", "path", path, "message", msg)
			},
		})
		if err != nil {
			return nil, err
		}
		logger.Debug("library loaded",
			"path", path,
			"macros", len(source.Macros),
			"statements", len(source.Program),
		)
		return source, nil
	}
}
