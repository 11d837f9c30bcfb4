package sconfigs

import (
	_ "embed"
	"os"
	"path/filepath"

	"github.com/reusee/smachine/cmds"
	"github.com/reusee/smachine/configs"
	"github.com/reusee/smachine/logs"
	"github.com/reusee/smachine/modes"
)

//go:embed schema.cue
var schema string

var configFiles = cmds.Collect[string]("-config", "read a cue config file")

// ConfigsLoader finds smachine.cue files, explicit -config files first,
// then the working directory, the user config directory and /etc.
// Development mode reads explicit files only.
func (Module) ConfigsLoader(
	logger logs.Logger,
	mode modes.Mode,
) configs.Loader {

	paths := append([]string(nil), *configFiles...)
	defer func() {
		if len(paths) > 0 {
			logger.Info("config file",
				"paths", paths,
			)
		}
	}()

	if mode == modes.ModeDevelopment {
		return configs.NewLoader(paths, schema)
	}

	filenames := []string{
		"smachine.cue",
		".smachine.cue",
	}

	var dirs []string
	if workingDir, err := os.Getwd(); err == nil {
		dirs = append(dirs, workingDir)
	}
	if configDir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, configDir)
	}
	dirs = append(dirs, "/etc")

	for _, dir := range dirs {
		for _, filename := range filenames {
			path := filepath.Join(dir, filename)
			if _, err := os.Stat(path); err == nil {
				paths = append(paths, path)
			}
		}
	}

	return configs.NewLoader(paths, schema)
}
