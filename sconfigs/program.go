package sconfigs

import (
	"github.com/reusee/smachine/cmds"
	"github.com/reusee/smachine/configs"
	"github.com/reusee/smachine/vars"
)

// ProgramPath is the library file whose program is run.
type ProgramPath string

var _ configs.Configurable = ProgramPath("")

func (ProgramPath) ConfigPath() string {
	return "program"
}

var programFlag = cmds.Var[string]("-program", "yaml or starlark file holding the program")

func (Module) ProgramPath(
	loader configs.Loader,
) ProgramPath {
	return vars.FirstNonZero(
		ProgramPath(*programFlag),
		configs.Get[ProgramPath](loader),
	)
}

// LibraryPaths are macro library files loaded before the program, later files overriding earlier ones.
// Lists from every config file are concatenated, lowest precedence first, then -lib flags.
type LibraryPaths []string

var _ configs.Configurable = LibraryPaths(nil)

func (LibraryPaths) ConfigPath() string {
	return "libraries"
}

var libraryFlags = cmds.Collect[string]("-lib", "load a yaml or starlark macro library")

func (Module) LibraryPaths(
	loader configs.Loader,
) LibraryPaths {
	var ret LibraryPaths
	for _, layer := range configs.Layers[LibraryPaths](loader) {
		ret = append(ret, layer...)
	}
	ret = append(ret, *libraryFlags...)
	return ret
}
