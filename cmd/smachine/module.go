package main

import (
	"github.com/reusee/dscope"
	"github.com/reusee/smachine/debugs"
	"github.com/reusee/smachine/expands"
	"github.com/reusee/smachine/libraries"
	"github.com/reusee/smachine/machines"
	"github.com/reusee/smachine/sconfigs"
)

type Module struct {
	dscope.Module
	Configs   sconfigs.Module
	Libraries libraries.Module
	Expands   expands.Module
	Machines  machines.Module
	Debugs    debugs.Module
}
