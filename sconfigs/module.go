package sconfigs

import (
	"github.com/reusee/dscope"
	"github.com/reusee/smachine/logs"
)

type Module struct {
	dscope.Module
	Logs logs.Module
}
