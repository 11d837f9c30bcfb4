package main

import (
	"context"
	"fmt"
	"os"

	"github.com/reusee/dscope"
	"github.com/reusee/smachine/cmds"
	"github.com/reusee/smachine/modes"
)

var tapFlag = cmds.Switch("-tap", "open a starlark debugger on the machine instead of running it")

func main() {
	if err := cmds.Execute(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		cmds.GlobalExecutor.PrintUsage()
		os.Exit(2)
	}
	ctx := context.Background()

	dscope.New(
		new(Module),
		modes.ForProduction(),
	).Call(func(
		execute Execute,
	) {
		if err := execute(ctx, os.Stdout, *tapFlag); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	})
}
