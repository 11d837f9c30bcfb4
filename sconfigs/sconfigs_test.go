package sconfigs

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/smachine/cmds"
	"github.com/reusee/smachine/logs"
	"github.com/reusee/smachine/modes"
)

func newTestScope(t *testing.T) dscope.Scope {
	return dscope.New(
		new(Module),
		modes.ForTest(t),
	).Fork(
		func() logs.Writer {
			return new(bytes.Buffer)
		},
	)
}

// flags are process wide, so every stage runs in one test
func TestConfigLayers(t *testing.T) {

	// defaults
	newTestScope(t).Call(func(
		stepLimit StepLimit,
		maxDepth MaxDepth,
		trace Trace,
		inputs Inputs,
		program ProgramPath,
		libs LibraryPaths,
	) {
		if stepLimit != 0 || maxDepth != 0 || trace || len(inputs) != 0 || program != "" || len(libs) != 0 {
			t.Fatalf("got %v %v %v %v %q %v", stepLimit, maxDepth, trace, inputs, program, libs)
		}
	})

	// config file
	if err := cmds.Execute([]string{
		"-config", "testdata/smachine.cue",
	}); err != nil {
		t.Fatal(err)
	}
	newTestScope(t).Call(func(
		stepLimit StepLimit,
		maxDepth MaxDepth,
		trace Trace,
		inputs Inputs,
		program ProgramPath,
		libs LibraryPaths,
	) {
		if stepLimit != 1000 {
			t.Fatalf("got %v", stepLimit)
		}
		if maxDepth != 8 {
			t.Fatalf("got %v", maxDepth)
		}
		if !trace {
			t.Fatal()
		}
		if str := fmt.Sprintf("%v", inputs); str != "map[x1:7 x2:3]" {
			t.Fatalf("got %s", str)
		}
		if program != "add.yaml" {
			t.Fatalf("got %q", program)
		}
		if str := fmt.Sprintf("%v", libs); str != "[arith.star]" {
			t.Fatalf("got %s", str)
		}
	})

	// flags over config file
	if err := cmds.Execute([]string{
		"-step-limit", "50",
		"-input", "x1=9",
		"-input", "n=0",
		"-lib", "extra.yaml",
		"-program", "mul.star",
	}); err != nil {
		t.Fatal(err)
	}
	newTestScope(t).Call(func(
		stepLimit StepLimit,
		maxDepth MaxDepth,
		inputs Inputs,
		program ProgramPath,
		libs LibraryPaths,
	) {
		if stepLimit != 50 {
			t.Fatalf("got %v", stepLimit)
		}
		if maxDepth != 8 {
			t.Fatalf("got %v", maxDepth)
		}
		if str := fmt.Sprintf("%v", inputs); str != "map[n:0 x1:9 x2:3]" {
			t.Fatalf("got %s", str)
		}
		if program != "mul.star" {
			t.Fatalf("got %q", program)
		}
		if str := fmt.Sprintf("%v", libs); str != "[arith.star extra.yaml]" {
			t.Fatalf("got %s", str)
		}
	})
}

func TestInputUnmarshalText(t *testing.T) {
	var input Input
	if err := input.UnmarshalText([]byte(" x1 = 7")); err != nil {
		t.Fatal(err)
	}
	if input.Name != "x1" || input.Value != 7 {
		t.Fatalf("got %+v", input)
	}
	for _, bad := range []string{"x1", "=3", "x1=-1", "x1=a"} {
		if err := input.UnmarshalText([]byte(bad)); err == nil {
			t.Fatalf("%q should error", bad)
		}
	}
}
