package machines

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/reusee/dscope"
	"github.com/reusee/smachine/expands"
	"github.com/reusee/smachine/insns"
	"github.com/reusee/smachine/logs"
	"github.com/reusee/smachine/macros"
	"github.com/reusee/smachine/modes"
)

func expand(t *testing.T, program insns.Program) *expands.Expansion {
	t.Helper()
	exp, err := expands.Expand(program, macros.Standard(), expands.Options{})
	if err != nil {
		t.Fatal(err)
	}
	return exp
}

func TestAdd(t *testing.T) {
	m := New(expand(t, insns.Program{
		insns.CallStmt("add", "y", "x1", "x2"),
	}), map[string]uint64{
		"x1": 7,
		"x2": 3,
	}, Options{})
	y, err := m.Run()
	if err != nil {
		t.Fatal(err)
	}
	if y != 10 {
		t.Fatalf("got %v", y)
	}
	if m.Value("x1") != 7 || m.Value("x2") != 3 {
		t.Fatalf("got %v", m.Globals())
	}
	if !m.Halted() {
		t.Fatal("should halt")
	}
	if m.HistoryLen() != m.StepCount()+1 {
		t.Fatalf("got %v %v", m.HistoryLen(), m.StepCount())
	}
}

func TestEqualsPreservesSource(t *testing.T) {
	m := New(expand(t, insns.Program{
		insns.CallStmt("equals", "y", "x"),
	}), map[string]uint64{
		"x": 5,
	}, Options{})
	y, err := m.Run()
	if err != nil {
		t.Fatal(err)
	}
	if y != 5 {
		t.Fatalf("got %v", y)
	}
	if diff := cmp.Diff(map[string]uint64{
		"x": 5,
		"y": 5,
	}, m.Globals()); diff != "" {
		t.Fatal(diff)
	}
}

func TestSubtractAndMul(t *testing.T) {
	for _, c := range []struct {
		macro  string
		x1, x2 uint64
		y      uint64
	}{
		{"subtract", 9, 4, 5},
		{"subtract", 4, 4, 0},
		{"mul", 3, 4, 12},
		{"mul", 0, 4, 0},
		{"mul", 5, 0, 0},
	} {
		m := New(expand(t, insns.Program{
			insns.CallStmt(c.macro, "y", "x1", "x2"),
		}), map[string]uint64{
			"x1": c.x1,
			"x2": c.x2,
		}, Options{})
		y, err := m.Run()
		if err != nil {
			t.Fatalf("%s(%d, %d): %v", c.macro, c.x1, c.x2, err)
		}
		if y != c.y {
			t.Fatalf("%s(%d, %d): got %v", c.macro, c.x1, c.x2, y)
		}
	}
}

func TestSubtractUnderflowNeverHalts(t *testing.T) {
	m := New(expand(t, insns.Program{
		insns.CallStmt("subtract", "y", "x1", "x2"),
	}), map[string]uint64{
		"x1": 2,
		"x2": 5,
	}, Options{
		StepLimit: 500,
	})
	_, err := m.Run()
	if !errors.Is(err, ErrStepLimitExceeded) {
		t.Fatalf("got %v", err)
	}
}

func TestDecrementFloor(t *testing.T) {
	x := insns.Global("x")
	m := New(expand(t, insns.Program{
		insns.DecStmt("x"),
		insns.DecStmt("x"),
		insns.IncStmt("x"),
	}), nil, Options{})
	for _, err := range m.Steps {
		if err != nil {
			t.Fatal(err)
		}
		if m.Get(x) > 1 {
			t.Fatalf("got %v", m.Get(x))
		}
	}
	history := m.History()
	if _, ok := history[0].Variables[x]; ok {
		t.Fatal("x should not exist before first write")
	}
	if v, ok := history[1].Variables[x]; !ok || v != 0 {
		t.Fatalf("got %v %v", v, ok)
	}
	if m.Get(x) != 1 {
		t.Fatalf("got %v", m.Get(x))
	}
}

func TestInputY(t *testing.T) {
	m := New(expand(t, insns.Program{}), map[string]uint64{
		"y": 42,
	}, Options{})
	if m.Value("y") != 0 {
		t.Fatalf("got %v", m.Value("y"))
	}
	// empty program halts immediately
	if !m.Halted() {
		t.Fatal("should halt")
	}
	y, err := m.Run()
	if err != nil {
		t.Fatal(err)
	}
	if y != 0 || m.StepCount() != 0 {
		t.Fatalf("got %v %v", y, m.StepCount())
	}
}

func TestHaltedStepIsNoop(t *testing.T) {
	m := New(expand(t, insns.Program{
		insns.IncStmt("y"),
	}), nil, Options{})
	if _, err := m.Run(); err != nil {
		t.Fatal(err)
	}
	n := m.HistoryLen()
	for range 3 {
		ok, err := m.Step(false)
		if err != nil {
			t.Fatal(err)
		}
		if ok {
			t.Fatal("halted machine should not step")
		}
	}
	if m.HistoryLen() != n || m.StepCount() != 1 || m.Value("y") != 1 {
		t.Fatalf("got %v %v %v", m.HistoryLen(), m.StepCount(), m.Value("y"))
	}
}

func TestJumpOutOfCodeHalts(t *testing.T) {
	// label at the end resolves to len(code), one past the last instruction
	m := New(expand(t, insns.Program{
		insns.IncStmt("x"),
		insns.Jnz("x", "E"),
		insns.IncStmt("y"),
		insns.Label("E"),
	}), nil, Options{})
	y, err := m.Run()
	if err != nil {
		t.Fatal(err)
	}
	if y != 0 {
		t.Fatalf("got %v", y)
	}
	if m.PC() != 3 {
		t.Fatalf("got %v", m.PC())
	}
}

func loop() insns.Program {
	return insns.Program{
		insns.IncStmt("x"),
		insns.Label("L"),
		insns.Jnz("x", "L"),
	}
}

func TestStepLimit(t *testing.T) {
	m := New(expand(t, loop()), nil, Options{
		StepLimit: 1000,
	})
	for i := range 1000 {
		ok, err := m.Step(false)
		if err != nil {
			t.Fatalf("step %d: %v", i+1, err)
		}
		if !ok {
			t.Fatal("should not halt")
		}
	}
	_, err := m.Step(false)
	var exceeded StepLimitExceeded
	if !errors.As(err, &exceeded) {
		t.Fatalf("got %v", err)
	}
	if exceeded.Limit != 1000 {
		t.Fatalf("got %v", exceeded.Limit)
	}
	if exceeded.Snapshot.Steps != 1001 {
		t.Fatalf("got %v", exceeded.Snapshot.Steps)
	}
	// the offending step is recorded
	if m.HistoryLen() != 1002 {
		t.Fatalf("got %v", m.HistoryLen())
	}
	// and refuses to execute further
	for range 2 {
		ok, err := m.Step(false)
		if ok || !errors.Is(err, ErrStepLimitExceeded) {
			t.Fatalf("got %v %v", ok, err)
		}
	}
	if m.HistoryLen() != 1002 || m.StepCount() != 1001 || m.PC() != exceeded.Snapshot.PC {
		t.Fatalf("got %v %v %v", m.HistoryLen(), m.StepCount(), m.PC())
	}
	if diff := cmp.Diff(exceeded.Snapshot.Variables, m.Variables()); diff != "" {
		t.Fatal(diff)
	}
}

func TestStepLimitStopsExecution(t *testing.T) {
	m := New(expand(t, insns.Program{
		insns.IncStmt("a"),
		insns.IncStmt("a"),
		insns.IncStmt("a"),
	}), nil, Options{
		StepLimit: 1,
	})
	if _, err := m.Step(false); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Step(false); !errors.Is(err, ErrStepLimitExceeded) {
		t.Fatalf("got %v", err)
	}
	if _, err := m.Step(false); !errors.Is(err, ErrStepLimitExceeded) {
		t.Fatalf("got %v", err)
	}
	if m.Value("a") != 2 || m.StepCount() != 2 || m.PC() != 2 {
		t.Fatalf("got %v %v %v", m.Value("a"), m.StepCount(), m.PC())
	}

	// rewinding under the limit resumes
	if err := m.Rewind(0); err != nil {
		t.Fatal(err)
	}
	if ok, err := m.Step(false); !ok || err != nil {
		t.Fatalf("got %v %v", ok, err)
	}
}

func TestJumpToUnknownLabelPanics(t *testing.T) {
	m := New(&expands.Expansion{
		Instructions: []insns.Instruction{
			insns.GotoLabel(insns.Global("nowhere")),
		},
	}, nil, Options{})
	defer func() {
		if p := recover(); p == nil {
			t.Fatal("should panic")
		}
	}()
	m.Step(false)
}

func TestLabelDoesNotCaptureArgument(t *testing.T) {
	r := macros.Standard()
	if err := r.Register("m", macros.Define(nil, []insns.Statement{
		insns.Label("x"),
		insns.CallStmt("zeros", "x"),
	})); err != nil {
		t.Fatal(err)
	}
	exp, err := expands.Expand(insns.Program{
		insns.CallStmt("m"),
	}, r, expands.Options{})
	if err != nil {
		t.Fatal(err)
	}
	m := New(exp, map[string]uint64{
		"x": 3,
	}, Options{})
	if _, err := m.Run(); err != nil {
		t.Fatal(err)
	}
	if m.Value("x") != 0 {
		t.Fatalf("got %v", m.Variables())
	}
}

func TestDefaultStepLimit(t *testing.T) {
	m := New(expand(t, loop()), nil, Options{})
	if m.Limit() != DefaultStepLimit {
		t.Fatalf("got %v", m.Limit())
	}
	_, err := m.Run()
	if !errors.Is(err, ErrStepLimitExceeded) {
		t.Fatalf("got %v", err)
	}
	if m.StepCount() != DefaultStepLimit+1 {
		t.Fatalf("got %v", m.StepCount())
	}
}

func TestResetReplaysIdentically(t *testing.T) {
	m := New(expand(t, insns.Program{
		insns.CallStmt("mul", "y", "x1", "x2"),
	}), map[string]uint64{
		"x1": 3,
		"x2": 2,
	}, Options{})
	y1, err := m.Run()
	if err != nil {
		t.Fatal(err)
	}
	first := m.History()

	m.Reset()
	if m.HistoryLen() != 1 || m.StepCount() != 0 || m.PC() != 0 || m.Value("y") != 0 {
		t.Fatalf("got %v %v %v %v", m.HistoryLen(), m.StepCount(), m.PC(), m.Value("y"))
	}
	y2, err := m.Run()
	if err != nil {
		t.Fatal(err)
	}
	if y1 != y2 || y1 != 6 {
		t.Fatalf("got %v %v", y1, y2)
	}
	if diff := cmp.Diff(first, m.History()); diff != "" {
		t.Fatal(diff)
	}
}

func TestRewind(t *testing.T) {
	m := New(expand(t, insns.Program{
		insns.CallStmt("add", "y", "x1", "x2"),
	}), map[string]uint64{
		"x1": 2,
		"x2": 2,
	}, Options{})
	if _, err := m.Run(); err != nil {
		t.Fatal(err)
	}
	original := m.History()
	n := len(original)

	k := n / 2
	if err := m.Rewind(k); err != nil {
		t.Fatal(err)
	}
	if m.PC() != original[k].PC || m.StepCount() != original[k].Steps || m.Current() != k {
		t.Fatalf("got %v %v %v", m.PC(), m.StepCount(), m.Current())
	}
	if diff := cmp.Diff(original[k].Variables, m.Variables()); diff != "" {
		t.Fatal(diff)
	}
	// history is not truncated
	if m.HistoryLen() != n {
		t.Fatalf("got %v", m.HistoryLen())
	}

	y, err := m.Run()
	if err != nil {
		t.Fatal(err)
	}
	if y != 4 {
		t.Fatalf("got %v", y)
	}
	replayed := m.History()[n:]
	if diff := cmp.Diff(original[k+1:], replayed); diff != "" {
		t.Fatal(diff)
	}
}

func TestRewindInvalidIndex(t *testing.T) {
	m := New(expand(t, loop()), nil, Options{})
	for _, k := range []int{-1, 1, 100} {
		err := m.Rewind(k)
		var invalid InvalidSnapshotIndex
		if !errors.As(err, &invalid) {
			t.Fatalf("got %v", err)
		}
		if invalid.Index != k || invalid.Len != 1 {
			t.Fatalf("got %+v", invalid)
		}
		if _, err := m.Snapshot(k); !errors.Is(err, ErrInvalidSnapshotIndex) {
			t.Fatalf("got %v", err)
		}
	}
	if err := m.Rewind(0); err != nil {
		t.Fatal(err)
	}
}

func TestSnapshotIsolation(t *testing.T) {
	m := New(expand(t, insns.Program{
		insns.IncStmt("y"),
		insns.IncStmt("y"),
	}), nil, Options{})
	if _, err := m.Run(); err != nil {
		t.Fatal(err)
	}
	s, err := m.Snapshot(1)
	if err != nil {
		t.Fatal(err)
	}
	s.Variables[insns.Global("y")] = 99
	again, err := m.Snapshot(1)
	if err != nil {
		t.Fatal(err)
	}
	if again.Value("y") != 1 {
		t.Fatalf("got %v", again.Value("y"))
	}
	vars := m.Variables()
	vars[insns.Global("y")] = 99
	if m.Value("y") != 2 {
		t.Fatalf("got %v", m.Value("y"))
	}
}

func TestHistoryIsolation(t *testing.T) {
	var observed []Snapshot
	m := New(expand(t, insns.Program{
		insns.IncStmt("y"),
		insns.IncStmt("y"),
	}), nil, Options{
		Observer: func(s Snapshot) {
			observed = append(observed, s)
		},
	})
	if _, err := m.Run(); err != nil {
		t.Fatal(err)
	}
	for _, s := range m.History() {
		s.Variables[insns.Global("y")] = 99
	}
	for _, s := range observed {
		s.Variables[insns.Global("y")] = 99
	}
	if err := m.Rewind(1); err != nil {
		t.Fatal(err)
	}
	if m.Value("y") != 1 {
		t.Fatalf("got %v", m.Value("y"))
	}
}

func TestObserver(t *testing.T) {
	var observed []Snapshot
	m := New(expand(t, insns.Program{
		insns.CallStmt("equals", "y", "x"),
	}), map[string]uint64{
		"x": 3,
	}, Options{
		Observer: func(s Snapshot) {
			observed = append(observed, s)
		},
	})
	if _, err := m.Run(); err != nil {
		t.Fatal(err)
	}
	if len(observed) != m.StepCount() {
		t.Fatalf("got %v %v", len(observed), m.StepCount())
	}
	if diff := cmp.Diff(m.History()[1:], observed); diff != "" {
		t.Fatal(diff)
	}
}

func TestStepsBreak(t *testing.T) {
	m := New(expand(t, loop()), nil, Options{})
	n := 0
	for s, err := range m.Steps {
		if err != nil {
			t.Fatal(err)
		}
		n++
		if s.Steps != n {
			t.Fatalf("got %v", s.Steps)
		}
		if n == 10 {
			break
		}
	}
	if m.StepCount() != 10 {
		t.Fatalf("got %v", m.StepCount())
	}
}

func TestModule(t *testing.T) {
	buf := new(bytes.Buffer)
	dscope.New(
		new(Module),
		modes.ForTest(t),
	).Fork(
		func() logs.Writer {
			return buf
		},
	).Call(func(
		newMachine NewMachine,
		newRun logs.NewRun,
	) {
		ctx, run := newRun(context.Background(), "test")
		steps := 0
		m := newMachine(ctx, expand(t, insns.Program{
			insns.CallStmt("add", "y", "x1", "x2"),
		}), map[string]uint64{
			"x1": 1,
			"x2": 1,
		}, func(Snapshot) {
			steps++
		})
		y, err := m.Run()
		if err != nil {
			t.Fatal(err)
		}
		if y != 2 {
			t.Fatalf("got %v", y)
		}
		if steps != m.StepCount() {
			t.Fatalf("got %v", steps)
		}
		if m.Limit() != DefaultStepLimit {
			t.Fatalf("got %v", m.Limit())
		}
		if !strings.Contains(buf.String(), string(run)) {
			t.Fatalf("got %s", buf.String())
		}
	})
}
