package machines

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/reusee/smachine/expands"
	"github.com/reusee/smachine/insns"
)

const DefaultStepLimit = 100_000

// Observer receives the snapshot taken after every executed step.
type Observer func(Snapshot)

type Options struct {
	StepLimit int          // if zero, default to DefaultStepLimit
	Trace     bool         // log every step executed by Run
	Observer  Observer     // if nil, no notification
	Logger    *slog.Logger // if nil, logs are discarded
}

var outputName = insns.Global("y")

// Machine runs an expansion against its own variable store and records every state it passes through.
type Machine struct {
	code    []insns.Instruction
	targets map[insns.Name]int
	limit   int
	trace   bool
	observe Observer
	logger  *slog.Logger

	vars    map[insns.Name]uint64
	pc      int
	steps   int
	history []Snapshot
	current int // history index of the current state
}

func New(exp *expands.Expansion, inputs map[string]uint64, options Options) *Machine {
	code, targets := exp.Code()
	m := &Machine{
		code:    code,
		targets: targets,
		limit:   options.StepLimit,
		trace:   options.Trace,
		observe: options.Observer,
		logger:  options.Logger,
		vars:    make(map[insns.Name]uint64, len(inputs)+1),
	}
	if m.limit <= 0 {
		m.limit = DefaultStepLimit
	}
	if m.logger == nil {
		m.logger = slog.New(slog.DiscardHandler)
	}
	for name, value := range inputs {
		m.vars[insns.Global(name)] = value
	}
	m.vars[outputName] = 0
	m.history = []Snapshot{
		m.snapshot(),
	}
	return m
}

func (m *Machine) snapshot() Snapshot {
	return Snapshot{
		Variables: maps.Clone(m.vars),
		PC:        m.pc,
		Steps:     m.steps,
	}
}

func (m *Machine) restore(s Snapshot) {
	m.vars = maps.Clone(s.Variables)
	m.pc = s.PC
	m.steps = s.Steps
}

func (m *Machine) Halted() bool {
	return m.pc < 0 || m.pc >= len(m.code)
}

// Step executes one instruction and reports whether one was executed.
// A halted machine does nothing. Exceeding the step limit is an error,
// reported after the offending step has been recorded; from then on
// Step executes nothing until Reset or Rewind.
func (m *Machine) Step(trace bool) (bool, error) {
	if m.steps > m.limit {
		// aborted; only Reset or Rewind resumes
		return false, StepLimitExceeded{
			Limit:    m.limit,
			Snapshot: m.history[m.current].clone(),
		}
	}
	if m.Halted() {
		return false, nil
	}

	pc := m.pc
	inst := m.code[pc]
	switch inst.Op {

	case insns.OpInc:
		m.vars[inst.Var]++
		m.pc++

	case insns.OpDec:
		n := m.vars[inst.Var]
		if n > 0 {
			n--
		}
		m.vars[inst.Var] = n
		m.pc++

	case insns.OpGoto:
		m.pc = m.target(inst)

	case insns.OpJumpNonZero:
		if m.vars[inst.Var] != 0 {
			m.pc = m.target(inst)
		} else {
			m.pc++
		}

	case insns.OpLabel:
		panic(fmt.Errorf("label marker in executable code: %v", inst))

	default:
		panic(fmt.Errorf("bad instruction: %v", inst))
	}

	m.steps++
	snapshot := m.snapshot()
	m.history = append(m.history, snapshot)
	m.current = len(m.history) - 1

	if trace {
		m.logger.Info("step",
			"steps", snapshot.Steps,
			"pc", pc,
			"instruction", inst.String(),
			"next", snapshot.PC,
			"vars", snapshot.Variables,
		)
	}
	if m.observe != nil {
		m.observe(snapshot.clone())
	}

	if m.steps > m.limit {
		m.logger.Warn("step limit exceeded",
			"limit", m.limit,
			"pc", snapshot.PC,
		)
		return false, StepLimitExceeded{
			Limit:    m.limit,
			Snapshot: snapshot.clone(),
		}
	}

	return true, nil
}

func (m *Machine) target(inst insns.Instruction) int {
	pc, ok := m.targets[inst.Label]
	if !ok {
		panic(fmt.Errorf("jump to unknown label: %v", inst))
	}
	return pc
}

// Steps executes until halted, yielding the snapshot after every step.
// Iteration ends at the first error, which is yielded with the snapshot at the point of failure.
func (m *Machine) Steps(yield func(Snapshot, error) bool) {
	for {
		ok, err := m.Step(m.trace)
		if err != nil {
			yield(m.history[m.current].clone(), err)
			return
		}
		if !ok {
			return
		}
		if !yield(m.history[m.current].clone(), nil) {
			return
		}
	}
}

// Run executes until halted and returns y.
func (m *Machine) Run() (uint64, error) {
	m.logger.Debug("run",
		"instructions", len(m.code),
		"pc", m.pc,
		"steps", m.steps,
	)
	for _, err := range m.Steps {
		if err != nil {
			return 0, err
		}
	}
	y := m.vars[outputName]
	m.logger.Debug("halted",
		"steps", m.steps,
		"y", y,
	)
	return y, nil
}

// Reset discards every snapshot but the initial one and restores it.
func (m *Machine) Reset() {
	m.history = m.history[:1]
	m.current = 0
	m.restore(m.history[0])
}

// Rewind restores the state recorded at history index k.
// History is kept; later steps are appended after its current end.
func (m *Machine) Rewind(k int) error {
	if k < 0 || k >= len(m.history) {
		return InvalidSnapshotIndex{
			Index: k,
			Len:   len(m.history),
		}
	}
	m.current = k
	m.restore(m.history[k])
	return nil
}

func (m *Machine) Value(name string) uint64 {
	return m.vars[insns.Global(name)]
}

func (m *Machine) Get(name insns.Name) uint64 {
	return m.vars[name]
}

func (m *Machine) Variables() map[insns.Name]uint64 {
	return maps.Clone(m.vars)
}

func (m *Machine) Globals() map[string]uint64 {
	return Snapshot{Variables: m.vars}.Globals()
}

func (m *Machine) PC() int {
	return m.pc
}

func (m *Machine) StepCount() int {
	return m.steps
}

func (m *Machine) Limit() int {
	return m.limit
}

// Code returns the executable instructions, label markers elided.
func (m *Machine) Code() []insns.Instruction {
	return slices.Clone(m.code)
}

// History returns a copy of every recorded snapshot, index 0 being the initial state.
func (m *Machine) History() []Snapshot {
	ret := make([]Snapshot, len(m.history))
	for i, s := range m.history {
		ret[i] = s.clone()
	}
	return ret
}

func (m *Machine) HistoryLen() int {
	return len(m.history)
}

// Current returns the history index of the current state.
func (m *Machine) Current() int {
	return m.current
}

func (m *Machine) Snapshot(k int) (Snapshot, error) {
	if k < 0 || k >= len(m.history) {
		return Snapshot{}, InvalidSnapshotIndex{
			Index: k,
			Len:   len(m.history),
		}
	}
	return m.history[k].clone(), nil
}
