package machines

import (
	"maps"

	"github.com/reusee/smachine/insns"
)

// Snapshot is the machine state before the step numbered Steps executes.
// Snapshots handed out by a Machine are copies; modifying one does not affect the history.
type Snapshot struct {
	Variables map[insns.Name]uint64
	PC        int
	Steps     int
}

func (s Snapshot) Value(name string) uint64 {
	return s.Variables[insns.Global(name)]
}

// Globals returns the top-level variables by name.
func (s Snapshot) Globals() map[string]uint64 {
	ret := make(map[string]uint64)
	for name, value := range s.Variables {
		if name.IsGlobal() {
			ret[name.Base] = value
		}
	}
	return ret
}

func (s Snapshot) clone() Snapshot {
	s.Variables = maps.Clone(s.Variables)
	return s
}
