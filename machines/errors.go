package machines

import (
	"errors"
	"fmt"
)

var (
	ErrStepLimitExceeded    = errors.New("step limit exceeded")
	ErrInvalidSnapshotIndex = errors.New("invalid snapshot index")
)

// StepLimitExceeded aborts a run; Snapshot is the state right after the offending step.
type StepLimitExceeded struct {
	Limit    int
	Snapshot Snapshot
}

func (s StepLimitExceeded) Error() string {
	return fmt.Sprintf("step limit %d exceeded at pc %d", s.Limit, s.Snapshot.PC)
}

func (s StepLimitExceeded) Is(target error) bool {
	return target == ErrStepLimitExceeded
}

type InvalidSnapshotIndex struct {
	Index int
	Len   int
}

func (i InvalidSnapshotIndex) Error() string {
	return fmt.Sprintf("snapshot index %d out of range [0, %d)", i.Index, i.Len)
}

func (i InvalidSnapshotIndex) Is(target error) bool {
	return target == ErrInvalidSnapshotIndex
}
