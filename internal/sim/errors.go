package sim

import (
	"errors"
	"fmt"
)

var (
	// ErrFinished is returned by Step once every frame has been delivered.
	ErrFinished = errors.New("sim: frame sequence finished")

	// ErrNotStarted is returned by Step before Start.
	ErrNotStarted = errors.New("sim: driver not started")
)

// FrameError records the frame at which the run aborted.
type FrameError struct {
	Index   int
	T       float64
	Wrapped error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("frame %d (t=%.4f): %v", e.Index, e.T, e.Wrapped)
}

func (e *FrameError) Unwrap() error {
	return e.Wrapped
}
