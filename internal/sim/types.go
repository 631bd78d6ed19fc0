package sim

import (
	"fmt"

	"github.com/san-kum/pdesim/internal/fdm"
)

// Metric accumulates a scalar over the observed frames of a run.
type Metric interface {
	Name() string
	Observe(h *fdm.History)
	Value() float64
	Reset()
}

// Observer receives every completed frame, including the initial one. The
// history must not be retained; use h.Snapshot() to keep a frame.
type Observer interface {
	OnFrame(h *fdm.History)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(h *fdm.History)

func (f ObserverFunc) OnFrame(h *fdm.History) { f(h) }

type Config struct {
	// Steps is the number of time levels, indices 0..Steps-1.
	Steps    int
	SubSteps int
	// Every records every n-th frame into the result; 0 keeps only the
	// final frame.
	Every int
	Seed  int64
	// StopOnNonFinite ends the run at the first frame holding NaN or Inf.
	// Divergence itself is never an error.
	StopOnNonFinite bool
}

func DefaultConfig() Config {
	return Config{Steps: 1000, SubSteps: 1, Every: 10}
}

// Frame is a recorded snapshot at time index T.
type Frame struct {
	T     int
	Field *fdm.Field
}

type Result struct {
	Scheme     string
	Grid       *fdm.Grid
	Stability  fdm.Stability
	Frames     []Frame
	Final      *fdm.Field
	Metrics    map[string]float64
	StepsTaken int
	Errors     []error
}

// SimError records a condition that ended a run early.
type SimError struct {
	T       int
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("frame %d: %s", e.T, e.Message)
}
