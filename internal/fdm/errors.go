package fdm

import "errors"

// Validation and lifecycle errors for grid construction and stepping.
var (
	// ErrInvalidSpacing indicates a non-positive (or NaN) dx or dt.
	ErrInvalidSpacing = errors.New("fdm: dx and dt must be positive")

	// ErrEmptyExtent indicates an axis whose max does not exceed its min.
	ErrEmptyExtent = errors.New("fdm: extent max must exceed min")

	// ErrInvalidRank indicates a grid rank other than 1 or 2.
	ErrInvalidRank = errors.New("fdm: grid rank must be 1 or 2")

	// ErrGridTooSmall indicates fewer points than a 3-point stencil needs.
	ErrGridTooSmall = errors.New("fdm: grid needs at least 3 points per axis")

	// ErrNotInitialized indicates a step on a history with no initial condition.
	ErrNotInitialized = errors.New("fdm: history has no initial condition")

	// ErrTerminal indicates a step past the last time level of the run.
	ErrTerminal = errors.New("fdm: run already reached its last time level")

	// ErrShapeMismatch indicates a history that was not built for this stepper.
	ErrShapeMismatch = errors.New("fdm: history shape does not match scheme grid")
)

// ErrInvalidSteps indicates a run too short to hold the initial levels, or a
// non-positive sub-step count.
var ErrInvalidSteps = errors.New("fdm: invalid step count")

// ErrStarted indicates an initial condition applied to a history that is
// already stepping. A new run needs a fresh history.
var ErrStarted = errors.New("fdm: history already started")
