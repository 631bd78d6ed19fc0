// Package fdm provides the explicit finite-difference time stepping core.
//
// The package defines the grid, field and history types shared by every
// equation, and the [Stepper] that advances a [History] one frame at a time:
//
//   - [Grid]: spacing, time step and extent of a 1D or 2D regular grid
//   - [Field]: one time level of one or more scalar components
//   - [History]: the retained time levels plus the run's lifecycle phase
//   - [Scheme]: an update rule (stencil + boundary policy + stability ratio)
//   - [Stepper]: drives a scheme over a history
//
// # Example
//
//	g, _ := fdm.NewGrid(1, 0.1, 0.01, fdm.Extent{Min: -3, Max: 3}, fdm.Extent{}, 1)
//	st, _ := fdm.NewStepper(schemes.NewWave1D(g), 1000)
//	h := st.Initialize()
//	_ = st.ApplyInitialCondition(h, fdm.ProfileFunc(pulse))
//	for h.Phase == fdm.Stepping {
//	    if _, err := st.Step(h); err != nil { ... }
//	}
//
// # Stability
//
// The stepper never checks or enforces a scheme's stability bound. Callers
// read [Scheme.Stability] before running; a violated bound produces a
// diverging field, which is the scheme's faithful behaviour.
//
// # Thread Safety
//
// A History is owned by a single stepping loop. Schemes and grids are
// read-only once built and may be shared between concurrent runs.
package fdm
