// Package schemes provides the explicit finite-difference update rules.
//
// Each scheme implements [fdm.Scheme]:
//
//   - [Wave1D]: leapfrog wave equation with a driven left boundary
//   - [Wave2D]: leapfrog wave equation on a 5-point stencil
//   - [Heat1D], [Heat2D]: forward-Euler diffusion
//   - [GrayScott]: two-species reaction-diffusion (U, V)
//
// Schemes carry only parameters and the grid; all run state lives in the
// [fdm.History] the stepper passes in, so a scheme may be shared between
// concurrent runs.
package schemes
