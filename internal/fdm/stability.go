package fdm

import (
	"fmt"
	"math"
)

// Stability is the dimensionless ratio of a scheme, (c*dt/dx)^2 for wave-like
// updates or k*dt/dx^2 for diffusive ones, next to the scheme's bound.
type Stability struct {
	Ratio float64 `json:"ratio" yaml:"ratio"`
	Limit float64 `json:"limit" yaml:"limit"`
}

// Stable reports whether the ratio respects the bound.
func (s Stability) Stable() bool { return s.Ratio <= s.Limit }

// Margin is Limit/Ratio; values below 1 predict divergence. A zero ratio
// has an infinite margin.
func (s Stability) Margin() float64 {
	if s.Ratio <= 0 {
		return math.Inf(1)
	}
	return s.Limit / s.Ratio
}

// MaxDt is the largest time step meeting the bound, given the step dt the
// ratio was computed with and that the ratio scales as dt^power.
func (s Stability) MaxDt(dt float64, power int) float64 {
	if s.Ratio <= 0 || power < 1 {
		return math.Inf(1)
	}
	return dt * math.Pow(s.Limit/s.Ratio, 1/float64(power))
}

func (s Stability) String() string {
	return fmt.Sprintf("%.4g (limit %.4g)", s.Ratio, s.Limit)
}
