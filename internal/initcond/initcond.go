// Package initcond provides initial-condition strategies for fdm runs.
//
// Every strategy implements [fdm.InitialCondition]. Random strategies take
// an explicit *rand.Rand so a trajectory is a pure function of its seed.
package initcond

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/san-kum/pdesim/internal/fdm"
)

// Strategy names accepted by ByName.
const (
	NameGaussian    = "gaussian"
	NameSquare      = "square"
	NameUniform     = "uniform-random"
	NameExponential = "exponential"
)

// Gaussian is Amplitude*exp(-((x-X0)^2 + (y-Y0)^2)/Width). Values whose
// magnitude falls below Cutoff are set to 0.
type Gaussian struct {
	Amplitude float64
	X0, Y0    float64
	Width     float64
	Cutoff    float64
}

func (p Gaussian) Value(x, y float64) float64 {
	dx, dy := x-p.X0, y-p.Y0
	val := p.Amplitude * math.Exp(-(dx*dx+dy*dy)/p.Width)
	if math.Abs(val) < p.Cutoff {
		return 0
	}
	return val
}

func (p Gaussian) Apply(dst *fdm.Field, g *fdm.Grid) { fdm.ProfileFunc(p.Value).Apply(dst, g) }

// Square is Amplitude inside the open box |x-X0| < HalfWidth (and
// |y-Y0| < HalfWidth on a 2D grid), 0 elsewhere.
type Square struct {
	Amplitude float64
	HalfWidth float64
	X0, Y0    float64
	rank      int
}

func (p Square) Apply(dst *fdm.Field, g *fdm.Grid) {
	p.rank = g.Rank
	fdm.ProfileFunc(p.Value).Apply(dst, g)
}

func (p Square) Value(x, y float64) float64 {
	if math.Abs(x-p.X0) >= p.HalfWidth {
		return 0
	}
	if p.rank == 2 && math.Abs(y-p.Y0) >= p.HalfWidth {
		return 0
	}
	return p.Amplitude
}

// Exponential is Amplitude*exp(-r/Scale) with r the distance to (X0, Y0).
type Exponential struct {
	Amplitude float64
	X0, Y0    float64
	Scale     float64
}

func (p Exponential) Value(x, y float64) float64 {
	return p.Amplitude * math.Exp(-math.Hypot(x-p.X0, y-p.Y0)/p.Scale)
}

func (p Exponential) Apply(dst *fdm.Field, g *fdm.Grid) { fdm.ProfileFunc(p.Value).Apply(dst, g) }

// Uniform draws every point of component 0 independently from
// [Low, High). Points are drawn in row-major order.
type Uniform struct {
	Low, High float64
	Rand      *rand.Rand
}

func (p Uniform) Apply(dst *fdm.Field, _ *fdm.Grid) {
	plane := dst.Component(0)
	for i := range plane {
		plane[i] = p.Low + (p.High-p.Low)*p.Rand.Float64()
	}
}

// Options carries the tunables shared by the named strategies.
type Options struct {
	Amplitude float64 `yaml:"amplitude" json:"amplitude"`
	X0        float64 `yaml:"x0" json:"x0"`
	Y0        float64 `yaml:"y0" json:"y0"`
	// Width is the Gaussian width, the square half-width or the
	// exponential scale.
	Width  float64 `yaml:"width" json:"width"`
	Cutoff float64 `yaml:"cutoff" json:"cutoff"`
}

// DefaultOptions are the pulse parameters of the 1D lab script.
func DefaultOptions() Options {
	return Options{Amplitude: 1, Width: 0.25, Cutoff: 0.001}
}

var builders = map[string]func(Options, *rand.Rand) fdm.InitialCondition{
	NameGaussian: func(o Options, _ *rand.Rand) fdm.InitialCondition {
		return Gaussian{Amplitude: o.Amplitude, X0: o.X0, Y0: o.Y0, Width: o.Width, Cutoff: o.Cutoff}
	},
	NameSquare: func(o Options, _ *rand.Rand) fdm.InitialCondition {
		return Square{Amplitude: o.Amplitude, HalfWidth: o.Width, X0: o.X0, Y0: o.Y0}
	},
	NameUniform: func(o Options, r *rand.Rand) fdm.InitialCondition {
		return Uniform{Low: 0, High: o.Amplitude, Rand: r}
	},
	NameExponential: func(o Options, _ *rand.Rand) fdm.InitialCondition {
		return Exponential{Amplitude: o.Amplitude, X0: o.X0, Y0: o.Y0, Scale: o.Width}
	},
}

// ByName resolves a strategy name. The uniform strategy requires r.
func ByName(name string, o Options, r *rand.Rand) (fdm.InitialCondition, error) {
	build, ok := builders[name]
	if !ok {
		return nil, fmt.Errorf("unknown initial condition: %s (available: %v)", name, Names())
	}
	if name == NameUniform && r == nil {
		return nil, fmt.Errorf("initial condition %s needs a seeded random source", name)
	}
	return build(o, r), nil
}

// Names lists the strategies ByName accepts.
func Names() []string {
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Zero leaves every level at 0.
type Zero struct{}

func (Zero) Apply(*fdm.Field, *fdm.Grid) {}
