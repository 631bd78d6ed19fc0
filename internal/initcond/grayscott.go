package initcond

import (
	"math/rand"

	"github.com/san-kum/pdesim/internal/fdm"
)

// GrayScottSeed is the classic Gray-Scott start: U=Base on the interior,
// U=SeedU and V=SeedV inside the centered square of half-width Radius, then
// uniform noise in [-Noise, Noise) added to both species on the interior.
// The outer ring stays 0.
type GrayScottSeed struct {
	Radius       int
	Base         float64
	SeedU, SeedV float64
	Noise        float64
	Rand         *rand.Rand
}

// DefaultGrayScottSeed is the seed used by the pattern presets.
func DefaultGrayScottSeed(r *rand.Rand) GrayScottSeed {
	return GrayScottSeed{Radius: 20, Base: 1.0, SeedU: 0.5, SeedV: 0.25, Noise: 0.15, Rand: r}
}

func (s GrayScottSeed) Apply(dst *fdm.Field, _ *fdm.Grid) {
	nx, ny := dst.Nx, dst.Ny
	u, v := dst.Component(0), dst.Component(1)

	for j := 1; j < ny-1; j++ {
		for i := 1; i < nx-1; i++ {
			u[j*nx+i] = s.Base
		}
	}

	cx, cy := nx/2, ny/2
	for j := max(cy-s.Radius, 1); j < min(cy+s.Radius, ny-1); j++ {
		for i := max(cx-s.Radius, 1); i < min(cx+s.Radius, nx-1); i++ {
			u[j*nx+i] = s.SeedU
			v[j*nx+i] = s.SeedV
		}
	}

	if s.Noise == 0 || s.Rand == nil {
		return
	}
	for _, plane := range [][]float64{u, v} {
		for j := 1; j < ny-1; j++ {
			for i := 1; i < nx-1; i++ {
				plane[j*nx+i] += s.Noise * (2*s.Rand.Float64() - 1)
			}
		}
	}
}
