package schemes

import (
	"fmt"
	"math"

	"github.com/san-kum/pdesim/internal/fdm"
)

// Component indices of a Gray-Scott field.
const (
	U = 0
	V = 1
)

// GrayScott is the two-species reaction-diffusion model
//
//	u += dt*(Du*Lu - u*v^2 + F*(1-u))
//	v += dt*(Dv*Lv + u*v^2 - (F+K)*v)
//
// with both Laplacians and the reaction term taken from the previous level.
// The outer ring of both species is held at 0.
type GrayScott struct {
	Du, Dv float64
	F, K   float64
	grid   *fdm.Grid
}

func NewGrayScott(g *fdm.Grid, du, dv, f, k float64) (*GrayScott, error) {
	if g.Rank != 2 {
		return nil, fmt.Errorf("%w: grayscott needs a 2d grid", fdm.ErrInvalidRank)
	}
	return &GrayScott{Du: du, Dv: dv, F: f, K: k, grid: g}, nil
}

func (gs *GrayScott) Name() string    { return "grayscott" }
func (gs *GrayScott) Grid() *fdm.Grid { return gs.grid }
func (gs *GrayScott) Order() int      { return 1 }
func (gs *GrayScott) Components() int { return 2 }

// Stability reports max(Du, Dv)*dt/dx^2 against the 5-point diffusion bound.
func (gs *GrayScott) Stability() fdm.Stability {
	d := math.Max(gs.Du, gs.Dv)
	return fdm.Stability{Ratio: diffusionRatio(d, gs.grid), Limit: 0.25}
}

func (gs *GrayScott) Update(next, cur, _ *fdm.Field) {
	nx := gs.grid.Nx
	dt := gs.grid.Dt
	h2 := gs.grid.Dx * gs.grid.Dx
	u, v := cur.Component(U), cur.Component(V)
	nu, nv := next.Component(U), next.Component(V)
	fdm.InteriorRows(gs.grid.Ny, func(j int) {
		for i := 1; i < nx-1; i++ {
			k := j*nx + i
			lu := fdm.Laplacian5(u, nx, i, j) / h2
			lv := fdm.Laplacian5(v, nx, i, j) / h2
			uvv := u[k] * v[k] * v[k]
			nu[k] = u[k] + dt*(gs.Du*lu-uvv+gs.F*(1-u[k]))
			nv[k] = v[k] + dt*(gs.Dv*lv+uvv-(gs.F+gs.K)*v[k])
		}
	})
}

func (gs *GrayScott) Boundary(next *fdm.Field, _ int) {
	setEdges(next, U, 0)
	setEdges(next, V, 0)
}
