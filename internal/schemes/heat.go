package schemes

import (
	"fmt"

	"github.com/san-kum/pdesim/internal/fdm"
)

// Heat1D advances u_t = k u_xx with forward Euler in time:
//
//	u[t] = u[t-1] + k*dt/dx^2 * (u[i-1] - 2u[i] + u[i+1])
//
// The two end points are held at Left and Right.
type Heat1D struct {
	Diffusivity float64
	Left, Right float64
	grid        *fdm.Grid
}

func NewHeat1D(g *fdm.Grid, diffusivity float64) (*Heat1D, error) {
	if g.Rank != 1 {
		return nil, fmt.Errorf("%w: heat1d needs a 1d grid", fdm.ErrInvalidRank)
	}
	return &Heat1D{Diffusivity: diffusivity, grid: g}, nil
}

func (h *Heat1D) Name() string    { return "heat1d" }
func (h *Heat1D) Grid() *fdm.Grid { return h.grid }
func (h *Heat1D) Order() int      { return 1 }
func (h *Heat1D) Components() int { return 1 }

func (h *Heat1D) Stability() fdm.Stability {
	return fdm.Stability{Ratio: diffusionRatio(h.Diffusivity, h.grid), Limit: 0.5}
}

func (h *Heat1D) Update(next, cur, _ *fdm.Field) {
	r := h.Stability().Ratio
	u, un := cur.Data, next.Data
	for i := 1; i < h.grid.Nx-1; i++ {
		un[i] = u[i] + r*fdm.Laplacian3(u, i)
	}
}

func (h *Heat1D) Boundary(next *fdm.Field, _ int) {
	next.Data[0] = h.Left
	next.Data[h.grid.Nx-1] = h.Right
}

// Heat2D is forward-Euler diffusion on the 5-point stencil. Edges are held
// at Edge and every Heater is pinned to its value after each update.
type Heat2D struct {
	Diffusivity float64
	Edge        float64
	Heaters     []Region
	grid        *fdm.Grid
}

func NewHeat2D(g *fdm.Grid, diffusivity float64) (*Heat2D, error) {
	if g.Rank != 2 {
		return nil, fmt.Errorf("%w: heat2d needs a 2d grid", fdm.ErrInvalidRank)
	}
	return &Heat2D{Diffusivity: diffusivity, grid: g}, nil
}

func (h *Heat2D) Name() string    { return "heat2d" }
func (h *Heat2D) Grid() *fdm.Grid { return h.grid }
func (h *Heat2D) Order() int      { return 1 }
func (h *Heat2D) Components() int { return 1 }

func (h *Heat2D) Stability() fdm.Stability {
	return fdm.Stability{Ratio: diffusionRatio(h.Diffusivity, h.grid), Limit: 0.25}
}

func (h *Heat2D) Update(next, cur, _ *fdm.Field) {
	r := h.Stability().Ratio
	nx := h.grid.Nx
	u, un := cur.Data, next.Data
	fdm.InteriorRows(h.grid.Ny, func(j int) {
		for i := 1; i < nx-1; i++ {
			k := j*nx + i
			un[k] = u[k] + r*fdm.Laplacian5(u, nx, i, j)
		}
	})
}

func (h *Heat2D) Boundary(next *fdm.Field, _ int) {
	setEdges(next, 0, h.Edge)
	for _, r := range h.Heaters {
		r.Apply(next, 0)
	}
}

func diffusionRatio(k float64, g *fdm.Grid) float64 {
	return k * g.Dt / (g.Dx * g.Dx)
}
