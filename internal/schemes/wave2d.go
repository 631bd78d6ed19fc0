package schemes

import (
	"fmt"

	"github.com/san-kum/pdesim/internal/fdm"
)

// Wave2D is the leapfrog wave recurrence on the 5-point stencil. All four
// edges are held at Edge; Obstacles are pinned after every update.
type Wave2D struct {
	Speed     float64
	Edge      float64
	Obstacles []Region
	grid      *fdm.Grid
}

func NewWave2D(g *fdm.Grid, speed float64) (*Wave2D, error) {
	if g.Rank != 2 {
		return nil, fmt.Errorf("%w: wave2d needs a 2d grid", fdm.ErrInvalidRank)
	}
	return &Wave2D{Speed: speed, grid: g}, nil
}

func (w *Wave2D) Name() string    { return "wave2d" }
func (w *Wave2D) Grid() *fdm.Grid { return w.grid }
func (w *Wave2D) Order() int      { return 2 }
func (w *Wave2D) Components() int { return 1 }

// Stability reports (c*dt/dx)^2; the 2D leapfrog bound is 1/2.
func (w *Wave2D) Stability() fdm.Stability {
	c := w.Speed * w.grid.Dt / w.grid.Dx
	return fdm.Stability{Ratio: c * c, Limit: 0.5}
}

func (w *Wave2D) Update(next, cur, prev *fdm.Field) {
	r2 := w.Stability().Ratio
	nx := w.grid.Nx
	u, up, un := cur.Data, prev.Data, next.Data
	fdm.InteriorRows(w.grid.Ny, func(j int) {
		for i := 1; i < nx-1; i++ {
			k := j*nx + i
			un[k] = 2*u[k] - up[k] + r2*fdm.Laplacian5(u, nx, i, j)
		}
	})
}

func (w *Wave2D) Boundary(next *fdm.Field, _ int) {
	setEdges(next, 0, w.Edge)
	for _, r := range w.Obstacles {
		r.Apply(next, 0)
	}
}
