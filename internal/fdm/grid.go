package fdm

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// countTol absorbs the rounding in (max-min)/dx so that a span that is an
// exact multiple of dx on paper is not truncated one point short.
const countTol = 1e-9

// Extent is a closed interval [Min, Max] along one axis.
type Extent struct {
	Min float64 `yaml:"min" json:"min"`
	Max float64 `yaml:"max" json:"max"`
}

func (e Extent) Span() float64 { return e.Max - e.Min }

// Grid describes a regular 1D or 2D discretization. Cells are square: the
// same Dx applies to both axes of a 2D grid.
type Grid struct {
	Rank   int
	Dx, Dt float64
	X, Y   Extent
	Nx, Ny int
}

// NewGrid validates the discretization and derives the point counts
// nx = floor((max-min)/dx) + offset. Ny is 1 for rank 1 grids and y is
// ignored. Validation happens before anything is allocated.
func NewGrid(rank int, dx, dt float64, x, y Extent, offset int) (*Grid, error) {
	if rank != 1 && rank != 2 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidRank, rank)
	}
	if !(dx > 0) || !(dt > 0) {
		return nil, fmt.Errorf("%w: dx=%g dt=%g", ErrInvalidSpacing, dx, dt)
	}
	if !(x.Max > x.Min) {
		return nil, fmt.Errorf("%w: x=[%g, %g]", ErrEmptyExtent, x.Min, x.Max)
	}

	g := &Grid{Rank: rank, Dx: dx, Dt: dt, X: x, Nx: points(x, dx, offset), Ny: 1}
	if rank == 2 {
		if !(y.Max > y.Min) {
			return nil, fmt.Errorf("%w: y=[%g, %g]", ErrEmptyExtent, y.Min, y.Max)
		}
		g.Y = y
		g.Ny = points(y, dx, offset)
	}

	if g.Nx < 3 || (rank == 2 && g.Ny < 3) {
		return nil, fmt.Errorf("%w: got %dx%d", ErrGridTooSmall, g.Nx, g.Ny)
	}
	return g, nil
}

func points(e Extent, dx float64, offset int) int {
	return int(math.Floor(e.Span()/dx+countTol)) + offset
}

// Shape returns the point count per axis: [nx] or [nx, ny].
func (g *Grid) Shape() []int {
	if g.Rank == 1 {
		return []int{g.Nx}
	}
	return []int{g.Nx, g.Ny}
}

// Len is the number of grid points.
func (g *Grid) Len() int { return g.Nx * g.Ny }

// XCoords returns x_i = xmin + i*dx for every column.
func (g *Grid) XCoords() []float64 {
	xs := make([]float64, g.Nx)
	floats.Span(xs, g.X.Min, g.X.Min+float64(g.Nx-1)*g.Dx)
	return xs
}

// YCoords returns y_j = ymin + j*dx for every row, or [0] on a 1D grid.
func (g *Grid) YCoords() []float64 {
	if g.Rank == 1 {
		return []float64{0}
	}
	ys := make([]float64, g.Ny)
	floats.Span(ys, g.Y.Min, g.Y.Min+float64(g.Ny-1)*g.Dx)
	return ys
}

// Each calls fn for every grid point in row-major order with its indices and
// physical position.
func (g *Grid) Each(fn func(i, j int, x, y float64)) {
	xs, ys := g.XCoords(), g.YCoords()
	for j, y := range ys {
		for i, x := range xs {
			fn(i, j, x, y)
		}
	}
}

// IsBoundary reports whether (i, j) lies on the outer edge of the grid.
func (g *Grid) IsBoundary(i, j int) bool {
	if i == 0 || i == g.Nx-1 {
		return true
	}
	return g.Rank == 2 && (j == 0 || j == g.Ny-1)
}

func (g *Grid) String() string {
	if g.Rank == 1 {
		return fmt.Sprintf("%d points, dx=%g dt=%g", g.Nx, g.Dx, g.Dt)
	}
	return fmt.Sprintf("%dx%d points, dx=%g dt=%g", g.Nx, g.Ny, g.Dx, g.Dt)
}
