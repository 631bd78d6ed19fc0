package schemes

import "github.com/san-kum/pdesim/internal/fdm"

// Region is a half-open index rectangle [X0, X1) x [Y0, Y1) pinned to Value
// after every update: a heater in the heat equation, an obstacle in the wave
// equation. Indices outside the grid are clipped.
type Region struct {
	X0, X1 int
	Y0, Y1 int
	Value  float64
}

// Apply writes Value over the clipped rectangle of component c.
func (r Region) Apply(f *fdm.Field, c int) {
	x0, x1 := clip(r.X0, f.Nx), clip(r.X1, f.Nx)
	y0, y1 := clip(r.Y0, f.Ny), clip(r.Y1, f.Ny)
	for j := y0; j < y1; j++ {
		row := f.Row(c, j)
		for i := x0; i < x1; i++ {
			row[i] = r.Value
		}
	}
}

func clip(v, n int) int {
	if v < 0 {
		return 0
	}
	if v > n {
		return n
	}
	return v
}

// setEdges writes v on the outer ring of component c. Only indices in
// [0, n-1] are touched.
func setEdges(f *fdm.Field, c int, v float64) {
	first, last := f.Row(c, 0), f.Row(c, f.Ny-1)
	for i := range first {
		first[i] = v
		last[i] = v
	}
	plane := f.Component(c)
	for j := 1; j < f.Ny-1; j++ {
		plane[j*f.Nx] = v
		plane[j*f.Nx+f.Nx-1] = v
	}
}
