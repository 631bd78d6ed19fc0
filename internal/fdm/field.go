package fdm

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Field is one time level of a discretized quantity. Data holds Components
// planes back to back; each plane is row-major with index j*Nx + i.
type Field struct {
	Nx, Ny     int
	Components int
	Data       []float64
}

// NewField allocates a zero-filled field shaped to g.
func NewField(g *Grid, components int) *Field {
	if components < 1 {
		components = 1
	}
	return &Field{
		Nx:         g.Nx,
		Ny:         g.Ny,
		Components: components,
		Data:       make([]float64, components*g.Nx*g.Ny),
	}
}

// Len is the number of points per component.
func (f *Field) Len() int { return f.Nx * f.Ny }

func (f *Field) Index(i, j int) int { return j*f.Nx + i }

// Component returns the plane of component c. The slice aliases Data.
func (f *Field) Component(c int) []float64 {
	n := f.Len()
	return f.Data[c*n : (c+1)*n]
}

func (f *Field) At(c, i, j int) float64 { return f.Data[c*f.Len()+f.Index(i, j)] }

func (f *Field) Set(c, i, j int, v float64) { f.Data[c*f.Len()+f.Index(i, j)] = v }

// Row returns row j of component c. The slice aliases Data.
func (f *Field) Row(c, j int) []float64 {
	start := c*f.Len() + j*f.Nx
	return f.Data[start : start+f.Nx]
}

// Column copies column i of component c.
func (f *Field) Column(c, i int) []float64 {
	col := make([]float64, f.Ny)
	for j := range col {
		col[j] = f.At(c, i, j)
	}
	return col
}

func (f *Field) Clone() *Field {
	c := *f
	c.Data = make([]float64, len(f.Data))
	copy(c.Data, f.Data)
	return &c
}

// CopyFrom overwrites f with src. Shapes must match.
func (f *Field) CopyFrom(src *Field) { copy(f.Data, src.Data) }

// Fill sets every value of component c to v.
func (f *Field) Fill(c int, v float64) {
	plane := f.Component(c)
	for i := range plane {
		plane[i] = v
	}
}

// SameShape reports whether f and o have identical dimensions.
func (f *Field) SameShape(o *Field) bool {
	return o != nil && f.Nx == o.Nx && f.Ny == o.Ny && f.Components == o.Components
}

// MaxAbs is the largest magnitude over all components. NaN propagates.
func (f *Field) MaxAbs() float64 {
	if len(f.Data) == 0 {
		return 0
	}
	return floats.Norm(f.Data, math.Inf(1))
}

// Mean is the spatial mean of component c.
func (f *Field) Mean(c int) float64 {
	plane := f.Component(c)
	return floats.Sum(plane) / float64(len(plane))
}

// IsFinite reports whether no value is NaN or infinite.
func (f *Field) IsFinite() bool {
	for _, v := range f.Data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Equal reports bitwise equality of shape and values.
func (f *Field) Equal(o *Field) bool {
	return f.SameShape(o) && floats.Equal(f.Data, o.Data)
}
