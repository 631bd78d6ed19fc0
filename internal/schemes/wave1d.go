package schemes

import (
	"fmt"
	"math"

	"github.com/san-kum/pdesim/internal/fdm"
)

// DefaultDriveAmplitude is the amplitude of the left-boundary driver.
const DefaultDriveAmplitude = 3.0

// Wave1D advances u_tt = c^2 u_xx with central differences in space and
// time:
//
//	u[t] = 2u[t-1] - u[t-2] + (c*dt/dx)^2 * (u[i-1] - 2u[i] + u[i+1])
//
// The left boundary follows DriveAmplitude*sin(pi*dt*n/xmax)*cos(2*pi*dt*n/xmax)
// and the right boundary is held at 0.
type Wave1D struct {
	Speed          float64
	DriveAmplitude float64
	grid           *fdm.Grid
}

func NewWave1D(g *fdm.Grid, speed float64) (*Wave1D, error) {
	if g.Rank != 1 {
		return nil, fmt.Errorf("%w: wave1d needs a 1d grid", fdm.ErrInvalidRank)
	}
	return &Wave1D{Speed: speed, DriveAmplitude: DefaultDriveAmplitude, grid: g}, nil
}

func (w *Wave1D) Name() string     { return "wave1d" }
func (w *Wave1D) Grid() *fdm.Grid  { return w.grid }
func (w *Wave1D) Order() int       { return 2 }
func (w *Wave1D) Components() int  { return 1 }
func (w *Wave1D) courant() float64 { return w.Speed * w.grid.Dt / w.grid.Dx }
func (w *Wave1D) Stability() fdm.Stability {
	c := w.courant()
	return fdm.Stability{Ratio: c * c, Limit: 1}
}

func (w *Wave1D) Update(next, cur, prev *fdm.Field) {
	r2 := w.Stability().Ratio
	u, up, un := cur.Data, prev.Data, next.Data
	for i := 1; i < w.grid.Nx-1; i++ {
		un[i] = 2*u[i] - up[i] + r2*fdm.Laplacian3(u, i)
	}
}

func (w *Wave1D) Boundary(next *fdm.Field, n int) {
	next.Data[0] = w.Drive(n)
	next.Data[w.grid.Nx-1] = 0
}

// Drive is the left boundary value at inner level n.
func (w *Wave1D) Drive(n int) float64 {
	if w.DriveAmplitude == 0 {
		return 0
	}
	period := w.grid.X.Max
	if period == 0 {
		period = w.grid.X.Span()
	}
	phase := math.Pi * w.grid.Dt * float64(n) / period
	return w.DriveAmplitude * math.Sin(phase) * math.Cos(2*phase)
}

// Energy is the discrete wave energy between the two newest levels:
// kinetic (u_t)^2/2 plus potential c^2 (u_x)^2/2, integrated over dx.
func (w *Wave1D) Energy(cur, prev *fdm.Field) float64 {
	if prev == nil {
		return 0
	}
	dx, dt, c2 := w.grid.Dx, w.grid.Dt, w.Speed*w.Speed
	u, up := cur.Data, prev.Data
	ke, pe := 0.0, 0.0
	for i := range u {
		v := (u[i] - up[i]) / dt
		ke += 0.5 * v * v
		if i < len(u)-1 {
			dudx := (u[i+1] - u[i]) / dx
			pe += 0.5 * c2 * dudx * dudx
		}
	}
	return (ke + pe) * dx
}
