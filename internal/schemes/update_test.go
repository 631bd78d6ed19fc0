package schemes_test

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/pdesim/internal/fdm"
	"github.com/san-kum/pdesim/internal/schemes"
)

// noisy fills every component of a field shaped to g with values in [0, 1).
func noisy(g *fdm.Grid, components int, seed int64) *fdm.Field {
	f := fdm.NewField(g, components)
	r := rand.New(rand.NewSource(seed))
	for i := range f.Data {
		f.Data[i] = r.Float64()
	}
	return f
}

// spike is zero everywhere except 1 at (i, j) of component 0.
func spike(g *fdm.Grid, components, i, j int) *fdm.Field {
	f := fdm.NewField(g, components)
	f.Set(0, i, j, 1)
	return f
}

// lap5 is the scaled 5-point Laplacian written out neighbor by neighbor.
func lap5(f *fdm.Field, c, i, j int, dx float64) float64 {
	return (f.At(c, i-1, j) + f.At(c, i+1, j) + f.At(c, i, j-1) + f.At(c, i, j+1) - 4*f.At(c, i, j)) / (dx * dx)
}

var _ = Describe("interior updates", func() {
	Describe("Wave1D", func() {
		It("spreads a unit spike by the courant number squared", func() {
			g := line(1, 0.5, 0, 4)
			w, _ := schemes.NewWave1D(g, 1)
			cur, prev, next := spike(g, 1, 2, 0), fdm.NewField(g, 1), fdm.NewField(g, 1)

			w.Update(next, cur, prev)
			Expect(next.Data[1:4]).To(Equal([]float64{0.25, 1.5, 0.25}))
		})
	})

	Describe("Wave2D", func() {
		It("spreads a unit spike by the courant number squared", func() {
			g := plane(1, 0.5, 0, 5)
			w, _ := schemes.NewWave2D(g, 1)
			cur, prev, next := spike(g, 1, 2, 2), fdm.NewField(g, 1), fdm.NewField(g, 1)

			w.Update(next, cur, prev)
			Expect(next.At(0, 2, 2)).To(Equal(1.0))
			for _, p := range [][2]int{{1, 2}, {3, 2}, {2, 1}, {2, 3}} {
				Expect(next.At(0, p[0], p[1])).To(Equal(0.25))
			}
			Expect(next.At(0, 1, 1)).To(BeZero())
		})

		It("matches 2u - u_prev + r^2 * L at every interior point", func() {
			g := plane(0.5, 0.2, 0, 4)
			w, _ := schemes.NewWave2D(g, 1.3)
			cur, prev, next := noisy(g, 1, 1), noisy(g, 1, 2), fdm.NewField(g, 1)
			c2dt2 := 1.3 * 1.3 * 0.2 * 0.2

			w.Update(next, cur, prev)
			for j := 1; j < g.Ny-1; j++ {
				for i := 1; i < g.Nx-1; i++ {
					want := 2*cur.At(0, i, j) - prev.At(0, i, j) + c2dt2*lap5(cur, 0, i, j, g.Dx)
					Expect(next.At(0, i, j)).To(BeNumerically("~", want, 1e-12), "at (%d,%d)", i, j)
				}
			}
		})
	})

	Describe("Heat1D", func() {
		It("diffuses a unit spike by k*dt/dx^2", func() {
			g := line(1, 1, 0, 4)
			h, _ := schemes.NewHeat1D(g, 0.25)
			cur, next := spike(g, 1, 2, 0), fdm.NewField(g, 1)

			h.Update(next, cur, nil)
			Expect(next.Data[1:4]).To(Equal([]float64{0.25, 0.5, 0.25}))
		})

		It("matches u + r * L at every interior point", func() {
			g := line(0.1, 0.004, -1, 1)
			h, _ := schemes.NewHeat1D(g, 0.9)
			cur, next := noisy(g, 1, 3), fdm.NewField(g, 1)
			r := 0.9 * 0.004 / (0.1 * 0.1)

			h.Update(next, cur, nil)
			u := cur.Data
			for i := 1; i < g.Nx-1; i++ {
				want := u[i] + r*(u[i-1]-2*u[i]+u[i+1])
				Expect(next.Data[i]).To(BeNumerically("~", want, 1e-12), "at %d", i)
			}
		})
	})

	Describe("Heat2D", func() {
		It("diffuses a unit spike by k*dt/dx^2", func() {
			g := plane(1, 0.125, 0, 5)
			h, _ := schemes.NewHeat2D(g, 1)
			cur, next := spike(g, 1, 2, 2), fdm.NewField(g, 1)

			h.Update(next, cur, nil)
			Expect(next.At(0, 2, 2)).To(Equal(0.5))
			Expect(next.At(0, 3, 2)).To(Equal(0.125))
			Expect(next.At(0, 2, 1)).To(Equal(0.125))
		})

		It("matches u + k*dt * L at every interior point", func() {
			g := plane(0.5, 0.01, 0, 3)
			h, _ := schemes.NewHeat2D(g, 2)
			cur, next := noisy(g, 1, 4), fdm.NewField(g, 1)

			h.Update(next, cur, nil)
			for j := 1; j < g.Ny-1; j++ {
				for i := 1; i < g.Nx-1; i++ {
					want := cur.At(0, i, j) + 2*0.01*lap5(cur, 0, i, j, g.Dx)
					Expect(next.At(0, i, j)).To(BeNumerically("~", want, 1e-12), "at (%d,%d)", i, j)
				}
			}
		})
	})

	Describe("GrayScott", func() {
		It("applies only the reaction terms on a uniform field", func() {
			g := plane(1, 1, 0, 5)
			gs, _ := schemes.NewGrayScott(g, 0.16, 0.08, 0.035, 0.065)
			cur, next := fdm.NewField(g, 2), fdm.NewField(g, 2)
			cur.Fill(schemes.U, 0.5)
			cur.Fill(schemes.V, 0.25)

			gs.Update(next, cur, nil)
			// uv^2 = 0.03125, F(1-u) = 0.0175, (F+k)v = 0.025
			Expect(next.At(schemes.U, 2, 2)).To(BeNumerically("~", 0.48625, 1e-15))
			Expect(next.At(schemes.V, 2, 2)).To(BeNumerically("~", 0.25625, 1e-15))
		})

		It("matches the reaction-diffusion update at every interior point", func() {
			g := plane(0.5, 0.1, 0, 4)
			du, dv, F, k := 0.16, 0.08, 0.035, 0.065
			gs, _ := schemes.NewGrayScott(g, du, dv, F, k)
			cur, next := noisy(g, 2, 5), fdm.NewField(g, 2)

			gs.Update(next, cur, nil)
			dt := g.Dt
			for j := 1; j < g.Ny-1; j++ {
				for i := 1; i < g.Nx-1; i++ {
					u, v := cur.At(schemes.U, i, j), cur.At(schemes.V, i, j)
					uvv := u * v * v
					wantU := u + dt*(du*lap5(cur, schemes.U, i, j, g.Dx)-uvv+F*(1-u))
					wantV := v + dt*(dv*lap5(cur, schemes.V, i, j, g.Dx)+uvv-(F+k)*v)
					Expect(next.At(schemes.U, i, j)).To(BeNumerically("~", wantU, 1e-12), "U at (%d,%d)", i, j)
					Expect(next.At(schemes.V, i, j)).To(BeNumerically("~", wantV, 1e-12), "V at (%d,%d)", i, j)
				}
			}
		})
	})
})
