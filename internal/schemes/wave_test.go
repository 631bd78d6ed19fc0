package schemes_test

import (
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/pdesim/internal/fdm"
	"github.com/san-kum/pdesim/internal/initcond"
	"github.com/san-kum/pdesim/internal/schemes"
)

var _ = Describe("Wave1D", func() {
	pulse := initcond.Gaussian{Amplitude: 1, Width: 0.25, Cutoff: 0.001}

	It("rejects a 2d grid", func() {
		_, err := schemes.NewWave1D(plane(1, 1, 0, 8), 1)
		Expect(err).To(MatchError(fdm.ErrInvalidRank))
	})

	It("reports (c*dt/dx)^2 as its stability ratio", func() {
		w, err := schemes.NewWave1D(line(0.1, 0.01, -3, 3), 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(w.Stability().Ratio).To(BeNumerically("~", 0.01, 1e-12))
		Expect(w.Stability().Stable()).To(BeTrue())
	})

	It("stays identically zero from rest with the driver off", func() {
		w, _ := schemes.NewWave1D(line(0.1, 0.01, -3, 3), 1)
		w.DriveAmplitude = 0
		st, h := start(w, 500, initcond.Zero{})

		advance(st, h, 400, func(h *fdm.History) {
			Expect(h.Current().MaxAbs()).To(BeZero())
		})
	})

	It("overwrites the boundaries with the driver and a fixed right end", func() {
		w, _ := schemes.NewWave1D(line(0.1, 0.01, -3, 3), 1)
		st, h := start(w, 100, initcond.Zero{})

		advance(st, h, 50, func(h *fdm.History) {
			t := float64(h.T)
			want := 3 * math.Sin(math.Pi*0.01*t/3) * math.Cos(2*math.Pi*0.01*t/3)
			Expect(h.Current().Data[0]).To(BeNumerically("~", want, 1e-12))
			Expect(h.Current().Data[h.Current().Nx-1]).To(BeZero())
		})
		Expect(h.Current().MaxAbs()).To(BeNumerically(">", 0))
	})

	It("diverges when c*dt/dx exceeds 1", func() {
		w, _ := schemes.NewWave1D(line(0.1, 0.15, -3, 3), 1)
		w.DriveAmplitude = 0
		Expect(w.Stability().Stable()).To(BeFalse())

		st, h := start(w, 100, pulse)
		advance(st, h, 50, nil)

		Expect(h.Current().MaxAbs()).To(BeNumerically(">", 10*pulse.Amplitude))
	})

	It("stays bounded under the stability limit", func() {
		w, _ := schemes.NewWave1D(line(0.1, 0.05, -3, 3), 1)
		w.DriveAmplitude = 0
		st, h := start(w, 400, pulse)

		advance(st, h, 300, func(h *fdm.History) {
			Expect(h.Current().MaxAbs()).To(BeNumerically("<", 2))
		})
	})

	It("roughly conserves energy when stable", func() {
		w, _ := schemes.NewWave1D(line(0.05, 0.02, -3, 3), 1)
		w.DriveAmplitude = 0
		st, h := start(w, 200, pulse)
		advance(st, h, 5, nil)
		e0 := w.Energy(h.Current(), h.Previous())
		Expect(e0).To(BeNumerically(">", 0))

		advance(st, h, 100, nil)
		e1 := w.Energy(h.Current(), h.Previous())
		Expect(math.Abs(e1-e0) / e0).To(BeNumerically("<", 0.1))
	})

	It("replays an identical trajectory for the same seed", func() {
		w, _ := schemes.NewWave1D(line(0.1, 0.05, -3, 3), 1)
		trace := func(seed int64) []*fdm.Field {
			ic := initcond.Uniform{High: 1, Rand: rand.New(rand.NewSource(seed))}
			st, h := start(w, 60, ic)
			var out []*fdm.Field
			advance(st, h, 50, func(h *fdm.History) { out = append(out, h.Snapshot()) })
			return out
		}

		a, b := trace(11), trace(11)
		Expect(a).To(HaveLen(len(b)))
		for i := range a {
			Expect(a[i].Equal(b[i])).To(BeTrue(), "frame %d differs", i)
		}
	})
})

var _ = Describe("Wave2D", func() {
	It("uses the 2d leapfrog bound", func() {
		dx := 0.1
		w, _ := schemes.NewWave2D(plane(dx, dx/1.415, -5, 5), 1)
		Expect(w.Stability().Ratio).To(BeNumerically("~", 1/(1.415*1.415), 1e-12))
		Expect(w.Stability().Stable()).To(BeTrue())
	})

	It("holds every edge at the boundary value after each step", func() {
		w, _ := schemes.NewWave2D(plane(0.1, 0.05, -5, 5), 1)
		w.Edge = 0.3
		pulse := initcond.Exponential{Amplitude: 1, X0: 0.25, Y0: -0.7, Scale: 0.25}
		st, h := start(w, 60, pulse)

		advance(st, h, 40, func(h *fdm.History) {
			for _, v := range edges(h.Current(), 0) {
				Expect(v).To(Equal(0.3))
			}
		})
	})

	It("pins obstacles to their value", func() {
		w, _ := schemes.NewWave2D(plane(0.1, 0.05, -5, 5), 1)
		w.Obstacles = []schemes.Region{{X0: 50, X1: 80, Y0: 40, Y1: 60, Value: 0}}
		st, h := start(w, 30, initcond.Gaussian{Amplitude: 1, X0: 2, Width: 0.5})

		advance(st, h, 20, func(h *fdm.History) {
			for j := 40; j < 60; j++ {
				for i := 50; i < 80; i++ {
					Expect(h.Current().At(0, i, j)).To(BeZero())
				}
			}
		})
	})

	It("stays zero from a zero start", func() {
		w, _ := schemes.NewWave2D(plane(0.1, 0.05, -2, 2), 1)
		st, h := start(w, 30, initcond.Zero{})
		advance(st, h, 25, func(h *fdm.History) {
			Expect(h.Current().MaxAbs()).To(BeZero())
		})
	})
})
