package schemes_test

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/pdesim/internal/fdm"
	"github.com/san-kum/pdesim/internal/initcond"
	"github.com/san-kum/pdesim/internal/schemes"
)

var _ = Describe("Heat1D", func() {
	It("reports k*dt/dx^2 as its stability ratio", func() {
		h, err := schemes.NewHeat1D(line(0.1, 0.01, -3, 3), 0.4)
		Expect(err).NotTo(HaveOccurred())
		Expect(h.Stability().Ratio).To(BeNumerically("~", 0.4, 1e-9))
		Expect(h.Stability().Limit).To(Equal(0.5))
	})

	It("keeps a zero field at zero", func() {
		heat, _ := schemes.NewHeat1D(line(0.1, 0.01, -3, 3), 0.4)
		st, h := start(heat, 300, initcond.Zero{})

		Expect(h.T).To(Equal(0))
		advance(st, h, 299, func(h *fdm.History) {
			Expect(h.Current().MaxAbs()).To(BeZero())
		})
		Expect(h.Phase).To(Equal(fdm.Terminal))
	})

	It("never raises the maximum of random noise", func() {
		heat, _ := schemes.NewHeat1D(line(0.1, 0.01, -3, 3), 0.4)
		ic := initcond.Uniform{High: 1, Rand: rand.New(rand.NewSource(42))}
		st, h := start(heat, 200, ic)

		last := h.Current().MaxAbs()
		advance(st, h, 150, func(h *fdm.History) {
			cur := h.Current().MaxAbs()
			Expect(cur).To(BeNumerically("<=", last))
			last = cur
			Expect(h.Current().Data[0]).To(BeZero())
			Expect(h.Current().Data[h.Current().Nx-1]).To(BeZero())
		})
	})

	It("diverges above the diffusion limit", func() {
		heat, _ := schemes.NewHeat1D(line(0.1, 0.01, -3, 3), 0.8)
		Expect(heat.Stability().Stable()).To(BeFalse())
		ic := initcond.Square{Amplitude: 1, HalfWidth: 0.5}
		st, h := start(heat, 200, ic)

		advance(st, h, 150, nil)
		Expect(h.Current().MaxAbs()).To(BeNumerically(">", 10))
	})
})

var _ = Describe("Heat2D", func() {
	It("holds edges and heaters after every step", func() {
		heat, err := schemes.NewHeat2D(plane(0.1, 0.002, -5, 5), 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(heat.Stability().Ratio).To(BeNumerically("~", 0.2, 1e-9))

		heat.Edge = 0.1
		heater := schemes.Region{X0: 50, X1: 80, Y0: 40, Y1: 60, Value: 1}
		heat.Heaters = []schemes.Region{heater}
		st, h := start(heat, 20, initcond.Zero{}, fdm.WithSubSteps(10))

		advance(st, h, 15, func(h *fdm.History) {
			f := h.Current()
			for _, v := range edges(f, 0) {
				Expect(v).To(Equal(0.1))
			}
			Expect(f.At(0, 50, 40)).To(Equal(1.0))
			Expect(f.At(0, 79, 59)).To(Equal(1.0))
		})
		Expect(h.Iter).To(Equal(150))

		// heat spreads out of the heater
		Expect(h.Current().At(0, 49, 50)).To(BeNumerically(">", 0.1))
		Expect(h.Current().At(0, 49, 50)).To(BeNumerically("<", 1))
	})

	It("clips heaters that run past the grid", func() {
		heat, _ := schemes.NewHeat2D(plane(1, 0.1, 0, 10), 1)
		heat.Heaters = []schemes.Region{{X0: 8, X1: 20, Y0: -3, Y1: 2, Value: 5}}
		st, h := start(heat, 5, initcond.Zero{})

		advance(st, h, 2, nil)
		Expect(h.Current().At(0, 9, 0)).To(Equal(5.0))
		Expect(h.Current().At(0, 8, 1)).To(Equal(5.0))
		Expect(h.Current().At(0, 8, 2)).NotTo(Equal(5.0))
	})

	It("keeps a zero field at zero", func() {
		heat, _ := schemes.NewHeat2D(plane(0.1, 0.002, -1, 1), 1)
		st, h := start(heat, 50, initcond.Zero{})
		advance(st, h, 49, func(h *fdm.History) {
			Expect(h.Current().MaxAbs()).To(BeZero())
		})
	})
})
