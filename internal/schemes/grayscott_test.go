package schemes_test

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/pdesim/internal/fdm"
	"github.com/san-kum/pdesim/internal/initcond"
	"github.com/san-kum/pdesim/internal/schemes"
)

var _ = Describe("GrayScott", func() {
	var gs *schemes.GrayScott

	BeforeEach(func() {
		var err error
		gs, err = schemes.NewGrayScott(plane(1, 1, 0, 256), 0.16, 0.08, 0.035, 0.065)
		Expect(err).NotTo(HaveOccurred())
	})

	run := func(seed int64, frames int) *fdm.Field {
		ic := initcond.DefaultGrayScottSeed(rand.New(rand.NewSource(seed)))
		st, h := start(gs, frames+1, ic, fdm.WithSubSteps(30))
		advance(st, h, frames, nil)
		Expect(h.Phase).To(Equal(fdm.Terminal))
		return h.Snapshot()
	}

	It("reports the larger diffusion rate against the 5-point bound", func() {
		Expect(gs.Components()).To(Equal(2))
		Expect(gs.Stability().Ratio).To(Equal(0.16))
		Expect(gs.Stability().Stable()).To(BeTrue())
	})

	It("reproduces the field bit for bit for a fixed seed", func() {
		a := run(2024, 1)
		b := run(2024, 1)

		Expect(a.Nx).To(Equal(256))
		Expect(a.Ny).To(Equal(256))
		Expect(a.IsFinite()).To(BeTrue())
		Expect(a.Equal(b)).To(BeTrue())
	})

	It("depends on the seed", func() {
		Expect(run(1, 1).Equal(run(2, 1))).To(BeFalse())
	})

	It("keeps the outer ring at zero and the species bounded", func() {
		f := run(7, 2)
		for c := 0; c < 2; c++ {
			for _, v := range edges(f, c) {
				Expect(v).To(BeZero())
			}
		}
		Expect(f.MaxAbs()).To(BeNumerically("<", 2))
	})

	It("does the same work as thirty single sub-step frames", func() {
		seed := int64(5)
		coarse := run(seed, 1)

		ic := initcond.DefaultGrayScottSeed(rand.New(rand.NewSource(seed)))
		st, h := start(gs, 31, ic)
		advance(st, h, 30, nil)

		Expect(h.Current().Equal(coarse)).To(BeTrue())
	})
})
