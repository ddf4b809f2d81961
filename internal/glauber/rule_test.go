package glauber_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/isinglab/internal/glauber"
	"github.com/san-kum/isinglab/internal/lattice"
)

var _ = Describe("Rule", func() {
	It("computes the heat-bath probability at moderate arguments", func() {
		r := glauber.Rule{Temperature: 1.0}
		Expect(r.Probability(0)).To(BeNumerically("~", 0.5, 1e-12))
		Expect(r.Probability(4)).To(BeNumerically("~", 1/(1+math.Exp(4)), 1e-12))
		Expect(r.Probability(-4)).To(BeNumerically("~", 1/(1+math.Exp(-4)), 1e-12))
	})

	It("becomes deterministic as temperature approaches zero", func() {
		r := glauber.Rule{Temperature: 1e-12}
		Expect(r.Probability(2)).To(BeZero())
		Expect(r.Probability(8)).To(BeZero())
		Expect(r.Probability(-2)).To(Equal(1.0))
		Expect(r.Probability(-8)).To(Equal(1.0))
	})

	It("approaches 1/2 for any energy change at high temperature", func() {
		r := glauber.Rule{Temperature: 1e9}
		for _, dE := range []int{-8, -4, 0, 4, 8} {
			Expect(r.Probability(dE)).To(BeNumerically("~", 0.5, 1e-6))
		}
	})

	It("never produces NaN or Inf, even with saturating exponents", func() {
		for _, temp := range []float64{1e-300, 1e-12, 0.1, 1, 100, 1e300} {
			r := glauber.Rule{Temperature: temp}
			for dE := -8; dE <= 8; dE += 2 {
				p := r.Probability(dE)
				Expect(math.IsNaN(p)).To(BeFalse())
				Expect(p).To(And(BeNumerically(">=", 0), BeNumerically("<=", 1)))
			}
		}
	})

	It("accepts iff the uniform draw is below the probability", func() {
		r := glauber.Rule{Temperature: 1.0}
		p := r.Probability(4)
		Expect(r.Accept(4, p-1e-9)).To(BeTrue())
		Expect(r.Accept(4, p)).To(BeFalse())
		Expect(r.Accept(4, 0.999)).To(BeFalse())
	})
})

var _ = Describe("Dynamics", func() {
	newDynamics := func(n int, seed int64) *glauber.Dynamics {
		lat, err := lattice.New(n)
		Expect(err).NotTo(HaveOccurred())
		d := glauber.New(lat, seed)
		d.Reset()
		return d
	}

	It("issues exactly N^2 attempts per sweep", func() {
		d := newDynamics(7, 3)
		d.Sweep(2.0)
		attempts, _ := d.Counters()
		Expect(attempts).To(Equal(uint64(49)))

		d.Sweep(2.0)
		attempts, _ = d.Counters()
		Expect(attempts).To(Equal(uint64(98)))
	})

	It("keeps every spin in {+1,-1} across many sweeps", func() {
		d := newDynamics(10, 11)
		for i := 0; i < 50; i++ {
			d.Sweep(2.3)
		}
		lat := d.Lattice()
		for row := 0; row < lat.Size(); row++ {
			for col := 0; col < lat.Size(); col++ {
				Expect(lat.Spin(row, col)).To(Or(Equal(int8(1)), Equal(int8(-1))))
			}
		}
	})

	It("freezes an aligned lattice at very low temperature", func() {
		lat, err := lattice.New(8)
		Expect(err).NotTo(HaveOccurred())
		// Uniform +1 lattice: every flip has dE = +8, never accepted as T -> 0.
		d := glauber.New(lat, 5)
		for i := 0; i < 20; i++ {
			d.Sweep(1e-12)
		}
		Expect(lat.TotalMagnetization()).To(Equal(lat.Sites()))
		_, accepted := d.Counters()
		Expect(accepted).To(BeZero())
	})

	It("reproduces a run exactly under a fixed seed", func() {
		a := newDynamics(12, 42)
		b := newDynamics(12, 42)
		for i := 0; i < 30; i++ {
			a.Sweep(1.8)
			b.Sweep(1.8)
		}
		Expect(a.Lattice().Snapshot()).To(Equal(b.Lattice().Snapshot()))
		Expect(a.Lattice().TotalEnergy()).To(Equal(b.Lattice().TotalEnergy()))
	})

	It("returns a frame snapshot decoupled from the live lattice", func() {
		d := newDynamics(6, 9)
		frame := d.AdvanceFrame(2.0)
		Expect(frame).To(HaveLen(6))

		before := make([][]int8, len(frame))
		for i := range frame {
			before[i] = append([]int8(nil), frame[i]...)
		}
		d.Sweep(2.0)
		Expect(frame).To(Equal(before))
	})
})
