package edm_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/ccm/internal/dynamo"
	"github.com/san-kum/ccm/internal/edm"
	"github.com/san-kum/ccm/internal/sim"
	"github.com/san-kum/ccm/internal/systems"
)

func generate(m dynamo.Map, steps int) (x, y []float64) {
	tr, err := sim.Iterate(context.Background(), m, m.DefaultState(), steps)
	Expect(err).NotTo(HaveOccurred())
	x, err = tr.Series(0)
	Expect(err).NotTo(HaveOccurred())
	y, err = tr.Series(1)
	Expect(err).NotTo(HaveOccurred())
	return x, y
}

func mean(c edm.Curve) float64 {
	sum := 0.0
	for _, p := range c {
		sum += p.Rho
	}
	return sum / float64(len(c))
}

var _ = Describe("Convergent cross mapping", func() {
	Context("coupled logistic maps where x forces y", func() {
		var xFromY, yFromX edm.Curve

		BeforeEach(func() {
			x, y := generate(systems.NewCoupledLogistic(), 5000)

			var err error
			xFromY, err = edm.ScanConvergence(y, x, 3)
			Expect(err).NotTo(HaveOccurred())
			yFromX, err = edm.ScanConvergence(x, y, 3)
			Expect(err).NotTo(HaveOccurred())
		})

		It("covers the full library schedule", func() {
			Expect(xFromY).To(HaveLen(15))
			Expect(xFromY[0].L).To(Equal(16))
			Expect(xFromY.Final().L).To(Equal(2048))
		})

		It("recovers x from the manifold of y with skill rising towards 1", func() {
			Expect(xFromY.Final().Rho).To(BeNumerically(">", 0.8))
			Expect(xFromY.Final().Rho).To(BeNumerically(">", xFromY[0].Rho))
			Expect(edm.Converged(xFromY, edm.DefaultMargin)).To(BeTrue())
		})

		It("maps x from y better than y from x", func() {
			Expect(xFromY.Final().Rho).To(BeNumerically(">", yFromX.Final().Rho))
			Expect(mean(xFromY)).To(BeNumerically(">", mean(yFromX)))
		})

		It("is bit-for-bit deterministic", func() {
			x, y := generate(systems.NewCoupledLogistic(), 5000)
			again, err := edm.ScanConvergence(y, x, 3)
			Expect(err).NotTo(HaveOccurred())
			Expect(again).To(Equal(xFromY))
		})
	})

	Context("independent noise", func() {
		It("stays near zero in both directions", func() {
			x, y := generate(systems.NewNoise(42), 5000)

			res, err := edm.CrossMap(context.Background(), x, y, edm.DefaultOptions(3))
			Expect(err).NotTo(HaveOccurred())

			for _, c := range []edm.Curve{res.XFromY, res.YFromX} {
				Expect(math.Abs(c.Final().Rho)).To(BeNumerically("<", 0.2))
				for _, p := range c {
					if p.L >= 256 {
						Expect(math.Abs(p.Rho)).To(BeNumerically("<", 0.4), "L=%d", p.L)
					}
				}
			}
		})

		It("ends far below the coupled system", func() {
			nx, ny := generate(systems.NewNoise(7), 5000)
			cx, cy := generate(systems.NewCoupledLogistic(), 5000)

			noise, err := edm.ScanConvergence(ny, nx, 3)
			Expect(err).NotTo(HaveOccurred())
			coupled, err := edm.ScanConvergence(cy, cx, 3)
			Expect(err).NotTo(HaveOccurred())

			Expect(coupled.Final().Rho - noise.Final().Rho).To(BeNumerically(">", 0.5))
		})
	})

	Context("a series too short for the schedule", func() {
		It("returns only the library lengths that fit", func() {
			x, y := generate(systems.NewCoupledLogistic(), 20)

			curve, err := edm.ScanConvergence(y, x, 3)
			Expect(err).NotTo(HaveOccurred())
			Expect(curve).To(HaveLen(1))
			Expect(curve[0].L).To(Equal(16))
		})

		It("returns an empty curve when nothing fits", func() {
			x, y := generate(systems.NewCoupledLogistic(), 12)

			curve, err := edm.ScanConvergence(y, x, 3)
			Expect(err).NotTo(HaveOccurred())
			Expect(curve).To(BeEmpty())
		})
	})
})

var _ = Describe("Simplex projection", func() {
	var series []float64

	BeforeEach(func() {
		p := systems.NewPeriodic()
		tr, err := sim.Iterate(context.Background(), p, p.DefaultState(), 400)
		Expect(err).NotTo(HaveOccurred())
		series, err = tr.Series(1)
		Expect(err).NotTo(HaveOccurred())
	})

	It("forecasts a periodic series perfectly once the library holds two periods", func() {
		curve, err := edm.SimplexScan(context.Background(), series, edm.Options{E: 3, Tp: 1, Schedule: edm.DefaultSchedule()})
		Expect(err).NotTo(HaveOccurred())
		Expect(curve).NotTo(BeEmpty())
		for _, p := range curve {
			Expect(p.Rho).To(BeNumerically("~", 1, 1e-9), "L=%d", p.L)
		}
	})

	It("cross maps the one-step-shifted series perfectly", func() {
		curve, err := edm.ScanConvergence(series, series[1:], 3)
		Expect(err).NotTo(HaveOccurred())
		for _, p := range curve {
			Expect(p.Rho).To(BeNumerically("~", 1, 1e-9), "L=%d", p.L)
		}
	})

	It("forecasts out of sample with the same skill", func() {
		f, err := edm.Simplex(series, 3, 100, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(f.Rho).To(BeNumerically("~", 1, 1e-9))
		Expect(f.MAE).To(BeNumerically("~", 0, 1e-12))
	})
})
