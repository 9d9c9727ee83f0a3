package calc_test

import (
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/physkit/internal/calc"
	"github.com/san-kum/physkit/internal/phys"
)

func value(res *calc.Result, label string) float64 {
	q, ok := res.Quantity(label)
	Expect(ok).To(BeTrue(), "missing quantity %q", label)
	return q.Value
}

var _ = Describe("Registry", func() {
	var reg *calc.Registry

	BeforeEach(func() {
		reg = calc.NewRegistry()
	})

	It("lists every calculator in sorted order", func() {
		Expect(reg.List()).To(Equal([]string{
			"added_mass", "buoyancy", "collider", "composite", "doppler",
			"optics", "pole", "projectile", "slope", "thermo",
		}))
	})

	It("rejects unknown calculators", func() {
		_, err := reg.Get("warp_drive")
		Expect(err).To(MatchError(calc.ErrUnknownCalculator))

		_, err = reg.Run("warp_drive", nil)
		Expect(err).To(MatchError(calc.ErrUnknownCalculator))
	})

	It("rejects unknown parameters", func() {
		_, err := reg.Run("pole", map[string]float64{"cut_width": 1, "colour": 3})
		Expect(err).To(MatchError(phys.ErrInvalidInput))
	})

	It("fills missing parameters with defaults", func() {
		res, err := reg.Run("pole", nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Calculator).To(Equal("pole"))
		Expect(res.Inputs).To(HaveKeyWithValue("cut_width", 0.75))
		Expect(res.Inputs).To(HaveKeyWithValue("sig_figs", 2.0))
	})

	It("applies configured defaults", func() {
		reg.WithDefaults(calc.Defaults{Gravity: 1.62, FluidDensity: 1025})
		res, err := reg.Run("buoyancy", nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Inputs).To(HaveKeyWithValue("g", 1.62))
		Expect(res.Inputs).NotTo(HaveKey("gamma"))
		Expect(value(res, "weight")).To(BeNumerically("~", 16.2, 1e-9))
	})

	Describe("ParseAssignments", func() {
		It("parses numbers and choice names", func() {
			params, err := reg.ParseAssignments("thermo", []string{"process=adiabatic", "target=pressure", "value=2e5"})
			Expect(err).NotTo(HaveOccurred())
			Expect(params).To(Equal(map[string]float64{"process": 1, "target": 1, "value": 200000}))
		})

		It("rejects malformed pairs", func() {
			_, err := reg.ParseAssignments("thermo", []string{"process"})
			Expect(err).To(MatchError(phys.ErrInvalidInput))
		})

		It("rejects names on numeric parameters", func() {
			_, err := reg.ParseAssignments("pole", []string{"cut_width=wide"})
			Expect(err).To(MatchError(phys.ErrInvalidInput))
		})
	})
})

var _ = Describe("Calculators", func() {
	var reg *calc.Registry

	BeforeEach(func() {
		reg = calc.NewRegistry()
	})

	Context("buoyancy", func() {
		It("reports a floating object", func() {
			res, err := reg.Run("buoyancy", map[string]float64{"mass": 10, "volume": 0.02})
			Expect(err).NotTo(HaveOccurred())
			Expect(value(res, "object density")).To(BeNumerically("~", 500, 1e-9))
			Expect(value(res, "submerged fraction")).To(BeNumerically("~", 0.5, 1e-12))
			Expect(value(res, "buoyant force (equilibrium)")).To(BeNumerically("~", 98.1, 1e-9))
			Expect(res.Notes[0]).To(ContainSubstring("floats"))
		})

		It("reports a sinking object without a submerged fraction", func() {
			res, err := reg.Run("buoyancy", map[string]float64{"mass": 30, "volume": 0.02})
			Expect(err).NotTo(HaveOccurred())
			_, ok := res.Quantity("submerged fraction")
			Expect(ok).To(BeFalse())
			Expect(res.Notes[0]).To(ContainSubstring("sinks"))
		})

		It("fails on zero volume", func() {
			_, err := reg.Run("buoyancy", map[string]float64{"volume": 0})
			Expect(err).To(MatchError(phys.ErrInvalidInput))
		})
	})

	It("computes the added-mass limit", func() {
		res, err := reg.Run("added_mass", nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(value(res, "max added mass")).To(BeNumerically("~", 10, 1e-9))
	})

	It("combines two materials", func() {
		res, err := reg.Run("composite", nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(value(res, "total mass")).To(BeNumerically("~", 7, 1e-12))
		Expect(value(res, "object density")).To(BeNumerically("~", 7/0.011, 1e-9))
	})

	Context("optics", func() {
		It("chains free space and a lens", func() {
			res, err := reg.Run("optics", map[string]float64{
				"elements": 2,
				"type_1":   0, "value_1": 0.1,
				"type_2": 1, "value_2": 0.05,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(value(res, "A")).To(BeNumerically("~", 1, 1e-12))
			Expect(value(res, "B")).To(BeNumerically("~", 0.1, 1e-12))
			Expect(value(res, "C")).To(BeNumerically("~", -20, 1e-12))
			Expect(value(res, "D")).To(BeNumerically("~", -1, 1e-12))
			Expect(value(res, "effective focal length")).To(BeNumerically("~", 0.05, 1e-12))
		})

		It("notes an afocal system", func() {
			res, err := reg.Run("optics", nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Notes).To(ContainElement(ContainSubstring("afocal")))
		})

		It("rejects a bad element count", func() {
			_, err := reg.Run("optics", map[string]float64{"elements": 0})
			Expect(err).To(MatchError(phys.ErrInvalidInput))
			_, err = reg.Run("optics", map[string]float64{"elements": calc.MaxOpticsElements + 1})
			Expect(err).To(MatchError(phys.ErrInvalidInput))
		})

		It("composes more than four elements", func() {
			params := map[string]float64{"elements": 7, "type_7": 1, "value_7": 0.2}
			for i := 1; i <= 6; i++ {
				params[fmt.Sprintf("type_%d", i)] = 0
				params[fmt.Sprintf("value_%d", i)] = 0.1
			}
			res, err := reg.Run("optics", params)
			Expect(err).NotTo(HaveOccurred())
			Expect(value(res, "A")).To(BeNumerically("~", 1, 1e-12))
			Expect(value(res, "B")).To(BeNumerically("~", 0.6, 1e-12))
			Expect(value(res, "C")).To(BeNumerically("~", -5, 1e-12))
			Expect(value(res, "D")).To(BeNumerically("~", -2, 1e-12))
		})

		It("rejects an unknown element type", func() {
			_, err := reg.Run("optics", map[string]float64{
				"elements": 2, "type_1": 1e19, "type_2": 1, "value_2": 0.5,
			})
			Expect(err).To(MatchError(phys.ErrInvalidInput))
		})

		It("propagates a zero focal length", func() {
			_, err := reg.Run("optics", map[string]float64{"type_1": 1, "value_1": 0})
			Expect(err).To(MatchError(phys.ErrDivisionByZero))
		})
	})

	Context("projectile", func() {
		It("finds both launch angles", func() {
			res, err := reg.Run("projectile", map[string]float64{"v0": 15})
			Expect(err).NotTo(HaveOccurred())
			Expect(value(res, "low angle")).To(BeNumerically("~", 24.7758, 1e-3))
			Expect(value(res, "high angle")).To(BeNumerically("~", 79.2604, 1e-3))
		})

		It("reports an unreachable target", func() {
			_, err := reg.Run("projectile", nil)
			Expect(err).To(MatchError(phys.ErrOutOfRange))
		})
	})

	It("halves the complement of the slope", func() {
		res, err := reg.Run("slope", map[string]float64{"slope": 30})
		Expect(err).NotTo(HaveOccurred())
		Expect(value(res, "optimal angle")).To(Equal(60.0))
	})

	Context("collider", func() {
		It("doubles beam energy for colliding beams", func() {
			res, err := reg.Run("collider", map[string]float64{"setup": 1})
			Expect(err).NotTo(HaveOccurred())
			Expect(value(res, "centre-of-mass energy")).To(BeNumerically("~", 418, 1e-9))
		})

		It("handles a fixed target", func() {
			res, err := reg.Run("collider", nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(value(res, "centre-of-mass energy")).To(BeNumerically("~", 0.46217, 1e-4))
		})

		It("rejects non-integer setup codes", func() {
			_, err := reg.Run("collider", map[string]float64{"setup": 0.5})
			Expect(err).To(MatchError(phys.ErrInvalidInput))
		})
	})

	It("computes a Doppler redshift", func() {
		res, err := reg.Run("doppler", nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(value(res, "beta")).To(BeNumerically("~", 0.10990, 1e-4))
		Expect(res.Notes).To(ContainElement(ContainSubstring("receding")))
	})

	Context("thermo", func() {
		It("runs the default isothermal compression", func() {
			res, err := reg.Run("thermo", nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(value(res, "final pressure")).To(BeNumerically("~", 202650, 1e-6))
			Expect(value(res, "work done by gas")).To(BeNumerically("<", 0))
		})

		It("surfaces unimplemented processes", func() {
			_, err := reg.Run("thermo", map[string]float64{"process": 2})
			Expect(err).To(MatchError(phys.ErrNotImplemented))
		})

		It("surfaces a zero target", func() {
			_, err := reg.Run("thermo", map[string]float64{"value": 0})
			Expect(err).To(MatchError(phys.ErrDivisionByZero))
		})
	})

	DescribeTable("rejects selector codes beyond their range",
		func(name string, params map[string]float64) {
			var err error
			Expect(func() { _, err = reg.Run(name, params) }).NotTo(Panic())
			Expect(err).To(MatchError(phys.ErrInvalidInput))
		},
		Entry("huge element count", "optics", map[string]float64{"elements": 1e19}),
		Entry("huge element type", "optics", map[string]float64{"type_1": 1e19}),
		Entry("huge significant figures", "pole", map[string]float64{"sig_figs": 1e19}),
		Entry("huge collider setup", "collider", map[string]float64{"setup": 1e19}),
		Entry("huge gas process", "thermo", map[string]float64{"process": 1e19}),
		Entry("fractional target", "thermo", map[string]float64{"target": 0.5}),
		Entry("one past the last code", "collider", map[string]float64{"setup": 2}),
	)

	It("rounds the pole radius", func() {
		res, err := reg.Run("pole", nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(value(res, "radius")).To(BeNumerically("~", 0.119366, 1e-6))
		Expect(value(res, "radius (rounded)")).To(Equal(12.0))
	})
})
