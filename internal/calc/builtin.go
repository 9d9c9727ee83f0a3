package calc

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/physkit/internal/buoyancy"
	"github.com/san-kum/physkit/internal/geometry"
	"github.com/san-kum/physkit/internal/optics"
	"github.com/san-kum/physkit/internal/phys"
	"github.com/san-kum/physkit/internal/projectile"
	"github.com/san-kum/physkit/internal/relativity"
	"github.com/san-kum/physkit/internal/thermo"
)

// MaxOpticsElements bounds the element slots of the optics calculator.
const MaxOpticsElements = 10

func gravityParam() Param {
	return Param{Name: "g", Unit: "m/s²", Default: phys.StandardGravity, Help: "gravitational acceleration"}
}

func fluidParam() Param {
	return Param{Name: "fluid_density", Unit: "kg/m³", Default: 1000, Help: "fluid density"}
}

func buoyancyCalculator() *Calculator {
	return &Calculator{
		Name:        "buoyancy",
		Description: "Float or sink: density, weight and buoyant force of a single object",
		Params: []Param{
			{Name: "mass", Unit: "kg", Default: 10, Help: "object mass"},
			{Name: "volume", Unit: "m³", Default: 0.02, Help: "object volume"},
			fluidParam(),
			gravityParam(),
		},
		run: func(p map[string]float64) (*Result, error) {
			return analysisResult(buoyancy.Body{Mass: p["mass"], Volume: p["volume"]}, p["fluid_density"], p["g"])
		},
	}
}

func analysisResult(body buoyancy.Body, rhoFluid, g float64) (*Result, error) {
	a, err := buoyancy.Analyze(body, rhoFluid, g)
	if err != nil {
		return nil, err
	}

	res := &Result{}
	res.add("object density", a.Density, "kg/m³")
	res.add("weight", a.Weight, "N")
	res.add("buoyant force (fully submerged)", a.FullBuoyancy, "N")

	switch a.Classification.Verdict {
	case buoyancy.Floats:
		res.add("submerged fraction", a.Classification.Fraction, "")
		res.add("submerged volume", a.SubmergedVolume, "m³")
		res.add("buoyant force (equilibrium)", a.EquilibriumBuoyant, "N")
		res.note("object floats with %.1f%% of its volume submerged", a.Classification.Fraction*100)
	case buoyancy.Sinks:
		res.note("object sinks: it is denser than the fluid")
	case buoyancy.NeutrallyBuoyant:
		res.note("object is neutrally buoyant: any submerged fraction is in equilibrium")
	}
	return res, nil
}

func addedMassCalculator() *Calculator {
	return &Calculator{
		Name:        "added_mass",
		Description: "Extra load a floating object carries before it is fully submerged",
		Params: []Param{
			{Name: "mass", Unit: "kg", Default: 10, Help: "base object mass"},
			{Name: "volume", Unit: "m³", Default: 0.02, Help: "base object volume"},
			fluidParam(),
		},
		run: func(p map[string]float64) (*Result, error) {
			body := buoyancy.Body{Mass: p["mass"], Volume: p["volume"]}
			rho, err := body.Density()
			if err != nil {
				return nil, err
			}
			extra, err := buoyancy.MaxAddedMass(body, p["fluid_density"])
			if err != nil {
				return nil, err
			}

			res := &Result{}
			res.add("object density", rho, "kg/m³")
			res.add("max added mass", extra, "kg")
			res.add("total mass at submersion", body.Mass+extra, "kg")
			if extra <= 0 {
				res.note("object already sinks without any added load")
			}
			return res, nil
		},
	}
}

func compositeCalculator() *Calculator {
	return &Calculator{
		Name:        "composite",
		Description: "Float or sink for an object made of two materials",
		Params: []Param{
			{Name: "mass_a", Unit: "kg", Default: 5, Help: "first material mass"},
			{Name: "volume_a", Unit: "m³", Default: 0.01, Help: "first material volume"},
			{Name: "mass_b", Unit: "kg", Default: 2, Help: "second material mass"},
			{Name: "volume_b", Unit: "m³", Default: 0.001, Help: "second material volume"},
			fluidParam(),
			gravityParam(),
		},
		run: func(p map[string]float64) (*Result, error) {
			body, err := buoyancy.Composite(
				buoyancy.Body{Mass: p["mass_a"], Volume: p["volume_a"]},
				buoyancy.Body{Mass: p["mass_b"], Volume: p["volume_b"]},
			)
			if err != nil {
				return nil, err
			}
			res, err := analysisResult(body, p["fluid_density"], p["g"])
			if err != nil {
				return nil, err
			}
			res.Quantities = append([]phys.Quantity{
				{Label: "total mass", Value: body.Mass, Unit: "kg"},
				{Label: "total volume", Value: body.Volume, Unit: "m³"},
			}, res.Quantities...)
			return res, nil
		},
	}
}

func opticsCalculator() *Calculator {
	params := []Param{
		{Name: "y0", Unit: "m", Default: 1, Help: "input ray height"},
		{Name: "theta0", Unit: "rad", Default: 0, Help: "input ray angle"},
		{Name: "elements", Default: 1, Help: fmt.Sprintf("number of elements (1-%d)", MaxOpticsElements)},
	}
	kinds := []string{optics.KindFreeSpace.String(), optics.KindThinLens.String(), optics.KindFlatInterface.String()}
	parseKind := func(s string) (int, error) {
		k, err := optics.ParseElementKind(s)
		return int(k), err
	}
	for i := 1; i <= MaxOpticsElements; i++ {
		params = append(params,
			Param{Name: fmt.Sprintf("type_%d", i), Default: 0, Help: fmt.Sprintf("element %d type", i), Choices: kinds, parse: parseKind},
			Param{Name: fmt.Sprintf("value_%d", i), Unit: "m", Default: 0.1, Help: fmt.Sprintf("element %d distance or focal length", i)},
			Param{Name: fmt.Sprintf("n1_%d", i), Default: 1.0, Help: fmt.Sprintf("element %d incident index", i)},
			Param{Name: fmt.Sprintf("n2_%d", i), Default: 1.5, Help: fmt.Sprintf("element %d transmitted index", i)},
		)
	}

	return &Calculator{
		Name:        "optics",
		Description: "ABCD ray-transfer matrix of a sequence of optical elements",
		Params:      params,
		run: func(p map[string]float64) (*Result, error) {
			n, err := choice(p, "elements", MaxOpticsElements+1)
			if err != nil || n == 0 {
				return nil, phys.Errorf("optics", phys.ErrInvalidInput, "elements must be between 1 and %d, got %g", MaxOpticsElements, p["elements"])
			}

			elements := make([]optics.Element, 0, n)
			for i := 1; i <= n; i++ {
				kind, err := choice(p, fmt.Sprintf("type_%d", i), len(kinds))
				if err != nil {
					return nil, err
				}
				switch optics.ElementKind(kind) {
				case optics.KindFreeSpace:
					elements = append(elements, optics.FreeSpace{Distance: p[fmt.Sprintf("value_%d", i)]})
				case optics.KindThinLens:
					elements = append(elements, optics.ThinLens{FocalLength: p[fmt.Sprintf("value_%d", i)]})
				case optics.KindFlatInterface:
					elements = append(elements, optics.FlatInterface{NIn: p[fmt.Sprintf("n1_%d", i)], NOut: p[fmt.Sprintf("n2_%d", i)]})
				default:
					return nil, phys.Errorf("optics", phys.ErrInvalidInput, "element %d has unknown type %d", i, kind)
				}
			}

			m, err := optics.Compose(elements...)
			if err != nil {
				return nil, err
			}
			out := optics.Propagate(m, optics.Ray{Height: p["y0"], Angle: p["theta0"]})

			res := &Result{}
			res.add("A", m.A, "")
			res.add("B", m.B, "m")
			res.add("C", m.C, "1/m")
			res.add("D", m.D, "")
			res.add("determinant", m.Det(), "")
			res.add("output height", out.Height, "m")
			res.add("output angle", out.Angle, "rad")
			if efl, err := optics.EffectiveFocalLength(m); err == nil {
				res.add("effective focal length", efl, "m")
			} else {
				res.note("system is afocal (C = 0)")
			}
			return res, nil
		},
	}
}

func projectileCalculator() *Calculator {
	return &Calculator{
		Name:        "projectile",
		Description: "Launch angles that hit a target point",
		Params: []Param{
			{Name: "v0", Unit: "m/s", Default: 10, Help: "launch speed"},
			gravityParam(),
			{Name: "x", Unit: "m", Default: 8, Help: "target horizontal distance"},
			{Name: "y", Unit: "m", Default: 2, Help: "target height"},
		},
		run: func(p map[string]float64) (*Result, error) {
			t := projectile.Target{V0: p["v0"], G: p["g"], X: p["x"], Y: p["y"]}
			angles, err := projectile.SolveLaunchAngles(t)
			if err != nil {
				if errors.Is(err, phys.ErrOutOfRange) {
					return nil, fmt.Errorf("projectile cannot reach the target: %w", err)
				}
				return nil, err
			}

			res := &Result{}
			res.add("low angle", math.Min(angles[0], angles[1]), "°")
			res.add("high angle", math.Max(angles[0], angles[1]), "°")
			if r, err := projectile.MaxFlatRange(t.V0, t.G); err == nil {
				res.add("max flat range", r, "m")
			}
			if angles[0] == angles[1] {
				res.note("target is at the edge of reach: one launch angle")
			}
			return res, nil
		},
	}
}

func slopeCalculator() *Calculator {
	return &Calculator{
		Name:        "slope",
		Description: "Launch angle giving maximum range up a slope",
		Params: []Param{
			{Name: "slope", Unit: "°", Default: 0, Help: "hill inclination"},
		},
		run: func(p map[string]float64) (*Result, error) {
			res := &Result{}
			res.add("optimal angle", projectile.OptimalSlopeAngle(p["slope"]), "°")
			return res, nil
		},
	}
}

func colliderCalculator() *Calculator {
	return &Calculator{
		Name:        "collider",
		Description: "Centre-of-mass energy of a fixed-target or colliding-beam setup",
		Params: []Param{
			{Name: "mass", Unit: "GeV/c²", Default: 0.000511, Help: "particle rest mass"},
			{Name: "energy", Unit: "GeV", Default: 209, Help: "beam energy"},
			{
				Name: "setup", Default: 0, Help: "fixed target or colliding beams",
				Choices: []string{relativity.FixedTarget.String(), relativity.ColliderBeams.String()},
				parse: func(s string) (int, error) {
					v, err := relativity.ParseSetup(s)
					return int(v), err
				},
			},
		},
		run: func(p map[string]float64) (*Result, error) {
			setup, err := choice(p, "setup", 2)
			if err != nil {
				return nil, err
			}
			ecm, err := relativity.CenterOfMassEnergy(relativity.Setup(setup), p["mass"], p["energy"])
			if err != nil {
				return nil, err
			}
			res := &Result{}
			res.add("centre-of-mass energy", ecm, "GeV")
			res.note("setup: %s", relativity.Setup(setup))
			return res, nil
		},
	}
}

func dopplerCalculator() *Calculator {
	return &Calculator{
		Name:        "doppler",
		Description: "Source velocity from a relativistic Doppler shift",
		Params: []Param{
			{Name: "lambda_emitted", Unit: "nm", Default: 600, Help: "emitted wavelength"},
			{Name: "lambda_observed", Unit: "nm", Default: 670, Help: "observed wavelength"},
		},
		run: func(p map[string]float64) (*Result, error) {
			d, err := relativity.Doppler(p["lambda_emitted"], p["lambda_observed"])
			if err != nil {
				return nil, err
			}
			res := &Result{}
			res.add("wavelength ratio", p["lambda_observed"]/p["lambda_emitted"], "")
			res.add("beta", d.Beta, "")
			res.add("velocity", d.Velocity, "m/s")
			switch {
			case d.Beta > 0:
				res.note("redshift: source is receding")
			case d.Beta < 0:
				res.note("blueshift: source is approaching")
			}
			return res, nil
		},
	}
}

func thermoCalculator() *Calculator {
	processes := []string{thermo.Isothermal.String(), thermo.Adiabatic.String(), thermo.Isobaric.String(), thermo.Isochoric.String()}
	constraints := []string{thermo.FinalVolume.String(), thermo.FinalPressure.String(), thermo.FinalTemperature.String()}

	return &Calculator{
		Name:        "thermo",
		Description: "Ideal-gas process: final state and work done by the gas",
		Params: []Param{
			{Name: "p1", Unit: "Pa", Default: 101325, Help: "initial pressure"},
			{Name: "v1", Unit: "m³", Default: 1, Help: "initial volume"},
			{Name: "t1", Unit: "K", Default: 298, Help: "initial temperature"},
			{Name: "gamma", Default: 1.4, Help: "adiabatic index"},
			{
				Name: "process", Default: 0, Help: "process type", Choices: processes,
				parse: func(s string) (int, error) {
					v, err := thermo.ParseProcess(s)
					return int(v), err
				},
			},
			{
				Name: "target", Default: 0, Help: "final-state variable held at value", Choices: constraints,
				parse: func(s string) (int, error) {
					v, err := thermo.ParseConstraint(s)
					return int(v), err
				},
			},
			{Name: "value", Default: 0.5, Help: "target value (m³, Pa or K)"},
		},
		run: func(p map[string]float64) (*Result, error) {
			process, err := choice(p, "process", len(processes))
			if err != nil {
				return nil, err
			}
			kind, err := choice(p, "target", len(constraints))
			if err != nil {
				return nil, err
			}

			initial := thermo.GasState{Pressure: p["p1"], Volume: p["v1"], Temperature: p["t1"]}
			tr, err := thermo.Apply(initial, thermo.Process(process), thermo.Target{Kind: thermo.Constraint(kind), Value: p["value"]}, p["gamma"])
			if err != nil {
				return nil, err
			}

			res := &Result{}
			res.add("final pressure", tr.Final.Pressure, "Pa")
			res.add("final volume", tr.Final.Volume, "m³")
			res.add("final temperature", tr.Final.Temperature, "K")
			res.add("work done by gas", tr.Work, "J")
			res.note("%s process", tr.Process)
			return res, nil
		},
	}
}

func poleCalculator() *Calculator {
	return &Calculator{
		Name:        "pole",
		Description: "Pole radius for a tethered mower whose strips just touch",
		Params: []Param{
			{Name: "cut_width", Unit: "m", Default: 0.75, Help: "cutting width"},
			{Name: "sig_figs", Default: 2, Help: "significant figures for the rounded radius"},
		},
		run: func(p map[string]float64) (*Result, error) {
			digits, err := choice(p, "sig_figs", 16)
			if err != nil || digits == 0 {
				return nil, phys.Errorf("pole", phys.ErrInvalidInput, "sig_figs must be an integer in [1, 15], got %g", p["sig_figs"])
			}
			r, err := geometry.Pole(p["cut_width"], digits)
			if err != nil {
				return nil, err
			}
			res := &Result{}
			res.add("radius", r.Metres, "m")
			res.add("radius in cm", r.Centimetres, "cm")
			res.add("radius (rounded)", r.Rounded, "cm")
			res.note("rounded to %d significant figures", r.SigFigs)
			return res, nil
		},
	}
}
