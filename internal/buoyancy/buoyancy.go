// Package buoyancy answers float-or-sink questions for a body in a fluid.
package buoyancy

import (
	"github.com/san-kum/physkit/internal/phys"
)

// Verdict is the outcome of comparing an object's density with the fluid's.
type Verdict int

const (
	Invalid Verdict = iota
	Floats
	NeutrallyBuoyant
	Sinks
)

func (v Verdict) String() string {
	switch v {
	case Floats:
		return "floats"
	case NeutrallyBuoyant:
		return "neutrally buoyant"
	case Sinks:
		return "sinks"
	default:
		return "invalid"
	}
}

// Classification carries the verdict and, for floating bodies, the
// fraction of the volume below the surface at equilibrium.
type Classification struct {
	Verdict  Verdict
	Fraction float64
}

// Classify compares object and fluid densities.
func Classify(rhoObj, rhoFluid float64) (Classification, error) {
	if rhoObj <= 0 || rhoFluid <= 0 {
		return Classification{Verdict: Invalid},
			phys.Errorf("buoyancy.Classify", phys.ErrInvalidInput, "densities must be positive, got %g and %g", rhoObj, rhoFluid)
	}
	// equality is checked first so a near-tie never reports Floats
	if phys.IsClose(rhoObj, rhoFluid, phys.RelTolerance) {
		return Classification{Verdict: NeutrallyBuoyant}, nil
	}
	if rhoObj < rhoFluid {
		return Classification{Verdict: Floats, Fraction: rhoObj / rhoFluid}, nil
	}
	return Classification{Verdict: Sinks}, nil
}

// SubmergedFraction returns V_sub/V_total = rhoObj/rhoFluid.
func SubmergedFraction(rhoObj, rhoFluid float64) (float64, error) {
	if rhoFluid <= 0 {
		return 0, phys.Errorf("buoyancy.SubmergedFraction", phys.ErrDivisionByZero, "fluid density %g", rhoFluid)
	}
	return rhoObj / rhoFluid, nil
}

// BuoyantForce is Archimedes' force ρ·g·V on the submerged volume.
func BuoyantForce(rhoFluid, g, volumeSubmerged float64) float64 {
	return rhoFluid * g * volumeSubmerged
}
