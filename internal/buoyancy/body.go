package buoyancy

import (
	"github.com/san-kum/physkit/internal/phys"
)

// Body is a solid object described by its mass (kg) and volume (m³).
type Body struct {
	Mass   float64
	Volume float64
}

func (b Body) validate(op string) error {
	if b.Mass <= 0 || b.Volume <= 0 {
		return phys.Errorf(op, phys.ErrInvalidInput, "mass and volume must be positive, got m=%g V=%g", b.Mass, b.Volume)
	}
	return nil
}

// Density returns mass/volume.
func (b Body) Density() (float64, error) {
	if err := b.validate("buoyancy.Density"); err != nil {
		return 0, err
	}
	return b.Mass / b.Volume, nil
}

// Analysis is the full single-object report.
type Analysis struct {
	Density        float64
	Weight         float64
	FullBuoyancy   float64
	Classification Classification
	// Set only when the body floats.
	SubmergedVolume    float64
	EquilibriumBuoyant float64
}

// Analyze evaluates a body in a fluid of density rhoFluid under gravity g.
func Analyze(b Body, rhoFluid, g float64) (Analysis, error) {
	rho, err := b.Density()
	if err != nil {
		return Analysis{}, err
	}
	class, err := Classify(rho, rhoFluid)
	if err != nil {
		return Analysis{}, err
	}

	a := Analysis{
		Density:        rho,
		Weight:         b.Mass * g,
		FullBuoyancy:   BuoyantForce(rhoFluid, g, b.Volume),
		Classification: class,
	}
	if class.Verdict == Floats {
		a.SubmergedVolume = class.Fraction * b.Volume
		a.EquilibriumBuoyant = BuoyantForce(rhoFluid, g, a.SubmergedVolume)
	}
	return a, nil
}

// MaxAddedMass is the extra load a body carries before it is fully
// submerged: ρ_fluid·V − m. A non-positive result means it already sinks.
func MaxAddedMass(b Body, rhoFluid float64) (float64, error) {
	if err := b.validate("buoyancy.MaxAddedMass"); err != nil {
		return 0, err
	}
	if rhoFluid <= 0 {
		return 0, phys.Errorf("buoyancy.MaxAddedMass", phys.ErrInvalidInput, "fluid density %g", rhoFluid)
	}
	return rhoFluid*b.Volume - b.Mass, nil
}

// Composite joins two materials into one body.
func Composite(a, b Body) (Body, error) {
	if err := a.validate("buoyancy.Composite"); err != nil {
		return Body{}, err
	}
	if err := b.validate("buoyancy.Composite"); err != nil {
		return Body{}, err
	}
	return Body{Mass: a.Mass + b.Mass, Volume: a.Volume + b.Volume}, nil
}
