// Package relativity covers collider kinematics and the relativistic
// Doppler shift. Energies and masses are in natural units (GeV, GeV/c²).
package relativity

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/physkit/internal/phys"
)

// Setup selects how the two particles meet.
type Setup int

const (
	FixedTarget Setup = iota
	ColliderBeams
)

func (s Setup) String() string {
	switch s {
	case FixedTarget:
		return "fixed_target"
	case ColliderBeams:
		return "collider"
	default:
		return fmt.Sprintf("Setup(%d)", int(s))
	}
}

// ParseSetup maps a setup name to its enum value.
func ParseSetup(s string) (Setup, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fixed_target", "fixed", "target":
		return FixedTarget, nil
	case "collider", "collider_beams", "beams":
		return ColliderBeams, nil
	}
	return 0, phys.Errorf("relativity.ParseSetup", phys.ErrInvalidInput, "unknown setup %q", s)
}

// CenterOfMassEnergy returns √s for two identical particles of rest mass
// restMass, one carrying beamEnergy. Head-on beams of equal energy give 2E.
func CenterOfMassEnergy(setup Setup, restMass, beamEnergy float64) (float64, error) {
	switch setup {
	case ColliderBeams:
		return 2 * beamEnergy, nil
	case FixedTarget:
		// s = m1² + m2² + 2·E1·m2
		s := restMass*restMass + restMass*restMass + 2*beamEnergy*restMass
		if s < 0 {
			return 0, phys.Errorf("relativity.CenterOfMassEnergy", phys.ErrInvalidInput, "negative invariant mass squared %g", s)
		}
		return math.Sqrt(s), nil
	}
	return 0, phys.Errorf("relativity.CenterOfMassEnergy", phys.ErrInvalidInput, "unknown setup %v", setup)
}

// DopplerShift is the recession speed implied by a wavelength shift.
type DopplerShift struct {
	Beta     float64
	Velocity float64
}

// Doppler inverts λ_obs = λ_emit·√((1+β)/(1−β)). A positive velocity is
// recession (redshift), negative is approach.
func Doppler(lambdaEmitted, lambdaObserved float64) (DopplerShift, error) {
	if lambdaEmitted == 0 {
		return DopplerShift{}, phys.Errorf("relativity.Doppler", phys.ErrDivisionByZero, "emitted wavelength is zero")
	}
	z := lambdaObserved / lambdaEmitted
	z2 := z * z
	beta := (z2 - 1) / (z2 + 1)
	if math.IsInf(z2, 0) {
		// z² overflows long before z does
		inv := 1 / z
		beta = (z - inv) / (z + inv)
	}
	if math.IsNaN(beta) || math.IsInf(beta, 0) {
		return DopplerShift{}, phys.Errorf("relativity.Doppler", phys.ErrOutOfRange, "wavelength ratio %g/%g is not representable", lambdaObserved, lambdaEmitted)
	}
	return DopplerShift{Beta: beta, Velocity: beta * phys.SpeedOfLight}, nil
}
