// Package thermo computes ideal-gas process transitions and boundary work.
package thermo

import (
	"math"

	"github.com/san-kum/physkit/internal/phys"
)

// Apply moves initial along process p until target is met. gamma is the
// adiabatic index and only matters for Adiabatic. The initial state is
// never modified; a new final state is built.
func Apply(initial GasState, p Process, target Target, gamma float64) (Transition, error) {
	if initial.Pressure <= 0 || initial.Volume <= 0 || initial.Temperature <= 0 {
		return Transition{}, phys.Errorf("thermo.Apply", phys.ErrInvalidInput, "initial state must be positive: %v", initial)
	}
	if target.Value == 0 {
		return Transition{}, phys.Errorf("thermo.Apply", phys.ErrDivisionByZero, "target %s is zero", target.Kind)
	}
	if target.Value < 0 {
		return Transition{}, phys.Errorf("thermo.Apply", phys.ErrInvalidInput, "target %s must be positive, got %g", target.Kind, target.Value)
	}

	var (
		tr  Transition
		err error
	)
	switch p {
	case Isothermal:
		tr, err = isothermal(initial, target)
	case Adiabatic:
		tr, err = adiabatic(initial, target, gamma)
	case Isobaric, Isochoric:
		return Transition{}, phys.Errorf("thermo.Apply", phys.ErrNotImplemented, "%s process", p)
	default:
		return Transition{}, phys.Errorf("thermo.Apply", phys.ErrInvalidInput, "unknown process %v", p)
	}
	if err != nil {
		return Transition{}, err
	}
	tr.Process = p
	tr.Initial = initial
	return tr, nil
}

func isothermal(s GasState, target Target) (Transition, error) {
	pv := s.Pressure * s.Volume
	final := GasState{Temperature: s.Temperature}

	switch target.Kind {
	case FinalVolume:
		final.Volume = target.Value
		final.Pressure = pv / final.Volume
	case FinalPressure:
		final.Pressure = target.Value
		final.Volume = pv / final.Pressure
	case FinalTemperature:
		return Transition{}, phys.Errorf("thermo.Apply", phys.ErrInvalidInput, "isothermal process cannot reach a different temperature")
	default:
		return Transition{}, phys.Errorf("thermo.Apply", phys.ErrInvalidInput, "unknown constraint %v", target.Kind)
	}

	return Transition{
		Final: final,
		Work:  pv * math.Log(final.Volume/s.Volume),
	}, nil
}

func adiabatic(s GasState, target Target, gamma float64) (Transition, error) {
	if gamma == 1 {
		return Transition{}, phys.Errorf("thermo.Apply", phys.ErrDivisionByZero, "adiabatic index gamma = 1")
	}
	if gamma <= 0 {
		return Transition{}, phys.Errorf("thermo.Apply", phys.ErrInvalidInput, "adiabatic index must be positive, got %g", gamma)
	}

	var final GasState
	switch target.Kind {
	case FinalVolume:
		final.Volume = target.Value
		ratio := s.Volume / final.Volume
		final.Pressure = s.Pressure * math.Pow(ratio, gamma)
		final.Temperature = s.Temperature * math.Pow(ratio, gamma-1)
	case FinalPressure:
		final.Pressure = target.Value
		final.Volume = s.Volume * math.Pow(s.Pressure/final.Pressure, 1/gamma)
		final.Temperature = s.Temperature * math.Pow(final.Pressure/s.Pressure, (gamma-1)/gamma)
	case FinalTemperature:
		// T·V^(γ−1) is constant along the adiabat
		final.Temperature = target.Value
		final.Volume = s.Volume * math.Pow(s.Temperature/final.Temperature, 1/(gamma-1))
		final.Pressure = s.Pressure * math.Pow(s.Volume/final.Volume, gamma)
	default:
		return Transition{}, phys.Errorf("thermo.Apply", phys.ErrInvalidInput, "unknown constraint %v", target.Kind)
	}

	work := (s.Pressure*s.Volume - final.Pressure*final.Volume) / (gamma - 1)
	if !phys.IsFinite(work) || !phys.IsFinite(final.Pressure) || !phys.IsFinite(final.Volume) {
		return Transition{}, phys.Errorf("thermo.Apply", phys.ErrOutOfRange, "adiabatic state overflowed")
	}
	return Transition{Final: final, Work: work}, nil
}
