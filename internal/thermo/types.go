package thermo

import (
	"fmt"
	"strings"

	"github.com/san-kum/physkit/internal/phys"
)

// GasState is an ideal-gas state: pressure (Pa), volume (m³),
// temperature (K).
type GasState struct {
	Pressure    float64 `json:"pressure" yaml:"pressure"`
	Volume      float64 `json:"volume" yaml:"volume"`
	Temperature float64 `json:"temperature" yaml:"temperature"`
}

func (s GasState) String() string {
	return fmt.Sprintf("P=%.2f Pa, V=%.4f m³, T=%.2f K", s.Pressure, s.Volume, s.Temperature)
}

// Process is the thermodynamic path between two states.
type Process int

const (
	Isothermal Process = iota
	Adiabatic
	Isobaric
	Isochoric
)

func (p Process) String() string {
	switch p {
	case Isothermal:
		return "isothermal"
	case Adiabatic:
		return "adiabatic"
	case Isobaric:
		return "isobaric"
	case Isochoric:
		return "isochoric"
	default:
		return fmt.Sprintf("Process(%d)", int(p))
	}
}

// ParseProcess maps a process name to its enum value.
func ParseProcess(s string) (Process, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "isothermal", "t":
		return Isothermal, nil
	case "adiabatic", "q":
		return Adiabatic, nil
	case "isobaric", "p":
		return Isobaric, nil
	case "isochoric", "v":
		return Isochoric, nil
	}
	return 0, phys.Errorf("thermo.ParseProcess", phys.ErrInvalidInput, "unknown process %q", s)
}

// Constraint names which final-state variable the caller fixes.
type Constraint int

const (
	FinalVolume Constraint = iota
	FinalPressure
	FinalTemperature
)

func (c Constraint) String() string {
	switch c {
	case FinalVolume:
		return "volume"
	case FinalPressure:
		return "pressure"
	case FinalTemperature:
		return "temperature"
	default:
		return fmt.Sprintf("Constraint(%d)", int(c))
	}
}

// ParseConstraint maps a constraint name to its enum value.
func ParseConstraint(s string) (Constraint, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "volume", "final_volume", "v2":
		return FinalVolume, nil
	case "pressure", "final_pressure", "p2":
		return FinalPressure, nil
	case "temperature", "final_temperature", "temp", "t2":
		return FinalTemperature, nil
	}
	return 0, phys.Errorf("thermo.ParseConstraint", phys.ErrInvalidInput, "unknown constraint %q", s)
}

// Target fixes one variable of the final state.
type Target struct {
	Kind  Constraint
	Value float64
}

// Transition is the result of applying a process: both end states and the
// work done by the gas (J).
type Transition struct {
	Process Process
	Initial GasState
	Final   GasState
	Work    float64
}
