package relativity

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/physkit/internal/phys"
)

func TestColliderBeamsDoublesEnergy(t *testing.T) {
	for _, e := range []float64{0, 1, 6.5e3, 209, 0.5} {
		got, err := CenterOfMassEnergy(ColliderBeams, 0.938, e)
		if err != nil {
			t.Fatal(err)
		}
		if got != 2*e {
			t.Errorf("E=%g: expected %g, got %g", e, 2*e, got)
		}
	}
}

func TestFixedTarget(t *testing.T) {
	m, e := 0.000511, 209.0
	got, err := CenterOfMassEnergy(FixedTarget, m, e)
	if err != nil {
		t.Fatal(err)
	}
	want := math.Sqrt(2*m*m + 2*e*m)
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("expected %g, got %g", want, got)
	}
	if math.Abs(got-0.4622) > 1e-4 {
		t.Errorf("expected ~0.4622 GeV, got %f", got)
	}

	// far less than the collider figure for the same beam
	col, _ := CenterOfMassEnergy(ColliderBeams, m, e)
	if got >= col {
		t.Error("fixed target should waste energy on momentum")
	}
}

func TestFixedTargetInvalid(t *testing.T) {
	if _, err := CenterOfMassEnergy(FixedTarget, 1, -10); !errors.Is(err, phys.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := CenterOfMassEnergy(Setup(7), 1, 1); !errors.Is(err, phys.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for unknown setup, got %v", err)
	}
}

func TestDopplerNoShift(t *testing.T) {
	d, err := Doppler(600, 600)
	if err != nil {
		t.Fatal(err)
	}
	if d.Beta != 0 || d.Velocity != 0 {
		t.Errorf("expected zero shift, got %+v", d)
	}
}

func TestDopplerRedshift(t *testing.T) {
	d, err := Doppler(600, 670)
	if err != nil {
		t.Fatal(err)
	}
	z2 := (670.0 / 600.0) * (670.0 / 600.0)
	wantBeta := (z2 - 1) / (z2 + 1)
	if math.Abs(d.Beta-wantBeta) > 1e-15 {
		t.Errorf("expected beta %g, got %g", wantBeta, d.Beta)
	}
	if math.Abs(d.Beta-0.1099) > 1e-4 {
		t.Errorf("expected beta ~0.1099, got %f", d.Beta)
	}
	if math.Abs(d.Velocity-d.Beta*299792458) > 1e-6 {
		t.Errorf("velocity %g inconsistent with beta", d.Velocity)
	}

	// round trip through the forward formula
	obs := 600 * math.Sqrt((1+d.Beta)/(1-d.Beta))
	if math.Abs(obs-670) > 1e-9 {
		t.Errorf("forward formula gives %f, want 670", obs)
	}
}

func TestDopplerBlueshift(t *testing.T) {
	d, err := Doppler(600, 500)
	if err != nil {
		t.Fatal(err)
	}
	if d.Beta >= 0 {
		t.Errorf("expected approach (negative beta), got %f", d.Beta)
	}
}

func TestDopplerDivisionByZero(t *testing.T) {
	if _, err := Doppler(0, 600); !errors.Is(err, phys.ErrDivisionByZero) {
		t.Errorf("expected ErrDivisionByZero, got %v", err)
	}
}

func TestParseSetup(t *testing.T) {
	if s, err := ParseSetup("Collider"); err != nil || s != ColliderBeams {
		t.Errorf("got %v, %v", s, err)
	}
	if s, err := ParseSetup("fixed_target"); err != nil || s != FixedTarget {
		t.Errorf("got %v, %v", s, err)
	}
	if _, err := ParseSetup("linac"); !errors.Is(err, phys.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestDopplerExtremeRatios(t *testing.T) {
	tests := []struct {
		name              string
		emitted, observed float64
		wantBeta          float64
	}{
		{"ratio squared overflows", 1e-200, 1, 1},
		{"ratio squared underflows", 1, 1e-200, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Doppler(tt.emitted, tt.observed)
			if err != nil {
				t.Fatal(err)
			}
			if math.Abs(d.Beta-tt.wantBeta) > 1e-12 {
				t.Errorf("beta = %g, want %g", d.Beta, tt.wantBeta)
			}
			if math.IsNaN(d.Velocity) || math.IsInf(d.Velocity, 0) {
				t.Errorf("velocity not finite: %g", d.Velocity)
			}
		})
	}
}

func TestDopplerNonFinite(t *testing.T) {
	for _, in := range [][2]float64{{1e-310, 1e10}, {600, math.NaN()}, {600, math.Inf(1)}} {
		if _, err := Doppler(in[0], in[1]); !errors.Is(err, phys.ErrOutOfRange) {
			t.Errorf("Doppler(%g, %g): expected ErrOutOfRange, got %v", in[0], in[1], err)
		}
	}
}
