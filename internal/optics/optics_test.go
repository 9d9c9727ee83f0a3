package optics

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/physkit/internal/phys"
)

const tol = 1e-12

func matrixClose(a, b Matrix) bool {
	return math.Abs(a.A-b.A) < tol && math.Abs(a.B-b.B) < tol &&
		math.Abs(a.C-b.C) < tol && math.Abs(a.D-b.D) < tol
}

func TestElementMatrices(t *testing.T) {
	tests := []struct {
		name string
		el   Element
		want Matrix
	}{
		{"free space", FreeSpace{Distance: 0.1}, Matrix{1, 0.1, 0, 1}},
		{"thin lens", ThinLens{FocalLength: 0.05}, Matrix{1, 0, -20, 1}},
		{"diverging lens", ThinLens{FocalLength: -0.5}, Matrix{1, 0, 2, 1}},
		{"interface", FlatInterface{NIn: 1.0, NOut: 1.5}, Matrix{1, 0, 0, 1 / 1.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.el.Matrix()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !matrixClose(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestElementDivisionByZero(t *testing.T) {
	if _, err := (ThinLens{}).Matrix(); !errors.Is(err, phys.ErrDivisionByZero) {
		t.Errorf("thin lens f=0: expected ErrDivisionByZero, got %v", err)
	}
	if _, err := (FlatInterface{NIn: 1}).Matrix(); !errors.Is(err, phys.ErrDivisionByZero) {
		t.Errorf("interface n2=0: expected ErrDivisionByZero, got %v", err)
	}
	if _, err := Compose(FreeSpace{1}, ThinLens{0}); !errors.Is(err, phys.ErrDivisionByZero) {
		t.Errorf("compose: expected ErrDivisionByZero, got %v", err)
	}
}

func TestComposeFreeSpaceAdds(t *testing.T) {
	pairs := [][2]float64{{0.1, 0.2}, {1, 3}, {0, 5}, {-0.5, 2}}
	for _, p := range pairs {
		got, err := Compose(FreeSpace{p[0]}, FreeSpace{p[1]})
		if err != nil {
			t.Fatal(err)
		}
		want, _ := FreeSpace{p[0] + p[1]}.Matrix()
		if !matrixClose(got, want) {
			t.Errorf("d1=%g d2=%g: got %v, want %v", p[0], p[1], got, want)
		}
	}
}

func TestComposeEmptyIsIdentity(t *testing.T) {
	m, err := Compose()
	if err != nil {
		t.Fatal(err)
	}
	if m != Identity() {
		t.Errorf("expected identity, got %v", m)
	}
}

func TestComposeOrderMatters(t *testing.T) {
	lens := ThinLens{FocalLength: 0.1}
	space := FreeSpace{Distance: 0.1}

	a, _ := Compose(space, lens)
	b, _ := Compose(lens, space)
	if matrixClose(a, b) {
		t.Fatal("expected non-commuting composition")
	}

	// lens then space: M = S·L
	want := Matrix{A: 0, B: 0.1, C: -10, D: 1}
	if !matrixClose(b, want) {
		t.Errorf("lens→space: got %v, want %v", b, want)
	}
}

func TestThinLensFocusing(t *testing.T) {
	for _, f := range []float64{0.05, 0.2, -0.3} {
		m, _ := Compose(ThinLens{FocalLength: f})
		for _, y0 := range []float64{1, 0.01, -2} {
			out := Propagate(m, Ray{Height: y0, Angle: 0})
			if math.Abs(out.Angle-(-y0/f)) > tol {
				t.Errorf("f=%g y0=%g: angle %g, want %g", f, y0, out.Angle, -y0/f)
			}
			if out.Height != y0 {
				t.Errorf("thin lens should not change height")
			}
		}
	}
}

func TestParallelRayCrossesAxisAtFocus(t *testing.T) {
	f := 0.05
	m, _ := Compose(ThinLens{FocalLength: f}, FreeSpace{Distance: f})
	out := Propagate(m, Ray{Height: 1, Angle: 0})
	if math.Abs(out.Height) > tol {
		t.Errorf("expected height 0 at focal plane, got %g", out.Height)
	}
}

func TestEffectiveFocalLength(t *testing.T) {
	// two thin lenses in contact: 1/f = 1/f1 + 1/f2
	m, _ := Compose(ThinLens{0.1}, ThinLens{0.2})
	f, err := EffectiveFocalLength(m)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(f-1/(1/0.1+1/0.2)) > tol {
		t.Errorf("expected %g, got %g", 1/(1/0.1+1/0.2), f)
	}

	if _, err := EffectiveFocalLength(Identity()); !errors.Is(err, phys.ErrDivisionByZero) {
		t.Errorf("expected ErrDivisionByZero, got %v", err)
	}
}

func TestDeterminantIsIndexRatio(t *testing.T) {
	m, _ := Compose(FreeSpace{0.1}, FlatInterface{1.0, 1.5}, FreeSpace{0.2}, ThinLens{0.3})
	if math.Abs(m.Det()-1/1.5) > tol {
		t.Errorf("expected det %g, got %g", 1/1.5, m.Det())
	}
}

func TestParseElementKind(t *testing.T) {
	tests := map[string]ElementKind{
		"free_space": KindFreeSpace,
		"Lens":       KindThinLens,
		" interface": KindFlatInterface,
	}
	for in, want := range tests {
		got, err := ParseElementKind(in)
		if err != nil || got != want {
			t.Errorf("ParseElementKind(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseElementKind("mirror"); !errors.Is(err, phys.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestNonFiniteMatrices(t *testing.T) {
	tiny := 5e-324
	if _, err := (ThinLens{FocalLength: tiny}).Matrix(); !errors.Is(err, phys.ErrOutOfRange) {
		t.Errorf("subnormal focal length: expected ErrOutOfRange, got %v", err)
	}
	if _, err := (FlatInterface{NIn: 1, NOut: tiny}).Matrix(); !errors.Is(err, phys.ErrOutOfRange) {
		t.Errorf("subnormal index: expected ErrOutOfRange, got %v", err)
	}
	if _, err := Compose(FreeSpace{Distance: 1e200}, ThinLens{FocalLength: 1e-200}); !errors.Is(err, phys.ErrOutOfRange) {
		t.Errorf("overflowing system: expected ErrOutOfRange, got %v", err)
	}
	if _, err := EffectiveFocalLength(Matrix{A: 1, C: tiny, D: 1}); !errors.Is(err, phys.ErrOutOfRange) {
		t.Errorf("subnormal power: expected ErrOutOfRange, got %v", err)
	}
}
