// Package projectile solves drag-free launch problems.
package projectile

import (
	"math"

	"github.com/san-kum/physkit/internal/phys"
)

// Target is a point (X, Y) to hit with launch speed V0 under gravity G.
type Target struct {
	V0 float64
	G  float64
	X  float64
	Y  float64
}

// Coefficients of a·tan²θ + b·tanθ + c = 0, from
// y = x·tanθ − g·x²·(1 + tan²θ)/(2·v0²).
func (t Target) Coefficients() (a, b, c float64) {
	a = -(t.G * t.X * t.X) / (2 * t.V0 * t.V0)
	b = t.X
	c = a - t.Y
	return a, b, c
}

// SolveLaunchAngles returns both launch angles in degrees that put the
// projectile through the target. A tangent solution is reported twice.
func SolveLaunchAngles(t Target) ([]float64, error) {
	if t.V0 == 0 {
		return nil, phys.Errorf("projectile.SolveLaunchAngles", phys.ErrDivisionByZero, "launch speed is zero")
	}
	a, b, c := t.Coefficients()
	if a == 0 {
		return nil, phys.Errorf("projectile.SolveLaunchAngles", phys.ErrDivisionByZero, "quadratic coefficient is zero (g=%g, x=%g)", t.G, t.X)
	}

	disc := b*b - 4*a*c
	if disc < 0 {
		return nil, phys.Errorf("projectile.SolveLaunchAngles", phys.ErrOutOfRange, "target (%g, %g) unreachable at %g m/s", t.X, t.Y, t.V0)
	}

	sq := math.Sqrt(disc)
	tan1 := (-b + sq) / (2 * a)
	tan2 := (-b - sq) / (2 * a)
	return []float64{degrees(math.Atan(tan1)), degrees(math.Atan(tan2))}, nil
}

// MaxFlatRange is v0²/g, reached at 45°.
func MaxFlatRange(v0, g float64) (float64, error) {
	if g == 0 {
		return 0, phys.Errorf("projectile.MaxFlatRange", phys.ErrDivisionByZero, "gravity is zero")
	}
	return v0 * v0 / g, nil
}

// OptimalSlopeAngle is the launch angle (degrees above horizontal) that
// maximises range along a slope inclined at slopeDeg.
func OptimalSlopeAngle(slopeDeg float64) float64 {
	return (90 + slopeDeg) / 2
}

func degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
