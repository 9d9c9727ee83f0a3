package projectile

import (
	"math"

	"github.com/san-kum/physkit/internal/phys"
)

// Point is a sample of the flight path.
type Point struct {
	T float64
	X float64
	Y float64
}

// Trajectory samples n points of a flat-ground flight from launch to
// landing. Angles at or below the horizon have no flight and are rejected.
func Trajectory(v0, g, angleDeg float64, n int) ([]Point, error) {
	if g <= 0 {
		return nil, phys.Errorf("projectile.Trajectory", phys.ErrInvalidInput, "gravity must be positive, got %g", g)
	}
	if v0 <= 0 || angleDeg <= 0 || angleDeg >= 180 {
		return nil, phys.Errorf("projectile.Trajectory", phys.ErrInvalidInput, "need v0 > 0 and angle in (0, 180), got %g, %g", v0, angleDeg)
	}
	if n < 2 {
		n = 2
	}

	theta := radians(angleDeg)
	vx := v0 * math.Cos(theta)
	vy := v0 * math.Sin(theta)
	flight := 2 * vy / g

	pts := make([]Point, n)
	for i := range pts {
		t := flight * float64(i) / float64(n-1)
		pts[i] = Point{T: t, X: vx * t, Y: vy*t - 0.5*g*t*t}
	}
	pts[n-1].Y = 0
	return pts, nil
}

// Heights extracts the Y column, for plotting.
func Heights(pts []Point) []float64 {
	ys := make([]float64, len(pts))
	for i, p := range pts {
		ys[i] = p.Y
	}
	return ys
}
