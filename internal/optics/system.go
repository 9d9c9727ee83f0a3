// Package optics composes paraxial ABCD ray-transfer matrices.
package optics

import (
	"fmt"
	"math"

	"github.com/san-kum/physkit/internal/phys"
)

// Compose multiplies the element matrices in traversal order, object to
// image. Each new element premultiplies the running total.
func Compose(elements ...Element) (Matrix, error) {
	total := Identity()
	for i, el := range elements {
		m, err := el.Matrix()
		if err != nil {
			return Matrix{}, fmt.Errorf("element %d (%s): %w", i+1, el.Kind(), err)
		}
		total = m.Mul(total)
		if !total.Finite() {
			return Matrix{}, phys.Errorf("optics.Compose", phys.ErrOutOfRange, "system matrix overflows at element %d", i+1)
		}
	}
	return total, nil
}

// Propagate applies m to the ray's column vector.
func Propagate(m Matrix, in Ray) Ray {
	return Ray{
		Height: m.A*in.Height + m.B*in.Angle,
		Angle:  m.C*in.Height + m.D*in.Angle,
	}
}

// EffectiveFocalLength is −1/C of the system matrix.
func EffectiveFocalLength(m Matrix) (float64, error) {
	if m.C == 0 {
		return 0, phys.Errorf("optics.EffectiveFocalLength", phys.ErrDivisionByZero, "system has no optical power (C = 0)")
	}
	f := -1 / m.C
	if math.IsInf(f, 0) {
		return 0, phys.Errorf("optics.EffectiveFocalLength", phys.ErrOutOfRange, "power C = %g is too small", m.C)
	}
	return f, nil
}
