package optics

import (
	"fmt"
	"math"
)

// Matrix is a 2×2 ray-transfer matrix
//
//	[A B]
//	[C D]
type Matrix struct {
	A, B, C, D float64
}

// Identity returns the 2×2 identity.
func Identity() Matrix {
	return Matrix{A: 1, D: 1}
}

// Mul returns m·n.
func (m Matrix) Mul(n Matrix) Matrix {
	return Matrix{
		A: m.A*n.A + m.B*n.C,
		B: m.A*n.B + m.B*n.D,
		C: m.C*n.A + m.D*n.C,
		D: m.C*n.B + m.D*n.D,
	}
}

// Det returns AD − BC. For a system between media of indices n_in and
// n_out it equals n_in/n_out.
func (m Matrix) Det() float64 {
	return m.A*m.D - m.B*m.C
}

// Finite reports whether every entry is a finite number.
func (m Matrix) Finite() bool {
	for _, v := range [...]float64{m.A, m.B, m.C, m.D} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (m Matrix) String() string {
	return fmt.Sprintf("[[%.6g %.6g] [%.6g %.6g]]", m.A, m.B, m.C, m.D)
}

// Ray is a paraxial ray: height above the axis and angle in radians.
type Ray struct {
	Height float64
	Angle  float64
}
