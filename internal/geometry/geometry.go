// Package geometry holds the involute-spiral pole problem: a mower tethered
// to a central pole winds inward, and consecutive cut strips just touch when
// the pole circumference equals the cutting width.
package geometry

import (
	"math"

	"github.com/san-kum/physkit/internal/phys"
)

// PoleRadius returns R = w/(2π) in the units of cutWidth.
func PoleRadius(cutWidth float64) (float64, error) {
	if cutWidth <= 0 {
		return 0, phys.Errorf("geometry.PoleRadius", phys.ErrInvalidInput, "cut width must be positive, got %g", cutWidth)
	}
	return cutWidth / (2 * math.Pi), nil
}

// PoleReport is the radius in the forms the answer is usually asked for.
type PoleReport struct {
	Metres      float64
	Centimetres float64
	Rounded     float64 // centimetres, SigFigs significant digits
	SigFigs     int
}

// Pole computes the radius for cutWidth metres and rounds the centimetre
// figure to sigFigs significant digits.
func Pole(cutWidth float64, sigFigs int) (PoleReport, error) {
	r, err := PoleRadius(cutWidth)
	if err != nil {
		return PoleReport{}, err
	}
	cm := r * 100
	return PoleReport{
		Metres:      r,
		Centimetres: cm,
		Rounded:     phys.RoundSig(cm, sigFigs),
		SigFigs:     sigFigs,
	}, nil
}
