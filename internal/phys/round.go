package phys

import "math"

// RoundSig rounds x to the given number of significant digits.
// Ties are broken toward the even digit, so RoundSig(0.125, 2) == 0.12.
// Zero, NaN and ±Inf are returned unchanged; digits < 1 is treated as 1.
func RoundSig(x float64, digits int) float64 {
	if x == 0 || !IsFinite(x) {
		return x
	}
	if digits < 1 {
		digits = 1
	}
	exp := int(math.Floor(math.Log10(math.Abs(x))))
	shift := digits - 1 - exp
	if shift >= 0 {
		scale := math.Pow(10, float64(shift))
		return math.RoundToEven(x*scale) / scale
	}
	scale := math.Pow(10, float64(-shift))
	return math.RoundToEven(x/scale) * scale
}
