// Package phys holds the pieces shared by every calculator package.
//
// The calculators themselves live in sibling packages, one per physical
// domain, and never import each other:
//
//   - buoyancy: float/sink verdicts and submerged fractions
//   - optics: ABCD ray-transfer matrices
//   - projectile: launch angles and ranges
//   - relativity: collider energies and Doppler shifts
//   - thermo: ideal-gas process transitions
//   - geometry: involute-spiral pole radius
//
// This package provides the common error taxonomy ([ErrInvalidInput],
// [ErrDivisionByZero], [ErrOutOfRange], [ErrNotImplemented]), physical
// constants, significant-figure rounding and the [Quantity] value used to
// report results.
//
// # Errors
//
// Calculators return a [*CalcError] naming the failing operation and
// wrapping one of the sentinels, so callers branch with errors.Is:
//
//	_, err := optics.ThinLens{FocalLength: 0}.Matrix()
//	if errors.Is(err, phys.ErrDivisionByZero) {
//	    // ask for a non-zero focal length
//	}
//
// # Thread Safety
//
// Nothing in this package or the calculator packages holds mutable state;
// every function is safe to call from multiple goroutines.
package phys
