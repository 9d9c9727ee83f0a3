package phys

const (
	// SpeedOfLight in m/s, exact by definition of the metre.
	SpeedOfLight = 299792458.0

	// StandardGravity in m/s².
	StandardGravity = 9.81

	// RelTolerance is the relative tolerance used for "equal" comparisons.
	RelTolerance = 1e-6
)
