package phys

import (
	"fmt"
	"math"
)

// Quantity is one labelled number in a calculator result.
type Quantity struct {
	Label string  `json:"label" yaml:"label"`
	Value float64 `json:"value" yaml:"value"`
	Unit  string  `json:"unit,omitempty" yaml:"unit,omitempty"`
}

func (q Quantity) String() string {
	if q.Unit == "" {
		return fmt.Sprintf("%s = %.6g", q.Label, q.Value)
	}
	return fmt.Sprintf("%s = %.6g %s", q.Label, q.Value, q.Unit)
}

// IsFinite reports whether v is neither NaN nor ±Inf.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// IsClose reports whether a and b agree within relative tolerance rel,
// measured against the larger magnitude.
func IsClose(a, b, rel float64) bool {
	if a == b {
		return true
	}
	return math.Abs(a-b) <= rel*math.Max(math.Abs(a), math.Abs(b))
}
