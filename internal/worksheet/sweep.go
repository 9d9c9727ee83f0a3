package worksheet

import (
	"context"
	"fmt"

	"github.com/san-kum/physkit/internal/calc"
	"github.com/san-kum/physkit/internal/phys"
)

// MaxSweepSteps bounds the number of points in one sweep.
const MaxSweepSteps = 10000

// Sweep varies one parameter of a calculator across [Min, Max] in Steps
// evenly spaced points, holding Base fixed. Output names the quantity to
// record; empty means the first quantity of each result.
type Sweep struct {
	Calculator string
	Param      string
	Min        float64
	Max        float64
	Steps      int
	Base       map[string]float64
	Output     string
}

// SweepPoint is one sample. Err is set when the calculator rejected the
// value; the sweep carries on past it.
type SweepPoint struct {
	Value  float64
	Output float64
	Unit   string
	Err    error
}

func (s *Sweep) validate(registry *calc.Registry) error {
	c, err := registry.Get(s.Calculator)
	if err != nil {
		return err
	}
	if _, ok := c.Param(s.Param); !ok {
		return phys.Errorf("worksheet.Sweep", phys.ErrInvalidInput, "%s has no parameter %q", s.Calculator, s.Param)
	}
	if s.Steps < 1 || s.Steps > MaxSweepSteps {
		return phys.Errorf("worksheet.Sweep", phys.ErrInvalidInput, "steps must be between 1 and %d, got %d", MaxSweepSteps, s.Steps)
	}
	if s.Steps > 1 && s.Max <= s.Min {
		return phys.Errorf("worksheet.Sweep", phys.ErrInvalidInput, "max %g must exceed min %g", s.Max, s.Min)
	}
	return nil
}

// Values returns the sampled parameter values.
func (s *Sweep) Values() []float64 {
	if s.Steps == 1 {
		return []float64{s.Min}
	}
	step := (s.Max - s.Min) / float64(s.Steps-1)
	out := make([]float64, s.Steps)
	for i := range out {
		out[i] = s.Min + float64(i)*step
	}
	out[s.Steps-1] = s.Max
	return out
}

// RunSweep executes the sweep. Points are evaluated concurrently in
// chunks and returned in parameter order.
func RunSweep(ctx context.Context, sweep *Sweep, registry *calc.Registry) ([]SweepPoint, error) {
	if err := sweep.validate(registry); err != nil {
		return nil, err
	}

	values := sweep.Values()
	points := make([]SweepPoint, len(values))
	missing := make([]bool, len(values))

	parallelFor(len(values), sweepChunk, func(start, end int) {
		for i := start; i < end; i++ {
			if ctx.Err() != nil {
				return
			}
			points[i], missing[i] = sweep.evaluate(registry, values[i])
		}
	})

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for i, m := range missing {
		if m {
			return points[:i], phys.Errorf("worksheet.Sweep", phys.ErrInvalidInput, "%s produced no quantity %q", sweep.Calculator, sweep.Output)
		}
	}
	return points, nil
}

// evaluate runs one point. The bool reports a result lacking the
// requested output.
func (s *Sweep) evaluate(registry *calc.Registry, v float64) (SweepPoint, bool) {
	params := make(map[string]float64, len(s.Base)+1)
	for k, b := range s.Base {
		params[k] = b
	}
	params[s.Param] = v

	pt := SweepPoint{Value: v}
	res, err := registry.Run(s.Calculator, params)
	if err != nil {
		pt.Err = err
		return pt, false
	}

	q, ok := pickOutput(res, s.Output)
	if !ok {
		return pt, true
	}
	pt.Output = q.Value
	pt.Unit = q.Unit
	return pt, false
}

func pickOutput(res *calc.Result, label string) (phys.Quantity, bool) {
	if label == "" {
		if len(res.Quantities) == 0 {
			return phys.Quantity{}, false
		}
		return res.Quantities[0], true
	}
	return res.Quantity(label)
}

// Outputs extracts the successful outputs in order, for plotting.
func Outputs(points []SweepPoint) []float64 {
	out := make([]float64, 0, len(points))
	for _, p := range points {
		if p.Err == nil {
			out = append(out, p.Output)
		}
	}
	return out
}

func (p SweepPoint) String() string {
	if p.Err != nil {
		return fmt.Sprintf("%g: %v", p.Value, p.Err)
	}
	return fmt.Sprintf("%g: %g %s", p.Value, p.Output, p.Unit)
}
