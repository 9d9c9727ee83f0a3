package worksheet

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/san-kum/physkit/internal/calc"
	"github.com/san-kum/physkit/internal/phys"
)

func TestSweepValues(t *testing.T) {
	s := &Sweep{Min: 0, Max: 1, Steps: 5}
	assert.Equal(t, []float64{0, 0.25, 0.5, 0.75, 1}, s.Values())

	single := &Sweep{Min: 3, Max: 3, Steps: 1}
	assert.Equal(t, []float64{3}, single.Values())
}

func TestRunSweep(t *testing.T) {
	sweep := &Sweep{
		Calculator: "slope",
		Param:      "slope",
		Min:        0,
		Max:        60,
		Steps:      4,
		Output:     "optimal angle",
	}

	points, err := RunSweep(context.Background(), sweep, calc.NewRegistry())
	require.NoError(t, err)
	require.Len(t, points, 4)

	want := []float64{45, 55, 65, 75}
	assert.Equal(t, want, Outputs(points))
	assert.Equal(t, "°", points[0].Unit)
}

func TestRunSweepKeepsGoingPastErrors(t *testing.T) {
	sweep := &Sweep{
		Calculator: "pole",
		Param:      "cut_width",
		Min:        -1,
		Max:        1,
		Steps:      3,
	}

	points, err := RunSweep(context.Background(), sweep, calc.NewRegistry())
	require.NoError(t, err)
	require.Len(t, points, 3)
	assert.ErrorIs(t, points[0].Err, phys.ErrInvalidInput)
	assert.ErrorIs(t, points[1].Err, phys.ErrInvalidInput)
	assert.NoError(t, points[2].Err)
	assert.Len(t, Outputs(points), 1)
}

func TestRunSweepBaseParams(t *testing.T) {
	sweep := &Sweep{
		Calculator: "buoyancy",
		Param:      "mass",
		Min:        5,
		Max:        15,
		Steps:      2,
		Base:       map[string]float64{"volume": 0.01},
		Output:     "object density",
	}

	points, err := RunSweep(context.Background(), sweep, calc.NewRegistry())
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{500, 1500}, Outputs(points), 1e-9)
}

func TestRunSweepInvalid(t *testing.T) {
	reg := calc.NewRegistry()
	tests := []struct {
		name  string
		sweep Sweep
	}{
		{"unknown calculator", Sweep{Calculator: "nope", Param: "x", Steps: 2, Max: 1}},
		{"unknown param", Sweep{Calculator: "pole", Param: "length", Steps: 2, Max: 1}},
		{"no steps", Sweep{Calculator: "pole", Param: "cut_width", Steps: 0, Max: 1}},
		{"too many steps", Sweep{Calculator: "pole", Param: "cut_width", Steps: MaxSweepSteps + 1, Max: 1}},
		{"absurd step count", Sweep{Calculator: "pole", Param: "cut_width", Steps: 1 << 40, Max: 1}},
		{"empty range", Sweep{Calculator: "pole", Param: "cut_width", Steps: 3, Min: 1, Max: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := RunSweep(context.Background(), &tt.sweep, reg)
			assert.ErrorIs(t, err, phys.ErrInvalidInput)
		})
	}
}

func TestRunSweepLargeKeepsOrder(t *testing.T) {
	sweep := &Sweep{Calculator: "slope", Param: "slope", Min: 0, Max: 89, Steps: 90, Output: "optimal angle"}

	points, err := RunSweep(context.Background(), sweep, calc.NewRegistry())
	require.NoError(t, err)
	require.Len(t, points, 90)
	for i, p := range points {
		require.NoError(t, p.Err)
		assert.InDelta(t, float64(i), p.Value, 1e-9)
		assert.InDelta(t, 45+float64(i)/2, p.Output, 1e-9)
	}
}

func TestRunSweepCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sweep := &Sweep{Calculator: "slope", Param: "slope", Min: 0, Max: 10, Steps: 3}
	_, err := RunSweep(ctx, sweep, calc.NewRegistry())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParallelForCoversRange(t *testing.T) {
	hits := make([]int, 100)
	parallelFor(len(hits), 7, func(start, end int) {
		for i := start; i < end; i++ {
			hits[i]++
		}
	})
	for i, h := range hits {
		assert.Equal(t, 1, h, "index %d", i)
	}
}

func TestRunSweepUnknownOutput(t *testing.T) {
	sweep := &Sweep{Calculator: "slope", Param: "slope", Min: 0, Max: 10, Steps: 2, Output: "range"}
	_, err := RunSweep(context.Background(), sweep, calc.NewRegistry())
	assert.ErrorIs(t, err, phys.ErrInvalidInput)
}

func TestWriteSweepXLSX(t *testing.T) {
	sweep := &Sweep{Calculator: "slope", Param: "slope", Min: 0, Max: 30, Steps: 2, Output: "optimal angle"}
	points, err := RunSweep(context.Background(), sweep, calc.NewRegistry())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "sweep.xlsx")
	require.NoError(t, WriteSweepXLSX(path, sweep, points))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Sweep")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"slope", "optimal angle", "unit", "error"}, rows[0])
	assert.Equal(t, "60", rows[2][1])
}
