// Package worksheet runs batches of calculator invocations from YAML or
// spreadsheet files, and sweeps a single parameter across a range.
package worksheet

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/physkit/internal/calc"
)

// Worksheet is a named list of calculator steps.
type Worksheet struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Steps       []Step `yaml:"steps"`
}

// Step is one calculator invocation. Param values are kept as text so
// choice parameters can be given by name.
type Step struct {
	Calculator string            `yaml:"calculator"`
	Label      string            `yaml:"label,omitempty"`
	Params     map[string]string `yaml:"params,omitempty"`
}

// Entry is the outcome of one step. Exactly one of Result and Err is set.
type Entry struct {
	Index  int
	Step   Step
	Result *calc.Result
	Err    error
}

// Load reads a YAML worksheet.
func Load(path string) (*Worksheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var ws Worksheet
	if err := yaml.Unmarshal(data, &ws); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(ws.Steps) == 0 {
		return nil, fmt.Errorf("worksheet %s has no steps", path)
	}
	return &ws, nil
}

// Runner executes worksheets against a registry.
type Runner struct {
	Registry *calc.Registry
	Logger   *zap.Logger
}

// Run executes every step with a silent logger.
func Run(ctx context.Context, ws *Worksheet, registry *calc.Registry) ([]Entry, error) {
	r := &Runner{Registry: registry, Logger: zap.NewNop()}
	return r.Run(ctx, ws)
}

// Run executes every step in order. A failing step is recorded on its entry
// and the run continues; only context cancellation stops it early.
func (r *Runner) Run(ctx context.Context, ws *Worksheet) ([]Entry, error) {
	entries := make([]Entry, 0, len(ws.Steps))

	for i, step := range ws.Steps {
		if err := ctx.Err(); err != nil {
			return entries, err
		}

		entry := Entry{Index: i + 1, Step: step}
		entry.Result, entry.Err = r.runStep(step)
		entries = append(entries, entry)

		if entry.Err != nil {
			r.Logger.Warn("step failed",
				zap.Int("step", entry.Index),
				zap.String("calculator", step.Calculator),
				zap.Error(entry.Err))
			continue
		}
		r.Logger.Debug("step done",
			zap.Int("step", entry.Index),
			zap.Int("of", len(ws.Steps)),
			zap.String("calculator", step.Calculator))
	}

	return entries, nil
}

func (r *Runner) runStep(step Step) (*calc.Result, error) {
	params := make(map[string]float64, len(step.Params))
	for k, raw := range step.Params {
		v, err := r.Registry.ParseValue(step.Calculator, k, raw)
		if err != nil {
			return nil, err
		}
		params[k] = v
	}
	return r.Registry.Run(step.Calculator, params)
}

// Failed counts entries that carry an error.
func Failed(entries []Entry) int {
	n := 0
	for _, e := range entries {
		if e.Err != nil {
			n++
		}
	}
	return n
}
