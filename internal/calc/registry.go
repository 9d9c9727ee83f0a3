package calc

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/san-kum/physkit/internal/phys"
)

// ErrUnknownCalculator is returned for names missing from the registry.
var ErrUnknownCalculator = errors.New("calc: unknown calculator")

// Param declares one numeric input.
type Param struct {
	Name    string   `json:"name"`
	Unit    string   `json:"unit,omitempty"`
	Default float64  `json:"default"`
	Help    string   `json:"help,omitempty"`
	Choices []string `json:"choices,omitempty"`

	parse func(string) (int, error)
}

// Calculator is a named computation over a flat parameter map.
type Calculator struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Params      []Param `json:"params"`

	run func(p map[string]float64) (*Result, error)
}

// Param looks up a declared parameter by name.
func (c *Calculator) Param(name string) (Param, bool) {
	for _, p := range c.Params {
		if p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}

// Defaults returns the declared defaults as a fresh map.
func (c *Calculator) Defaults() map[string]float64 {
	out := make(map[string]float64, len(c.Params))
	for _, p := range c.Params {
		out[p.Name] = p.Default
	}
	return out
}

func (c *Calculator) resolve(params map[string]float64) (map[string]float64, error) {
	inputs := c.Defaults()
	for k, v := range params {
		if _, ok := inputs[k]; !ok {
			return nil, phys.Errorf(c.Name, phys.ErrInvalidInput, "unknown parameter %q", k)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, phys.Errorf(c.Name, phys.ErrInvalidInput, "parameter %q is not finite", k)
		}
		inputs[k] = v
	}
	return inputs, nil
}

// Result is the output of one calculator run.
type Result struct {
	Calculator string             `json:"calculator"`
	Inputs     map[string]float64 `json:"inputs"`
	Quantities []phys.Quantity    `json:"quantities"`
	Notes      []string           `json:"notes,omitempty"`
}

// Quantity returns the first quantity with the given label.
func (r *Result) Quantity(label string) (phys.Quantity, bool) {
	for _, q := range r.Quantities {
		if q.Label == label {
			return q, true
		}
	}
	return phys.Quantity{}, false
}

func (r *Result) add(label string, value float64, unit string) {
	r.Quantities = append(r.Quantities, phys.Quantity{Label: label, Value: value, Unit: unit})
}

func (r *Result) note(format string, args ...any) {
	r.Notes = append(r.Notes, fmt.Sprintf(format, args...))
}

// Defaults overrides the environment-dependent parameter defaults.
type Defaults struct {
	Gravity      float64
	FluidDensity float64
	Gamma        float64
}

type Registry struct {
	calculators map[string]*Calculator
}

// NewRegistry registers every built-in calculator.
func NewRegistry() *Registry {
	r := &Registry{calculators: make(map[string]*Calculator)}

	r.register(buoyancyCalculator())
	r.register(addedMassCalculator())
	r.register(compositeCalculator())
	r.register(opticsCalculator())
	r.register(projectileCalculator())
	r.register(slopeCalculator())
	r.register(colliderCalculator())
	r.register(dopplerCalculator())
	r.register(thermoCalculator())
	r.register(poleCalculator())

	return r
}

func (r *Registry) register(c *Calculator) {
	r.calculators[c.Name] = c
}

// WithDefaults rewrites the g, fluid_density and gamma defaults of every
// calculator that declares them. Zero fields are left alone.
func (r *Registry) WithDefaults(d Defaults) *Registry {
	overrides := map[string]float64{
		"g":             d.Gravity,
		"fluid_density": d.FluidDensity,
		"gamma":         d.Gamma,
	}
	for _, c := range r.calculators {
		for i := range c.Params {
			if v := overrides[c.Params[i].Name]; v != 0 {
				c.Params[i].Default = v
			}
		}
	}
	return r
}

func (r *Registry) Get(name string) (*Calculator, error) {
	c, ok := r.calculators[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCalculator, name)
	}
	return c, nil
}

// List returns calculator names in sorted order.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.calculators))
	for name := range r.calculators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run resolves params against the calculator's declared defaults and runs it.
func (r *Registry) Run(name string, params map[string]float64) (*Result, error) {
	c, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	inputs, err := c.resolve(params)
	if err != nil {
		return nil, err
	}

	res, err := c.run(inputs)
	if err != nil {
		return nil, err
	}
	for _, q := range res.Quantities {
		if !phys.IsFinite(q.Value) {
			return nil, phys.Errorf(name, phys.ErrOutOfRange, "%s is not finite", q.Label)
		}
	}
	res.Calculator = name
	res.Inputs = inputs
	return res, nil
}

// ParseValue converts a textual parameter value. Numbers are accepted for
// every parameter; choice parameters also take their names.
func (r *Registry) ParseValue(calculator, param, s string) (float64, error) {
	c, err := r.Get(calculator)
	if err != nil {
		return 0, err
	}
	p, ok := c.Param(param)
	if !ok {
		return 0, phys.Errorf(calculator, phys.ErrInvalidInput, "unknown parameter %q", param)
	}

	s = strings.TrimSpace(s)
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v, nil
	}
	if p.parse == nil {
		return 0, phys.Errorf(calculator, phys.ErrInvalidInput, "%s: %q is not a number", param, s)
	}
	code, err := p.parse(s)
	if err != nil {
		return 0, err
	}
	return float64(code), nil
}

// ParseAssignments turns "key=value" pairs into a parameter map.
func (r *Registry) ParseAssignments(calculator string, pairs []string) (map[string]float64, error) {
	out := make(map[string]float64, len(pairs))
	for _, pair := range pairs {
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, phys.Errorf(calculator, phys.ErrInvalidInput, "expected key=value, got %q", pair)
		}
		val, err := r.ParseValue(calculator, strings.TrimSpace(k), v)
		if err != nil {
			return nil, err
		}
		out[strings.TrimSpace(k)] = val
	}
	return out, nil
}

// choice reads an integer selector code in [0, n).
func choice(p map[string]float64, name string, n int) (int, error) {
	v := p[name]
	if math.IsNaN(v) || v != math.Trunc(v) || v < 0 || v >= float64(n) {
		return 0, phys.Errorf("calc", phys.ErrInvalidInput, "%s must be an integer code in [0, %d), got %g", name, n, v)
	}
	return int(v), nil
}
