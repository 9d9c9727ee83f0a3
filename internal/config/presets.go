package config

import "sort"

// Preset is a named reference value.
type Preset struct {
	Name  string  `json:"name" yaml:"name"`
	Value float64 `json:"value" yaml:"value"`
	Unit  string  `json:"unit" yaml:"unit"`
}

// Presets groups reference values by kind: fluid densities, adiabatic
// indices and particle rest masses.
var Presets = map[string]map[string]*Preset{
	"fluid": {
		"fresh_water": {Name: "fresh_water", Value: 1000, Unit: "kg/m³"},
		"sea_water":   {Name: "sea_water", Value: 1025, Unit: "kg/m³"},
		"oil":         {Name: "oil", Value: 850, Unit: "kg/m³"},
		"ethanol":     {Name: "ethanol", Value: 790, Unit: "kg/m³"},
	},
	"gas": {
		"monatomic":  {Name: "monatomic", Value: 5.0 / 3.0},
		"diatomic":   {Name: "diatomic", Value: 1.4},
		"polyatomic": {Name: "polyatomic", Value: 4.0 / 3.0},
	},
	"particle": {
		"electron": {Name: "electron", Value: 0.000511, Unit: "GeV/c²"},
		"proton":   {Name: "proton", Value: 0.938272, Unit: "GeV/c²"},
		"muon":     {Name: "muon", Value: 0.105658, Unit: "GeV/c²"},
	},
}

func GetPreset(kind, name string) *Preset {
	kindPresets, ok := Presets[kind]
	if !ok {
		return nil
	}
	p, ok := kindPresets[name]
	if !ok {
		return nil
	}
	return p
}

// ListPresets returns the preset names of kind, sorted.
func ListPresets(kind string) []string {
	kindPresets, ok := Presets[kind]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(kindPresets))
	for name := range kindPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Kinds returns the preset kinds, sorted.
func Kinds() []string {
	kinds := make([]string, 0, len(Presets))
	for k := range Presets {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}
