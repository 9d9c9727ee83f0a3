// Package calc exposes the physics packages as named calculators with flat
// numeric parameters.
//
// Every outer surface (CLI, TUI, HTTP API, worksheets) goes through a
// [Registry]:
//
//   - [Calculator]: name, description, declared [Param] list and a run func
//   - [Result]: resolved inputs plus labelled [phys.Quantity] values
//   - [Registry.Run]: fills defaults, rejects unknown parameters, runs
//
// Enumerated selectors (collider setup, thermo process, optics element
// type) are numeric codes; [Registry.ParseValue] also accepts their names.
//
// # Example
//
//	reg := calc.NewRegistry()
//	res, err := reg.Run("pole", map[string]float64{"cut_width": 0.75})
//
// # Thread Safety
//
// A Registry is read-only after construction and safe for concurrent use.
package calc
