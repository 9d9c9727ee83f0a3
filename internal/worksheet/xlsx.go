package worksheet

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

const (
	calculatorColumn = "calculator"
	labelColumn      = "label"
)

// LoadXLSX reads the first sheet of a workbook. The header row names the
// columns: "calculator", an optional "label", and one column per
// parameter. Blank cells leave the parameter at its default.
func LoadXLSX(path string) (*Worksheet, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	ws, err := ReadXLSX(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	ws.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return ws, nil
}

// ReadXLSX is LoadXLSX over an open reader.
func ReadXLSX(r io.Reader) (*Worksheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("sheet %q is empty", sheet)
	}

	header := make([]string, len(rows[0]))
	calcCol := -1
	for i, h := range rows[0] {
		header[i] = strings.ToLower(strings.TrimSpace(h))
		if header[i] == calculatorColumn {
			calcCol = i
		}
	}
	if calcCol < 0 {
		return nil, fmt.Errorf("sheet %q has no %q column", sheet, calculatorColumn)
	}

	ws := &Worksheet{Name: sheet}
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if calcCol >= len(row) || strings.TrimSpace(row[calcCol]) == "" {
			continue
		}

		step := Step{Params: make(map[string]string)}
		for j, cell := range row {
			if j >= len(header) || header[j] == "" {
				continue
			}
			cell = strings.TrimSpace(cell)
			switch header[j] {
			case calculatorColumn:
				step.Calculator = cell
			case labelColumn:
				step.Label = cell
			default:
				if cell != "" {
					step.Params[header[j]] = cell
				}
			}
		}
		ws.Steps = append(ws.Steps, step)
	}

	if len(ws.Steps) == 0 {
		return nil, fmt.Errorf("sheet %q has no steps", sheet)
	}
	return ws, nil
}

var resultHeader = []any{"step", "label", "calculator", "quantity", "value", "unit", "error"}

// WriteXLSX writes one row per result quantity, or one row per failed step.
func WriteXLSX(path string, entries []Entry) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Results"
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, "A1", &resultHeader); err != nil {
		return err
	}

	row := 2
	for _, e := range entries {
		if e.Err != nil {
			values := []any{e.Index, e.Step.Label, e.Step.Calculator, "", "", "", e.Err.Error()}
			if err := setRow(f, sheet, row, values); err != nil {
				return err
			}
			row++
			continue
		}
		for _, q := range e.Result.Quantities {
			values := []any{e.Index, e.Step.Label, e.Step.Calculator, q.Label, q.Value, q.Unit, ""}
			if err := setRow(f, sheet, row, values); err != nil {
				return err
			}
			row++
		}
	}

	return f.SaveAs(path)
}

// WriteSweepXLSX writes a sweep as parameter/output columns.
func WriteSweepXLSX(path string, sweep *Sweep, points []SweepPoint) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sweep"
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return err
	}
	output := sweep.Output
	if output == "" {
		output = "output"
	}
	if err := setRow(f, sheet, 1, []any{sweep.Param, output, "unit", "error"}); err != nil {
		return err
	}

	for i, p := range points {
		values := []any{p.Value, p.Output, p.Unit, ""}
		if p.Err != nil {
			values = []any{p.Value, "", "", p.Err.Error()}
		}
		if err := setRow(f, sheet, i+2, values); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}
