package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/san-kum/physkit/internal/phys"
)

type ExportData struct {
	RunMetadata
	Quantities []phys.Quantity `json:"quantities"`
}

// ExportJSON writes the run metadata and its quantities as one document.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	qs, err := s.LoadQuantities(runID)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(ExportData{RunMetadata: *meta, Quantities: qs})
}

// ExportCSV copies the stored quantities table to w.
func (s *Store) ExportCSV(w io.Writer, runID string) error {
	qs, err := s.LoadQuantities(runID)
	if err != nil {
		return err
	}
	return WriteCSV(w, qs)
}

// WriteCSV writes a label,value,unit table with a header row.
func WriteCSV(w io.Writer, qs []phys.Quantity) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"label", "value", "unit"}); err != nil {
		return err
	}
	for _, q := range qs {
		row := []string{q.Label, strconv.FormatFloat(q.Value, 'g', -1, 64), q.Unit}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
