// Package report renders calculator results as single-page PDF documents.
package report

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/phpdave11/gofpdf"

	"github.com/san-kum/physkit/internal/calc"
)

// Meta is the document header.
type Meta struct {
	Title   string    `json:"title"`
	Author  string    `json:"author"`
	Project string    `json:"project"`
	Notes   string    `json:"notes"`
	Date    time.Time `json:"-"`
}

var errNoResult = errors.New("report: nil result")

// Render writes r as a PDF to w.
func Render(w io.Writer, r *calc.Result, meta Meta) error {
	if r == nil {
		return errNoResult
	}
	if meta.Title == "" {
		meta.Title = fmt.Sprintf("%s calculation", r.Calculator)
	}
	if meta.Date.IsZero() {
		meta.Date = time.Now()
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr(meta.Title))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	if meta.Project != "" {
		pdf.Cell(0, 6, tr(fmt.Sprintf("Project: %s", meta.Project)))
		pdf.Ln(6)
	}
	if meta.Author != "" {
		pdf.Cell(0, 6, tr(fmt.Sprintf("Author: %s", meta.Author)))
		pdf.Ln(6)
	}
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", meta.Date.Format("2006-01-02")))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Calculator: %s", r.Calculator))
	pdf.Ln(10)

	section(pdf, "Inputs")
	names := make([]string, 0, len(r.Inputs))
	for k := range r.Inputs {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		row(pdf, tr, k, strconv.FormatFloat(r.Inputs[k], 'g', 6, 64), "")
	}
	pdf.Ln(4)

	section(pdf, "Results")
	for _, q := range r.Quantities {
		row(pdf, tr, q.Label, strconv.FormatFloat(q.Value, 'g', 6, 64), q.Unit)
	}
	pdf.Ln(4)

	if len(r.Notes) > 0 || meta.Notes != "" {
		section(pdf, "Notes")
		pdf.SetFont("Helvetica", "", 11)
		for _, n := range r.Notes {
			pdf.MultiCell(0, 6, tr("- "+n), "", "L", false)
		}
		if meta.Notes != "" {
			pdf.MultiCell(0, 6, tr(meta.Notes), "", "L", false)
		}
	}

	return pdf.Output(w)
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, title)
	pdf.Ln(8)
}

func row(pdf *gofpdf.Fpdf, tr func(string) string, label, value, unit string) {
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(80, 6, tr(label), "1", 0, "L", false, 0, "")
	pdf.CellFormat(50, 6, value, "1", 0, "R", false, 0, "")
	pdf.CellFormat(30, 6, tr(unit), "1", 1, "L", false, 0, "")
}
