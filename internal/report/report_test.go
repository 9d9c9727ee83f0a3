package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/san-kum/physkit/internal/calc"
)

func TestRender(t *testing.T) {
	res, err := calc.NewRegistry().Run("buoyancy", nil)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	meta := Meta{Author: "lab group 4", Project: "week 3", Notes: "fresh water", Date: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)}
	if err := Render(&buf, res, meta); err != nil {
		t.Fatal(err)
	}

	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Errorf("expected PDF header, got %q", buf.Bytes()[:8])
	}
	if buf.Len() < 500 {
		t.Errorf("report suspiciously small: %d bytes", buf.Len())
	}
}

func TestRenderNil(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, nil, Meta{}); err == nil {
		t.Error("expected error for nil result")
	}
}
