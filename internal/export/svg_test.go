package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/san-kum/physkit/internal/projectile"
)

func TestTrajectorySVG(t *testing.T) {
	pts, err := projectile.Trajectory(15, 9.81, 45, 20)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	err = TrajectorySVG(&buf, []Path{{Label: "45°", Points: pts, Stroke: "#00ffff"}}, 8, 2, 400, 200)
	if err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, want := range []string{"<svg", `stroke="#00ffff"`, "45°", "#ff5f5f", "</svg>"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q", want)
		}
	}
	if n := strings.Count(out, " L"); n != len(pts)-1 {
		t.Errorf("path segments = %d, want %d", n, len(pts)-1)
	}
}

func TestTrajectorySVGSkipsShortPaths(t *testing.T) {
	var buf bytes.Buffer
	short := []projectile.Point{{X: 1, Y: 1}}
	if err := TrajectorySVG(&buf, []Path{{Points: short, Stroke: "red"}}, 5, 1, 100, 100); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "<path") {
		t.Error("path with one point should be skipped")
	}
}
