package tui

import (
	"strings"

	"github.com/san-kum/physkit/internal/projectile"
)

func newCanvas(w, h int) [][]rune {
	canvas := make([][]rune, h)
	for i := range canvas {
		canvas[i] = make([]rune, w)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}
	return canvas
}

func set(canvas [][]rune, x, y int, c rune, w, h int) {
	if x >= 0 && x < w && y >= 0 && y < h {
		canvas[y][x] = c
	}
}

func drawLine(canvas [][]rune, w, h, x1, y1, x2, y2 int, c rune) {
	dx := intAbs(x2 - x1)
	dy := intAbs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	err := dx - dy
	for {
		set(canvas, x1, y1, c, w, h)
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

func intAbs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// trajectoryCanvas draws the low and high launch arcs up to the target and
// marks the target with ✚.
func (m Model) trajectoryCanvas() string {
	low, okLow := m.result.Quantity("low angle")
	high, okHigh := m.result.Quantity("high angle")
	if !okLow || !okHigh {
		return ""
	}
	v0, g := m.params["v0"], m.params["g"]
	tx, ty := m.params["x"], m.params["y"]
	if g <= 0 || tx <= 0 {
		return ""
	}

	w := m.width - 8
	if w < 40 {
		w = 40
	}
	h := 12

	arcs := make([][]projectile.Point, 0, 2)
	maxX, maxY := tx, ty
	for _, angle := range []float64{low.Value, high.Value} {
		pts, err := projectile.Trajectory(v0, g, angle, 64)
		if err != nil {
			continue
		}
		arcs = append(arcs, pts)
		for _, p := range pts {
			if p.X > tx*1.05 {
				break
			}
			if p.Y > maxY {
				maxY = p.Y
			}
		}
	}
	if len(arcs) == 0 || maxY <= 0 {
		return ""
	}

	toCell := func(x, y float64) (int, int) {
		cx := int(x / maxX * float64(w-1))
		cy := h - 1 - int(y/maxY*float64(h-1))
		return cx, cy
	}

	canvas := newCanvas(w, h)
	drawLine(canvas, w, h, 0, h-1, w-1, h-1, '─')
	marks := []rune{'·', '∘'}
	for i, pts := range arcs {
		px, py := toCell(pts[0].X, pts[0].Y)
		for _, p := range pts[1:] {
			if p.X > tx*1.05 {
				break
			}
			cx, cy := toCell(p.X, p.Y)
			drawLine(canvas, w, h, px, py, cx, cy, marks[i%len(marks)])
			px, py = cx, cy
		}
	}
	cx, cy := toCell(tx, ty)
	set(canvas, cx, cy, '✚', w, h)

	var b strings.Builder
	for _, row := range canvas {
		b.WriteString("   " + dim.Render(string(row)) + "\n")
	}
	return b.String()
}
