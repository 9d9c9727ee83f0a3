// Package export renders projectile flight paths as standalone SVG.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/san-kum/physkit/internal/projectile"
)

// Path is one flight path and its stroke colour.
type Path struct {
	Label  string
	Points []projectile.Point
	Stroke string
}

type bounds struct {
	minX, maxX, minY, maxY float64
}

func (b *bounds) include(x, y float64) {
	if x < b.minX {
		b.minX = x
	}
	if x > b.maxX {
		b.maxX = x
	}
	if y < b.minY {
		b.minY = y
	}
	if y > b.maxY {
		b.maxY = y
	}
}

// pad widens the box by 10% on each side.
func (b *bounds) pad() {
	rx, ry := b.maxX-b.minX, b.maxY-b.minY
	if rx == 0 {
		rx = 1
	}
	if ry == 0 {
		ry = 1
	}
	b.minX -= rx * 0.1
	b.maxX += rx * 0.1
	b.minY -= ry * 0.1
	b.maxY += ry * 0.1
}

// TrajectorySVG draws every path on one x/y plane scaled to width×height,
// with the target marked as a cross. Paths with fewer than two points are
// skipped.
func TrajectorySVG(w io.Writer, paths []Path, targetX, targetY float64, width, height int) error {
	b := bounds{minX: 0, maxX: targetX, minY: 0, maxY: targetY}
	for _, p := range paths {
		for _, pt := range p.Points {
			b.include(pt.X, pt.Y)
		}
	}
	b.pad()

	sx := func(x float64) float64 { return (x - b.minX) / (b.maxX - b.minX) * float64(width) }
	sy := func(y float64) float64 {
		return float64(height) - (y-b.minY)/(b.maxY-b.minY)*float64(height)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<line x1="0" y1="%.1f" x2="%d" y2="%.1f" stroke="#444" stroke-width="1"/>
`, width, height, width, height, sy(0), width, sy(0))

	for _, p := range paths {
		if len(p.Points) < 2 {
			continue
		}
		fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="M`, p.Stroke)
		for i, pt := range p.Points {
			if i > 0 {
				sb.WriteString(" L")
			}
			fmt.Fprintf(&sb, "%.1f,%.1f", sx(pt.X), sy(pt.Y))
		}
		sb.WriteString("\"/>\n")
		if p.Label != "" {
			last := p.Points[len(p.Points)/2]
			fmt.Fprintf(&sb, `<text x="%.1f" y="%.1f" fill="%s" font-size="11" font-family="monospace">%s</text>
`, sx(last.X), sy(last.Y)-6, p.Stroke, p.Label)
		}
	}

	tx, ty := sx(targetX), sy(targetY)
	fmt.Fprintf(&sb, `<g stroke="#ff5f5f" stroke-width="2">
<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>
<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>
</g>
</svg>
`, tx-5, ty, tx+5, ty, tx, ty-5, tx, ty+5)

	_, err := io.WriteString(w, sb.String())
	return err
}
