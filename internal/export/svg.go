package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/grapple/internal/dynamo"
)

// bounds is the padded world rectangle mapped onto the SVG viewport.
type bounds struct {
	minX, minY, rangeX, rangeY float64
}

func fit(groups ...[]dynamo.Vec2) (bounds, bool) {
	first := true
	var minX, maxX, minY, maxY float64
	for _, g := range groups {
		for _, p := range g {
			if first {
				minX, maxX, minY, maxY = p.X, p.X, p.Y, p.Y
				first = false
				continue
			}
			if p.X < minX {
				minX = p.X
			}
			if p.X > maxX {
				maxX = p.X
			}
			if p.Y < minY {
				minY = p.Y
			}
			if p.Y > maxY {
				maxY = p.Y
			}
		}
	}
	if first {
		return bounds{}, false
	}

	// Add padding
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	return bounds{minX: minX, minY: minY, rangeX: maxX - minX, rangeY: maxY - minY}, true
}

// project maps world coordinates to pixels. World Y already grows downward.
func (b bounds) project(p dynamo.Vec2, width, height int) (float64, float64) {
	return (p.X - b.minX) / b.rangeX * float64(width), (p.Y - b.minY) / b.rangeY * float64(height)
}

func header(sb *strings.Builder, width, height int) {
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))
}

func polyline(sb *strings.Builder, b bounds, pts []dynamo.Vec2, width, height int, stroke string) {
	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, stroke))
	for i, p := range pts {
		x, y := b.project(p, width, height)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}
	sb.WriteString("\"/>\n")
}

// FrameToSVG draws one rope frame over the environment segments. An
// inactive frame draws only the environment.
func FrameToSVG(f dynamo.Frame, world [][2]dynamo.Vec2, width, height int) string {
	flat := make([]dynamo.Vec2, 0, 2*len(world))
	for _, s := range world {
		flat = append(flat, s[0], s[1])
	}
	b, ok := fit(f.Points, flat)
	if !ok {
		return ""
	}

	var sb strings.Builder
	header(&sb, width, height)

	if len(world) > 0 {
		sb.WriteString(`<g stroke="#666688" stroke-width="2">` + "\n")
		for _, s := range world {
			x1, y1 := b.project(s[0], width, height)
			x2, y2 := b.project(s[1], width, height)
			sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>`+"\n", x1, y1, x2, y2))
		}
		sb.WriteString("</g>\n")
	}

	if f.Active() {
		polyline(&sb, b, f.Points, width, height, "#00ff88")
		sb.WriteString(`<g fill="#00ccff">` + "\n")
		for _, p := range f.Points {
			x, y := b.project(p, width, height)
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="1.5"/>`+"\n", x, y))
		}
		sb.WriteString("</g>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// TrajectoryToSVG creates an SVG path from a sequence of positions, such as
// the rope end over a run.
func TrajectoryToSVG(points []dynamo.Vec2, width, height int, strokeColor string) string {
	if len(points) < 2 {
		return ""
	}
	b, _ := fit(points)

	var sb strings.Builder
	header(&sb, width, height)
	polyline(&sb, b, points, width, height, strokeColor)
	sb.WriteString("</svg>")
	return sb.String()
}
