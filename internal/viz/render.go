package viz

import "github.com/san-kum/grapple/internal/dynamo"

// Draw renders the environment and, when active, the rope polyline with a
// 2x2 marker on the grapple end.
func Draw(c *Canvas, v Viewport, f dynamo.Frame, world [][2]dynamo.Vec2) {
	for _, s := range world {
		v.Line(c, s[0], s[1])
	}
	if !f.Active() {
		return
	}
	for i := 0; i+1 < len(f.Points); i++ {
		v.Line(c, f.Points[i], f.Points[i+1])
	}
	x, y := v.Project(f.Points[len(f.Points)-1])
	for dy := 0; dy <= 1; dy++ {
		for dx := 0; dx <= 1; dx++ {
			c.Set(x+dx, y+dy)
		}
	}
}

// RenderFrame draws a single frame on a fresh cols x rows braille canvas,
// framing the rope and the world together.
func RenderFrame(f dynamo.Frame, world [][2]dynamo.Vec2, cols, rows int) string {
	c := NewCanvas(cols, rows)
	pts := append([]dynamo.Vec2(nil), f.Points...)
	for _, s := range world {
		pts = append(pts, s[0], s[1])
	}
	w, h := c.Pixels()
	Draw(c, Fit(w, h, pts...), f, world)
	return c.String()
}
