package viz

import (
	"math"
	"strings"

	"github.com/san-kum/grapple/internal/dynamo"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = rune(0x2800)

// Canvas is a grid of braille cells. Each cell holds 2x4 sub-pixels, so a
// Width x Height canvas addresses (Width*2) x (Height*4) pixels.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Pixels returns the sub-pixel dimensions.
func (c *Canvas) Pixels() (int, int) { return c.Width * 2, c.Height * 4 }

// Set lights the sub-pixel at (x, y). Out of range pixels are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Lit reports how many sub-pixels are set.
func (c *Canvas) Lit() int {
	n := 0
	for _, row := range c.Grid {
		for _, r := range row {
			for bits := int(r - blank); bits != 0; bits &= bits - 1 {
				n++
			}
		}
	}
	return n
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Viewport maps world coordinates onto canvas pixels with a uniform scale.
// World Y grows downward, as terminal rows do.
type Viewport struct {
	Origin dynamo.Vec2
	Scale  float64
}

// Fit returns a viewport that frames every given point inside a canvas of
// w x h pixels, leaving a small margin.
func Fit(w, h int, pts ...dynamo.Vec2) Viewport {
	if len(pts) == 0 || w <= 0 || h <= 0 {
		return Viewport{Scale: 1}
	}
	lo, hi := pts[0], pts[0]
	for _, p := range pts[1:] {
		lo = dynamo.V(math.Min(lo.X, p.X), math.Min(lo.Y, p.Y))
		hi = dynamo.V(math.Max(hi.X, p.X), math.Max(hi.Y, p.Y))
	}

	const margin = 1.0
	lo = lo.Sub(dynamo.V(margin, margin))
	hi = hi.Add(dynamo.V(margin, margin))

	span := hi.Sub(lo)
	scale := math.Min(float64(w-1)/span.X, float64(h-1)/span.Y)

	// Center the shorter axis.
	used := span.Scale(scale)
	pad := dynamo.V(float64(w-1)-used.X, float64(h-1)-used.Y).Scale(0.5 / scale)
	return Viewport{Origin: lo.Sub(pad), Scale: scale}
}

func (v Viewport) Project(p dynamo.Vec2) (int, int) {
	q := p.Sub(v.Origin).Scale(v.Scale)
	return int(math.Round(q.X)), int(math.Round(q.Y))
}

// Line draws the world segment a-b.
func (v Viewport) Line(c *Canvas, a, b dynamo.Vec2) {
	x0, y0 := v.Project(a)
	x1, y1 := v.Project(b)
	c.DrawLine(x0, y0, x1, y1)
}
