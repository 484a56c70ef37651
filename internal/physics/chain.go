package physics

import "github.com/san-kum/grapple/internal/dynamo"

// Chain is the rope's fixed-size point sequence. Index 0 is bound to the
// anchor and index Len()-1 to the moving end. The length never changes
// after construction.
type Chain struct {
	points []dynamo.Point
}

// NewChain returns n points resting at anchor. n is clamped to at least 2
// so the chain always has two distinct ends.
func NewChain(n int, anchor dynamo.Vec2) *Chain {
	if n < 2 {
		n = 2
	}
	c := &Chain{points: make([]dynamo.Point, n)}
	c.Collapse(anchor)
	return c
}

func (c *Chain) Len() int { return len(c.points) }

func (c *Chain) At(i int) dynamo.Point { return c.points[i] }

// Points exposes the backing array for in-place mutation by the pipeline
// stages. Callers must not retain it across ticks.
func (c *Chain) Points() []dynamo.Point { return c.points }

// Pin forces both ends to the given positions with zero implied velocity.
func (c *Chain) Pin(start, end dynamo.Vec2) {
	c.points[0].Place(start)
	c.points[len(c.points)-1].Place(end)
}

// Collapse snaps every point to at, discarding all motion.
func (c *Chain) Collapse(at dynamo.Vec2) {
	for i := range c.points {
		c.points[i].Place(at)
	}
}

// Positions copies the current positions in index order.
func (c *Chain) Positions() []dynamo.Vec2 {
	out := make([]dynamo.Vec2, len(c.points))
	for i, p := range c.points {
		out[i] = p.Current
	}
	return out
}

// SegmentLengths returns the current length of each of the Len()-1 segments.
func (c *Chain) SegmentLengths() []float64 {
	out := make([]float64, len(c.points)-1)
	for i := range out {
		out[i] = c.points[i].Current.DistanceTo(c.points[i+1].Current)
	}
	return out
}
