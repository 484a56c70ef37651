package environment

import "github.com/san-kum/grapple/internal/dynamo"

// Empty never reports a hit.
type Empty struct{}

func (Empty) Raycast(origin, direction dynamo.Vec2) (dynamo.Hit, bool) {
	return dynamo.Hit{}, false
}

// Counting wraps an oracle and counts queries and hits.
type Counting struct {
	Oracle  dynamo.Oracle
	Queries int
	Hits    int
}

func (c *Counting) Raycast(origin, direction dynamo.Vec2) (dynamo.Hit, bool) {
	c.Queries++
	h, ok := c.Oracle.Raycast(origin, direction)
	if ok {
		c.Hits++
	}
	return h, ok
}
