package environment

import (
	"math"

	"github.com/ByteArena/box2d"
	"github.com/san-kum/grapple/internal/dynamo"
)

// caster is the slice of box2d's shape API the world needs.
type caster interface {
	RayCast(output *box2d.B2RayCastOutput, input box2d.B2RayCastInput, xf box2d.B2Transform, childIndex int) bool
	GetChildCount() int
}

// World is a static collision environment made of box2d shapes. It is
// read-only once built and may be shared between simulators.
type World struct {
	xf     box2d.B2Transform
	shapes []caster
}

func NewWorld() *World {
	xf := box2d.MakeB2Transform()
	xf.SetIdentity()
	return &World{xf: xf}
}

func (w *World) Len() int { return len(w.shapes) }

// AddEdge adds a two-sided line segment.
func (w *World) AddEdge(a, b dynamo.Vec2) *World {
	edge := box2d.MakeB2EdgeShape()
	edge.Set(toB2(a), toB2(b))
	w.shapes = append(w.shapes, &edge)
	return w
}

// AddBox adds a solid oriented box. Rays starting inside it do not hit.
func (w *World) AddBox(center dynamo.Vec2, halfWidth, halfHeight, angle float64) *World {
	poly := box2d.MakeB2PolygonShape()
	poly.SetAsBoxFromCenterAndAngle(halfWidth, halfHeight, toB2(center), angle)
	w.shapes = append(w.shapes, &poly)
	return w
}

// AddPolyline adds an open chain of edges through vertices. Fewer than two
// distinct vertices is ignored.
func (w *World) AddPolyline(vertices []dynamo.Vec2) *World {
	// box2d rejects consecutive vertices closer than the linear slop.
	vs := make([]box2d.B2Vec2, 0, len(vertices))
	for i, v := range vertices {
		if i > 0 && v.DistanceTo(vertices[i-1]) <= box2d.B2_linearSlop {
			continue
		}
		vs = append(vs, toB2(v))
	}
	if len(vs) < 2 {
		return w
	}
	chain := box2d.MakeB2ChainShape()
	chain.CreateChain(vs, len(vs))
	w.shapes = append(w.shapes, &chain)
	return w
}

// Raycast implements dynamo.Oracle: it returns the nearest hit along the
// finite segment origin .. origin+direction.
func (w *World) Raycast(origin, direction dynamo.Vec2) (dynamo.Hit, bool) {
	if direction.X == 0 && direction.Y == 0 {
		return dynamo.Hit{}, false
	}

	input := box2d.MakeB2RayCastInput()
	input.P1 = toB2(origin)
	input.P2 = toB2(origin.Add(direction))
	input.MaxFraction = 1.0

	best := math.Inf(1)
	var normal box2d.B2Vec2
	for _, s := range w.shapes {
		for child := 0; child < s.GetChildCount(); child++ {
			out := box2d.MakeB2RayCastOutput()
			if !s.RayCast(&out, input, w.xf, child) {
				continue
			}
			if out.Fraction < best {
				best = out.Fraction
				normal = out.Normal
			}
		}
	}

	if math.IsInf(best, 1) {
		return dynamo.Hit{}, false
	}
	return dynamo.Hit{
		Point:  origin.Add(direction.Scale(best)),
		Normal: dynamo.V(normal.X, normal.Y),
	}, true
}

func toB2(v dynamo.Vec2) box2d.B2Vec2 { return box2d.MakeB2Vec2(v.X, v.Y) }
