package environment

import (
	"math"

	"github.com/san-kum/grapple/internal/dynamo"
)

// Spec is the serializable description of a World.
type Spec struct {
	Edges     []EdgeSpec      `yaml:"edges,omitempty" json:"edges,omitempty"`
	Boxes     []BoxSpec       `yaml:"boxes,omitempty" json:"boxes,omitempty"`
	Polylines [][]dynamo.Vec2 `yaml:"polylines,omitempty" json:"polylines,omitempty"`
}

type EdgeSpec struct {
	A dynamo.Vec2 `yaml:"a" json:"a"`
	B dynamo.Vec2 `yaml:"b" json:"b"`
}

type BoxSpec struct {
	Center     dynamo.Vec2 `yaml:"center" json:"center"`
	HalfWidth  float64     `yaml:"half_width" json:"half_width"`
	HalfHeight float64     `yaml:"half_height" json:"half_height"`
	Angle      float64     `yaml:"angle,omitempty" json:"angle,omitempty"`
}

func (s Spec) Empty() bool {
	return len(s.Edges) == 0 && len(s.Boxes) == 0 && len(s.Polylines) == 0
}

// Build returns the world described by s.
func (s Spec) Build() *World {
	w := NewWorld()
	for _, e := range s.Edges {
		w.AddEdge(e.A, e.B)
	}
	for _, b := range s.Boxes {
		w.AddBox(b.Center, b.HalfWidth, b.HalfHeight, b.Angle)
	}
	for _, pl := range s.Polylines {
		w.AddPolyline(pl)
	}
	return w
}

// Oracle returns Empty for an empty spec, else the built world.
func (s Spec) Oracle() dynamo.Oracle {
	if s.Empty() {
		return Empty{}
	}
	return s.Build()
}

// Segments flattens the spec into line segments for drawing.
func (s Spec) Segments() [][2]dynamo.Vec2 {
	var out [][2]dynamo.Vec2
	for _, e := range s.Edges {
		out = append(out, [2]dynamo.Vec2{e.A, e.B})
	}
	for _, b := range s.Boxes {
		c := b.corners()
		for i := range c {
			out = append(out, [2]dynamo.Vec2{c[i], c[(i+1)%len(c)]})
		}
	}
	for _, pl := range s.Polylines {
		for i := 0; i+1 < len(pl); i++ {
			out = append(out, [2]dynamo.Vec2{pl[i], pl[i+1]})
		}
	}
	return out
}

func (b BoxSpec) corners() [4]dynamo.Vec2 {
	local := [4]dynamo.Vec2{
		{X: -b.HalfWidth, Y: -b.HalfHeight},
		{X: b.HalfWidth, Y: -b.HalfHeight},
		{X: b.HalfWidth, Y: b.HalfHeight},
		{X: -b.HalfWidth, Y: b.HalfHeight},
	}
	var out [4]dynamo.Vec2
	for i, p := range local {
		out[i] = rotate(p, b.Angle).Add(b.Center)
	}
	return out
}

func rotate(v dynamo.Vec2, angle float64) dynamo.Vec2 {
	if angle == 0 {
		return v
	}
	s, c := math.Sincos(angle)
	return dynamo.V(v.X*c-v.Y*s, v.X*s+v.Y*c)
}
