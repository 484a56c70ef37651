package dynamo

import "math"

// Vec2 is a 2D vector in world units. Y grows downward, so a positive
// gravity Y pulls the rope toward the bottom of the screen.
type Vec2 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

func (v Vec2) Scale(f float64) Vec2 { return Vec2{v.X * f, v.Y * f} }

func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }

// Cross returns the z component of the 3D cross product.
func (v Vec2) Cross(o Vec2) float64 { return v.X*o.Y - v.Y*o.X }

func (v Vec2) Length() float64 { return math.Hypot(v.X, v.Y) }

func (v Vec2) DistanceTo(o Vec2) float64 { return v.Sub(o).Length() }

// Normalized returns the unit vector in the direction of v.
// The zero vector normalizes to the zero vector.
func (v Vec2) Normalized() Vec2 {
	l := v.Length()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Lerp moves v toward to by weight w, clamped to [0, 1].
func (v Vec2) Lerp(to Vec2, w float64) Vec2 {
	if w <= 0 {
		return v
	}
	if w >= 1 {
		return to
	}
	return Vec2{v.X + (to.X-v.X)*w, v.Y + (to.Y-v.Y)*w}
}

func (v Vec2) IsValid() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}
