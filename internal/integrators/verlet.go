package integrators

import "github.com/san-kum/grapple/internal/dynamo"

// Verlet advances interior rope points with position-based Störmer-Verlet
// under a constant acceleration. The two end points are left untouched;
// they are pinned by the caller.
type Verlet struct {
	Gravity dynamo.Vec2
}

func NewVerlet(gravity dynamo.Vec2) *Verlet {
	return &Verlet{Gravity: gravity}
}

// Step integrates points[1:len-1] in place. A non-positive dt is a no-op.
func (v *Verlet) Step(points []dynamo.Point, dt float64) {
	if dt <= 0 || len(points) < 3 {
		return
	}

	acc := v.Gravity.Scale(dt * dt)
	for i := 1; i < len(points)-1; i++ {
		p := &points[i]
		next := p.Current.Add(p.Current.Sub(p.Prev)).Add(acc)
		p.Prev = p.Current
		p.Current = next
	}
}
