package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/grapple/internal/dynamo"
)

func TestVerletGravityDisplacement(t *testing.T) {
	integ := NewVerlet(dynamo.V(0, 10))
	points := make([]dynamo.Point, 4)

	integ.Step(points, 0.1)

	for i := 1; i < 3; i++ {
		got := points[i].Current
		if math.Abs(got.X) > 1e-12 || math.Abs(got.Y-0.1) > 1e-12 {
			t.Errorf("point %d: expected (0, 0.1), got %v", i, got)
		}
		if points[i].Prev != (dynamo.Vec2{}) {
			t.Errorf("point %d: prev should hold the old position, got %v", i, points[i].Prev)
		}
	}
}

func TestVerletLeavesEndsAlone(t *testing.T) {
	integ := NewVerlet(dynamo.V(0, 10))
	points := []dynamo.Point{
		{Current: dynamo.V(0, 0), Prev: dynamo.V(-1, 0)},
		{},
		{Current: dynamo.V(5, 0), Prev: dynamo.V(6, 0)},
	}
	before0, before2 := points[0], points[2]

	integ.Step(points, 0.1)

	if points[0] != before0 || points[2] != before2 {
		t.Errorf("end points moved: %+v %+v", points[0], points[2])
	}
}

func TestVerletCarriesImplicitVelocity(t *testing.T) {
	integ := NewVerlet(dynamo.Vec2{})
	points := []dynamo.Point{
		{},
		{Current: dynamo.V(1, 0), Prev: dynamo.V(0.5, 0)},
		{},
	}

	for i := 0; i < 4; i++ {
		integ.Step(points, 0.016)
	}

	if math.Abs(points[1].Current.X-3.0) > 1e-12 {
		t.Errorf("expected x=3 after four steps at 0.5/tick, got %v", points[1].Current.X)
	}
}

func TestVerletNonPositiveDtIsNoop(t *testing.T) {
	integ := NewVerlet(dynamo.V(0, 10))
	for _, dt := range []float64{0, -0.1} {
		points := []dynamo.Point{{}, {Current: dynamo.V(1, 1), Prev: dynamo.V(0, 0)}, {}}
		integ.Step(points, dt)
		if points[1].Current != dynamo.V(1, 1) || points[1].Prev != dynamo.V(0, 0) {
			t.Errorf("dt=%v changed state: %+v", dt, points[1])
		}
	}
}

func BenchmarkVerlet(b *testing.B) {
	integ := NewVerlet(dynamo.V(0, 10))
	points := make([]dynamo.Point, 32)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		integ.Step(points, 1.0/60.0)
	}
}
