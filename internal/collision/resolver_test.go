package collision

import (
	"math"
	"testing"

	"github.com/san-kum/grapple/internal/dynamo"
)

type ray struct{ origin, dir dynamo.Vec2 }

type recordingOracle struct {
	rays []ray
	hits map[int]dynamo.Vec2
}

func (o *recordingOracle) Raycast(origin, dir dynamo.Vec2) (dynamo.Hit, bool) {
	idx := len(o.rays)
	o.rays = append(o.rays, ray{origin, dir})
	if p, ok := o.hits[idx]; ok {
		return dynamo.Hit{Point: p}, true
	}
	return dynamo.Hit{}, false
}

func line(xs ...float64) []dynamo.Point {
	pts := make([]dynamo.Point, len(xs))
	for i, x := range xs {
		pts[i] = dynamo.Point{Current: dynamo.V(x, 0), Prev: dynamo.V(x, -1)}
	}
	return pts
}

func TestResolveNoHits(t *testing.T) {
	oracle := &recordingOracle{}
	points := line(0, 1, 2, 3)
	before := append([]dynamo.Point(nil), points...)

	if n := NewResolver(oracle).Resolve(points); n != 0 {
		t.Errorf("expected 0 contacts, got %d", n)
	}
	for i := range points {
		if points[i] != before[i] {
			t.Errorf("point %d changed without a hit", i)
		}
	}
	if len(oracle.rays) != 3 {
		t.Fatalf("expected one ray per segment, got %d", len(oracle.rays))
	}
	for i, r := range oracle.rays {
		if r.origin != dynamo.V(float64(i), 0) || r.dir != dynamo.V(1, 0) {
			t.Errorf("ray %d = %+v, want origin (%d,0) dir (1,0)", i, r, i)
		}
	}
}

func TestResolveClampsPointToHit(t *testing.T) {
	h := dynamo.V(1.5, 0.25)
	oracle := &recordingOracle{hits: map[int]dynamo.Vec2{1: h}}
	points := line(0, 1, 2, 3)

	if n := NewResolver(oracle).Resolve(points); n != 1 {
		t.Errorf("expected 1 contact, got %d", n)
	}
	if points[1].Current != h || points[1].Prev != h {
		t.Errorf("point 1 = %+v, want both at %v", points[1], h)
	}
	if points[2].Current != dynamo.V(2, 0) {
		t.Errorf("point 2 should be untouched, got %v", points[2].Current)
	}
}

func TestResolveReadsClampedOriginForSameSegmentOnly(t *testing.T) {
	// A clamp on segment 0 moves point 0 only; segment 1 still starts at
	// point 1 and aims at point 2.
	oracle := &recordingOracle{hits: map[int]dynamo.Vec2{0: dynamo.V(0.5, 0.5)}}
	points := line(0, 1, 2)

	NewResolver(oracle).Resolve(points)

	if got := oracle.rays[1]; got.origin != dynamo.V(1, 0) || got.dir != dynamo.V(1, 0) {
		t.Errorf("second ray = %+v, want origin (1,0) dir (1,0)", got)
	}
}

func TestResolveIgnoresNonFiniteHit(t *testing.T) {
	oracle := &recordingOracle{hits: map[int]dynamo.Vec2{0: dynamo.V(math.NaN(), 0)}}
	points := line(0, 1)

	if n := NewResolver(oracle).Resolve(points); n != 0 {
		t.Errorf("expected NaN hit to be ignored, got %d contacts", n)
	}
	if points[0].Current != dynamo.V(0, 0) {
		t.Errorf("point 0 corrupted: %v", points[0].Current)
	}
}

func TestResolveNilOracle(t *testing.T) {
	if n := NewResolver(nil).Resolve(line(0, 1, 2)); n != 0 {
		t.Errorf("expected 0 contacts, got %d", n)
	}
}
