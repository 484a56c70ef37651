package control

import (
	"math"
	"testing"

	"github.com/san-kum/grapple/internal/dynamo"
)

func grapple(owner, at dynamo.Vec2) dynamo.Input {
	return dynamo.Input{Owner: owner, Intent: dynamo.GrappleAt(at)}
}

func TestGrappleExtendsTowardTarget(t *testing.T) {
	e := NewEndpoints(dynamo.Vec2{}, 5, 5)

	e.Update(grapple(dynamo.Vec2{}, dynamo.V(10, 0)), 0.1)

	if got := e.End(); math.Abs(got.X-5) > 1e-12 || got.Y != 0 {
		t.Errorf("end = %v, want halfway (5, 0)", got)
	}
	if math.Abs(e.Length()-5) > 1e-12 {
		t.Errorf("length = %v, want 5", e.Length())
	}
	if e.Target() != dynamo.V(10, 0) {
		t.Errorf("target = %v", e.Target())
	}
}

func TestGrappleWeightClamped(t *testing.T) {
	e := NewEndpoints(dynamo.Vec2{}, DefaultExtendSpeed, DefaultRetractSpeed)

	e.Update(grapple(dynamo.Vec2{}, dynamo.V(3, 0)), 0.1)

	if e.End() != dynamo.V(3, 0) {
		t.Errorf("end = %v, want (3, 0) with weight clamped to 1", e.End())
	}
	if e.Length() != 3 {
		t.Errorf("length = %v, want 3", e.Length())
	}
}

func TestStartFollowsOwnerAndOffset(t *testing.T) {
	e := NewEndpoints(dynamo.Vec2{}, 1, 1)
	in := dynamo.Input{Owner: dynamo.V(2, 3), LaunchOffset: dynamo.V(0, -1)}

	e.Update(in, 0.1)

	if e.Start() != dynamo.V(2, 2) {
		t.Errorf("start = %v, want (2, 2)", e.Start())
	}
}

func TestNeitherHoldsEndAndLength(t *testing.T) {
	e := NewEndpoints(dynamo.Vec2{}, DefaultExtendSpeed, DefaultRetractSpeed)
	e.Update(grapple(dynamo.Vec2{}, dynamo.V(3, 4)), 1)

	e.Update(dynamo.Input{Owner: dynamo.V(1, 0)}, 1)

	if e.End() != dynamo.V(3, 4) {
		t.Errorf("end moved on neither: %v", e.End())
	}
	if e.Length() != 5 {
		t.Errorf("length changed on neither: %v", e.Length())
	}
}

func TestReleaseRetractsThenZeroes(t *testing.T) {
	e := NewEndpoints(dynamo.Vec2{}, DefaultExtendSpeed, 5)
	e.Update(grapple(dynamo.Vec2{}, dynamo.V(8, 0)), 1)

	release := dynamo.Input{Intent: dynamo.Release()}

	e.Update(release, 0.1)
	if got := e.End().X; math.Abs(got-4) > 1e-12 {
		t.Fatalf("end x after one retract tick = %v, want 4", got)
	}
	if e.Length() != 8 {
		t.Errorf("length should hold while retracting, got %v", e.Length())
	}
	if e.Target() != e.Start() {
		t.Errorf("target should be the anchor while released")
	}

	for i := 0; i < 10 && e.Active(); i++ {
		e.Update(release, 0.1)
	}
	if e.Active() {
		t.Fatalf("rope never retracted, end = %v", e.End())
	}
	if d := e.End().DistanceTo(e.Start()); d > DefaultRetractThreshold {
		t.Errorf("retracted with end %v from anchor", d)
	}
}

func TestReleaseWithinThresholdZeroesImmediately(t *testing.T) {
	e := NewEndpoints(dynamo.Vec2{}, DefaultExtendSpeed, DefaultRetractSpeed)
	e.Update(grapple(dynamo.Vec2{}, dynamo.V(0.5, 0)), 1)
	if !e.Active() {
		t.Fatal("expected active rope after grapple")
	}

	e.Update(dynamo.Input{Intent: dynamo.Release()}, 0.1)

	if e.Length() != 0 {
		t.Errorf("length = %v, want 0", e.Length())
	}
	if e.End() != dynamo.V(0.5, 0) {
		t.Errorf("end should not move on the zeroing tick, got %v", e.End())
	}
}

func TestZeroDtDoesNotMoveEnd(t *testing.T) {
	e := NewEndpoints(dynamo.Vec2{}, DefaultExtendSpeed, DefaultRetractSpeed)

	e.Update(grapple(dynamo.Vec2{}, dynamo.V(10, 0)), 0)

	if e.End() != (dynamo.Vec2{}) {
		t.Errorf("end moved with dt=0: %v", e.End())
	}
	if e.Active() {
		t.Error("zero-length grapple should stay inactive")
	}
}
