package scenario

import (
	"errors"
	"testing"

	"github.com/san-kum/grapple/internal/dynamo"
)

func TestScriptStateAt(t *testing.T) {
	s := &Script{Events: []Event{
		{At: 2, Action: ActionRelease},
		{At: 0.5, Action: ActionGrapple, Point: dynamo.V(5, -5)},
		{At: 4, Action: ActionIdle},
	}}
	if err := s.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}

	tests := []struct {
		t    float64
		want dynamo.Intent
	}{
		{0, dynamo.Intent{}},
		{0.5, dynamo.GrappleAt(dynamo.V(5, -5))},
		{1.9, dynamo.GrappleAt(dynamo.V(5, -5))},
		{2, dynamo.Release()},
		{5, dynamo.Intent{}},
	}

	for _, tt := range tests {
		if got := s.Input(tt.t).Intent; got != tt.want {
			t.Errorf("Input(%v).Intent = %v, want %v", tt.t, got, tt.want)
		}
	}
	if s.End() != 4 {
		t.Errorf("End() = %v, want 4", s.End())
	}
}

func TestScriptOwnerMotion(t *testing.T) {
	s := &Script{
		Owner:        dynamo.V(1, 0),
		Velocity:     dynamo.V(2, 0),
		LaunchOffset: dynamo.V(0, -1),
	}

	in := s.Input(1.5)
	if in.Owner != dynamo.V(4, 0) {
		t.Errorf("owner = %v, want (4, 0)", in.Owner)
	}
	if in.LaunchOffset != dynamo.V(0, -1) {
		t.Errorf("offset = %v", in.LaunchOffset)
	}
}

func TestScriptValidateRejects(t *testing.T) {
	tests := []struct {
		name string
		ev   Event
	}{
		{"unknown action", Event{At: 1, Action: "yank"}},
		{"negative time", Event{At: -1, Action: ActionRelease}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Script{Events: []Event{tt.ev}}
			if err := s.Validate(); !errors.Is(err, dynamo.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestManual(t *testing.T) {
	m := NewManual(dynamo.V(1, 1), dynamo.V(0, -1))

	if got := m.Input(0).Intent; got.Kind != dynamo.Neither {
		t.Errorf("fresh manual intent = %v", got)
	}
	m.Grapple(dynamo.V(3, 3))
	if got := m.Input(0).Intent; got != dynamo.GrappleAt(dynamo.V(3, 3)) {
		t.Errorf("after Grapple intent = %v", got)
	}
	m.Release()
	if got := m.Input(0).Intent; got.Kind != dynamo.Released {
		t.Errorf("after Release intent = %v", got)
	}
	m.Idle()
	if m.State().IsGrappled() || m.State().IsReleased() {
		t.Error("Idle should clear the state")
	}
}
