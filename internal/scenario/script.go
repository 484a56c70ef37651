package scenario

import (
	"fmt"
	"sort"

	"github.com/san-kum/grapple/internal/dynamo"
)

type Action string

const (
	ActionGrapple Action = "grapple"
	ActionRelease Action = "release"
	ActionIdle    Action = "idle"
)

// Event switches the gameplay state at time At.
type Event struct {
	At     float64     `yaml:"at" json:"at"`
	Action Action      `yaml:"action" json:"action"`
	Point  dynamo.Vec2 `yaml:"point,omitempty" json:"point,omitempty"`
}

// Script replays a timed sequence of grapple events for an owner moving
// at constant velocity.
type Script struct {
	Owner        dynamo.Vec2 `yaml:"owner" json:"owner"`
	Velocity     dynamo.Vec2 `yaml:"velocity,omitempty" json:"velocity,omitempty"`
	LaunchOffset dynamo.Vec2 `yaml:"launch_offset,omitempty" json:"launch_offset,omitempty"`
	Events       []Event     `yaml:"events" json:"events"`
}

// Validate checks event actions and sorts events by time.
func (s *Script) Validate() error {
	for i, e := range s.Events {
		switch e.Action {
		case ActionGrapple, ActionRelease, ActionIdle:
		default:
			return fmt.Errorf("%w: event %d has unknown action %q", dynamo.ErrInvalidConfig, i, e.Action)
		}
		if e.At < 0 {
			return fmt.Errorf("%w: event %d at negative time %f", dynamo.ErrInvalidConfig, i, e.At)
		}
	}
	sort.SliceStable(s.Events, func(i, j int) bool { return s.Events[i].At < s.Events[j].At })
	return nil
}

// OwnerAt returns the owner position at time t.
func (s *Script) OwnerAt(t float64) dynamo.Vec2 {
	return s.Owner.Add(s.Velocity.Scale(t))
}

// StateAt returns the gameplay state in effect at time t: the latest event
// with At <= t. Events must be sorted (see Validate).
func (s *Script) StateAt(t float64) State {
	var st State
	for _, e := range s.Events {
		if e.At > t {
			break
		}
		st = stateFor(e)
	}
	return st
}

// Input implements sim.Driver.
func (s *Script) Input(t float64) dynamo.Input {
	return dynamo.Input{
		Owner:        s.OwnerAt(t),
		LaunchOffset: s.LaunchOffset,
		Intent:       dynamo.IntentOf(s.StateAt(t)),
	}
}

// End returns the time of the last event.
func (s *Script) End() float64 {
	if len(s.Events) == 0 {
		return 0
	}
	return s.Events[len(s.Events)-1].At
}

func stateFor(e Event) State {
	switch e.Action {
	case ActionGrapple:
		return State{Grappled: true, Point: e.Point}
	case ActionRelease:
		return State{Released: true}
	}
	return State{}
}
