package scenario

import "github.com/san-kum/grapple/internal/dynamo"

// State is a plain GrappleState value.
type State struct {
	Grappled bool
	Released bool
	Point    dynamo.Vec2
}

func (s State) IsGrappled() bool          { return s.Grappled }
func (s State) IsReleased() bool          { return s.Released }
func (s State) GrapplePoint() dynamo.Vec2 { return s.Point }

// Manual is a driver whose state is set by the caller, typically from
// keyboard or mouse input.
type Manual struct {
	Owner        dynamo.Vec2
	LaunchOffset dynamo.Vec2
	state        State
}

func NewManual(owner, offset dynamo.Vec2) *Manual {
	return &Manual{Owner: owner, LaunchOffset: offset}
}

func (m *Manual) Grapple(p dynamo.Vec2) { m.state = State{Grappled: true, Point: p} }

func (m *Manual) Release() { m.state = State{Released: true} }

func (m *Manual) Idle() { m.state = State{} }

func (m *Manual) State() State { return m.state }

// Input implements sim.Driver.
func (m *Manual) Input(float64) dynamo.Input {
	return dynamo.Input{
		Owner:        m.Owner,
		LaunchOffset: m.LaunchOffset,
		Intent:       dynamo.IntentOf(m.state),
	}
}
