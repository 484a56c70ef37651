package control

import "github.com/san-kum/grapple/internal/dynamo"

const (
	DefaultExtendSpeed      = 40.0
	DefaultRetractSpeed     = 40.0
	DefaultRetractThreshold = 1.0
)

// Endpoints drives the two live rope ends from the gameplay signal.
// It is the only writer of the rope length; a length of zero means the
// rope is retracted.
type Endpoints struct {
	ExtendSpeed      float64
	RetractSpeed     float64
	RetractThreshold float64

	start, end, endTarget dynamo.Vec2
	length                float64
}

// NewEndpoints returns a retracted controller with both ends at anchor.
func NewEndpoints(anchor dynamo.Vec2, extendSpeed, retractSpeed float64) *Endpoints {
	return &Endpoints{
		ExtendSpeed:      extendSpeed,
		RetractSpeed:     retractSpeed,
		RetractThreshold: DefaultRetractThreshold,
		start:            anchor,
		end:              anchor,
		endTarget:        anchor,
	}
}

// Update recomputes the anchor from the owner and moves the rope end
// toward its target. Neither-intent ticks only refresh the anchor.
func (e *Endpoints) Update(in dynamo.Input, dt float64) {
	e.start = in.Owner.Add(in.LaunchOffset)

	switch in.Intent.Kind {
	case dynamo.Released:
		e.endTarget = e.start
		if e.end.DistanceTo(e.endTarget) > e.RetractThreshold {
			e.end = e.end.Lerp(e.endTarget, e.RetractSpeed*dt)
		} else {
			e.length = 0
		}
	case dynamo.Grappled:
		e.endTarget = in.Intent.Point
		e.end = e.end.Lerp(e.endTarget, e.ExtendSpeed*dt)
		e.length = e.start.DistanceTo(e.end)
	}
}

func (e *Endpoints) Start() dynamo.Vec2 { return e.start }

func (e *Endpoints) End() dynamo.Vec2 { return e.end }

func (e *Endpoints) Target() dynamo.Vec2 { return e.endTarget }

// Length is the straight-line rope length as of the last grapple update.
func (e *Endpoints) Length() float64 { return e.length }

func (e *Endpoints) Active() bool { return e.length != 0 }
