package sim

import (
	"github.com/san-kum/grapple/internal/constraint"
	"github.com/san-kum/grapple/internal/control"
	"github.com/san-kum/grapple/internal/dynamo"
)

const DefaultPoints = 32

// Params are fixed for the simulator's lifetime.
type Params struct {
	Points           int
	Distance         float64
	Gravity          dynamo.Vec2
	ExtendSpeed      float64
	RetractSpeed     float64
	RetractThreshold float64
	Iterations       int
	Anchor           dynamo.Vec2
}

func DefaultParams() Params {
	return Params{
		Points:           DefaultPoints,
		Distance:         1.0,
		Gravity:          dynamo.V(0, 10),
		ExtendSpeed:      control.DefaultExtendSpeed,
		RetractSpeed:     control.DefaultRetractSpeed,
		RetractThreshold: control.DefaultRetractThreshold,
		Iterations:       constraint.DefaultIterations,
	}
}

// Driver supplies host input for the tick starting at time t.
type Driver interface {
	Input(t float64) dynamo.Input
}

type DriverFunc func(t float64) dynamo.Input

func (f DriverFunc) Input(t float64) dynamo.Input { return f(t) }
