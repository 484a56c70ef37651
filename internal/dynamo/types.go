package dynamo

import "fmt"

// Point is one Verlet particle. Velocity is implicit in Current-Prev.
type Point struct {
	Current Vec2
	Prev    Vec2
}

// Velocity returns the implied per-tick displacement.
func (p Point) Velocity() Vec2 { return p.Current.Sub(p.Prev) }

// Place sets both positions, leaving the point at rest.
func (p *Point) Place(at Vec2) {
	p.Current = at
	p.Prev = at
}

// Hit is the first intersection reported by an Oracle.
type Hit struct {
	Point  Vec2
	Normal Vec2
}

// Oracle answers first-hit queries along the finite segment
// origin .. origin+direction. It must not block.
type Oracle interface {
	Raycast(origin, direction Vec2) (Hit, bool)
}

// OracleFunc adapts a plain function to Oracle.
type OracleFunc func(origin, direction Vec2) (Hit, bool)

func (f OracleFunc) Raycast(origin, direction Vec2) (Hit, bool) { return f(origin, direction) }

// GrappleState is the capability the gameplay layer exposes to the rope.
type GrappleState interface {
	IsGrappled() bool
	IsReleased() bool
	GrapplePoint() Vec2
}

type IntentKind uint8

const (
	Neither IntentKind = iota
	Grappled
	Released
)

func (k IntentKind) String() string {
	switch k {
	case Grappled:
		return "grappled"
	case Released:
		return "released"
	default:
		return "neither"
	}
}

// Intent is the three-way grapple signal. Point is only meaningful for Grappled.
type Intent struct {
	Kind  IntentKind
	Point Vec2
}

func GrappleAt(p Vec2) Intent { return Intent{Kind: Grappled, Point: p} }

func Release() Intent { return Intent{Kind: Released} }

// IntentOf reads a GrappleState. Release wins over grapple when both are set.
func IntentOf(gs GrappleState) Intent {
	if gs == nil {
		return Intent{}
	}
	switch {
	case gs.IsReleased():
		return Release()
	case gs.IsGrappled():
		return GrappleAt(gs.GrapplePoint())
	}
	return Intent{}
}

func (i Intent) String() string {
	if i.Kind == Grappled {
		return fmt.Sprintf("grappled(%.2f, %.2f)", i.Point.X, i.Point.Y)
	}
	return i.Kind.String()
}

// Input is everything the host supplies for one tick.
type Input struct {
	Owner        Vec2
	LaunchOffset Vec2
	Intent       Intent
}

// Frame is the renderer-facing output of one tick.
type Frame struct {
	Tick       int
	Time       float64
	RopeLength float64
	Contacts   int
	Points     []Vec2
}

// Active reports whether the frame has anything to draw.
func (f Frame) Active() bool { return len(f.Points) > 0 }

type Metric interface {
	Name() string
	Observe(f Frame, target float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnTick(f Frame)
}

type Config struct {
	Dt            float64
	Duration      float64
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Dt:            1.0 / 60.0,
		Duration:      5.0,
		ValidateState: true,
	}
}

type Result struct {
	Frames     []Frame
	Metrics    map[string]float64
	Errors     []error
	TicksTaken int
}

type SimError struct {
	Time    float64
	Tick    int
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("tick %d (t=%.4f): %s", e.Tick, e.Time, e.Message)
}
