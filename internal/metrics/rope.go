package metrics

import (
	"math"

	"github.com/san-kum/grapple/internal/dynamo"
)

// segmentErrors returns |length - target| for each segment of an active frame.
func segmentErrors(pts []dynamo.Vec2, target float64) []float64 {
	if len(pts) < 2 {
		return nil
	}
	out := make([]float64, len(pts)-1)
	for i := range out {
		out[i] = math.Abs(pts[i].DistanceTo(pts[i+1]) - target)
	}
	return out
}

// Stretch is the mean segment length error over all active ticks.
type Stretch struct {
	name    string
	samples int
	total   float64
}

func NewStretch() *Stretch { return &Stretch{name: "stretch"} }

func (s *Stretch) Name() string { return s.name }

func (s *Stretch) Observe(f dynamo.Frame, target float64) {
	errs := segmentErrors(f.Points, target)
	for _, e := range errs {
		s.total += e
		s.samples++
	}
}

func (s *Stretch) Value() float64 {
	if s.samples == 0 {
		return 0
	}
	return s.total / float64(s.samples)
}

func (s *Stretch) Reset() {
	s.samples = 0
	s.total = 0
}

// MaxStretch is the worst single segment error seen.
type MaxStretch struct {
	name string
	max  float64
}

func NewMaxStretch() *MaxStretch { return &MaxStretch{name: "max_stretch"} }

func (m *MaxStretch) Name() string { return m.name }

func (m *MaxStretch) Observe(f dynamo.Frame, target float64) {
	for _, e := range segmentErrors(f.Points, target) {
		m.max = math.Max(m.max, e)
	}
}

func (m *MaxStretch) Value() float64 { return m.max }

func (m *MaxStretch) Reset() { m.max = 0 }

// Contacts counts collision clamps across the run.
type Contacts struct {
	name  string
	total int
}

func NewContacts() *Contacts { return &Contacts{name: "contacts"} }

func (c *Contacts) Name() string { return c.name }

func (c *Contacts) Observe(f dynamo.Frame, _ float64) { c.total += f.Contacts }

func (c *Contacts) Value() float64 { return float64(c.total) }

func (c *Contacts) Reset() { c.total = 0 }

// Sag is the largest distance of any point from the start-end chord.
type Sag struct {
	name string
	max  float64
}

func NewSag() *Sag { return &Sag{name: "sag"} }

func (s *Sag) Name() string { return s.name }

func (s *Sag) Observe(f dynamo.Frame, _ float64) {
	s.max = math.Max(s.max, ChordDeviation(f.Points))
}

func (s *Sag) Value() float64 { return s.max }

func (s *Sag) Reset() { s.max = 0 }

// ActiveRatio is the fraction of ticks with a drawable rope.
type ActiveRatio struct {
	name          string
	ticks, active int
}

func NewActiveRatio() *ActiveRatio { return &ActiveRatio{name: "active_ratio"} }

func (a *ActiveRatio) Name() string { return a.name }

func (a *ActiveRatio) Observe(f dynamo.Frame, _ float64) {
	a.ticks++
	if f.Active() {
		a.active++
	}
}

func (a *ActiveRatio) Value() float64 {
	if a.ticks == 0 {
		return 0
	}
	return float64(a.active) / float64(a.ticks)
}

func (a *ActiveRatio) Reset() {
	a.ticks = 0
	a.active = 0
}

// ChordDeviation returns the maximum perpendicular distance of pts from
// the line through the first and last point.
func ChordDeviation(pts []dynamo.Vec2) float64 {
	if len(pts) < 3 {
		return 0
	}
	a, b := pts[0], pts[len(pts)-1]
	chord := b.Sub(a)
	l := chord.Length()
	worst := 0.0
	for _, p := range pts[1 : len(pts)-1] {
		var d float64
		if l == 0 {
			d = p.DistanceTo(a)
		} else {
			d = math.Abs(chord.Cross(p.Sub(a))) / l
		}
		worst = math.Max(worst, d)
	}
	return worst
}

// Standard returns the metric set attached to CLI runs.
func Standard() []dynamo.Metric {
	return []dynamo.Metric{NewStretch(), NewMaxStretch(), NewContacts(), NewSag(), NewActiveRatio()}
}
