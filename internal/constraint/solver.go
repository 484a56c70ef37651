// Package constraint relaxes the rope's distance constraints.
package constraint

import "github.com/san-kum/grapple/internal/dynamo"

// DefaultIterations is the number of relaxation passes per tick.
const DefaultIterations = 3

// Solver pulls each adjacent pair of points toward Distance apart.
// The first and last points are pinned and never corrected.
type Solver struct {
	Distance   float64
	Iterations int
}

func NewSolver(distance float64, iterations int) *Solver {
	if iterations < 1 {
		iterations = DefaultIterations
	}
	return &Solver{Distance: distance, Iterations: iterations}
}

// Relax runs one left-to-right Gauss-Seidel pass over all segments.
// Each correction is split evenly between the two points unless one of
// them is a chain end. Zero-length segments have no defined direction and
// are skipped.
func (s *Solver) Relax(points []dynamo.Point) {
	last := len(points) - 2
	for i := 0; i <= last; i++ {
		a, b := &points[i], &points[i+1]

		sep := b.Current.Sub(a.Current)
		dist := sep.Length()
		if dist == 0 {
			continue
		}

		half := sep.Scale((s.Distance - dist) / dist * 0.5)
		if i != 0 {
			a.Current = a.Current.Sub(half)
		}
		if i != last {
			b.Current = b.Current.Add(half)
		}
	}
}

// Solve runs the configured number of passes.
func (s *Solver) Solve(points []dynamo.Point) {
	s.RelaxN(points, s.Iterations)
}

func (s *Solver) RelaxN(points []dynamo.Point, passes int) {
	for p := 0; p < passes; p++ {
		s.Relax(points)
	}
}

// MaxError returns the largest absolute deviation of any segment from
// the target distance.
func (s *Solver) MaxError(points []dynamo.Point) float64 {
	worst := 0.0
	for i := 0; i < len(points)-1; i++ {
		e := points[i].Current.DistanceTo(points[i+1].Current) - s.Distance
		if e < 0 {
			e = -e
		}
		if e > worst {
			worst = e
		}
	}
	return worst
}
