// Package collision keeps rope segments out of the environment.
package collision

import "github.com/san-kum/grapple/internal/dynamo"

// Resolver clamps chain points to the first environment contact found
// along each segment.
type Resolver struct {
	Oracle dynamo.Oracle
}

func NewResolver(o dynamo.Oracle) *Resolver {
	return &Resolver{Oracle: o}
}

// Resolve casts a ray from point i toward point i+1 for every segment, in
// index order, and moves point i (current and previous) onto the hit.
// Each ray reads positions as they are at that moment; there is no second
// pass. Hits with non-finite coordinates are ignored. Returns the number of
// clamped points.
func (r *Resolver) Resolve(points []dynamo.Point) int {
	if r.Oracle == nil {
		return 0
	}

	contacts := 0
	for i := 0; i < len(points)-1; i++ {
		origin := points[i].Current
		dir := points[i+1].Current.Sub(origin)

		hit, ok := r.Oracle.Raycast(origin, dir)
		if !ok || !hit.Point.IsValid() {
			continue
		}
		points[i].Place(hit.Point)
		contacts++
	}
	return contacts
}
