package engine

import (
	"github.com/piwi3910/ShapePack/internal/model"
)

// Verdict classifies a candidate pose against the layout invariants.
type Verdict int

const (
	VerdictOK          Verdict = iota // pose violates no invariant
	VerdictOverlap                    // exact geometry intersects an existing placement
	VerdictOutOfBounds                // bounding box leaves the containment area
)

func (v Verdict) String() string {
	switch v {
	case VerdictOverlap:
		return "overlap"
	case VerdictOutOfBounds:
		return "out_of_bounds"
	default:
		return "ok"
	}
}

// Check decides whether shape s posed at (x, y, rotDeg) may join the
// layout. The test runs in two phases: the grid narrows the layout to
// spatially nearby placements and their stored bounding boxes discard
// most of those, so the exact geometry predicate only ever runs on
// pairs whose boxes genuinely intersect.
//
// Between the bbox phase and the exact phase two radius filters settle
// the easy pairs: centers further apart than the summed enclosing
// radii cannot overlap, centers closer than the summed inscribed radii
// always do. For circle pairs these filters are the exact predicate.
//
// Bounds are verified last, so a pose that both overlaps and leaves
// the area reports the overlap.
func Check(s model.Shape, x, y, rotDeg float64, g *Grid, lay *model.Layout) Verdict {
	bbox := s.BoundingBoxAt(x, y, rotDeg)
	for _, id := range g.Query(bbox) {
		p, ok := lay.ByID(id)
		if !ok {
			continue
		}
		if !bbox.Intersects(p.BBox) {
			continue
		}
		dx := p.X - x
		dy := p.Y - y
		distSq := dx*dx + dy*dy
		if enc := s.EnclosingRadius() + p.Shape.EnclosingRadius(); distSq >= enc*enc {
			continue
		}
		if ins := s.InscribedRadius() + p.Shape.InscribedRadius(); distSq < ins*ins {
			return VerdictOverlap
		}
		if s.Overlaps(x, y, rotDeg, p.Shape, p.X, p.Y, p.Rotation) {
			return VerdictOverlap
		}
	}
	if !lay.Bounds().ContainsRect(bbox) {
		return VerdictOutOfBounds
	}
	return VerdictOK
}
