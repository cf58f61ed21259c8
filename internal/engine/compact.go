package engine

import (
	"math"

	"github.com/piwi3910/ShapePack/internal/model"
)

// compactMinStep is the smallest centroid-ward move worth attempting.
const compactMinStep = 1e-6

// compact runs one densification pass over the layout. Placements are
// revisited in placement order and nudged toward the area centroid:
// the full jump is tried first, then half of it, and so on, keeping
// the first move the detector accepts. Both layout invariants hold
// after every individual move. Returns the number of placements that
// moved.
func (e *Engine) compact(layout *model.Layout, grid *Grid) int {
	cx := layout.Width / 2
	cy := layout.Height / 2

	ids := make([]string, 0, layout.Len())
	for _, p := range layout.Placements {
		ids = append(ids, p.ID)
	}

	moved := 0
	for _, id := range ids {
		p, ok := layout.ByID(id)
		if !ok {
			continue
		}
		dx := cx - p.X
		dy := cy - p.Y
		dist := math.Hypot(dx, dy)
		if dist < compactMinStep {
			continue
		}

		// Take the placement out of the grid so it cannot collide with
		// itself; the layout keeps it, but the detector only ever sees
		// ids the grid returns.
		grid.Remove(p.ID, p.BBox)

		found := false
		var bestX, bestY float64
		for f := 1.0; f*dist >= compactMinStep; f /= 2 {
			nx := p.X + dx*f
			ny := p.Y + dy*f
			if Check(p.Shape, nx, ny, p.Rotation, grid, layout) == VerdictOK {
				bestX, bestY = nx, ny
				found = true
				break
			}
		}

		if found {
			layout.Reposition(id, bestX, bestY)
			moved++
		}
		cur, _ := layout.ByID(id)
		grid.Insert(cur.ID, cur.BBox)
	}
	return moved
}
