package engine

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/piwi3910/ShapePack/internal/model"
)

// rotationStepDeg is the fixed angle between rotation trials for
// rotatable shapes.
const rotationStepDeg = 15.0

// fitEps absorbs float noise when comparing shape dimensions against
// the area dimensions, so a shape sized exactly like the area fits.
const fitEps = 1e-9

// Engine places shape requests into a bounded area. Every request runs
// through the same pipeline: resolve the spec, order the batch, then
// spiral-search outward from the area centroid for the first pose the
// overlap detector accepts.
type Engine struct {
	Settings model.Settings
}

func New(settings model.Settings) *Engine {
	return &Engine{Settings: settings}
}

// PlaceAll solves a batch of shape requests in a fresh area of the
// given dimensions. The returned statuses are indexed like specs; the
// layout holds only the requests that ended placed.
func (e *Engine) PlaceAll(specs []model.ShapeSpec, width, height float64) (model.Result, error) {
	if width <= 0 || height <= 0 {
		return model.Result{}, fmt.Errorf("%w: got %gx%g", model.ErrInvalidArea, width, height)
	}
	return e.PlaceInto(model.NewLayout(width, height), specs)
}

// PlaceInto places additional shape requests into an existing layout,
// so a solved layout can be extended later. The spatial grid is rebuilt
// from the layout's placements before the search starts; existing
// placements are never moved unless compaction is enabled.
func (e *Engine) PlaceInto(layout *model.Layout, specs []model.ShapeSpec) (model.Result, error) {
	if layout == nil || layout.Width <= 0 || layout.Height <= 0 {
		return model.Result{}, fmt.Errorf("%w: layout area must be positive", model.ErrInvalidArea)
	}
	shapes, statuses, err := e.resolve(specs)
	if err != nil {
		return model.Result{}, err
	}
	return e.run(layout, shapes, statuses, e.order(shapes, statuses)), nil
}

// resolve turns specs into shapes and seeds one pending status per
// request. Invalid specs either fail the whole batch (strict mode) or
// are marked unplaced up front and skipped by the search.
func (e *Engine) resolve(specs []model.ShapeSpec) ([]model.Shape, []model.Status, error) {
	shapes := make([]model.Shape, len(specs))
	statuses := make([]model.Status, len(specs))
	for i, spec := range specs {
		statuses[i] = model.Status{Index: i, Spec: spec, State: model.StatePending}
		s, err := model.NewShape(spec)
		if err != nil {
			if e.Settings.StrictSpecs {
				return nil, nil, fmt.Errorf("shape %d: %w", i, err)
			}
			statuses[i].State = model.StateUnplaced
			statuses[i].Reason = model.ReasonInvalidSpec
			statuses[i].Detail = err.Error()
			continue
		}
		shapes[i] = s
	}
	return shapes, statuses, nil
}

// order returns the pending request indices in placement order.
// Largest-first sorts by exact area descending; equal areas keep their
// request order so runs stay deterministic.
func (e *Engine) order(shapes []model.Shape, statuses []model.Status) []int {
	order := make([]int, 0, len(shapes))
	for i := range shapes {
		if statuses[i].State == model.StatePending {
			order = append(order, i)
		}
	}
	if e.Settings.Ordering == model.OrderLargestFirst {
		sort.Slice(order, func(i, j int) bool {
			a, b := order[i], order[j]
			if shapes[a].Area() != shapes[b].Area() {
				return shapes[a].Area() > shapes[b].Area()
			}
			return a < b
		})
	}
	return order
}

// steps resolves the automatic grid cell size and spiral radial step
// from the shape mix. The cell size defaults to the largest
// bounding-box side in play, so any single shape touches at most four
// cells; the radial step defaults to a quarter of the smallest
// bounding-box side, so the spiral cannot step over a gap that side
// would fit through.
func (e *Engine) steps(shapes []model.Shape, statuses []model.Status, layout *model.Layout) (cell, radial float64) {
	cell = e.Settings.CellSize
	radial = e.Settings.SpiralRadialStep
	if cell > 0 && radial > 0 {
		return cell, radial
	}

	maxSide := 0.0
	minSide := math.Inf(1)
	for i, s := range shapes {
		if statuses[i].State != model.StatePending {
			continue
		}
		b := s.BoundingBoxAt(0, 0, 0)
		maxSide = math.Max(maxSide, math.Max(b.Width(), b.Height()))
		minSide = math.Min(minSide, math.Min(b.Width(), b.Height()))
	}
	for _, p := range layout.Placements {
		maxSide = math.Max(maxSide, math.Max(p.BBox.Width(), p.BBox.Height()))
	}

	if cell <= 0 {
		cell = maxSide
		if cell <= 0 {
			cell = math.Min(layout.Width, layout.Height)
		}
	}
	if radial <= 0 {
		if math.IsInf(minSide, 1) {
			radial = cell / 4
		} else {
			radial = minSide / 4
		}
	}
	return cell, radial
}

// searchSpace carries the resolved spiral geometry for one run.
type searchSpace struct {
	cx, cy    float64
	radial    float64
	angular   float64 // radians
	maxRadius float64
}

// run executes the placement loop over an explicit order, then the
// optional compaction pass. The caller has already validated the area
// and resolved the shapes.
func (e *Engine) run(layout *model.Layout, shapes []model.Shape, statuses []model.Status, order []int) model.Result {
	cell, radial := e.steps(shapes, statuses, layout)
	layout.Reindex()
	grid := NewGrid(cell)
	for _, p := range layout.Placements {
		grid.Insert(p.ID, p.BBox)
	}

	angularDeg := e.Settings.SpiralAngularStep
	if angularDeg <= 0 {
		angularDeg = model.DefaultSettings().SpiralAngularStep
	}
	space := searchSpace{
		cx:        layout.Width / 2,
		cy:        layout.Height / 2,
		radial:    radial,
		angular:   angularDeg * math.Pi / 180,
		maxRadius: math.Hypot(layout.Width, layout.Height),
	}

	if e.Settings.Workers > 1 {
		e.placeParallel(layout, grid, shapes, statuses, order, space)
	} else {
		e.placeSequential(layout, grid, shapes, statuses, order, space)
	}

	res := model.Result{Statuses: statuses}
	if e.Settings.Compact {
		res.Compacted = e.compact(layout, grid)
	}
	res.Layout = *layout
	return res
}

// placeSequential runs the search inline, one shape at a time, in the
// given order. Single-worker runs take this path and are fully
// deterministic for a fixed seed.
func (e *Engine) placeSequential(layout *model.Layout, grid *Grid, shapes []model.Shape, statuses []model.Status, order []int, space searchSpace) {
	var rng *rand.Rand
	if e.Settings.JitterAmp > 0 {
		rng = rand.New(rand.NewSource(e.Settings.Seed))
	}

	for _, idx := range order {
		s := shapes[idx]
		st := &statuses[idx]
		st.State = model.StateSearching

		rots := e.rotationsFor(s)
		if !canFit(s, rots, layout) {
			markUnplaced(st, model.ReasonOutOfBounds, "larger than the area in every rotation")
			continue
		}

		sp := newSpiral(space.cx, space.cy, space.radial, space.angular, space.maxRadius, e.Settings.JitterAmp, rng)
		sawOverlap := false
		placed := false
		for !placed {
			x, y, ok := sp.next()
			if !ok {
				break
			}
			for _, rot := range rots {
				switch Check(s, x, y, rot, grid, layout) {
				case VerdictOK:
					p := model.NewPlacement(s, x, y, rot)
					layout.Add(p)
					grid.Insert(p.ID, p.BBox)
					st.State = model.StatePlaced
					st.PlacementID = p.ID
					placed = true
				case VerdictOverlap:
					sawOverlap = true
				}
				if placed {
					break
				}
			}
		}
		if !placed {
			if sawOverlap {
				markUnplaced(st, model.ReasonExhausted, "no free position within the search bound")
			} else {
				markUnplaced(st, model.ReasonOutOfBounds, "no position keeps the shape inside the area")
			}
		}
	}
}

// rotationsFor returns the rotation angles to try for a shape, in
// trial order. Circles and rectangles only ever try zero.
func (e *Engine) rotationsFor(s model.Shape) []float64 {
	if !s.Rotatable() || e.Settings.RotationTrials <= 1 {
		return []float64{0}
	}
	rots := make([]float64, e.Settings.RotationTrials)
	for i := range rots {
		rots[i] = float64(i) * rotationStepDeg
	}
	return rots
}

// canFit reports whether any trial rotation yields a bounding box that
// fits the area dimensions at all. Shapes that fail are rejected
// without a search.
func canFit(s model.Shape, rots []float64, layout *model.Layout) bool {
	for _, rot := range rots {
		b := s.BoundingBoxAt(0, 0, rot)
		if b.Width() <= layout.Width+fitEps && b.Height() <= layout.Height+fitEps {
			return true
		}
	}
	return false
}

func markUnplaced(st *model.Status, reason model.RejectReason, detail string) {
	st.State = model.StateUnplaced
	st.Reason = reason
	st.Detail = detail
}
