package engine

import (
	"math"
	"testing"

	"github.com/piwi3910/ShapePack/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func circleSpec(r float64) model.ShapeSpec {
	return model.ShapeSpec{Kind: model.KindCircle, Radius: r}
}

func rectSpec(w, h float64) model.ShapeSpec {
	return model.ShapeSpec{Kind: model.KindRectangle, Width: w, Height: h}
}

func triangleSpec(side float64) model.ShapeSpec {
	return model.ShapeSpec{Kind: model.KindTriangle, Side: side}
}

func polygonSpec(sides int, r float64) model.ShapeSpec {
	return model.ShapeSpec{Kind: model.KindPolygon, Sides: sides, Radius: r}
}

func TestPlaceAll_SingleCircleCentered(t *testing.T) {
	eng := New(model.DefaultSettings())

	res, err := eng.PlaceAll([]model.ShapeSpec{circleSpec(50)}, 1000, 1000)

	require.NoError(t, err)
	require.Equal(t, 1, res.Layout.Len())
	p := res.Layout.Placements[0]
	// The first spiral candidate is the area centroid itself.
	assert.InDelta(t, 500.0, p.X, 1e-9)
	assert.InDelta(t, 500.0, p.Y, 1e-9)
	assert.Equal(t, 0.0, p.Rotation)
	assert.Equal(t, model.StatePlaced, res.Statuses[0].State)
	assert.Equal(t, p.ID, res.Statuses[0].PlacementID)
}

func TestPlaceAll_TwoEqualCircles(t *testing.T) {
	eng := New(model.DefaultSettings())

	res, err := eng.PlaceAll([]model.ShapeSpec{circleSpec(50), circleSpec(50)}, 1000, 1000)

	require.NoError(t, err)
	require.Equal(t, 2, res.Layout.Len())
	require.NoError(t, res.Layout.Validate())

	// With the automatic radial step (a quarter of the 100-unit bounding
	// box) the second circle lands on the first ring where the centers
	// are 100 apart, i.e. exactly touching.
	p1 := res.Layout.Placements[0]
	p2 := res.Layout.Placements[1]
	dist := math.Hypot(p2.X-p1.X, p2.Y-p1.Y)
	assert.GreaterOrEqual(t, dist, 100.0-1e-9, "circles must not overlap")
	assert.InDelta(t, 100.0, dist, 1e-6, "second circle should touch the first")
}

func TestPlaceAll_OversizedShapeUnplaced(t *testing.T) {
	eng := New(model.DefaultSettings())

	res, err := eng.PlaceAll([]model.ShapeSpec{circleSpec(50)}, 10, 10)

	require.NoError(t, err)
	assert.Equal(t, 0, res.Layout.Len())
	st := res.Statuses[0]
	assert.Equal(t, model.StateUnplaced, st.State)
	assert.Equal(t, model.ReasonOutOfBounds, st.Reason)
}

func TestPlaceAll_ExactFitRectangle(t *testing.T) {
	// A rectangle sized exactly like the area fits at the centroid; the
	// inclusive bounds comparison must not reject it over float noise.
	eng := New(model.DefaultSettings())

	res, err := eng.PlaceAll([]model.ShapeSpec{rectSpec(100, 80)}, 100, 80)

	require.NoError(t, err)
	require.Equal(t, 1, res.Layout.Len())
	p := res.Layout.Placements[0]
	assert.InDelta(t, 50.0, p.X, 1e-9)
	assert.InDelta(t, 40.0, p.Y, 1e-9)
}

func TestPlaceAll_InvalidSpecSkipped(t *testing.T) {
	eng := New(model.DefaultSettings())

	res, err := eng.PlaceAll([]model.ShapeSpec{circleSpec(-5), circleSpec(40)}, 500, 500)

	require.NoError(t, err)
	assert.Equal(t, 1, res.Layout.Len())

	bad := res.Statuses[0]
	assert.Equal(t, model.StateUnplaced, bad.State)
	assert.Equal(t, model.ReasonInvalidSpec, bad.Reason)
	assert.Contains(t, bad.Detail, "radius")

	good := res.Statuses[1]
	assert.Equal(t, model.StatePlaced, good.State)
}

func TestPlaceAll_StrictSpecsFailsBatch(t *testing.T) {
	settings := model.DefaultSettings()
	settings.StrictSpecs = true
	eng := New(settings)

	_, err := eng.PlaceAll([]model.ShapeSpec{circleSpec(40), circleSpec(-5)}, 500, 500)

	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrInvalidSpec)
	assert.Contains(t, err.Error(), "shape 1")
}

func TestPlaceAll_InvalidArea(t *testing.T) {
	eng := New(model.DefaultSettings())

	_, err := eng.PlaceAll([]model.ShapeSpec{circleSpec(10)}, 0, 100)

	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrInvalidArea)
}

func TestPlaceAll_OverCapacity(t *testing.T) {
	// Five radius-40 circles cannot all fit in a 200x200 area. The ones
	// that fail fit dimension-wise, so they must report an exhausted
	// search, not an out-of-bounds rejection.
	eng := New(model.DefaultSettings())

	specs := []model.ShapeSpec{
		circleSpec(40), circleSpec(40), circleSpec(40), circleSpec(40), circleSpec(40),
	}
	res, err := eng.PlaceAll(specs, 200, 200)

	require.NoError(t, err)
	require.NoError(t, res.Layout.Validate())
	assert.Greater(t, res.PlacedCount(), 0, "some circles should fit")
	assert.Greater(t, res.UnplacedCount(), 0, "not all circles can fit")
	for _, st := range res.Statuses {
		if st.State == model.StateUnplaced {
			assert.Equal(t, model.ReasonExhausted, st.Reason)
		}
	}
}

func TestPlaceAll_MixedKindsKeepInvariants(t *testing.T) {
	eng := New(model.DefaultSettings())

	specs := []model.ShapeSpec{
		circleSpec(50), circleSpec(50), circleSpec(50),
		rectSpec(120, 40), rectSpec(120, 40),
		triangleSpec(80), triangleSpec(80),
		polygonSpec(6, 45), polygonSpec(6, 45),
	}
	res, err := eng.PlaceAll(specs, 1000, 1000)

	require.NoError(t, err)
	assert.Equal(t, len(specs), res.PlacedCount(), "area is large enough for the whole batch")
	require.NoError(t, res.Layout.Validate())

	bounds := res.Layout.Bounds()
	for _, p := range res.Layout.Placements {
		assert.True(t, bounds.ContainsRect(p.BBox), "placement %s bbox outside area", p.ID)
	}
}

func TestPlaceAll_RectanglesNeverRotate(t *testing.T) {
	settings := model.DefaultSettings()
	settings.RotationTrials = 8
	eng := New(settings)

	specs := []model.ShapeSpec{
		rectSpec(100, 40), rectSpec(100, 40), rectSpec(100, 40),
		circleSpec(30),
	}
	res, err := eng.PlaceAll(specs, 600, 600)

	require.NoError(t, err)
	for _, p := range res.Layout.Placements {
		if p.Shape.Kind() == model.KindRectangle || p.Shape.Kind() == model.KindCircle {
			assert.Equal(t, 0.0, p.Rotation, "only triangles and polygons rotate")
		}
	}
}

func TestPlaceAll_RotationUnlocksTightFit(t *testing.T) {
	// A triangle with side 80 spans an 80-wide bounding box upright. In
	// a 75-wide strip it only fits after rotating.
	settings := model.DefaultSettings()
	settings.RotationTrials = 6
	eng := New(settings)

	res, err := eng.PlaceAll([]model.ShapeSpec{triangleSpec(80)}, 75, 200)

	require.NoError(t, err)
	require.Equal(t, 1, res.Layout.Len())
	p := res.Layout.Placements[0]
	assert.NotEqual(t, 0.0, p.Rotation, "upright triangle cannot fit a 75-wide strip")
	require.NoError(t, res.Layout.Validate())
}

func TestPlaceAll_DeterministicAcrossRuns(t *testing.T) {
	// Identical settings and input must reproduce the same geometry.
	// Placement ids are random, so the comparison is positional.
	specs := []model.ShapeSpec{
		circleSpec(50), rectSpec(120, 40), triangleSpec(80), polygonSpec(6, 45), circleSpec(25),
	}

	first, err := New(model.DefaultSettings()).PlaceAll(specs, 1000, 1000)
	require.NoError(t, err)
	second, err := New(model.DefaultSettings()).PlaceAll(specs, 1000, 1000)
	require.NoError(t, err)

	require.Equal(t, first.Layout.Len(), second.Layout.Len())
	for i := range first.Layout.Placements {
		a := first.Layout.Placements[i]
		b := second.Layout.Placements[i]
		assert.Equal(t, a.Shape.Kind(), b.Shape.Kind())
		assert.Equal(t, a.X, b.X)
		assert.Equal(t, a.Y, b.Y)
		assert.Equal(t, a.Rotation, b.Rotation)
	}
}

func TestPlaceAll_SeededJitterIsReproducible(t *testing.T) {
	settings := model.DefaultSettings()
	settings.JitterAmp = 0.3
	settings.Seed = 99

	specs := []model.ShapeSpec{circleSpec(40), circleSpec(40), circleSpec(40)}

	first, err := New(settings).PlaceAll(specs, 500, 500)
	require.NoError(t, err)
	second, err := New(settings).PlaceAll(specs, 500, 500)
	require.NoError(t, err)

	require.NoError(t, first.Layout.Validate())
	require.Equal(t, first.Layout.Len(), second.Layout.Len())
	for i := range first.Layout.Placements {
		assert.Equal(t, first.Layout.Placements[i].X, second.Layout.Placements[i].X)
		assert.Equal(t, first.Layout.Placements[i].Y, second.Layout.Placements[i].Y)
	}
}

func TestPlaceAll_LargestFirstOrdering(t *testing.T) {
	// The big circle is declared last but must be placed first, taking
	// the centroid.
	eng := New(model.DefaultSettings())

	res, err := eng.PlaceAll([]model.ShapeSpec{rectSpec(40, 20), circleSpec(100)}, 1000, 1000)

	require.NoError(t, err)
	st := res.Statuses[1]
	require.Equal(t, model.StatePlaced, st.State)
	p, ok := res.Layout.ByID(st.PlacementID)
	require.True(t, ok)
	assert.InDelta(t, 500.0, p.X, 1e-9)
	assert.InDelta(t, 500.0, p.Y, 1e-9)
}

func TestPlaceAll_InsertionOrdering(t *testing.T) {
	settings := model.DefaultSettings()
	settings.Ordering = model.OrderInsertion
	eng := New(settings)

	res, err := eng.PlaceAll([]model.ShapeSpec{rectSpec(40, 20), circleSpec(100)}, 1000, 1000)

	require.NoError(t, err)
	st := res.Statuses[0]
	require.Equal(t, model.StatePlaced, st.State)
	p, ok := res.Layout.ByID(st.PlacementID)
	require.True(t, ok)
	assert.InDelta(t, 500.0, p.X, 1e-9, "insertion order places the rectangle first, at the centroid")
	assert.InDelta(t, 500.0, p.Y, 1e-9)
}

func TestPlaceAll_ParallelKeepsInvariants(t *testing.T) {
	settings := model.DefaultSettings()
	settings.Workers = 4
	eng := New(settings)

	var specs []model.ShapeSpec
	for i := 0; i < 8; i++ {
		specs = append(specs, circleSpec(40))
	}
	for i := 0; i < 6; i++ {
		specs = append(specs, rectSpec(90, 60))
	}
	for i := 0; i < 6; i++ {
		specs = append(specs, triangleSpec(70))
	}

	res, err := eng.PlaceAll(specs, 1000, 1000)

	require.NoError(t, err)
	require.NoError(t, res.Layout.Validate(), "concurrent placement must never commit an overlap")
	assert.Equal(t, len(specs), res.PlacedCount(), "the area has room for the whole batch")
	for _, st := range res.Statuses {
		assert.Contains(t, []model.PlaceState{model.StatePlaced, model.StateUnplaced}, st.State,
			"every request must reach a terminal state")
	}
}

func TestPlaceAll_CompactPullsInward(t *testing.T) {
	// A deliberately coarse radial step spreads the circles far apart;
	// the compaction pass must pull them toward the centroid without
	// breaking the invariants.
	settings := model.DefaultSettings()
	settings.SpiralRadialStep = 200

	loose, err := New(settings).PlaceAll([]model.ShapeSpec{circleSpec(30), circleSpec(30), circleSpec(30)}, 1000, 1000)
	require.NoError(t, err)

	settings.Compact = true
	tight, err := New(settings).PlaceAll([]model.ShapeSpec{circleSpec(30), circleSpec(30), circleSpec(30)}, 1000, 1000)
	require.NoError(t, err)

	require.NoError(t, tight.Layout.Validate())
	assert.Greater(t, tight.Compacted, 0, "spread-out circles should move")

	spread := func(l model.Layout) float64 {
		total := 0.0
		for _, p := range l.Placements {
			total += math.Hypot(p.X-500, p.Y-500)
		}
		return total
	}
	assert.Less(t, spread(tight.Layout), spread(loose.Layout))
}

func TestPlaceInto_ExtendsLayout(t *testing.T) {
	eng := New(model.DefaultSettings())

	first, err := eng.PlaceAll([]model.ShapeSpec{circleSpec(50)}, 1000, 1000)
	require.NoError(t, err)
	require.Equal(t, 1, first.Layout.Len())
	existing := first.Layout.Placements[0]

	second, err := eng.PlaceInto(&first.Layout, []model.ShapeSpec{circleSpec(50)})
	require.NoError(t, err)

	require.Equal(t, 2, second.Layout.Len())
	require.NoError(t, second.Layout.Validate())

	kept, ok := second.Layout.ByID(existing.ID)
	require.True(t, ok, "existing placement must survive")
	assert.Equal(t, existing.X, kept.X)
	assert.Equal(t, existing.Y, kept.Y)
}

func TestEvolve_Reproducible(t *testing.T) {
	config := GeneticConfig{
		PopulationSize: 8,
		Generations:    5,
		MutationRate:   0.3,
		TournamentSize: 2,
		EliteCount:     1,
		Seed:           7,
	}
	specs := []model.ShapeSpec{
		circleSpec(35), circleSpec(35), circleSpec(35), rectSpec(80, 50), rectSpec(80, 50),
	}

	first, err := New(model.DefaultSettings()).Evolve(specs, 400, 400, config)
	require.NoError(t, err)
	second, err := New(model.DefaultSettings()).Evolve(specs, 400, 400, config)
	require.NoError(t, err)

	require.NoError(t, first.Layout.Validate())
	require.Equal(t, first.Layout.Len(), second.Layout.Len())
	for i := range first.Layout.Placements {
		assert.Equal(t, first.Layout.Placements[i].X, second.Layout.Placements[i].X)
		assert.Equal(t, first.Layout.Placements[i].Y, second.Layout.Placements[i].Y)
	}
}

func TestEvolve_NotWorseThanGreedy(t *testing.T) {
	// The initial population seeds the greedy largest-first order and
	// elitism preserves the best chromosome, so evolution can never
	// place fewer identical circles than the default heuristic.
	specs := []model.ShapeSpec{
		circleSpec(45), circleSpec(45), circleSpec(45),
		circleSpec(45), circleSpec(45), circleSpec(45),
	}
	config := GeneticConfig{
		PopulationSize: 10,
		Generations:    8,
		MutationRate:   0.2,
		TournamentSize: 2,
		EliteCount:     2,
		Seed:           3,
	}

	greedy, err := New(model.DefaultSettings()).PlaceAll(specs, 300, 300)
	require.NoError(t, err)
	evolved, err := New(model.DefaultSettings()).Evolve(specs, 300, 300, config)
	require.NoError(t, err)

	require.NoError(t, evolved.Layout.Validate())
	assert.GreaterOrEqual(t, evolved.PlacedCount(), greedy.PlacedCount())
}

func TestSteps_AutoResolution(t *testing.T) {
	// Two radius-50 circles: cell size tracks the 100-unit bounding box
	// and the radial step is a quarter of its smaller side.
	eng := New(model.DefaultSettings())
	shapes, statuses, err := eng.resolve([]model.ShapeSpec{circleSpec(50), circleSpec(50)})
	require.NoError(t, err)

	cell, radial := eng.steps(shapes, statuses, model.NewLayout(1000, 1000))

	assert.Equal(t, 100.0, cell)
	assert.Equal(t, 25.0, radial)
}

func TestSteps_ExplicitSettingsWin(t *testing.T) {
	settings := model.DefaultSettings()
	settings.CellSize = 64
	settings.SpiralRadialStep = 7
	eng := New(settings)
	shapes, statuses, err := eng.resolve([]model.ShapeSpec{circleSpec(50)})
	require.NoError(t, err)

	cell, radial := eng.steps(shapes, statuses, model.NewLayout(1000, 1000))

	assert.Equal(t, 64.0, cell)
	assert.Equal(t, 7.0, radial)
}

func TestOrder_LargestFirstTieBreak(t *testing.T) {
	eng := New(model.DefaultSettings())
	shapes, statuses, err := eng.resolve([]model.ShapeSpec{
		circleSpec(30), circleSpec(50), circleSpec(30),
	})
	require.NoError(t, err)

	order := eng.order(shapes, statuses)

	require.Equal(t, []int{1, 0, 2}, order, "largest first, equal areas keep request order")
}
