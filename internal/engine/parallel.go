package engine

import (
	"math/rand"
	"sync"

	"github.com/piwi3910/ShapePack/internal/model"
)

// placeParallel distributes the placement loop over a pool of workers.
// Shapes are handed out in order, but workers race on the shared
// layout, so the final arrangement is not deterministic across runs.
// The per-request statuses and both layout invariants hold exactly as
// in the sequential path.
//
// Workers search under a read lock and commit under the write lock. A
// pose that passed the read-phase check is re-checked after acquiring
// the write lock, because another worker may have committed a
// conflicting placement in between.
func (e *Engine) placeParallel(layout *model.Layout, grid *Grid, shapes []model.Shape, statuses []model.Status, order []int, space searchSpace) {
	workers := e.Settings.Workers
	if workers > len(order) {
		workers = len(order)
	}
	if workers < 1 {
		workers = 1
	}

	var mu sync.RWMutex
	jobs := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				e.searchShared(layout, grid, shapes[idx], &statuses[idx], &mu, space)
			}
		}()
	}
	for _, idx := range order {
		jobs <- idx
	}
	close(jobs)
	wg.Wait()
}

// searchShared runs one shape's spiral search against the shared run
// state. Each worker owns its status entry outright; only the layout
// and grid need the mutex.
func (e *Engine) searchShared(layout *model.Layout, grid *Grid, s model.Shape, st *model.Status, mu *sync.RWMutex, space searchSpace) {
	st.State = model.StateSearching

	rots := e.rotationsFor(s)
	if !canFit(s, rots, layout) {
		markUnplaced(st, model.ReasonOutOfBounds, "larger than the area in every rotation")
		return
	}

	var rng *rand.Rand
	if e.Settings.JitterAmp > 0 {
		rng = rand.New(rand.NewSource(e.Settings.Seed + int64(st.Index)))
	}

	sp := newSpiral(space.cx, space.cy, space.radial, space.angular, space.maxRadius, e.Settings.JitterAmp, rng)
	sawOverlap := false
	for {
		x, y, ok := sp.next()
		if !ok {
			break
		}
		for _, rot := range rots {
			mu.RLock()
			v := Check(s, x, y, rot, grid, layout)
			mu.RUnlock()
			switch v {
			case VerdictOverlap:
				sawOverlap = true
				continue
			case VerdictOutOfBounds:
				continue
			}

			mu.Lock()
			if Check(s, x, y, rot, grid, layout) == VerdictOK {
				p := model.NewPlacement(s, x, y, rot)
				layout.Add(p)
				grid.Insert(p.ID, p.BBox)
				mu.Unlock()
				st.State = model.StatePlaced
				st.PlacementID = p.ID
				return
			}
			mu.Unlock()
			// Bounds never change, so a failed re-check means another
			// worker claimed this spot first.
			sawOverlap = true
		}
	}
	if sawOverlap {
		markUnplaced(st, model.ReasonExhausted, "no free position within the search bound")
	} else {
		markUnplaced(st, model.ReasonOutOfBounds, "no position keeps the shape inside the area")
	}
}
