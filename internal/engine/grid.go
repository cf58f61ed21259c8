package engine

import (
	"math"
	"sort"

	"github.com/piwi3910/ShapePack/internal/model"
)

// Cell addresses one spatial-grid bucket by integer column and row.
type Cell struct {
	X int
	Y int
}

// Grid is the uniform spatial index over placement bounding boxes. It
// stores placement ids only; the geometry stays with the layout that
// owns the placements, so the grid never goes stale on reposition as
// long as Remove and Insert bracket the move.
//
// A bounding box is registered in every cell it touches, which makes
// Query a superset filter: everything spatially near comes back, and
// the caller re-checks real bounding boxes before any exact geometry.
type Grid struct {
	cellSize float64
	cells    map[Cell][]string
	count    int
}

// NewGrid creates a grid with the given cell edge length. Sizes at or
// below zero fall back to 1 to keep the index well defined.
func NewGrid(cellSize float64) *Grid {
	if cellSize <= 0 {
		cellSize = 1
	}
	return &Grid{
		cellSize: cellSize,
		cells:    make(map[Cell][]string),
	}
}

// CellSize returns the edge length of one cell.
func (g *Grid) CellSize() float64 { return g.cellSize }

// Len returns the number of registered placements.
func (g *Grid) Len() int { return g.count }

// CellCount returns the number of non-empty cells.
func (g *Grid) CellCount() int { return len(g.cells) }

// cellRange returns the inclusive cell coordinate range covered by a
// bounding box.
func (g *Grid) cellRange(bbox model.Rect) (minX, minY, maxX, maxY int) {
	minX = int(math.Floor(bbox.MinX / g.cellSize))
	minY = int(math.Floor(bbox.MinY / g.cellSize))
	maxX = int(math.Floor(bbox.MaxX / g.cellSize))
	maxY = int(math.Floor(bbox.MaxY / g.cellSize))
	return minX, minY, maxX, maxY
}

// Insert registers a placement id in every cell its bounding box
// touches.
func (g *Grid) Insert(id string, bbox model.Rect) {
	minX, minY, maxX, maxY := g.cellRange(bbox)
	for x := minX; x <= maxX; x++ {
		for y := minY; y <= maxY; y++ {
			c := Cell{X: x, Y: y}
			g.cells[c] = append(g.cells[c], id)
		}
	}
	g.count++
}

// Remove deregisters a placement id from every cell its bounding box
// touches. The bbox must be the one the id was inserted with. Cells
// left empty are dropped so the map does not accumulate dead keys over
// repeated remove and insert cycles.
func (g *Grid) Remove(id string, bbox model.Rect) {
	minX, minY, maxX, maxY := g.cellRange(bbox)
	removed := false
	for x := minX; x <= maxX; x++ {
		for y := minY; y <= maxY; y++ {
			c := Cell{X: x, Y: y}
			ids := g.cells[c]
			for i, cur := range ids {
				if cur == id {
					g.cells[c] = append(ids[:i], ids[i+1:]...)
					removed = true
					break
				}
			}
			if len(g.cells[c]) == 0 {
				delete(g.cells, c)
			}
		}
	}
	if removed {
		g.count--
	}
}

// Query returns the ids of all placements whose bounding boxes touch
// any cell the query box touches. The result is a superset of the true
// bbox intersections and each id appears exactly once, even when a
// placement spans several queried cells.
func (g *Grid) Query(bbox model.Rect) []string {
	minX, minY, maxX, maxY := g.cellRange(bbox)
	seen := make(map[string]bool)
	var ids []string
	for x := minX; x <= maxX; x++ {
		for y := minY; y <= maxY; y++ {
			for _, id := range g.cells[Cell{X: x, Y: y}] {
				if !seen[id] {
					seen[id] = true
					ids = append(ids, id)
				}
			}
		}
	}
	return ids
}

// CoveredCells returns the cells a bounding box would occupy, sorted
// by column then row.
func (g *Grid) CoveredCells(bbox model.Rect) []Cell {
	minX, minY, maxX, maxY := g.cellRange(bbox)
	var cells []Cell
	for x := minX; x <= maxX; x++ {
		for y := minY; y <= maxY; y++ {
			cells = append(cells, Cell{X: x, Y: y})
		}
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].X != cells[j].X {
			return cells[i].X < cells[j].X
		}
		return cells[i].Y < cells[j].Y
	})
	return cells
}
