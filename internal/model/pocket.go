package model

import (
	"math"
	"sort"
)

// Pocket represents an approximately empty axis-aligned region of a
// layout, usable for further placements.
type Pocket struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Area returns the area of the pocket.
func (p Pocket) Area() float64 {
	return p.Width * p.Height
}

// Fits reports whether a shape's rotation-zero bounding box fits inside
// the pocket.
func (p Pocket) Fits(s Shape) bool {
	bb := s.BoundingBoxAt(0, 0, 0)
	return bb.Width() <= p.Width+geomEps && bb.Height() <= p.Height+geomEps
}

// FindPockets rasterizes the layout at the given cell size and merges
// runs of empty cells into rectangular pockets, largest first. A cell
// touched by any placement bounding box counts as occupied, so pockets
// are conservative: everything inside one is truly empty. Pockets
// narrower than minDim on either side are dropped as unusable.
func FindPockets(l *Layout, cellSize, minDim float64) []Pocket {
	if cellSize <= 0 || l.Width <= 0 || l.Height <= 0 {
		return nil
	}
	cols := int(math.Ceil(l.Width / cellSize))
	rows := int(math.Ceil(l.Height / cellSize))

	occupied := make([][]bool, rows)
	consumed := make([][]bool, rows)
	for i := range occupied {
		occupied[i] = make([]bool, cols)
		consumed[i] = make([]bool, cols)
	}
	for _, p := range l.Placements {
		x0 := clampCell(int(math.Floor(p.BBox.MinX/cellSize)), cols)
		x1 := clampCell(int(math.Floor(p.BBox.MaxX/cellSize)), cols)
		y0 := clampCell(int(math.Floor(p.BBox.MinY/cellSize)), rows)
		y1 := clampCell(int(math.Floor(p.BBox.MaxY/cellSize)), rows)
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				occupied[y][x] = true
			}
		}
	}

	var pockets []Pocket
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			if occupied[y][x] || consumed[y][x] {
				continue
			}
			x2 := x
			for x2+1 < cols && !occupied[y][x2+1] && !consumed[y][x2+1] {
				x2++
			}
			y2 := y
			for y2+1 < rows && spanFree(occupied, consumed, y2+1, x, x2) {
				y2++
			}
			for yy := y; yy <= y2; yy++ {
				for xx := x; xx <= x2; xx++ {
					consumed[yy][xx] = true
				}
			}
			px := float64(x) * cellSize
			py := float64(y) * cellSize
			w := math.Min(float64(x2+1)*cellSize, l.Width) - px
			h := math.Min(float64(y2+1)*cellSize, l.Height) - py
			if w >= minDim && h >= minDim {
				pockets = append(pockets, Pocket{X: px, Y: py, Width: w, Height: h})
			}
		}
	}

	sort.Slice(pockets, func(i, j int) bool {
		return pockets[i].Area() > pockets[j].Area()
	})
	return pockets
}

func clampCell(c, n int) int {
	if c < 0 {
		return 0
	}
	if c >= n {
		return n - 1
	}
	return c
}

func spanFree(occupied, consumed [][]bool, y, x0, x1 int) bool {
	for x := x0; x <= x1; x++ {
		if occupied[y][x] || consumed[y][x] {
			return false
		}
	}
	return true
}
