package model

import (
	"fmt"

	"github.com/google/uuid"
)

// Placement is a shape bound to an accepted position. Placements are
// created only by the engine once every invariant is confirmed and are
// immutable afterwards; re-optimization passes replace them wholesale
// under the same id.
type Placement struct {
	ID       string  `json:"id"`
	Shape    Shape   `json:"shape"`
	X        float64 `json:"x"` // centroid position
	Y        float64 `json:"y"`
	Rotation float64 `json:"rotation,omitempty"` // degrees; zero for circles and rectangles
	BBox     Rect    `json:"bbox"`               // world-space bounding box, fixed at commit
}

func NewPlacement(s Shape, x, y, rotDeg float64) Placement {
	return Placement{
		ID:       uuid.New().String()[:8],
		Shape:    s,
		X:        x,
		Y:        y,
		Rotation: rotDeg,
		BBox:     s.BoundingBoxAt(x, y, rotDeg),
	}
}

// Overlaps reports whether the exact geometries of two placements
// overlap.
func (p Placement) Overlaps(o Placement) bool {
	return p.Shape.Overlaps(p.X, p.Y, p.Rotation, o.Shape, o.X, o.Y, o.Rotation)
}

// Layout is the ordered sequence of accepted placements inside the
// containment area. Placements are owned here; the spatial grid only
// ever holds their ids.
//
// Invariant: no two placements overlap and every placement's exact
// geometry lies within [0,Width]x[0,Height].
type Layout struct {
	Width      float64     `json:"width"`
	Height     float64     `json:"height"`
	Placements []Placement `json:"placements"`

	byID map[string]int
}

func NewLayout(width, height float64) *Layout {
	return &Layout{
		Width:      width,
		Height:     height,
		Placements: []Placement{},
		byID:       map[string]int{},
	}
}

// Bounds returns the containment area as a Rect anchored at the origin.
func (l *Layout) Bounds() Rect {
	return Rect{MinX: 0, MinY: 0, MaxX: l.Width, MaxY: l.Height}
}

// Len returns the number of placements.
func (l *Layout) Len() int { return len(l.Placements) }

// index returns the id index, rebuilding it when the layout came from
// deserialized data.
func (l *Layout) index() map[string]int {
	if l.byID == nil {
		l.byID = make(map[string]int, len(l.Placements))
		for i, p := range l.Placements {
			l.byID[p.ID] = i
		}
	}
	return l.byID
}

// Reindex rebuilds the id index after Placements was mutated directly,
// such as after decoding a layout from JSON.
func (l *Layout) Reindex() {
	l.byID = nil
	l.index()
}

// Add appends a placement.
func (l *Layout) Add(p Placement) {
	l.index()[p.ID] = len(l.Placements)
	l.Placements = append(l.Placements, p)
}

// ByID returns the placement with the given id.
func (l *Layout) ByID(id string) (Placement, bool) {
	i, ok := l.index()[id]
	if !ok {
		return Placement{}, false
	}
	return l.Placements[i], true
}

// Remove deletes the placement with the given id, preserving the order
// of the rest.
func (l *Layout) Remove(id string) (Placement, bool) {
	idx := l.index()
	i, ok := idx[id]
	if !ok {
		return Placement{}, false
	}
	p := l.Placements[i]
	l.Placements = append(l.Placements[:i], l.Placements[i+1:]...)
	delete(idx, id)
	for j := i; j < len(l.Placements); j++ {
		idx[l.Placements[j].ID] = j
	}
	return p, true
}

// Reposition moves the placement with the given id to (x, y), keeping
// its rotation and id. Semantically a remove plus re-add; the bounding
// box is recomputed. The caller is responsible for having verified the
// layout invariants at the new position.
func (l *Layout) Reposition(id string, x, y float64) bool {
	i, ok := l.index()[id]
	if !ok {
		return false
	}
	p := &l.Placements[i]
	p.X = x
	p.Y = y
	p.BBox = p.Shape.BoundingBoxAt(x, y, p.Rotation)
	return true
}

// UsedArea returns the summed exact area of all placements.
func (l *Layout) UsedArea() float64 {
	var total float64
	for _, p := range l.Placements {
		total += p.Shape.Area()
	}
	return total
}

// Density returns the packing density as a percentage of the area.
func (l *Layout) Density() float64 {
	ta := l.Width * l.Height
	if ta == 0 {
		return 0
	}
	return (l.UsedArea() / ta) * 100.0
}

// Validate checks both layout invariants exhaustively: pairwise exact
// overlap and containment of every bounding box within the area. It
// returns the first violation found.
func (l *Layout) Validate() error {
	bounds := l.Bounds()
	for i, p := range l.Placements {
		if !bounds.ContainsRect(p.BBox) {
			return fmt.Errorf("placement %s outside area bounds", p.ID)
		}
		for _, q := range l.Placements[i+1:] {
			if p.Overlaps(q) {
				return fmt.Errorf("placements %s and %s overlap", p.ID, q.ID)
			}
		}
	}
	return nil
}

// PlaceState tracks a shape request through the engine's state machine.
type PlaceState string

const (
	StatePending   PlaceState = "pending"
	StateSearching PlaceState = "searching"
	StatePlaced    PlaceState = "placed"
	StateUnplaced  PlaceState = "unplaced"
)

// RejectReason explains why a request ended unplaced.
type RejectReason string

const (
	ReasonInvalidSpec RejectReason = "invalid_spec" // spec failed validation
	ReasonOutOfBounds RejectReason = "out_of_bounds" // no position keeps the shape inside the area
	ReasonExhausted   RejectReason = "exhausted"     // spiral bound reached without a free position
)

// Status is the per-request outcome, indexed like the input specs.
type Status struct {
	Index       int          `json:"index"`
	Spec        ShapeSpec    `json:"spec"`
	State       PlaceState   `json:"state"`
	PlacementID string       `json:"placement_id,omitempty"`
	Reason      RejectReason `json:"reason,omitempty"`
	Detail      string       `json:"detail,omitempty"`
}

// Result holds the full solution: the layout plus one status per
// requested shape.
type Result struct {
	Layout    Layout   `json:"layout"`
	Statuses  []Status `json:"statuses"`
	Compacted int      `json:"compacted,omitempty"` // placements moved by the density post-pass
}

// PlacedCount returns the number of requests that ended placed.
func (r Result) PlacedCount() int {
	n := 0
	for _, s := range r.Statuses {
		if s.State == StatePlaced {
			n++
		}
	}
	return n
}

// UnplacedCount returns the number of requests that ended unplaced.
func (r Result) UnplacedCount() int {
	return len(r.Statuses) - r.PlacedCount()
}

// Density returns the packing density of the result layout as a
// percentage.
func (r Result) Density() float64 {
	return r.Layout.Density()
}
