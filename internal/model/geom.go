package model

import "math"

// geomEps absorbs float noise in inclusive bounds comparisons.
const geomEps = 1e-9

// Point2D represents a 2D coordinate.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned bounding box given by its min and max corners.
type Rect struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

// Width returns the horizontal extent of the box.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height returns the vertical extent of the box.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Center returns the midpoint of the box.
func (r Rect) Center() Point2D {
	return Point2D{X: (r.MinX + r.MaxX) / 2, Y: (r.MinY + r.MaxY) / 2}
}

// Intersects reports whether the interiors of two boxes intersect.
// Boxes that merely share an edge or corner do not intersect.
func (r Rect) Intersects(o Rect) bool {
	return r.MinX < o.MaxX && r.MaxX > o.MinX && r.MinY < o.MaxY && r.MaxY > o.MinY
}

// ContainsRect reports whether o lies entirely inside r, edges included.
func (r Rect) ContainsRect(o Rect) bool {
	return o.MinX >= r.MinX-geomEps && o.MinY >= r.MinY-geomEps &&
		o.MaxX <= r.MaxX+geomEps && o.MaxY <= r.MaxY+geomEps
}

// ContainsPoint reports whether p lies inside r, edges included.
func (r Rect) ContainsPoint(p Point2D) bool {
	return p.X >= r.MinX-geomEps && p.X <= r.MaxX+geomEps &&
		p.Y >= r.MinY-geomEps && p.Y <= r.MaxY+geomEps
}

// Outline represents a closed convex polygon as a counter-clockwise
// sequence of 2D points. The outline is implicitly closed: the last
// point connects back to the first.
type Outline []Point2D

// BoundingBox returns the axis-aligned box enclosing the outline.
func (o Outline) BoundingBox() Rect {
	if len(o) == 0 {
		return Rect{}
	}
	b := Rect{MinX: o[0].X, MinY: o[0].Y, MaxX: o[0].X, MaxY: o[0].Y}
	for _, p := range o[1:] {
		if p.X < b.MinX {
			b.MinX = p.X
		}
		if p.Y < b.MinY {
			b.MinY = p.Y
		}
		if p.X > b.MaxX {
			b.MaxX = p.X
		}
		if p.Y > b.MaxY {
			b.MaxY = p.Y
		}
	}
	return b
}

// Translate shifts all points by dx, dy.
func (o Outline) Translate(dx, dy float64) Outline {
	result := make(Outline, len(o))
	for i, p := range o {
		result[i] = Point2D{X: p.X + dx, Y: p.Y + dy}
	}
	return result
}

// Transform rotates the outline around the origin by rot radians and
// then shifts it by dx, dy.
func (o Outline) Transform(rot, dx, dy float64) Outline {
	if rot == 0 {
		return o.Translate(dx, dy)
	}
	sin, cos := math.Sincos(rot)
	result := make(Outline, len(o))
	for i, p := range o {
		result[i] = Point2D{
			X: p.X*cos - p.Y*sin + dx,
			Y: p.X*sin + p.Y*cos + dy,
		}
	}
	return result
}

// ContainsPoint reports whether p lies inside the convex outline,
// edges included.
func (o Outline) ContainsPoint(p Point2D) bool {
	for i := range o {
		a := o[i]
		b := o[(i+1)%len(o)]
		cross := (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
		if cross < -geomEps {
			return false
		}
	}
	return len(o) > 0
}

// project returns the min and max of the outline's vertices projected
// onto the axis (ax, ay). The axis need not be normalized.
func (o Outline) project(ax, ay float64) (min, max float64) {
	min = o[0].X*ax + o[0].Y*ay
	max = min
	for _, p := range o[1:] {
		d := p.X*ax + p.Y*ay
		if d < min {
			min = d
		}
		if d > max {
			max = d
		}
	}
	return min, max
}

// hasSeparatingAxis reports whether any edge normal of a separates the
// vertex sets of a and b. Projections that only touch count as separated,
// so outlines sharing an edge do not overlap.
func hasSeparatingAxis(a, b Outline) bool {
	for i := range a {
		p1 := a[i]
		p2 := a[(i+1)%len(a)]
		ax := p1.Y - p2.Y
		ay := p2.X - p1.X
		minA, maxA := a.project(ax, ay)
		minB, maxB := b.project(ax, ay)
		if maxA <= minB || maxB <= minA {
			return true
		}
	}
	return false
}

// outlinesOverlap is the separating-axis test for two convex outlines.
// True only when the interiors intersect; touching is not overlap.
// Full containment of one outline by the other reports true.
func outlinesOverlap(a, b Outline) bool {
	return !hasSeparatingAxis(a, b) && !hasSeparatingAxis(b, a)
}

// circleOutlineOverlap reports whether the open disc of radius r at
// (cx, cy) intersects the convex outline. A tangent circle does not
// overlap; a circle whose center lies inside the outline always does.
func circleOutlineOverlap(cx, cy, r float64, o Outline) bool {
	if o.ContainsPoint(Point2D{X: cx, Y: cy}) {
		return true
	}
	rr := r * r
	for i := range o {
		a := o[i]
		b := o[(i+1)%len(o)]
		if distSqToSegment(cx, cy, a, b) < rr {
			return true
		}
	}
	return false
}

// distSqToSegment returns the squared distance from (px, py) to the
// segment ab.
func distSqToSegment(px, py float64, a, b Point2D) float64 {
	abx := b.X - a.X
	aby := b.Y - a.Y
	apx := px - a.X
	apy := py - a.Y
	lenSq := abx*abx + aby*aby
	t := 0.0
	if lenSq > 0 {
		t = (apx*abx + apy*aby) / lenSq
		if t < 0 {
			t = 0
		} else if t > 1 {
			t = 1
		}
	}
	dx := px - (a.X + t*abx)
	dy := py - (a.Y + t*aby)
	return dx*dx + dy*dy
}

// degToRad converts degrees to radians.
func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}
