package model

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel errors for request validation.
var (
	ErrInvalidSpec = errors.New("invalid shape spec")
	ErrInvalidArea = errors.New("invalid area dimensions")
)

// ShapeKind identifies the geometric variant of a shape.
type ShapeKind string

const (
	KindCircle    ShapeKind = "circle"    // Radius
	KindRectangle ShapeKind = "rectangle" // Width, Height; axis-aligned, never rotated
	KindTriangle  ShapeKind = "triangle"  // Side; equilateral, realized as a regular 3-gon
	KindPolygon   ShapeKind = "polygon"   // Sides, Radius; regular convex polygon
)

// ShapeSpec is a user-declared shape request: a kind plus the size
// parameters that kind requires. Quantity is a request-file convenience
// expanded to repeated specs before placement.
type ShapeSpec struct {
	Kind     ShapeKind `json:"kind" yaml:"kind"`
	Radius   float64   `json:"radius,omitempty" yaml:"radius,omitempty"` // circle radius or polygon circumradius
	Width    float64   `json:"width,omitempty" yaml:"width,omitempty"`
	Height   float64   `json:"height,omitempty" yaml:"height,omitempty"`
	Side     float64   `json:"side,omitempty" yaml:"side,omitempty"` // equilateral triangle side length
	Sides    int       `json:"sides,omitempty" yaml:"sides,omitempty"`
	Label    string    `json:"label,omitempty" yaml:"label,omitempty"`
	Quantity int       `json:"quantity,omitempty" yaml:"quantity,omitempty"`
}

// Shape is the resolved geometry for a ShapeSpec. The rotation-zero
// bounding box, the origin-centered outline and the derived radii are
// computed once at creation; a Shape is immutable afterwards.
//
// A shape's position always refers to its centroid (circumcenter and
// centroid coincide for every supported kind).
type Shape struct {
	Spec ShapeSpec `json:"spec"`

	baseBBox  Rect    // at rotation 0, centered on the origin
	verts     Outline // origin-centered outline; nil for circles
	encloseR  float64 // radius of the smallest centered disc containing the shape
	inscribeR float64 // radius of the largest centered disc inside the shape
	area      float64
	perimeter float64
}

// NewShape validates spec and resolves its geometry. The returned error
// wraps ErrInvalidSpec when parameters are non-positive or structurally
// invalid.
func NewShape(spec ShapeSpec) (Shape, error) {
	s := Shape{Spec: spec}
	switch spec.Kind {
	case KindCircle:
		r := spec.Radius
		if r <= 0 {
			return Shape{}, fmt.Errorf("%w: circle radius must be positive, got %g", ErrInvalidSpec, r)
		}
		s.baseBBox = Rect{MinX: -r, MinY: -r, MaxX: r, MaxY: r}
		s.encloseR = r
		s.inscribeR = r
		s.area = math.Pi * r * r
		s.perimeter = 2 * math.Pi * r

	case KindRectangle:
		w, h := spec.Width, spec.Height
		if w <= 0 || h <= 0 {
			return Shape{}, fmt.Errorf("%w: rectangle dimensions must be positive, got %gx%g", ErrInvalidSpec, w, h)
		}
		s.baseBBox = Rect{MinX: -w / 2, MinY: -h / 2, MaxX: w / 2, MaxY: h / 2}
		s.verts = Outline{
			{X: -w / 2, Y: -h / 2},
			{X: w / 2, Y: -h / 2},
			{X: w / 2, Y: h / 2},
			{X: -w / 2, Y: h / 2},
		}
		s.encloseR = math.Hypot(w, h) / 2
		s.inscribeR = math.Min(w, h) / 2
		s.area = w * h
		s.perimeter = 2 * (w + h)

	case KindTriangle:
		side := spec.Side
		if side <= 0 {
			return Shape{}, fmt.Errorf("%w: triangle side must be positive, got %g", ErrInvalidSpec, side)
		}
		r := side / math.Sqrt(3)
		s.verts = regularVerts(3, r)
		s.baseBBox = s.verts.BoundingBox()
		s.encloseR = r
		s.inscribeR = r / 2
		s.area = math.Sqrt(3) / 4 * side * side
		s.perimeter = 3 * side

	case KindPolygon:
		n, r := spec.Sides, spec.Radius
		if n < 3 {
			return Shape{}, fmt.Errorf("%w: polygon needs at least 3 sides, got %d", ErrInvalidSpec, n)
		}
		if r <= 0 {
			return Shape{}, fmt.Errorf("%w: polygon radius must be positive, got %g", ErrInvalidSpec, r)
		}
		s.verts = regularVerts(n, r)
		s.baseBBox = s.verts.BoundingBox()
		s.encloseR = r
		s.inscribeR = r * math.Cos(math.Pi/float64(n))
		s.area = 0.5 * float64(n) * r * r * math.Sin(2*math.Pi/float64(n))
		s.perimeter = 2 * float64(n) * r * math.Sin(math.Pi/float64(n))

	default:
		return Shape{}, fmt.Errorf("%w: unknown kind %q", ErrInvalidSpec, spec.Kind)
	}
	return s, nil
}

// regularVerts builds the counter-clockwise vertices of a regular n-gon
// with circumradius r, vertex 0 pointing up.
func regularVerts(n int, r float64) Outline {
	verts := make(Outline, n)
	for i := 0; i < n; i++ {
		sin, cos := math.Sincos(math.Pi/2 + 2*math.Pi*float64(i)/float64(n))
		verts[i] = Point2D{X: r * cos, Y: r * sin}
	}
	return verts
}

// Kind returns the shape's geometric variant.
func (s Shape) Kind() ShapeKind { return s.Spec.Kind }

// Area returns the exact shape area.
func (s Shape) Area() float64 { return s.area }

// Perimeter returns the exact shape perimeter.
func (s Shape) Perimeter() float64 { return s.perimeter }

// EnclosingRadius returns the radius of the smallest centered disc that
// contains the shape at any rotation.
func (s Shape) EnclosingRadius() float64 { return s.encloseR }

// InscribedRadius returns the radius of the largest centered disc fully
// inside the shape at any rotation.
func (s Shape) InscribedRadius() float64 { return s.inscribeR }

// Rotatable reports whether rotation trials make sense for the kind.
// Circles are rotation-invariant and rectangles stay axis-aligned.
func (s Shape) Rotatable() bool {
	return s.Spec.Kind == KindTriangle || s.Spec.Kind == KindPolygon
}

// BoundingBoxAt returns the axis-aligned bounding box of the shape
// centered at (x, y) with the given rotation in degrees. The box always
// contains the exact geometry; for polygonal kinds it is tight.
func (s Shape) BoundingBoxAt(x, y, rotDeg float64) Rect {
	if s.verts == nil || rotDeg == 0 {
		return Rect{
			MinX: s.baseBBox.MinX + x,
			MinY: s.baseBBox.MinY + y,
			MaxX: s.baseBBox.MaxX + x,
			MaxY: s.baseBBox.MaxY + y,
		}
	}
	sin, cos := math.Sincos(degToRad(rotDeg))
	b := Rect{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}
	for _, p := range s.verts {
		px := p.X*cos - p.Y*sin
		py := p.X*sin + p.Y*cos
		if px < b.MinX {
			b.MinX = px
		}
		if py < b.MinY {
			b.MinY = py
		}
		if px > b.MaxX {
			b.MaxX = px
		}
		if py > b.MaxY {
			b.MaxY = py
		}
	}
	b.MinX += x
	b.MinY += y
	b.MaxX += x
	b.MaxY += y
	return b
}

// OutlineAt returns the shape's outline centered at (x, y) with the
// given rotation in degrees. Circles have no outline and return nil.
func (s Shape) OutlineAt(x, y, rotDeg float64) Outline {
	if s.verts == nil {
		return nil
	}
	return s.verts.Transform(degToRad(rotDeg), x, y)
}

// ContainsPoint reports whether p lies inside the shape placed at
// (x, y) with the given rotation, boundary included.
func (s Shape) ContainsPoint(x, y, rotDeg float64, p Point2D) bool {
	if s.Spec.Kind == KindCircle {
		dx := p.X - x
		dy := p.Y - y
		r := s.Spec.Radius + geomEps
		return dx*dx+dy*dy <= r*r
	}
	return s.OutlineAt(x, y, rotDeg).ContainsPoint(p)
}

// Overlaps is the exact overlap predicate between this shape placed at
// (x, y, rotDeg) and other placed at (ox, oy, orotDeg). Interiors must
// intersect; touching edges or tangent circles are not overlap. The
// predicate is symmetric in its two shapes.
func (s Shape) Overlaps(x, y, rotDeg float64, other Shape, ox, oy, orotDeg float64) bool {
	sCircle := s.Spec.Kind == KindCircle
	oCircle := other.Spec.Kind == KindCircle
	switch {
	case sCircle && oCircle:
		dx := ox - x
		dy := oy - y
		sum := s.Spec.Radius + other.Spec.Radius
		return dx*dx+dy*dy < sum*sum
	case sCircle:
		return circleOutlineOverlap(x, y, s.Spec.Radius, other.OutlineAt(ox, oy, orotDeg))
	case oCircle:
		return circleOutlineOverlap(ox, oy, other.Spec.Radius, s.OutlineAt(x, y, rotDeg))
	case s.Spec.Kind == KindRectangle && other.Spec.Kind == KindRectangle && rotDeg == 0 && orotDeg == 0:
		return s.BoundingBoxAt(x, y, 0).Intersects(other.BoundingBoxAt(ox, oy, 0))
	default:
		return outlinesOverlap(s.OutlineAt(x, y, rotDeg), other.OutlineAt(ox, oy, orotDeg))
	}
}
