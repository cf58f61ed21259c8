package model

import (
	"errors"
	"math"
	"testing"
)

func TestNewShapeRejectsInvalidSpecs(t *testing.T) {
	bad := []ShapeSpec{
		{Kind: KindCircle, Radius: 0},
		{Kind: KindCircle, Radius: -5},
		{Kind: KindRectangle, Width: 0, Height: 10},
		{Kind: KindRectangle, Width: 10, Height: -1},
		{Kind: KindTriangle, Side: 0},
		{Kind: KindPolygon, Sides: 2, Radius: 10},
		{Kind: KindPolygon, Sides: 6, Radius: 0},
		{Kind: "blob", Radius: 10},
		{},
	}
	for _, spec := range bad {
		_, err := NewShape(spec)
		if err == nil {
			t.Errorf("expected error for %+v", spec)
			continue
		}
		if !errors.Is(err, ErrInvalidSpec) {
			t.Errorf("error for %+v should wrap ErrInvalidSpec, got %v", spec, err)
		}
	}
}

func TestNewShapeCircle(t *testing.T) {
	s, err := NewShape(ShapeSpec{Kind: KindCircle, Radius: 50})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(s.Area()-math.Pi*2500) > 1e-9 {
		t.Errorf("expected area %g, got %g", math.Pi*2500, s.Area())
	}
	if math.Abs(s.Perimeter()-2*math.Pi*50) > 1e-9 {
		t.Errorf("expected perimeter %g, got %g", 2*math.Pi*50, s.Perimeter())
	}
	if s.EnclosingRadius() != 50 || s.InscribedRadius() != 50 {
		t.Error("circle enclosing and inscribed radii should equal the radius")
	}
	if s.Rotatable() {
		t.Error("circles should not be rotatable")
	}
}

func TestNewShapeRectangle(t *testing.T) {
	s, err := NewShape(ShapeSpec{Kind: KindRectangle, Width: 120, Height: 40})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Area() != 4800 {
		t.Errorf("expected area 4800, got %g", s.Area())
	}
	if s.Perimeter() != 320 {
		t.Errorf("expected perimeter 320, got %g", s.Perimeter())
	}
	// Diagonal / 2 encloses, short side / 2 inscribes.
	if math.Abs(s.EnclosingRadius()-math.Hypot(120, 40)/2) > 1e-9 {
		t.Errorf("unexpected enclosing radius %g", s.EnclosingRadius())
	}
	if s.InscribedRadius() != 20 {
		t.Errorf("expected inscribed radius 20, got %g", s.InscribedRadius())
	}
	if s.Rotatable() {
		t.Error("rectangles stay axis-aligned")
	}
}

func TestNewShapeTriangle(t *testing.T) {
	s, err := NewShape(ShapeSpec{Kind: KindTriangle, Side: 80})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Equilateral: area = sqrt(3)/4 * side^2 = 2771.28...
	want := math.Sqrt(3) / 4 * 80 * 80
	if math.Abs(s.Area()-want) > 1e-9 {
		t.Errorf("expected area %g, got %g", want, s.Area())
	}
	if s.Perimeter() != 240 {
		t.Errorf("expected perimeter 240, got %g", s.Perimeter())
	}
	// Circumradius side/sqrt(3), inradius half of that.
	r := 80 / math.Sqrt(3)
	if math.Abs(s.EnclosingRadius()-r) > 1e-9 {
		t.Errorf("expected enclosing radius %g, got %g", r, s.EnclosingRadius())
	}
	if math.Abs(s.InscribedRadius()-r/2) > 1e-9 {
		t.Errorf("expected inscribed radius %g, got %g", r/2, s.InscribedRadius())
	}
	if !s.Rotatable() {
		t.Error("triangles should be rotatable")
	}

	// Width equals the side, height is side * sqrt(3)/2.
	b := s.BoundingBoxAt(0, 0, 0)
	if math.Abs(b.Width()-80) > 1e-9 {
		t.Errorf("expected bbox width 80, got %g", b.Width())
	}
	if math.Abs(b.Height()-80*math.Sqrt(3)/2) > 1e-9 {
		t.Errorf("expected bbox height %g, got %g", 80*math.Sqrt(3)/2, b.Height())
	}
}

func TestNewShapeHexagon(t *testing.T) {
	s, err := NewShape(ShapeSpec{Kind: KindPolygon, Sides: 6, Radius: 45})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Regular n-gon: area = n/2 * r^2 * sin(2 pi / n).
	want := 3 * 45.0 * 45.0 * math.Sin(math.Pi/3)
	if math.Abs(s.Area()-want) > 1e-9 {
		t.Errorf("expected area %g, got %g", want, s.Area())
	}
	if math.Abs(s.InscribedRadius()-45*math.Cos(math.Pi/6)) > 1e-9 {
		t.Errorf("unexpected inscribed radius %g", s.InscribedRadius())
	}
	if !s.Rotatable() {
		t.Error("polygons should be rotatable")
	}
}

func TestBoundingBoxAtTranslation(t *testing.T) {
	s, _ := NewShape(ShapeSpec{Kind: KindCircle, Radius: 50})
	b := s.BoundingBoxAt(500, 300, 0)
	if b.MinX != 450 || b.MinY != 250 || b.MaxX != 550 || b.MaxY != 350 {
		t.Errorf("unexpected bbox %+v", b)
	}
	// Rotation never changes a circle's box.
	if s.BoundingBoxAt(500, 300, 45) != b {
		t.Error("circle bbox should be rotation-invariant")
	}
}

func TestBoundingBoxAtRotation(t *testing.T) {
	tri, _ := NewShape(ShapeSpec{Kind: KindTriangle, Side: 80})
	b0 := tri.BoundingBoxAt(0, 0, 0)
	b180 := tri.BoundingBoxAt(0, 0, 180)

	// A half turn mirrors the box through the centroid.
	if math.Abs(b180.MinY+b0.MaxY) > 1e-9 || math.Abs(b180.MaxY+b0.MinY) > 1e-9 {
		t.Errorf("expected mirrored box, got %+v vs %+v", b0, b180)
	}
	if math.Abs(b180.Width()-b0.Width()) > 1e-9 {
		t.Errorf("width should survive a half turn, got %g vs %g", b0.Width(), b180.Width())
	}

	// Rotating a hexagon by 30 degrees swaps the flat and pointy axes.
	hex, _ := NewShape(ShapeSpec{Kind: KindPolygon, Sides: 6, Radius: 45})
	h0 := hex.BoundingBoxAt(0, 0, 0)
	h30 := hex.BoundingBoxAt(0, 0, 30)
	if math.Abs(h30.Width()-h0.Height()) > 1e-9 || math.Abs(h30.Height()-h0.Width()) > 1e-9 {
		t.Errorf("expected swapped extents, got %+v vs %+v", h0, h30)
	}
}

func TestOutlineAt(t *testing.T) {
	c, _ := NewShape(ShapeSpec{Kind: KindCircle, Radius: 10})
	if c.OutlineAt(0, 0, 0) != nil {
		t.Error("circles have no outline")
	}

	r, _ := NewShape(ShapeSpec{Kind: KindRectangle, Width: 20, Height: 10})
	o := r.OutlineAt(100, 50, 0)
	if len(o) != 4 {
		t.Fatalf("expected 4 vertices, got %d", len(o))
	}
	b := o.BoundingBox()
	if b.MinX != 90 || b.MaxX != 110 || b.MinY != 45 || b.MaxY != 55 {
		t.Errorf("unexpected outline box %+v", b)
	}
}

func TestShapeContainsPoint(t *testing.T) {
	c, _ := NewShape(ShapeSpec{Kind: KindCircle, Radius: 50})
	if !c.ContainsPoint(100, 100, 0, Point2D{X: 149, Y: 100}) {
		t.Error("point inside the circle should be contained")
	}
	if !c.ContainsPoint(100, 100, 0, Point2D{X: 150, Y: 100}) {
		t.Error("boundary point should be contained")
	}
	if c.ContainsPoint(100, 100, 0, Point2D{X: 151, Y: 100}) {
		t.Error("point outside the circle should not be contained")
	}

	r, _ := NewShape(ShapeSpec{Kind: KindRectangle, Width: 100, Height: 80})
	if !r.ContainsPoint(100, 100, 0, Point2D{X: 149, Y: 130}) {
		t.Error("point inside the rectangle should be contained")
	}
	if r.ContainsPoint(100, 100, 0, Point2D{X: 155, Y: 100}) {
		t.Error("point outside the rectangle should not be contained")
	}
}

func TestOverlapsCircles(t *testing.T) {
	c, _ := NewShape(ShapeSpec{Kind: KindCircle, Radius: 50})

	if !c.Overlaps(0, 0, 0, c, 99, 0, 0) {
		t.Error("circles 99 apart should overlap")
	}
	if c.Overlaps(0, 0, 0, c, 100, 0, 0) {
		t.Error("tangent circles should not overlap")
	}
	if c.Overlaps(0, 0, 0, c, 101, 0, 0) {
		t.Error("separated circles should not overlap")
	}
}

func TestOverlapsRectangleFastPath(t *testing.T) {
	r, _ := NewShape(ShapeSpec{Kind: KindRectangle, Width: 100, Height: 80})

	if !r.Overlaps(0, 0, 0, r, 99, 0, 0) {
		t.Error("rectangles one unit interpenetrated should overlap")
	}
	if r.Overlaps(0, 0, 0, r, 100, 0, 0) {
		t.Error("rectangles sharing an edge should not overlap")
	}
}

func TestOverlapsMixedKindsAndSymmetry(t *testing.T) {
	c, _ := NewShape(ShapeSpec{Kind: KindCircle, Radius: 30})
	hex, _ := NewShape(ShapeSpec{Kind: KindPolygon, Sides: 6, Radius: 45})
	tri, _ := NewShape(ShapeSpec{Kind: KindTriangle, Side: 80})

	cases := []struct {
		a            Shape
		ax, ay, arot float64
		b            Shape
		bx, by, brot float64
	}{
		{c, 100, 100, 0, hex, 160, 100, 0},
		{c, 100, 100, 0, hex, 260, 100, 0},
		{tri, 100, 100, 15, hex, 150, 100, 30},
		{tri, 100, 100, 15, hex, 400, 100, 30},
		{tri, 100, 100, 0, c, 120, 100, 0},
	}
	for i, tc := range cases {
		ab := tc.a.Overlaps(tc.ax, tc.ay, tc.arot, tc.b, tc.bx, tc.by, tc.brot)
		ba := tc.b.Overlaps(tc.bx, tc.by, tc.brot, tc.a, tc.ax, tc.ay, tc.arot)
		if ab != ba {
			t.Errorf("case %d: predicate is not symmetric (%v vs %v)", i, ab, ba)
		}
	}
}

func TestOverlapsContainment(t *testing.T) {
	big, _ := NewShape(ShapeSpec{Kind: KindRectangle, Width: 300, Height: 300})
	small, _ := NewShape(ShapeSpec{Kind: KindTriangle, Side: 40})
	if !big.Overlaps(500, 500, 0, small, 500, 500, 0) {
		t.Error("full containment should count as overlap")
	}
	if !small.Overlaps(500, 500, 0, big, 500, 500, 0) {
		t.Error("containment overlap should be symmetric")
	}

	tiny, _ := NewShape(ShapeSpec{Kind: KindCircle, Radius: 5})
	if !big.Overlaps(500, 500, 0, tiny, 500, 500, 0) {
		t.Error("a circle inside a rectangle should overlap it")
	}
}
