package model

import "math"

// CapacityEstimate summarizes a shape request set against an area
// before any placement is attempted.
type CapacityEstimate struct {
	ShapeCount        int     `json:"shape_count"`         // valid specs counted after quantity expansion
	InvalidCount      int     `json:"invalid_count"`       // specs failing validation
	TotalShapeArea    float64 `json:"total_shape_area"`    // summed exact shape area
	AreaSize          float64 `json:"area_size"`           // width * height
	Utilization       float64 `json:"utilization"`         // percentage of the area the shapes would cover
	OverCapacity      bool    `json:"over_capacity"`       // shapes cannot all fit even with perfect packing
	TotalPerimeter    float64 `json:"total_perimeter"`     // summed exact shape perimeter
	LargestDimension  float64 `json:"largest_dimension"`   // max bounding-box dimension across shapes
	SuggestedCellSize float64 `json:"suggested_cell_size"` // recommended grid resolution
}

// EstimateCapacity computes the pre-flight arithmetic for a request:
// how much of the area the shapes would cover and whether they can all
// fit at best. Specs must already be quantity-expanded. Invalid specs
// are counted and otherwise ignored.
func EstimateCapacity(specs []ShapeSpec, width, height float64) CapacityEstimate {
	est := CapacityEstimate{AreaSize: width * height}
	for _, spec := range specs {
		s, err := NewShape(spec)
		if err != nil {
			est.InvalidCount++
			continue
		}
		est.ShapeCount++
		est.TotalShapeArea += s.Area()
		est.TotalPerimeter += s.Perimeter()
		bb := s.BoundingBoxAt(0, 0, 0)
		if d := math.Max(bb.Width(), bb.Height()); d > est.LargestDimension {
			est.LargestDimension = d
		}
	}
	if est.AreaSize > 0 {
		est.Utilization = est.TotalShapeArea / est.AreaSize * 100.0
		est.OverCapacity = est.TotalShapeArea > est.AreaSize
	}
	est.SuggestedCellSize = est.LargestDimension
	return est
}
