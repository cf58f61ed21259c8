package model

import "fmt"

// Area is the rectangular containment area for a run.
type Area struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Project ties everything together for save/load: the containment area,
// the shape requests and the engine settings.
type Project struct {
	Name     string      `json:"name" yaml:"name"`
	Area     Area        `json:"area" yaml:"area"`
	Shapes   []ShapeSpec `json:"shapes" yaml:"shapes"`
	Settings Settings    `json:"settings" yaml:"settings"`
}

func NewProject() Project {
	return Project{
		Name:     "Untitled",
		Shapes:   []ShapeSpec{},
		Settings: DefaultSettings(),
	}
}

// Specs expands per-entry quantities into a flat spec list, preserving
// declaration order. A quantity below 1 counts as 1.
func (p Project) Specs() []ShapeSpec {
	var specs []ShapeSpec
	for _, s := range p.Shapes {
		q := s.Quantity
		if q < 1 {
			q = 1
		}
		for i := 0; i < q; i++ {
			c := s
			c.Quantity = 0
			specs = append(specs, c)
		}
	}
	return specs
}

// Validate checks the area and every shape entry, returning the first
// problem found.
func (p Project) Validate() error {
	if p.Area.Width <= 0 || p.Area.Height <= 0 {
		return fmt.Errorf("%w: %gx%g", ErrInvalidArea, p.Area.Width, p.Area.Height)
	}
	if len(p.Shapes) == 0 {
		return fmt.Errorf("%w: project has no shapes", ErrInvalidSpec)
	}
	for i, spec := range p.Shapes {
		if _, err := NewShape(spec); err != nil {
			return fmt.Errorf("shape %d: %w", i, err)
		}
	}
	return nil
}
