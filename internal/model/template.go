package model

// Template is a named starter request that captures an area, shapes and
// settings but no placement result.
type Template struct {
	Name        string      `json:"name" yaml:"name"`
	Description string      `json:"description" yaml:"description"`
	Area        Area        `json:"area" yaml:"area"`
	Shapes      []ShapeSpec `json:"shapes" yaml:"shapes"`
	Settings    Settings    `json:"settings" yaml:"settings"`
}

// ToProject creates a new Project from this template.
func (t Template) ToProject(projectName string) Project {
	shapes := make([]ShapeSpec, len(t.Shapes))
	copy(shapes, t.Shapes)
	return Project{
		Name:     projectName,
		Area:     t.Area,
		Shapes:   shapes,
		Settings: t.Settings,
	}
}

// Built-in starter templates.
var builtinTemplates = []Template{
	{
		Name:        "demo",
		Description: "A small mixed request showing every shape kind",
		Area:        Area{Width: 1000, Height: 1000},
		Shapes: []ShapeSpec{
			{Kind: KindCircle, Radius: 50, Quantity: 3},
			{Kind: KindRectangle, Width: 120, Height: 40, Quantity: 2},
			{Kind: KindTriangle, Side: 80, Quantity: 2},
			{Kind: KindPolygon, Sides: 6, Radius: 45, Quantity: 2, Label: "hex"},
		},
		Settings: DefaultSettings(),
	},
	{
		Name:        "coins",
		Description: "Circles of three sizes packed around the center",
		Area:        Area{Width: 600, Height: 600},
		Shapes: []ShapeSpec{
			{Kind: KindCircle, Radius: 45, Quantity: 4},
			{Kind: KindCircle, Radius: 30, Quantity: 6},
			{Kind: KindCircle, Radius: 18, Quantity: 10},
		},
		Settings: DefaultSettings(),
	},
	{
		Name:        "tiles",
		Description: "Hexagons with extra rotation trials and compaction",
		Area:        Area{Width: 800, Height: 800},
		Shapes: []ShapeSpec{
			{Kind: KindPolygon, Sides: 6, Radius: 60, Quantity: 12},
		},
		Settings: func() Settings {
			s := DefaultSettings()
			s.RotationTrials = 8
			s.Compact = true
			return s
		}(),
	},
}

// Templates returns the built-in starter templates.
func Templates() []Template {
	cp := make([]Template, len(builtinTemplates))
	copy(cp, builtinTemplates)
	return cp
}

// TemplateNames returns the names of all built-in templates.
func TemplateNames() []string {
	names := make([]string, len(builtinTemplates))
	for i, t := range builtinTemplates {
		names[i] = t.Name
	}
	return names
}

// FindTemplate returns the template with the given name, or nil.
func FindTemplate(name string) *Template {
	for i := range builtinTemplates {
		if builtinTemplates[i].Name == name {
			t := builtinTemplates[i]
			return &t
		}
	}
	return nil
}
