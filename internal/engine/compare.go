package engine

import (
	"github.com/piwi3910/ShapePack/internal/model"
)

// ComparisonScenario defines a named set of settings to compare.
type ComparisonScenario struct {
	Name     string
	Settings model.Settings
}

// ComparisonResult holds the placement result and computed statistics
// for a single scenario.
type ComparisonResult struct {
	Scenario      ComparisonScenario
	Result        model.Result
	PlacedCount   int
	UnplacedCount int
	Density       float64
	FreePercent   float64
	Compacted     int
}

// CompareScenarios solves the same request under each scenario and
// returns the results in scenario order. This enables side-by-side
// comparison of different placement parameters (ordering, rotation
// trials, compaction, and so on).
func CompareScenarios(scenarios []ComparisonScenario, specs []model.ShapeSpec, width, height float64) ([]ComparisonResult, error) {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		eng := New(scenario.Settings)
		result, err := eng.PlaceAll(specs, width, height)
		if err != nil {
			return nil, err
		}

		results = append(results, ComparisonResult{
			Scenario:      scenario,
			Result:        result,
			PlacedCount:   result.PlacedCount(),
			UnplacedCount: result.UnplacedCount(),
			Density:       result.Density(),
			FreePercent:   100.0 - result.Density(),
			Compacted:     result.Compacted,
		})
	}

	return results, nil
}

// BuildDefaultScenarios generates a set of comparison scenarios based
// on the current settings, varying key parameters to show what-if
// alternatives.
func BuildDefaultScenarios(baseSettings model.Settings) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{
			Name:     "Current Settings",
			Settings: baseSettings,
		},
	}

	// Scenario: the other ordering policy
	altOrder := baseSettings
	if baseSettings.Ordering == model.OrderInsertion {
		altOrder.Ordering = model.OrderLargestFirst
		scenarios = append(scenarios, ComparisonScenario{
			Name:     "Largest First",
			Settings: altOrder,
		})
	} else {
		altOrder.Ordering = model.OrderInsertion
		scenarios = append(scenarios, ComparisonScenario{
			Name:     "Insertion Order",
			Settings: altOrder,
		})
	}

	// Scenario: double the rotation trials for rotatable shapes
	if baseSettings.RotationTrials < 12 {
		spun := baseSettings
		spun.RotationTrials = 12
		scenarios = append(scenarios, ComparisonScenario{
			Name:     "12 Rotation Trials",
			Settings: spun,
		})
	}

	// Scenario: finer spiral sampling
	if baseSettings.SpiralAngularStep > 5 {
		fine := baseSettings
		fine.SpiralAngularStep = baseSettings.SpiralAngularStep / 2
		scenarios = append(scenarios, ComparisonScenario{
			Name:     "Fine Spiral",
			Settings: fine,
		})
	}

	// Scenario: densify after placement
	if !baseSettings.Compact {
		compacted := baseSettings
		compacted.Compact = true
		scenarios = append(scenarios, ComparisonScenario{
			Name:     "Compaction Pass",
			Settings: compacted,
		})
	}

	return scenarios
}
