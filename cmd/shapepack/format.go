package main

import (
	"fmt"

	"github.com/piwi3910/ShapePack/internal/engine"
	"github.com/piwi3910/ShapePack/internal/model"
)

func printCapacityReport(proj model.Project, est model.CapacityEstimate) {
	fmt.Println("Capacity Estimate")
	fmt.Println("=================")
	fmt.Println()
	fmt.Printf("  Area:                %g x %g (%.0f area units)\n",
		proj.Area.Width, proj.Area.Height, est.AreaSize)
	fmt.Printf("  Shapes:              %d\n", est.ShapeCount)
	if est.InvalidCount > 0 {
		fmt.Printf("  Invalid specs:       %d\n", est.InvalidCount)
	}
	fmt.Printf("  Total shape area:    %.1f\n", est.TotalShapeArea)
	fmt.Printf("  Total perimeter:     %.1f\n", est.TotalPerimeter)
	fmt.Printf("  Utilization:         %.1f%%\n", est.Utilization)
	fmt.Printf("  Largest dimension:   %.1f\n", est.LargestDimension)
	fmt.Printf("  Suggested cell size: %.1f\n", est.SuggestedCellSize)
	if est.OverCapacity {
		fmt.Println()
		fmt.Println("  WARNING: total shape area exceeds the area size; some shapes cannot fit")
	}
}

func printCompareTable(results []engine.ComparisonResult) {
	fmt.Printf("%-20s %8s %9s %9s %8s %8s\n",
		"Scenario", "Placed", "Unplaced", "Density", "Free", "Moved")
	fmt.Printf("%-20s %8s %9s %9s %8s %8s\n",
		"--------------------", "--------", "---------", "---------", "--------", "--------")
	for _, r := range results {
		fmt.Printf("%-20s %8d %9d %8.1f%% %7.1f%% %8d\n",
			r.Scenario.Name, r.PlacedCount, r.UnplacedCount, r.Density, r.FreePercent, r.Compacted)
	}
}
