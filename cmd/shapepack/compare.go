// Compare command: solve the same project under setting variants.
package main

import (
	"encoding/json"
	"os"

	"github.com/piwi3910/ShapePack/internal/engine"
	"github.com/piwi3910/ShapePack/internal/model"
	"github.com/piwi3910/ShapePack/internal/project"
	"github.com/spf13/cobra"
)

var flagCompareJSON bool

var compareCmd = &cobra.Command{
	Use:   "compare <project.yaml>",
	Short: "Solve a project under setting variants and compare the outcomes",
	Args:  cobra.ExactArgs(1),
	RunE:  runCompare,
}

func init() {
	compareCmd.Flags().BoolVar(&flagCompareJSON, "json", false, "print machine-readable JSON instead of a table")
}

// compareRow is the JSON shape of one scenario outcome. The full
// per-scenario layouts are omitted; run solve for the layout itself.
type compareRow struct {
	Scenario  string         `json:"scenario"`
	Settings  model.Settings `json:"settings"`
	Placed    int            `json:"placed"`
	Unplaced  int            `json:"unplaced"`
	Density   float64        `json:"density"`
	Free      float64        `json:"free"`
	Compacted int            `json:"compacted,omitempty"`
}

func runCompare(cmd *cobra.Command, args []string) error {
	proj, err := project.Load(args[0], defaultSettings())
	if err != nil {
		return err
	}
	if err := proj.Validate(); err != nil {
		return err
	}

	scenarios := engine.BuildDefaultScenarios(proj.Settings)
	results, err := engine.CompareScenarios(scenarios, proj.Specs(), proj.Area.Width, proj.Area.Height)
	if err != nil {
		return err
	}

	if flagCompareJSON {
		rows := make([]compareRow, 0, len(results))
		for _, r := range results {
			rows = append(rows, compareRow{
				Scenario:  r.Scenario.Name,
				Settings:  r.Scenario.Settings,
				Placed:    r.PlacedCount,
				Unplaced:  r.UnplacedCount,
				Density:   r.Density,
				Free:      r.FreePercent,
				Compacted: r.Compacted,
			})
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	printCompareTable(results)
	return nil
}
