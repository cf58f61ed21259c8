// Solve command: place a project's shapes and emit the layout.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/piwi3910/ShapePack/internal/engine"
	"github.com/piwi3910/ShapePack/internal/model"
	"github.com/piwi3910/ShapePack/internal/project"
	"github.com/spf13/cobra"
)

var (
	flagCompact  bool
	flagEvolve   bool
	flagWorkers  int
	flagOrdering string
	flagSeed     int64
)

var solveCmd = &cobra.Command{
	Use:   "solve <project.yaml>",
	Short: "Place a project's shapes and print the layout as JSON",
	Long: `Solve loads a project file, places its shapes into the project area
and prints the resulting layout as JSON on stdout. A human-readable
summary goes to stderr so the JSON stream stays clean for piping.

Settings precedence: command flags beat the project file, which beats
config.yaml, which beats the built-in defaults.`,
	Args: cobra.ExactArgs(1),
	RunE: runSolve,
}

func init() {
	solveCmd.Flags().BoolVar(&flagCompact, "compact", false, "run the centroid-ward density pass after placement")
	solveCmd.Flags().BoolVar(&flagEvolve, "evolve", false, "search placement orders with the genetic optimizer")
	solveCmd.Flags().IntVar(&flagWorkers, "workers", 0, "concurrent searchers (1 = deterministic)")
	solveCmd.Flags().StringVar(&flagOrdering, "ordering", "", "placement order: largest-first or insertion")
	solveCmd.Flags().Int64Var(&flagSeed, "seed", 0, "seed for jitter and the genetic optimizer")
}

func runSolve(cmd *cobra.Command, args []string) error {
	proj, err := project.Load(args[0], defaultSettings())
	if err != nil {
		return err
	}
	if err := proj.Validate(); err != nil {
		return err
	}
	if err := applySolveFlags(cmd, &proj.Settings); err != nil {
		return err
	}

	eng := engine.New(proj.Settings)
	specs := proj.Specs()

	var result model.Result
	if flagEvolve {
		config := engine.DefaultGeneticConfig()
		if cmd.Flags().Changed("seed") {
			config.Seed = flagSeed
		}
		result, err = eng.Evolve(specs, proj.Area.Width, proj.Area.Height, config)
	} else {
		result, err = eng.PlaceAll(specs, proj.Area.Width, proj.Area.Height)
	}
	if err != nil {
		return err
	}

	printSolveSummary(proj, result)

	output := map[string]any{
		"project":  proj.Name,
		"area":     proj.Area,
		"placed":   result.PlacedCount(),
		"unplaced": result.UnplacedCount(),
		"density":  result.Density(),
		"layout":   result.Layout,
		"statuses": result.Statuses,
	}
	if result.Compacted > 0 {
		output["compacted"] = result.Compacted
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

// applySolveFlags overrides the merged settings with flags the user set
// explicitly. Unset flags leave the project/config values alone.
func applySolveFlags(cmd *cobra.Command, settings *model.Settings) error {
	if cmd.Flags().Changed("compact") {
		settings.Compact = flagCompact
	}
	if cmd.Flags().Changed("workers") {
		settings.Workers = flagWorkers
	}
	if cmd.Flags().Changed("seed") {
		settings.Seed = flagSeed
	}
	if cmd.Flags().Changed("ordering") {
		switch model.OrderingPolicy(flagOrdering) {
		case model.OrderInsertion, model.OrderLargestFirst:
			settings.Ordering = model.OrderingPolicy(flagOrdering)
		default:
			return fmt.Errorf("unknown ordering %q (want largest-first or insertion)", flagOrdering)
		}
	}
	return nil
}

func printSolveSummary(proj model.Project, result model.Result) {
	logger := log.New(os.Stderr, "", 0)
	logger.Printf("%s: placed %d of %d shapes, density %.1f%%",
		proj.Name, result.PlacedCount(), len(result.Statuses), result.Density())
	if result.Compacted > 0 {
		logger.Printf("compaction moved %d placements", result.Compacted)
	}
	for _, st := range result.Statuses {
		if st.State != model.StateUnplaced {
			continue
		}
		if st.Detail != "" {
			logger.Printf("shape %d (%s): %s: %s", st.Index, st.Spec.Kind, st.Reason, st.Detail)
		} else {
			logger.Printf("shape %d (%s): %s", st.Index, st.Spec.Kind, st.Reason)
		}
	}
}
