// Validate command: check a project and report capacity without placing.
package main

import (
	"fmt"
	"os"

	"github.com/piwi3910/ShapePack/internal/model"
	"github.com/piwi3910/ShapePack/internal/project"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <project.yaml>",
	Short: "Check a project file and estimate capacity without placing",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	proj, err := project.Load(args[0], defaultSettings())
	if err != nil {
		return err
	}

	est := model.EstimateCapacity(proj.Specs(), proj.Area.Width, proj.Area.Height)
	printCapacityReport(proj, est)
	fmt.Println()

	if err := proj.Validate(); err != nil {
		fmt.Printf("Result: INVALID (%v)\n", err)
		os.Exit(exitUserError)
	}
	fmt.Println("Result: VALID")
	return nil
}
