// Import command: convert a CSV shape list into a project file.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/piwi3910/ShapePack/internal/importer"
	"github.com/piwi3910/ShapePack/internal/model"
	"github.com/piwi3910/ShapePack/internal/project"
	"github.com/spf13/cobra"
)

var (
	flagImportWidth  float64
	flagImportHeight float64
	flagImportName   string
	flagImportOut    string
)

var importCmd = &cobra.Command{
	Use:   "import <shapes.csv>",
	Short: "Convert a CSV shape list into a project file",
	Long: `Import reads a CSV shape list (kind, radius, width, height, side,
sides, label, quantity columns, named in a header row) and builds a
project around it. Rows that fail to parse are reported on stderr and
skipped; the remaining shapes still import.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().Float64Var(&flagImportWidth, "width", 1000, "project area width")
	importCmd.Flags().Float64Var(&flagImportHeight, "height", 1000, "project area height")
	importCmd.Flags().StringVar(&flagImportName, "name", "", "project name (default: CSV filename)")
	importCmd.Flags().StringVarP(&flagImportOut, "out", "o", "", "write the project file here instead of stdout")
}

func runImport(cmd *cobra.Command, args []string) error {
	result := importer.ImportCSV(args[0])
	for _, w := range result.Warnings {
		fmt.Fprintln(os.Stderr, "warning:", w)
	}
	for _, e := range result.Errors {
		fmt.Fprintln(os.Stderr, "error:", e)
	}
	if len(result.Specs) == 0 {
		return fmt.Errorf("no importable shapes in %s", args[0])
	}

	name := flagImportName
	if name == "" {
		base := filepath.Base(args[0])
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	proj := model.Project{
		Name:     name,
		Area:     model.Area{Width: flagImportWidth, Height: flagImportHeight},
		Shapes:   result.Specs,
		Settings: defaultSettings(),
	}

	if flagImportOut != "" {
		if err := project.Save(flagImportOut, proj); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Imported %d shape entries into %s.\n", len(result.Specs), flagImportOut)
		return nil
	}

	data, err := yaml.Marshal(proj)
	if err != nil {
		return fmt.Errorf("failed to marshal project: %w", err)
	}
	fmt.Print(string(data))
	return nil
}
