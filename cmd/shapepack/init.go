// Init command: write a starter project file from a template.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/piwi3910/ShapePack/internal/model"
	"github.com/piwi3910/ShapePack/internal/project"
	"github.com/spf13/cobra"
)

var (
	flagTemplate string
	flagForce    bool
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a starter project file from a template",
	Long: `Init writes a new project file from a named template. Built-in
templates ship with the binary; custom templates come from
templates.yaml in the config directory. The file is named after the
template unless a path is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().StringVar(&flagTemplate, "template", "demo", "template to start from")
	initCmd.Flags().BoolVar(&flagForce, "force", false, "overwrite an existing file")
}

func runInit(cmd *cobra.Command, args []string) error {
	custom, err := project.LoadCustomTemplates(templatesPath())
	if err != nil {
		return err
	}

	tmpl := project.FindAnyTemplate(flagTemplate, custom)
	if tmpl == nil {
		names := model.TemplateNames()
		for _, t := range custom {
			names = append(names, t.Name)
		}
		return fmt.Errorf("unknown template %q (available: %s)", flagTemplate, strings.Join(names, ", "))
	}

	path := tmpl.Name + ".yaml"
	if len(args) == 1 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil && !flagForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if err := project.Save(path, tmpl.ToProject(name)); err != nil {
		return err
	}

	fmt.Printf("Created %s from template %q.\n", path, tmpl.Name)
	fmt.Printf("Run: shapepack solve %s\n", path)
	return nil
}
