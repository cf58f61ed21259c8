// Backup and restore commands for config and custom templates.
package main

import (
	"fmt"

	"github.com/piwi3910/ShapePack/internal/project"
	"github.com/spf13/cobra"
)

var backupCmd = &cobra.Command{
	Use:   "backup <file.json>",
	Short: "Export config and custom templates to a backup file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		templates, err := project.LoadCustomTemplates(templatesPath())
		if err != nil {
			return err
		}
		if err := project.ExportAllData(args[0], appConfig, templates); err != nil {
			return err
		}
		fmt.Printf("Exported config and %d custom templates to %s.\n", len(templates), args[0])
		return nil
	},
}

var restoreCmd = &cobra.Command{
	Use:   "restore <file.json>",
	Short: "Restore config and custom templates from a backup file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backup, err := project.ImportAllData(args[0])
		if err != nil {
			return err
		}
		if err := project.RestoreAllData(configDir, backup); err != nil {
			return err
		}
		fmt.Printf("Restored config and %d custom templates into %s.\n", len(backup.Templates), configDir)
		return nil
	},
}
