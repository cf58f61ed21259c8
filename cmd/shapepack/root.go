// Root command for the shapepack CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/piwi3910/ShapePack/internal/model"
	"github.com/piwi3910/ShapePack/internal/project"
)

const version = "1.0.0"

// Exit codes: 0 success, 1 user error, 2 system error.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Global flag values.
var flagConfigDir string

// configDir and appConfig hold the resolved configuration directory and
// the defaults loaded from config.yaml. Set by PersistentPreRunE so all
// subcommands can use them.
var (
	configDir string
	appConfig model.AppConfig
)

var rootCmd = &cobra.Command{
	Use:          "shapepack",
	Short:        "ShapePack packs 2D shapes into a bounded area without overlap",
	Version:      version,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Version never needs config.
		if cmd.Name() == "version" {
			return nil
		}

		dir, err := project.ResolveConfigDir(flagConfigDir)
		if err != nil {
			fmt.Fprintln(os.Stderr, "config:", err)
			os.Exit(exitSysError)
		}
		cfg, err := project.LoadConfig(dir)
		if err != nil {
			fmt.Fprintln(os.Stderr, "config:", err)
			os.Exit(exitSysError)
		}

		configDir = dir
		appConfig = cfg
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: ~/.shapepack)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(restoreCmd)
}

// defaultSettings returns engine settings seeded from the loaded app
// config. Project files and flags override these.
func defaultSettings() model.Settings {
	s := model.DefaultSettings()
	appConfig.ApplyToSettings(&s)
	return s
}

// templatesPath returns the custom templates file inside the resolved
// config directory.
func templatesPath() string {
	return filepath.Join(configDir, "templates.yaml")
}
