package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/piwi3910/ShapePack/internal/model"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFile     = "config.yaml"

	// Config keys mirroring model.AppConfig.
	cfgKeyCellSize       = "default_cell_size"
	cfgKeyAngularStep    = "default_angular_step"
	cfgKeyRadialStep     = "default_radial_step"
	cfgKeyRotationTrials = "default_rotation_trials"
	cfgKeyOrdering       = "default_ordering"
	cfgKeyWorkers        = "default_workers"
)

// EnvConfigDir overrides the configuration directory when set.
const EnvConfigDir = "SHAPEPACK_CONFIG_DIR"

// defaultConfigYAML is the content written to config.yaml on first run.
const defaultConfigYAML = `# ShapePack configuration
# Values here seed the engine settings for every run; project files and
# command line flags override them.

# Spatial grid cell size; 0 derives it from the largest requested shape.
default_cell_size: 0

# Degrees between candidate samples on a spiral ring.
default_angular_step: 15

# Spacing between spiral rings; 0 derives it from the smallest shape.
default_radial_step: 0

# Rotations tried per candidate position for rotatable shapes.
default_rotation_trials: 6

# Placement order: largest-first or insertion.
default_ordering: largest-first

# Concurrent placement workers; 1 keeps runs deterministic.
default_workers: 1
`

// DefaultConfigDir returns the default directory for application
// configuration. On all platforms this is ~/.shapepack/
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".shapepack")
}

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > SHAPEPACK_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir(), nil
}

// LoadConfig reads config.yaml from the given directory using Viper.
// It creates the directory and a commented default config.yaml on first
// run. A missing config.yaml is not an error; built-in defaults apply
// for every key the file does not set.
func LoadConfig(configDir string) (model.AppConfig, error) {
	if err := ensureConfigDir(configDir); err != nil {
		return model.AppConfig{}, fmt.Errorf("failed to create config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return model.AppConfig{}, fmt.Errorf("failed to write default config: %w", err)
	}

	defaults := model.DefaultAppConfig()

	v := viper.New()
	v.SetDefault(cfgKeyCellSize, defaults.DefaultCellSize)
	v.SetDefault(cfgKeyAngularStep, defaults.DefaultAngularStep)
	v.SetDefault(cfgKeyRadialStep, defaults.DefaultRadialStep)
	v.SetDefault(cfgKeyRotationTrials, defaults.DefaultRotationTrials)
	v.SetDefault(cfgKeyOrdering, defaults.DefaultOrdering)
	v.SetDefault(cfgKeyWorkers, defaults.DefaultWorkers)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return model.AppConfig{}, fmt.Errorf("failed to read config: %w", err)
		}
	}

	return model.AppConfig{
		DefaultCellSize:       v.GetFloat64(cfgKeyCellSize),
		DefaultAngularStep:    v.GetFloat64(cfgKeyAngularStep),
		DefaultRadialStep:     v.GetFloat64(cfgKeyRadialStep),
		DefaultRotationTrials: v.GetInt(cfgKeyRotationTrials),
		DefaultOrdering:       v.GetString(cfgKeyOrdering),
		DefaultWorkers:        v.GetInt(cfgKeyWorkers),
	}, nil
}

// SaveConfig writes an AppConfig to config.yaml in the given directory,
// replacing whatever is there. Used when applying an imported backup.
func SaveConfig(configDir string, cfg model.AppConfig) error {
	if err := ensureConfigDir(configDir); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	path := filepath.Join(configDir, configFile)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func ensureConfigDir(configDir string) error {
	return os.MkdirAll(configDir, 0755)
}

// ensureDefaultConfigFile creates a commented default config.yaml if the
// file does not exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFile)

	_, err := os.Stat(path)
	if err == nil {
		// File already exists.
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat config file: %w", err)
	}

	return os.WriteFile(path, []byte(defaultConfigYAML), 0644)
}
