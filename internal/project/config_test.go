package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/ShapePack/internal/model"
)

func TestLoadConfigFirstRunWritesDefaultFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "confdir")

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Fatalf("expected default config.yaml to be written: %v", err)
	}

	defaults := model.DefaultAppConfig()
	if cfg.DefaultAngularStep != defaults.DefaultAngularStep {
		t.Errorf("expected default angular step %g, got %g", defaults.DefaultAngularStep, cfg.DefaultAngularStep)
	}
	if cfg.DefaultOrdering != defaults.DefaultOrdering {
		t.Errorf("expected default ordering %q, got %q", defaults.DefaultOrdering, cfg.DefaultOrdering)
	}
	if cfg.DefaultRotationTrials != defaults.DefaultRotationTrials {
		t.Errorf("expected default rotation trials %d, got %d", defaults.DefaultRotationTrials, cfg.DefaultRotationTrials)
	}
}

func TestLoadConfigReadsExistingFile(t *testing.T) {
	dir := t.TempDir()

	data := []byte(`default_angular_step: 5
default_rotation_trials: 12
default_ordering: insertion
`)
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.DefaultAngularStep != 5 {
		t.Errorf("expected angular step 5, got %g", cfg.DefaultAngularStep)
	}
	if cfg.DefaultRotationTrials != 12 {
		t.Errorf("expected 12 rotation trials, got %d", cfg.DefaultRotationTrials)
	}
	if cfg.DefaultOrdering != "insertion" {
		t.Errorf("expected ordering insertion, got %q", cfg.DefaultOrdering)
	}
	// Keys absent from the file fall back to built-in defaults.
	if cfg.DefaultWorkers != model.DefaultAppConfig().DefaultWorkers {
		t.Errorf("expected default workers, got %d", cfg.DefaultWorkers)
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("default_workers: [}{"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadConfig(dir)
	if err == nil {
		t.Fatal("expected error for invalid config YAML, got nil")
	}
}

func TestSaveConfigRoundTrip(t *testing.T) {
	dir := t.TempDir()

	cfg := model.DefaultAppConfig()
	cfg.DefaultCellSize = 64
	cfg.DefaultWorkers = 8

	if err := SaveConfig(dir, cfg); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if loaded.DefaultCellSize != 64 {
		t.Errorf("expected cell size 64, got %g", loaded.DefaultCellSize)
	}
	if loaded.DefaultWorkers != 8 {
		t.Errorf("expected 8 workers, got %d", loaded.DefaultWorkers)
	}
}

func TestResolveConfigDirPrecedence(t *testing.T) {
	t.Setenv(EnvConfigDir, "/tmp/from-env")

	dir, err := ResolveConfigDir("/tmp/from-flag")
	if err != nil {
		t.Fatalf("ResolveConfigDir failed: %v", err)
	}
	if dir != "/tmp/from-flag" {
		t.Errorf("flag should win over env, got %q", dir)
	}

	dir, err = ResolveConfigDir("")
	if err != nil {
		t.Fatalf("ResolveConfigDir failed: %v", err)
	}
	if dir != "/tmp/from-env" {
		t.Errorf("env should win over default, got %q", dir)
	}
}

func TestResolveConfigDirDefault(t *testing.T) {
	t.Setenv(EnvConfigDir, "")

	dir, err := ResolveConfigDir("")
	if err != nil {
		t.Fatalf("ResolveConfigDir failed: %v", err)
	}
	if filepath.Base(dir) != ".shapepack" {
		t.Errorf("expected default dir named .shapepack, got %q", dir)
	}
}
