// Package project persists ShapePack data: project files, application
// configuration and user templates.
package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/piwi3910/ShapePack/internal/model"
)

// Save writes a project to the given path as YAML.
// It creates any missing parent directories automatically.
func Save(path string, proj model.Project) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create project directory: %w", err)
	}
	data, err := yaml.Marshal(proj)
	if err != nil {
		return fmt.Errorf("failed to marshal project: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write project file: %w", err)
	}
	return nil
}

// Load reads a project from the given YAML path. Settings keys absent
// from the file keep the passed defaults, so a project file only pins
// the values it mentions.
func Load(path string, defaults model.Settings) (model.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Project{}, fmt.Errorf("failed to read project file: %w", err)
	}
	proj := model.Project{Settings: defaults}
	if err := yaml.Unmarshal(data, &proj); err != nil {
		return model.Project{}, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	if proj.Name == "" {
		base := filepath.Base(path)
		proj.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	// Ensure Shapes is never nil
	if proj.Shapes == nil {
		proj.Shapes = []model.ShapeSpec{}
	}
	return proj, nil
}
