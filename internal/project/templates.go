package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/piwi3910/ShapePack/internal/model"
)

// DefaultTemplatesPath returns the default path for user-defined
// templates. This is located at ~/.shapepack/templates.yaml.
func DefaultTemplatesPath() string {
	return filepath.Join(DefaultConfigDir(), "templates.yaml")
}

// SaveCustomTemplates saves user-defined templates to a YAML file.
func SaveCustomTemplates(path string, templates []model.Template) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create templates directory: %w", err)
	}
	data, err := yaml.Marshal(templates)
	if err != nil {
		return fmt.Errorf("failed to marshal templates: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write templates file: %w", err)
	}
	return nil
}

// LoadCustomTemplates loads user-defined templates from a YAML file.
// Returns an empty slice if the file does not exist.
func LoadCustomTemplates(path string) ([]model.Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.Template{}, nil
		}
		return nil, fmt.Errorf("failed to read templates file: %w", err)
	}

	var templates []model.Template
	if err := yaml.Unmarshal(data, &templates); err != nil {
		return nil, fmt.Errorf("failed to parse templates file: %w", err)
	}
	if templates == nil {
		templates = []model.Template{}
	}
	return templates, nil
}

// FindAnyTemplate looks a template up by name, checking the built-in set
// first and then the given user-defined templates.
func FindAnyTemplate(name string, custom []model.Template) *model.Template {
	if t := model.FindTemplate(name); t != nil {
		return t
	}
	for i := range custom {
		if custom[i].Name == name {
			t := custom[i]
			return &t
		}
	}
	return nil
}
