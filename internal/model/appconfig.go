package model

// AppConfig holds application-wide preferences: the default engine
// settings applied to runs that do not pin their own values.
type AppConfig struct {
	DefaultCellSize       float64 `json:"default_cell_size" yaml:"default_cell_size"`
	DefaultAngularStep    float64 `json:"default_angular_step" yaml:"default_angular_step"`
	DefaultRadialStep     float64 `json:"default_radial_step" yaml:"default_radial_step"`
	DefaultRotationTrials int     `json:"default_rotation_trials" yaml:"default_rotation_trials"`
	DefaultOrdering       string  `json:"default_ordering" yaml:"default_ordering"`
	DefaultWorkers        int     `json:"default_workers" yaml:"default_workers"`
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults
// matching the values from DefaultSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultSettings()
	return AppConfig{
		DefaultCellSize:       defaults.CellSize,
		DefaultAngularStep:    defaults.SpiralAngularStep,
		DefaultRadialStep:     defaults.SpiralRadialStep,
		DefaultRotationTrials: defaults.RotationTrials,
		DefaultOrdering:       string(defaults.Ordering),
		DefaultWorkers:        defaults.Workers,
	}
}

// ApplyToSettings copies the default values from AppConfig into a
// Settings struct. This is used when starting a run so it inherits the
// user's saved defaults before any project-level overrides.
func (c AppConfig) ApplyToSettings(s *Settings) {
	s.CellSize = c.DefaultCellSize
	s.SpiralAngularStep = c.DefaultAngularStep
	s.SpiralRadialStep = c.DefaultRadialStep
	s.RotationTrials = c.DefaultRotationTrials
	s.Ordering = OrderingPolicy(c.DefaultOrdering)
	s.Workers = c.DefaultWorkers
}
