package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Default layout settings applied to new projects
	DefaultRetries      int          `json:"default_retries"`
	DefaultBoundPadding float64      `json:"default_bound_padding"`
	DefaultAvoidPadding float64      `json:"default_avoid_padding"`
	DefaultRotation     RotationMode `json:"default_rotation"`
	DefaultMinAngle     float64      `json:"default_min_angle"`
	DefaultMaxAngle     float64      `json:"default_max_angle"`
	DefaultSampling     Sampling     `json:"default_sampling"`
	DefaultWorkers      int          `json:"default_workers"`

	// Application preferences
	RecentProjects []string `json:"recent_projects"`
	MaxRecent      int      `json:"max_recent"`
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults
// matching the values from DefaultSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultSettings()
	return AppConfig{
		DefaultRetries:      defaults.Retries,
		DefaultBoundPadding: defaults.BoundPadding,
		DefaultAvoidPadding: defaults.AvoidPadding,
		DefaultRotation:     defaults.Rotation,
		DefaultMinAngle:     defaults.MinAngle,
		DefaultMaxAngle:     defaults.MaxAngle,
		DefaultSampling:     defaults.Sampling,
		DefaultWorkers:      defaults.Workers,
		RecentProjects:      []string{},
		MaxRecent:           10,
	}
}

// ApplyToSettings copies the default values from AppConfig into a LayoutSettings struct.
// This is used when creating a new project so it inherits the user's saved defaults.
func (c AppConfig) ApplyToSettings(s *LayoutSettings) {
	s.Retries = c.DefaultRetries
	s.BoundPadding = c.DefaultBoundPadding
	s.AvoidPadding = c.DefaultAvoidPadding
	s.Rotation = c.DefaultRotation
	s.MinAngle = c.DefaultMinAngle
	s.MaxAngle = c.DefaultMaxAngle
	s.Sampling = c.DefaultSampling
	s.Workers = c.DefaultWorkers
}

// AddRecent moves path to the front of the recent projects list, trimming
// the list to MaxRecent entries.
func (c *AppConfig) AddRecent(path string) {
	recent := []string{path}
	for _, p := range c.RecentProjects {
		if p != path {
			recent = append(recent, p)
		}
	}
	limit := c.MaxRecent
	if limit <= 0 {
		limit = 10
	}
	if len(recent) > limit {
		recent = recent[:limit]
	}
	c.RecentProjects = recent
}
