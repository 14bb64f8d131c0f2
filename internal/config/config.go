// Package config defines service configuration structures and loading hooks.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// SourceURL is the base URL of the workout bridge. Empty disables
	// importing.
	SourceURL string `koanf:"source_url"`

	// BridgeName is the display name of the import bridge used in
	// workout annotations.
	BridgeName string `koanf:"bridge_name"`

	// LaunchImportDays sets how many recent days are imported on
	// startup. Zero disables the launch import.
	LaunchImportDays int `koanf:"launch_import_days"`

	// DurationTolerance is the relative duration tolerance used when
	// matching external records to local workouts.
	DurationTolerance float64 `koanf:"duration_tolerance"`

	// DistanceToleranceMiles is the absolute distance tolerance used for
	// deduplication and matching.
	DistanceToleranceMiles float64 `koanf:"distance_tolerance_miles"`

	// StoreBackend selects the workout store: memory or postgres.
	StoreBackend string `koanf:"store_backend"`

	// PostgresDSN is the connection string for the postgres backend.
	PostgresDSN string `koanf:"postgres_dsn"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:               "info",
		Addr:                   ":8080",
		BridgeName:             "Health",
		LaunchImportDays:       7,
		DurationTolerance:      0.05,
		DistanceToleranceMiles: 0.05,
		StoreBackend:           "memory",
	}
}
