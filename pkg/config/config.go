// pkg/config/config.go
package config

import (
	"fmt"
	"strings"
)

// Config is the top-level configuration tree for assignd.
type Config struct {
	App        AppConfig        `koanf:"app"`
	Log        LogConfig        `koanf:"log"`
	Metrics    MetricsConfig    `koanf:"metrics"`
	Tracing    TracingConfig    `koanf:"tracing"`
	Assignment AssignmentConfig `koanf:"assignment"`
}

// AppConfig carries process-wide identity settings.
type AppConfig struct {
	Name        string `koanf:"name"`
	Version     string `koanf:"version"`
	Environment string `koanf:"environment"` // development, staging, production
	Debug       bool   `koanf:"debug"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level      string `koanf:"level"`       // debug, info, warn, error
	Format     string `koanf:"format"`      // json, text
	Output     string `koanf:"output"`      // stdout, stderr, file
	FilePath   string `koanf:"file_path"`   // log file path
	MaxSize    int    `koanf:"max_size"`    // MB
	MaxBackups int    `koanf:"max_backups"` // number of backups
	MaxAge     int    `koanf:"max_age"`     // days
	Compress   bool   `koanf:"compress"`
}

// MetricsConfig controls the Prometheus exporter.
type MetricsConfig struct {
	Enabled   bool   `koanf:"enabled"`
	Port      int    `koanf:"port"`
	Path      string `koanf:"path"`
	Namespace string `koanf:"namespace"`
	Subsystem string `koanf:"subsystem"`
}

// TracingConfig controls OpenTelemetry.
type TracingConfig struct {
	Enabled     bool    `koanf:"enabled"`
	ServiceName string  `koanf:"service_name"`
	SampleRate  float64 `koanf:"sample_rate"`
}

// AssignmentConfig bounds the path-based assignment core and its demo driver.
type AssignmentConfig struct {
	// PathsPerOD bounds the number of distinct paths stored per origin.
	PathsPerOD int `koanf:"paths_per_od"`
	// MaxIterations bounds the demo driver's outer convergence loop.
	MaxIterations int `koanf:"max_iterations"`
	// RelativeGapTolerance stops the outer loop once the Beckmann
	// objective's relative improvement drops below this threshold.
	RelativeGapTolerance float64 `koanf:"relative_gap_tolerance"`
	// StepsizeMin and StepsizeMax clamp the MSA stepsize the demo driver
	// uses to mix the incumbent and candidate path flows between iterations.
	StepsizeMin float64 `koanf:"stepsize_min"`
	StepsizeMax float64 `koanf:"stepsize_max"`
}

// Validate checks the configuration for consistent values.
func (c *Config) Validate() error {
	var errs []string

	if c.App.Name == "" {
		errs = append(errs, "app.name is required")
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, fmt.Sprintf("log.level must be one of: debug, info, warn, error, got %s", c.Log.Level))
	}

	if c.Metrics.Enabled && (c.Metrics.Port <= 0 || c.Metrics.Port > 65535) {
		errs = append(errs, fmt.Sprintf("metrics.port must be between 1 and 65535, got %d", c.Metrics.Port))
	}

	if c.Assignment.PathsPerOD <= 0 {
		errs = append(errs, "assignment.paths_per_od must be positive")
	}
	if c.Assignment.MaxIterations <= 0 {
		errs = append(errs, "assignment.max_iterations must be positive")
	}
	if c.Assignment.RelativeGapTolerance <= 0 {
		errs = append(errs, "assignment.relative_gap_tolerance must be positive")
	}
	if c.Assignment.StepsizeMin < 0 || c.Assignment.StepsizeMax > 1 || c.Assignment.StepsizeMin > c.Assignment.StepsizeMax {
		errs = append(errs, "assignment.stepsize_min/stepsize_max must satisfy 0 <= min <= max <= 1")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}

	return nil
}

// IsDevelopment reports whether the app is configured for development.
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development" || c.App.Environment == "dev"
}

// IsProduction reports whether the app is configured for production.
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production" || c.App.Environment == "prod"
}
