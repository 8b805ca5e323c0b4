// Package config holds bayboard configuration: view-mode geometry,
// bay defaults, and phase weight overrides. Config files are YAML;
// selected fields can be overridden from BAYBOARD_* environment
// variables.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/MahlumInnovationsLLC/MasterScheduler-sub010/internal/bay"
	"github.com/MahlumInnovationsLLC/MasterScheduler-sub010/internal/phase"
	"github.com/MahlumInnovationsLLC/MasterScheduler-sub010/internal/timeline"
)

// Config is the full bayboard configuration.
type Config struct {
	// DefaultView is the view mode used when a command does not pass
	// --view: day, week, or month.
	DefaultView timeline.ViewMode `yaml:"default_view"`

	// DefaultRowCount applies to bays whose definition omits one.
	DefaultRowCount int `yaml:"default_row_count"`

	// DefaultWeights replaces the built-in phase weights for projects
	// that carry none. Zero values fall back to phase.DefaultWeights.
	DefaultWeights phase.Weights `yaml:"default_weights"`

	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Verbose bool `yaml:"verbose"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		DefaultView:     timeline.ViewWeek,
		DefaultRowCount: bay.DefaultRowCount,
		DefaultWeights:  phase.DefaultWeights(),
	}
}

// Load reads a YAML config file, applies environment overrides, and
// validates the result. A missing file yields DefaultConfig with env
// overrides applied.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// Validate checks the configuration for values the engine would
// reject later.
func (c Config) Validate() error {
	switch c.DefaultView {
	case timeline.ViewDay, timeline.ViewWeek, timeline.ViewMonth:
	default:
		return fmt.Errorf("config: unknown view mode %q", c.DefaultView)
	}
	if c.DefaultRowCount <= 0 {
		return fmt.Errorf("config: default_row_count must be > 0, got %d", c.DefaultRowCount)
	}
	if c.DefaultWeights.Sum() < 0 {
		return fmt.Errorf("config: default weights sum to %v", c.DefaultWeights.Sum())
	}
	return nil
}

// Weights returns the effective default phase weights.
func (c Config) Weights() phase.Weights {
	if c.DefaultWeights.IsZero() {
		return phase.DefaultWeights()
	}
	return c.DefaultWeights
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("BAYBOARD_VIEW"); v != "" {
		c.DefaultView = timeline.ViewMode(v)
	}
	if v := os.Getenv("BAYBOARD_ROW_COUNT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.DefaultRowCount = n
		}
	}
	if v := os.Getenv("BAYBOARD_VERBOSE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Logging.Verbose = b
		}
	}
}
