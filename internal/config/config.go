// Package config loads the YAML settings file. Command line flags override
// individual values after loading.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/philipparndt/godefects/internal/logging"
	"github.com/philipparndt/godefects/pkg/defects"
	"gopkg.in/yaml.v3"
)

// Config holds all tunable settings
type Config struct {
	Defects Defects `yaml:"defects"`
	Watch   Watch   `yaml:"watch"`
	Log     Log     `yaml:"log"`
	Viewer  Viewer  `yaml:"viewer"`
}

// Defects are the randomization defaults
type Defects struct {
	Min          float64 `yaml:"min"`
	Max          float64 `yaml:"max"`
	Seed         uint64  `yaml:"seed"`
	Distribution string  `yaml:"distribution"`
}

// Range returns the configured displacement range
func (d Defects) Range() defects.Range {
	return defects.Range{Min: d.Min, Max: d.Max}
}

// Dist returns the configured displacement distribution
func (d Defects) Dist() (defects.Distribution, error) {
	return defects.ParseDistribution(d.Distribution)
}

// Watch configures file reloading
type Watch struct {
	Debounce time.Duration `yaml:"debounce"`
}

// Log configures the logger
type Log struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

// Viewer configures rendering
type Viewer struct {
	Width     int     `yaml:"width"`
	Height    int     `yaml:"height"`
	PointSize float32 `yaml:"point_size"`
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		Defects: Defects{Min: 0, Max: 1, Seed: 1, Distribution: defects.UniformMagnitude.String()},
		Watch:   Watch{Debounce: 250 * time.Millisecond},
		Log:     Log{Level: "info", Pretty: true},
		Viewer:  Viewer{Width: 1024, Height: 768, PointSize: 3},
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every section
func (c Config) Validate() error {
	if err := c.Defects.Range().Validate(); err != nil {
		return err
	}
	if _, err := c.Defects.Dist(); err != nil {
		return err
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch debounce must not be negative")
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	if c.Viewer.Width <= 0 || c.Viewer.Height <= 0 {
		return fmt.Errorf("viewer size must be positive, got %dx%d", c.Viewer.Width, c.Viewer.Height)
	}
	if c.Viewer.PointSize <= 0 {
		return fmt.Errorf("viewer point size must be positive")
	}
	return nil
}
