// Package config loads and watches TOML tuning files for kinetic surfaces.
//
// A tuning file carries a single [input] table whose keys mirror
// kinetic.Thresholds, with durations written as integer milliseconds:
//
//	[input]
//	max_tap_distance = 400.0
//	max_multi_tap = 300
//	long_press = 300
//	velocity_interval = 30
//	velocity_friction = 0.85
//
// Every key is optional. Omitted keys keep their defaults, and a missing
// file yields the default configuration so applications run unconfigured.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/catacombing/kinetic"
)

// Config is the root of a tuning file.
type Config struct {
	Input InputConfig `toml:"input"`
}

// InputConfig holds the gesture thresholds from the [input] table.
type InputConfig struct {
	// MaxTapDistance is the tap slop in squared logical units.
	MaxTapDistance float64 `toml:"max_tap_distance"`

	// MaxMultiTap is the longest gap between chained taps, in milliseconds.
	MaxMultiTap int `toml:"max_multi_tap"`

	// LongPress is the hold duration for a long-press, in milliseconds.
	LongPress int `toml:"long_press"`

	// VelocityInterval is the velocity sampling interval, in milliseconds.
	VelocityInterval int `toml:"velocity_interval"`

	// VelocityFriction is the per-interval decay factor, in (0, 1).
	VelocityFriction float64 `toml:"velocity_friction"`
}

// Default returns a configuration mirroring kinetic.DefaultThresholds.
func Default() *Config {
	th := kinetic.DefaultThresholds()
	return &Config{
		Input: InputConfig{
			MaxTapDistance:   th.MaxTapDistance,
			MaxMultiTap:      int(th.MaxMultiTap / time.Millisecond),
			LongPress:        int(th.LongPress / time.Millisecond),
			VelocityInterval: int(th.VelocityInterval / time.Millisecond),
			VelocityFriction: th.VelocityFriction,
		},
	}
}

// Thresholds converts the [input] table to engine thresholds.
func (c *Config) Thresholds() kinetic.Thresholds {
	return kinetic.Thresholds{
		MaxTapDistance:   c.Input.MaxTapDistance,
		MaxMultiTap:      time.Duration(c.Input.MaxMultiTap) * time.Millisecond,
		LongPress:        time.Duration(c.Input.LongPress) * time.Millisecond,
		VelocityInterval: time.Duration(c.Input.VelocityInterval) * time.Millisecond,
		VelocityFriction: c.Input.VelocityFriction,
	}
}

// Validate reports whether the configuration describes usable thresholds.
// Failures satisfy errors.Is against kinetic.ErrInvalidThreshold.
func (c *Config) Validate() error {
	return c.Thresholds().Validate()
}

// Load reads and validates a tuning file. A missing file is not an
// error: the defaults are returned instead.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("decode TOML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
