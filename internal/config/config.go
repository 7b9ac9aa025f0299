// Package config loads flashdeck settings from defaults, an optional YAML
// file and FLASHDECK_* environment variables, in increasing precedence.
package config

import (
	"github.com/abhisek/flashdeck/internal/scheduler"
	"github.com/abhisek/flashdeck/internal/spacedrep"
	"github.com/abhisek/flashdeck/internal/supplier"
)

// Config holds all application configuration.
type Config struct {
	Scheduling SchedulingConfig `mapstructure:"scheduling"`
	Store      StoreConfig      `mapstructure:"store"`
	Log        LogConfig        `mapstructure:"log"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
}

// SchedulingConfig tunes the drill engine.
type SchedulingConfig struct {
	History       int     `mapstructure:"history" validate:"gte=0"`
	DefaultDelay  float64 `mapstructure:"default_delay" validate:"gt=0"`
	Noise         float64 `mapstructure:"noise" validate:"gte=0"`
	OptimalStreak int     `mapstructure:"optimal_streak" validate:"gte=1"`
	Magic         float64 `mapstructure:"magic" validate:"gt=0"`
	Adventure     float64 `mapstructure:"adventure" validate:"gte=0,lte=1"`

	// Seed fixes the random source; 0 seeds from the clock.
	Seed uint64 `mapstructure:"seed"`
}

// StoreConfig selects where the deck lives.
type StoreConfig struct {
	Driver string `mapstructure:"driver" validate:"required,oneof=yaml sqlite"`
	Path   string `mapstructure:"path"`
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=text json"`
}

// MetricsConfig controls metric export.
type MetricsConfig struct {
	// Textfile, when set, receives the session metrics in Prometheus text
	// format when the session closes.
	Textfile string `mapstructure:"textfile"`
}

// Supplier returns the card supplier settings.
func (s SchedulingConfig) Supplier() supplier.Config {
	return supplier.Config{Adventure: s.Adventure}
}

// Scheduler returns the in-session scheduler settings.
func (s SchedulingConfig) Scheduler() scheduler.Config {
	return scheduler.Config{
		History:       s.History,
		OptimalStreak: s.OptimalStreak,
		Magic:         s.Magic,
	}
}

// SpacedRep returns the long-term interval settings.
func (s SchedulingConfig) SpacedRep() spacedrep.Config {
	return spacedrep.Config{
		DefaultDelay: s.DefaultDelay,
		Noise:        s.Noise,
	}
}
