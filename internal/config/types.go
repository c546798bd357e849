// Package config loads the editor configuration file.
//
// A configuration file is optional; every key has a default:
//
//	log_level: debug
//	human_readable: true
//	coalesce_window: 750ms
//	history_limit: 200
//	game_sources:
//	  - name: fuel
//	    output_type: number
//	    description: Remaining fuel in litres
package config

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/alexisbeaulieu97/towerstyle/internal/command"
	"github.com/alexisbeaulieu97/towerstyle/internal/valuestore"
)

// Config represents the editor configuration document.
type Config struct {
	LogLevel       string                  `yaml:"log_level,omitempty" validate:"omitempty,oneof=trace debug info warn error"`
	HumanReadable  *bool                   `yaml:"human_readable,omitempty"`
	CoalesceWindow *time.Duration          `yaml:"coalesce_window,omitempty" validate:"omitempty,gte=0,lte=1m"`
	HistoryLimit   int                     `yaml:"history_limit,omitempty" validate:"gte=0,lte=100000"`
	GameSources    []valuestore.GameSource `yaml:"game_sources,omitempty" validate:"omitempty,unique=Name,dive"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{LogLevel: "info"}
}

// Level returns the zerolog level for LogLevel. verbose forces debug.
func (c *Config) Level(verbose bool) zerolog.Level {
	if verbose {
		return zerolog.DebugLevel
	}
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || c.LogLevel == "" {
		return zerolog.InfoLevel
	}
	return level
}

// Human reports whether logs should be human readable. An unset value
// falls back to terminal detection.
func (c *Config) Human(isTerminal bool) bool {
	if c.HumanReadable == nil {
		return isTerminal
	}
	return *c.HumanReadable
}

// Window returns the coalescing window for property edits.
func (c *Config) Window() time.Duration {
	if c.CoalesceWindow == nil {
		return command.DefaultCoalesceWindow
	}
	return *c.CoalesceWindow
}

// ManagerOptions translates the history settings into command manager options.
func (c *Config) ManagerOptions() []command.Option {
	return []command.Option{
		command.WithCoalesceWindow(c.Window()),
		command.WithHistoryLimit(c.HistoryLimit),
	}
}

// Sources returns the built-in game sources extended with the configured ones.
func (c *Config) Sources() (*valuestore.GameSources, error) {
	return valuestore.DefaultGameSources().With(c.GameSources...)
}
