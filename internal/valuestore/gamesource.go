// Package valuestore resolves the producer references held by style
// properties: fixed variables, assets and live game telemetry.
package valuestore

import (
	"fmt"
	"sort"

	"github.com/alexisbeaulieu97/towerstyle/internal/style"
)

// GameSource is a telemetry value a game variable can read.
type GameSource struct {
	Name        string          `yaml:"name" validate:"required,max=64"`
	Output      style.ValueType `yaml:"output_type" validate:"required,oneof=number text boolean tint"`
	Description string          `yaml:"description"`
}

// GameSources is a read-only table of game sources, keyed by name.
type GameSources struct {
	byName map[string]GameSource
}

// NewGameSources builds a table. Names must be unique.
func NewGameSources(sources ...GameSource) (*GameSources, error) {
	table := &GameSources{byName: make(map[string]GameSource, len(sources))}
	for _, source := range sources {
		if source.Name == "" {
			return nil, fmt.Errorf("game source name is required")
		}
		if _, dup := table.byName[source.Name]; dup {
			return nil, fmt.Errorf("duplicate game source %q", source.Name)
		}
		table.byName[source.Name] = source
	}
	return table, nil
}

// DefaultGameSources returns the sources every timing adapter provides.
func DefaultGameSources() *GameSources {
	table, err := NewGameSources(
		GameSource{Name: "position", Output: style.ValueNumber, Description: "race position of the entry"},
		GameSource{Name: "car_number", Output: style.ValueText, Description: "car number"},
		GameSource{Name: "driver_name", Output: style.ValueText, Description: "full driver name"},
		GameSource{Name: "driver_short", Output: style.ValueText, Description: "three letter driver abbreviation"},
		GameSource{Name: "team_name", Output: style.ValueText, Description: "team name"},
		GameSource{Name: "team_color", Output: style.ValueTint, Description: "team livery color"},
		GameSource{Name: "lap", Output: style.ValueNumber, Description: "current lap of the entry"},
		GameSource{Name: "laps_remaining", Output: style.ValueNumber, Description: "laps left in the session"},
		GameSource{Name: "lap_time", Output: style.ValueText, Description: "last lap time"},
		GameSource{Name: "best_lap", Output: style.ValueText, Description: "best lap time"},
		GameSource{Name: "gap", Output: style.ValueText, Description: "gap to the leader"},
		GameSource{Name: "interval", Output: style.ValueText, Description: "gap to the car ahead"},
		GameSource{Name: "speed", Output: style.ValueNumber, Description: "current speed in km/h"},
		GameSource{Name: "in_pits", Output: style.ValueBoolean, Description: "entry is in the pit lane"},
		GameSource{Name: "is_focused", Output: style.ValueBoolean, Description: "entry is followed by the camera"},
		GameSource{Name: "session_time", Output: style.ValueText, Description: "remaining session time"},
	)
	if err != nil {
		panic(err)
	}
	return table
}

// With returns a copy of g extended with extra sources. Extra sources
// replace built-in ones of the same name.
func (g *GameSources) With(extra ...GameSource) (*GameSources, error) {
	merged := make(map[string]GameSource, len(g.byName)+len(extra))
	for name, source := range g.byName {
		merged[name] = source
	}
	seen := make(map[string]bool, len(extra))
	for _, source := range extra {
		if source.Name == "" {
			return nil, fmt.Errorf("game source name is required")
		}
		if seen[source.Name] {
			return nil, fmt.Errorf("duplicate game source %q", source.Name)
		}
		seen[source.Name] = true
		merged[source.Name] = source
	}
	return &GameSources{byName: merged}, nil
}

// Lookup returns the source called name.
func (g *GameSources) Lookup(name string) (GameSource, bool) {
	if g == nil {
		return GameSource{}, false
	}
	source, ok := g.byName[name]
	return source, ok
}

// Known reports whether name is in the table.
func (g *GameSources) Known(name string) bool {
	_, ok := g.Lookup(name)
	return ok
}

// All returns every source sorted by name.
func (g *GameSources) All() []GameSource {
	if g == nil {
		return nil
	}
	out := make([]GameSource, 0, len(g.byName))
	for _, source := range g.byName {
		out = append(out, source)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ValidateOptions returns document validation options checking game
// variables against this table.
func (g *GameSources) ValidateOptions() style.ValidateOptions {
	return style.ValidateOptions{KnownGameSource: g.Known}
}
