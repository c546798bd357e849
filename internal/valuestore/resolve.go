package valuestore

import (
	"github.com/alexisbeaulieu97/towerstyle/internal/style"
)

// Telemetry supplies live values for game sources.
type Telemetry interface {
	Value(source string) (any, bool)
}

// StaticTelemetry is a fixed snapshot of game values.
type StaticTelemetry map[string]any

// Value implements Telemetry.
func (s StaticTelemetry) Value(source string) (any, bool) {
	v, ok := s[source]
	return v, ok
}

// Resolve returns the current value of prop. Fixed properties resolve to
// their value; references go through idx and, for game variables,
// telemetry. ok is false when the reference dangles, the producer has no
// value yet, or the value has another type.
func Resolve[T any](idx *Index, prop style.Property[T], telemetry Telemetry) (value T, ok bool) {
	if v, fixed := prop.Value(); fixed {
		return v, true
	}
	ref, _ := prop.Ref()
	producer, found := idx.Producer(ref.ID)
	if !found {
		return value, false
	}

	switch p := producer.(type) {
	case style.AssetProducer:
		return convert[T](p.Path)
	case style.VariableProducer:
		switch behavior := p.Behavior.Case().(type) {
		case *style.FixedBehavior:
			return convert[T](behavior.Value)
		case *style.GameBehavior:
			if telemetry == nil {
				return value, false
			}
			raw, live := telemetry.Value(behavior.Source)
			if !live {
				return value, false
			}
			return convert[T](raw)
		}
	}
	return value, false
}

// convert adapts the loosely typed values found in documents and telemetry
// to T.
func convert[T any](raw any) (T, bool) {
	var zero T
	if v, ok := raw.(T); ok {
		return v, true
	}
	switch target := any(&zero).(type) {
	case *float64:
		switch n := raw.(type) {
		case int:
			*target = float64(n)
			return zero, true
		case int64:
			*target = float64(n)
			return zero, true
		case float32:
			*target = float64(n)
			return zero, true
		}
	case *style.Tint:
		if s, ok := raw.(string); ok {
			tint, err := style.ParseTint(s)
			if err != nil {
				return zero, false
			}
			*target = tint
			return zero, true
		}
	}
	return zero, false
}
