package ports

import (
	"context"

	"github.com/google/uuid"
)

// Logger is the structured logging contract shared by every towerstyle
// package. Calls take alternating key/value pairs and must be safe for
// concurrent use. Implementations add the correlation id found in ctx.
// Common keys:
//   - correlation_id (one per CLI invocation or editor session)
//   - component (store, commands, script, tui)
//   - node_id / command / widget_id
//   - count / duration_ms for batches
type Logger interface {
	Debug(ctx context.Context, msg string, fields ...interface{})
	Info(ctx context.Context, msg string, fields ...interface{})
	Warn(ctx context.Context, msg string, fields ...interface{})
	Error(ctx context.Context, msg string, fields ...interface{})
	With(fields ...interface{}) Logger
}

type correlationIDKey struct{}

// WithCorrelationID attaches id to ctx so every layer logs it.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, id)
}

// GetCorrelationID returns the id stored by WithCorrelationID, or "".
func GetCorrelationID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(correlationIDKey{}).(string); ok {
		return id
	}
	return ""
}

// GenerateCorrelationID returns a fresh random id.
func GenerateCorrelationID() string {
	return uuid.NewString()
}
