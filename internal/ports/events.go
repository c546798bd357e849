package ports

import "context"

const (
	// EventStyleChanged is published once per committed command batch.
	EventStyleChanged = "style.changed"
	// EventStyleLoaded is published after a document is read from disk.
	EventStyleLoaded = "style.loaded"
	// EventStyleSaved is published after a document is written to disk.
	EventStyleSaved = "style.saved"
)

// DomainEvent is a notable occurrence in the document lifecycle.
type DomainEvent interface {
	EventType() string
	Payload() interface{}
}

// Event is the plain DomainEvent used by towerstyle packages. Data is one of
// the payload types below or a map of log fields.
type Event struct {
	Type string
	Data interface{}
}

// StyleChange is the payload of EventStyleChanged.
type StyleChange struct {
	UndoDepth int
	RedoDepth int
	// Replaced is set when the document was swapped wholesale and the
	// history cleared.
	Replaced bool
}

// LogFields returns the change as key/value pairs.
func (c StyleChange) LogFields() []interface{} {
	if c.Replaced {
		return []interface{}{"replaced", true}
	}
	return []interface{}{"undo_depth", c.UndoDepth, "redo_depth", c.RedoDepth}
}

// StyleFile is the payload of EventStyleLoaded and EventStyleSaved.
type StyleFile struct {
	Path string
}

// LogFields returns the file event as key/value pairs.
func (f StyleFile) LogFields() []interface{} {
	return []interface{}{"path", f.Path}
}

// EventType implements DomainEvent.
func (e Event) EventType() string { return e.Type }

// Payload implements DomainEvent.
func (e Event) Payload() interface{} { return e.Data }

// EventPublisher distributes events to subscribers. Publish is synchronous:
// it returns after every handler ran, so a caller that publishes a change can
// rely on derived state (caches, indexes) being rebuilt. Implementations must
// be safe for concurrent use.
type EventPublisher interface {
	Publish(ctx context.Context, event DomainEvent) error
	Subscribe(eventType string, handler EventHandler) (Subscription, error)
}

// EventHandler processes one event. Errors are reported by the publisher and
// do not stop delivery to the remaining handlers.
type EventHandler func(context.Context, DomainEvent) error

// Subscription is a registered handler.
type Subscription interface {
	Unsubscribe()
}
