package events

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/alexisbeaulieu97/towerstyle/internal/ports"
)

// LoggingPublisher logs every document event and fans it out to
// subscribers in registration order. It numbers style changes so log lines
// and subscribers can tell batches apart.
type LoggingPublisher struct {
	logger   ports.Logger
	subs     map[string][]subscriptionEntry
	nextID   int
	revision atomic.Uint64
	mu       sync.RWMutex
}

// NewLoggingPublisher returns a publisher writing to logger. A nil logger
// disables logging but still delivers events.
func NewLoggingPublisher(logger ports.Logger) *LoggingPublisher {
	return &LoggingPublisher{
		logger: logger,
		subs:   make(map[string][]subscriptionEntry),
	}
}

// Revision returns the number of style.changed events published so far.
func (p *LoggingPublisher) Revision() uint64 {
	if p == nil {
		return 0
	}
	return p.revision.Load()
}

// Publish logs the event at debug level and runs every handler subscribed to
// its type before returning.
func (p *LoggingPublisher) Publish(ctx context.Context, event ports.DomainEvent) error {
	if p == nil || event == nil {
		return nil
	}

	p.mu.RLock()
	handlers := append([]subscriptionEntry(nil), p.subs[event.EventType()]...)
	p.mu.RUnlock()

	fields := []interface{}{"event_type", event.EventType()}
	if event.EventType() == ports.EventStyleChanged {
		fields = append(fields, "revision", p.revision.Add(1))
	}
	fields = append(fields, payloadFields(event.Payload())...)

	if p.logger != nil {
		p.logger.Debug(ctx, eventMessage(event.EventType()), fields...)
	}

	for _, entry := range handlers {
		handler := entry.handler
		if handler == nil {
			continue
		}
		if err := handler(ctx, event); err != nil && p.logger != nil {
			p.logger.Warn(ctx, "event handler failed", "event_type", event.EventType(), "error", err)
		}
	}

	return nil
}

func eventMessage(eventType string) string {
	switch eventType {
	case ports.EventStyleChanged:
		return "style changed"
	case ports.EventStyleLoaded:
		return "style loaded"
	case ports.EventStyleSaved:
		return "style saved"
	}
	return "style event"
}

// payloadFields flattens a payload into log fields. Maps are emitted in key
// order.
func payloadFields(payload interface{}) []interface{} {
	switch payload := payload.(type) {
	case nil:
		return nil
	case interface{ LogFields() []interface{} }:
		return payload.LogFields()
	case map[string]interface{}:
		keys := make([]string, 0, len(payload))
		for key := range payload {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		fields := make([]interface{}, 0, 2*len(keys))
		for _, key := range keys {
			fields = append(fields, key, payload[key])
		}
		return fields
	}
	return []interface{}{"payload", payload}
}

// Subscribe registers handler for eventType.
func (p *LoggingPublisher) Subscribe(eventType string, handler ports.EventHandler) (ports.Subscription, error) {
	if p == nil || handler == nil {
		return noopSubscription{}, nil
	}
	p.mu.Lock()
	p.nextID++
	id := p.nextID
	p.subs[eventType] = append(p.subs[eventType], subscriptionEntry{id: id, handler: handler})
	p.mu.Unlock()

	return subscription{
		cancel: func() {
			p.mu.Lock()
			defer p.mu.Unlock()
			handlers := p.subs[eventType]
			for i, entry := range handlers {
				if entry.id == id {
					p.subs[eventType] = append(handlers[:i], handlers[i+1:]...)
					break
				}
			}
		},
	}, nil
}

type noopSubscription struct{}

func (noopSubscription) Unsubscribe() {}

type subscription struct {
	cancel func()
}

func (s subscription) Unsubscribe() {
	if s.cancel != nil {
		s.cancel()
	}
}

type subscriptionEntry struct {
	id      int
	handler ports.EventHandler
}
