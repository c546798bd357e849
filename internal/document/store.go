// Package document owns the committed style document: loading and saving it,
// and replacing it atomically when a batch of commands is committed.
package document

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/alexisbeaulieu97/towerstyle/internal/command"
	"github.com/alexisbeaulieu97/towerstyle/internal/infrastructure/logging"
	"github.com/alexisbeaulieu97/towerstyle/internal/ports"
	"github.com/alexisbeaulieu97/towerstyle/internal/style"
)

// Store holds the committed document. Readers get an immutable snapshot
// that is swapped wholesale on every commit, so they never observe a
// half-applied batch.
type Store struct {
	current   atomic.Pointer[style.StyleDefinition]
	commitMu  sync.Mutex
	manager   *command.Manager
	publisher ports.EventPublisher
	logger    ports.Logger
	validate  *style.ValidateOptions
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithManager sets the command manager. By default the store creates one
// with default options.
func WithManager(m *command.Manager) StoreOption {
	return func(s *Store) {
		if m != nil {
			s.manager = m
		}
	}
}

// WithPublisher sets where change events go.
func WithPublisher(p ports.EventPublisher) StoreOption {
	return func(s *Store) { s.publisher = p }
}

// WithLogger sets the store logger.
func WithLogger(l ports.Logger) StoreOption {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithValidation makes Save refuse documents that Load would reject.
func WithValidation(opts style.ValidateOptions) StoreOption {
	return func(s *Store) { s.validate = &opts }
}

// NewStore returns a store whose committed document is doc.
func NewStore(doc *style.StyleDefinition, opts ...StoreOption) *Store {
	s := &Store{logger: logging.NewNoOpLogger()}
	for _, opt := range opts {
		opt(s)
	}
	if s.manager == nil {
		s.manager = command.NewManager(command.WithLogger(s.logger))
	}
	s.logger = s.logger.With("component", "store")
	s.current.Store(doc)
	return s
}

// Open loads the document at path and wraps it in a store that validates
// with the same options before saving. EventStyleLoaded is published on
// success.
func Open(ctx context.Context, path string, validate style.ValidateOptions, opts ...StoreOption) (*Store, error) {
	doc, err := Load(path, validate)
	if err != nil {
		return nil, err
	}
	s := NewStore(doc, append([]StoreOption{WithValidation(validate)}, opts...)...)
	s.logger.Info(ctx, "loaded style", "path", path, "nodes", style.Count(doc))
	s.publish(ctx, ports.EventStyleLoaded, ports.StyleFile{Path: path})
	return s, nil
}

// Current returns the committed snapshot. Callers must not mutate it.
func (s *Store) Current() *style.StyleDefinition {
	return s.current.Load()
}

// FindNode looks id up in the committed snapshot.
func (s *Store) FindNode(id uuid.UUID) (style.Node, bool) {
	return style.FindNode(s.Current(), id)
}

// QueueCommand defers cmd to the next Commit.
func (s *Store) QueueCommand(cmd command.Command) {
	s.manager.Queue(cmd)
}

// Commit applies every queued command, swaps in the result and publishes a
// single EventStyleChanged. It reports whether the document changed.
func (s *Store) Commit(ctx context.Context, adapter command.Adapter) bool {
	s.commitMu.Lock()
	defer s.commitMu.Unlock()

	next, changed := s.manager.ApplyQueue(ctx, s.Current(), adapter)
	if !changed {
		return false
	}
	s.current.Store(next)
	s.publish(ctx, ports.EventStyleChanged, ports.StyleChange{
		UndoDepth: len(s.manager.UndoStack()),
		RedoDepth: len(s.manager.RedoStack()),
	})
	return true
}

// Replace installs doc as the committed document, discarding pending
// commands and history.
func (s *Store) Replace(ctx context.Context, doc *style.StyleDefinition) {
	s.commitMu.Lock()
	defer s.commitMu.Unlock()

	s.manager.Clear()
	s.current.Store(doc)
	s.publish(ctx, ports.EventStyleChanged, ports.StyleChange{Replaced: true})
}

// Save writes the committed document to path. With WithValidation an
// invalid document is rejected and nothing is written.
func (s *Store) Save(ctx context.Context, path string) error {
	doc := s.Current()
	if s.validate != nil {
		if err := style.Validate(doc, *s.validate); err != nil {
			s.logger.Warn(ctx, "refusing to save invalid style", "path", path, "error", err)
			return err
		}
	}
	if err := Save(path, doc); err != nil {
		s.logger.Error(ctx, "failed to save style", "path", path, "error", err)
		return err
	}
	s.publish(ctx, ports.EventStyleSaved, ports.StyleFile{Path: path})
	return nil
}

// UndoStack returns the undo history, oldest first.
func (s *Store) UndoStack() []command.Command { return s.manager.UndoStack() }

// RedoStack returns the redo history, oldest first.
func (s *Store) RedoStack() []command.Command { return s.manager.RedoStack() }

func (s *Store) publish(ctx context.Context, eventType string, data interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, ports.Event{Type: eventType, Data: data}); err != nil {
		s.logger.Warn(ctx, "failed to publish event", "event_type", eventType, "error", err)
	}
}
