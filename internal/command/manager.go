package command

import (
	"context"
	"sync"
	"time"

	"github.com/alexisbeaulieu97/towerstyle/internal/infrastructure/logging"
	"github.com/alexisbeaulieu97/towerstyle/internal/ports"
	"github.com/alexisbeaulieu97/towerstyle/internal/style"
)

// DefaultCoalesceWindow is how close two edits of the same widget must be to
// merge into one undo entry.
const DefaultCoalesceWindow = time.Second

// Option configures a Manager.
type Option func(*Manager)

// WithCoalesceWindow overrides DefaultCoalesceWindow. Zero disables
// coalescing.
func WithCoalesceWindow(d time.Duration) Option {
	return func(m *Manager) { m.window = d }
}

// WithHistoryLimit caps the undo stack; the oldest entries are dropped
// first. Zero means unlimited.
func WithHistoryLimit(n int) Option {
	return func(m *Manager) { m.limit = n }
}

// WithLogger sets the logger used for batch diagnostics.
func WithLogger(logger ports.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// Manager queues commands and applies them in batches, keeping undo and
// redo history.
type Manager struct {
	mu     sync.Mutex
	queue  []Command
	undo   []Command
	redo   []Command
	window time.Duration
	limit  int
	logger ports.Logger
}

// NewManager returns an empty manager.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		window: DefaultCoalesceWindow,
		logger: logging.NewNoOpLogger(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = m.logger.With("component", "commands")
	return m
}

// Queue appends cmd to the pending batch.
func (m *Manager) Queue(cmd Command) {
	if cmd == nil {
		return
	}
	m.mu.Lock()
	m.queue = append(m.queue, cmd)
	m.mu.Unlock()
}

// Pending returns the number of queued commands.
func (m *Manager) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}

// ApplyQueue runs every queued command in order against a deep copy of doc
// and returns the copy. changed is false, and doc itself is returned, when
// no command had an effect. doc is never modified.
func (m *Manager) ApplyQueue(ctx context.Context, doc *style.StyleDefinition, adapter Adapter) (next *style.StyleDefinition, changed bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.queue) == 0 {
		return doc, false
	}
	batch := m.queue
	m.queue = nil

	started := time.Now()
	working := doc.Clone()
	effective := 0
	for _, cmd := range batch {
		if m.apply(ctx, working, cmd, adapter) {
			effective++
		}
	}

	m.logger.Debug(ctx, "applied command batch",
		"commands", len(batch),
		"effective", effective,
		"undo_depth", len(m.undo),
		"redo_depth", len(m.redo),
		"duration_ms", time.Since(started).Milliseconds(),
	)
	if effective == 0 {
		return doc, false
	}
	return working, true
}

func (m *Manager) apply(ctx context.Context, doc *style.StyleDefinition, cmd Command, adapter Adapter) bool {
	switch cmd.(type) {
	case Undo:
		return m.replay(ctx, doc, adapter, &m.undo, &m.redo)
	case Redo:
		return m.replay(ctx, doc, adapter, &m.redo, &m.undo)
	}

	inverse := cmd.Execute(doc, adapter)
	if inverse == nil {
		if _, sideEffect := cmd.(AdapterCommand); !sideEffect {
			m.logger.Debug(ctx, "command had no effect", "command", cmd.Name())
		}
		return false
	}
	if !m.coalesce(inverse) {
		m.push(inverse)
	}
	m.redo = nil
	return true
}

// replay pops from src, executes it and pushes its inverse onto dst.
func (m *Manager) replay(ctx context.Context, doc *style.StyleDefinition, adapter Adapter, src, dst *[]Command) bool {
	if len(*src) == 0 {
		return false
	}
	last := len(*src) - 1
	cmd := (*src)[last]
	*src = (*src)[:last]

	inverse := cmd.Execute(doc, adapter)
	if inverse == nil {
		m.logger.Warn(ctx, "history entry could not be replayed", "command", cmd.Name())
		return false
	}
	*dst = append(*dst, inverse)
	return true
}

func (m *Manager) push(inverse Command) {
	m.undo = append(m.undo, inverse)
	if m.limit > 0 && len(m.undo) > m.limit {
		m.undo = append([]Command(nil), m.undo[len(m.undo)-m.limit:]...)
	}
}

// coalesce merges inverse into the top of the undo stack when both revert
// edits of the same field through the same widget within the window. The
// merged entry keeps the older value so one undo restores the state from
// before the first edit.
func (m *Manager) coalesce(inverse Command) bool {
	if m.window <= 0 || len(m.undo) == 0 {
		return false
	}
	next, ok := inverse.(EditProperty)
	if !ok || next.WidgetID == "" {
		return false
	}
	top, ok := m.undo[len(m.undo)-1].(EditProperty)
	if !ok || top.ID != next.ID || top.WidgetID != next.WidgetID {
		return false
	}
	if top.Value == nil || next.Value == nil || top.Value.FieldName() != next.Value.FieldName() {
		return false
	}
	gap := next.Timestamp.Sub(top.Timestamp)
	if gap < 0 {
		gap = -gap
	}
	if gap >= m.window {
		return false
	}
	top.Timestamp = next.Timestamp
	m.undo[len(m.undo)-1] = top
	return true
}

// UndoStack returns a copy of the undo history, oldest first.
func (m *Manager) UndoStack() []Command {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Command(nil), m.undo...)
}

// RedoStack returns a copy of the redo history, oldest first.
func (m *Manager) RedoStack() []Command {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Command(nil), m.redo...)
}

// Clear drops pending commands and all history, e.g. after loading another
// document.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = nil
	m.undo = nil
	m.redo = nil
}
