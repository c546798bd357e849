// Package tui is a terminal tree browser for style documents. Every edit
// goes through the document store as a command so it can be undone.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/alexisbeaulieu97/towerstyle/internal/command"
	"github.com/alexisbeaulieu97/towerstyle/internal/style"
)

// Document is the store surface the browser drives.
type Document interface {
	Current() *style.StyleDefinition
	QueueCommand(cmd command.Command)
	Commit(ctx context.Context, adapter command.Adapter) bool
	Save(ctx context.Context, path string) error
	UndoStack() []command.Command
	RedoStack() []command.Command
}

// row is one visible line of the tree.
type row struct {
	id    uuid.UUID
	kind  style.NodeKind
	name  string
	depth int
}

// Model is the browser state.
type Model struct {
	ctx  context.Context
	doc  Document
	path string

	rows   []row
	cursor int

	keys     keyMap
	help     help.Model
	showHelp bool

	dirty    bool
	saving   bool
	status   string
	errorMsg string

	width  int
	height int
}

// NewModel creates a browser over doc. path is where save writes.
func NewModel(ctx context.Context, doc Document, path string) Model {
	m := Model{
		ctx:    ctx,
		doc:    doc,
		path:   path,
		keys:   defaultKeyMap(),
		help:   help.New(),
		width:  80,
		height: 24,
	}
	m.refresh(uuid.Nil)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// refresh rebuilds the rows from the current snapshot and puts the cursor
// back on keep when it is still present.
func (m *Model) refresh(keep uuid.UUID) {
	m.rows = flatten(m.doc.Current())
	if keep != uuid.Nil {
		for i, r := range m.rows {
			if r.id == keep {
				m.cursor = i
				return
			}
		}
	}
	m.cursor = min(m.cursor, len(m.rows)-1)
	m.cursor = max(m.cursor, 0)
}

// flatten lists every node below the root in walk order.
func flatten(doc *style.StyleDefinition) []row {
	var rows []row
	depth := -1
	style.Walk(doc, func(n style.Node, method style.Method) style.ControlFlow {
		if method == style.Leave {
			depth--
			return style.Continue
		}
		depth++
		if n.Kind() != style.KindStyle {
			rows = append(rows, row{id: n.NodeID(), kind: n.Kind(), name: n.DisplayName(), depth: depth - 1})
		}
		return style.Continue
	})
	return rows
}

// Selected returns the id of the node under the cursor.
func (m Model) Selected() (uuid.UUID, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return uuid.Nil, false
	}
	return m.rows[m.cursor].id, true
}

// Dirty reports whether there are unsaved changes.
func (m Model) Dirty() bool {
	return m.dirty
}

// MoveCursorUp moves cursor up with wrapping
func (m *Model) MoveCursorUp() {
	if len(m.rows) == 0 {
		return
	}
	m.cursor--
	if m.cursor < 0 {
		m.cursor = len(m.rows) - 1
	}
}

// MoveCursorDown moves cursor down with wrapping
func (m *Model) MoveCursorDown() {
	if len(m.rows) == 0 {
		return
	}
	m.cursor++
	if m.cursor >= len(m.rows) {
		m.cursor = 0
	}
}
