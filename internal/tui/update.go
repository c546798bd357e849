package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/alexisbeaulieu97/towerstyle/internal/command"
	"github.com/alexisbeaulieu97/towerstyle/internal/style"
)

// savedMsg reports the outcome of an asynchronous save.
type savedMsg struct {
	path string
	err  error
}

// saveCmd writes the current snapshot to path.
func saveCmd(m Model) tea.Cmd {
	ctx, doc, path := m.ctx, m.doc, m.path
	return func() tea.Msg {
		return savedMsg{path: path, err: doc.Save(ctx, path)}
	}
}

// Update handles incoming messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case savedMsg:
		m.saving = false
		if msg.err != nil {
			m.errorMsg = fmt.Sprintf("Save failed: %s", msg.err)
			return m, nil
		}
		m.dirty = false
		m.errorMsg = ""
		m.status = fmt.Sprintf("Saved %s", msg.path)
		return m, nil
	}

	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.MoveCursorUp()
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.MoveCursorDown()
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		return m.deleteSelected(), nil

	case key.Matches(msg, m.keys.MoveUp):
		return m.shiftSelected(-1), nil

	case key.Matches(msg, m.keys.MoveDown):
		return m.shiftSelected(1), nil

	case key.Matches(msg, m.keys.Undo):
		m.replayHistory(command.Undo{}, len(m.doc.UndoStack()), "undo")
		return m, nil

	case key.Matches(msg, m.keys.Redo):
		m.replayHistory(command.Redo{}, len(m.doc.RedoStack()), "redo")
		return m, nil

	case key.Matches(msg, m.keys.Save):
		if m.path == "" {
			m.errorMsg = "No file to save to"
			return m, nil
		}
		if m.saving {
			return m, nil
		}
		m.saving = true
		return m, saveCmd(m)
	}

	return m, nil
}

// run commits one command and refreshes the rows, keeping keep selected.
func (m *Model) run(cmd command.Command, keep uuid.UUID) bool {
	m.doc.QueueCommand(cmd)
	if !m.doc.Commit(m.ctx, nil) {
		return false
	}
	m.dirty = true
	m.errorMsg = ""
	m.refresh(keep)
	return true
}

// replayHistory runs an undo or redo. depth is the size of the stack it pops
// from; a failure with a non-empty stack means the entry no longer applied
// and was dropped.
func (m *Model) replayHistory(cmd command.Command, depth int, verb string) {
	if m.run(cmd, m.selectedOrNil()) {
		return
	}
	if depth == 0 {
		m.status = fmt.Sprintf("Nothing to %s", verb)
		return
	}
	m.errorMsg = fmt.Sprintf("Could not %s the last change; it was dropped from history", verb)
}

func (m Model) selectedOrNil() uuid.UUID {
	id, _ := m.Selected()
	return id
}

func (m Model) deleteSelected() Model {
	id, ok := m.Selected()
	if !ok {
		return m
	}
	name := m.rows[m.cursor].name
	if !m.run(command.RemoveNode{ID: id}, uuid.Nil) {
		m.errorMsg = fmt.Sprintf("%q cannot be deleted", name)
		return m
	}
	m.status = fmt.Sprintf("Deleted %q", name)
	return m
}

// shiftSelected moves the selected node one slot within its folder.
func (m Model) shiftSelected(delta int) Model {
	id, ok := m.Selected()
	if !ok {
		return m
	}
	parent, index, ok := style.ParentOf(m.doc.Current(), id)
	if !ok {
		m.errorMsg = fmt.Sprintf("%q cannot be moved", m.rows[m.cursor].name)
		return m
	}
	siblings := parent.Content()
	next := index + delta
	if next < 0 || next >= len(siblings) {
		return m
	}

	position := command.Before(siblings[next].NodeID())
	if delta > 0 {
		position = command.After(siblings[next].NodeID())
	}
	m.run(command.MoveNode{ID: id, Target: parent.NodeID(), Position: position}, id)
	return m
}
