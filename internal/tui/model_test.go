package tui

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/towerstyle/internal/command"
	"github.com/alexisbeaulieu97/towerstyle/internal/document"
	"github.com/alexisbeaulieu97/towerstyle/internal/style"
	"github.com/alexisbeaulieu97/towerstyle/internal/style/styletest"
)

func newTestModel(t *testing.T, path string) (Model, *document.Store, *styletest.Sample) {
	t.Helper()
	sample := styletest.NewSample()
	store := document.NewStore(sample.Doc)
	return NewModel(context.Background(), store, path), store, sample
}

func keyPress(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func selectNode(t *testing.T, m Model, id uuid.UUID) Model {
	t.Helper()
	for i, r := range m.rows {
		if r.id == id {
			m.cursor = i
			return m
		}
	}
	t.Fatalf("node %s not listed", id)
	return m
}

func cellNames(t *testing.T, store *document.Store, graphic uuid.UUID) []string {
	t.Helper()
	g, ok := style.Find[*style.GraphicDefinition](store.Current(), graphic)
	require.True(t, ok)
	return styletest.Names(g.Cells)
}

func TestNewModelListsTreeWithoutRoot(t *testing.T) {
	t.Parallel()

	m, store, sample := newTestModel(t, "")

	require.Len(t, m.rows, style.Count(store.Current())-1)
	assert.Equal(t, store.Current().Assets.ID, m.rows[0].id)
	assert.Zero(t, m.rows[0].depth)
	assert.Equal(t, sample.Tex.ID, m.rows[1].id)
	assert.Equal(t, 1, m.rows[1].depth)

	id, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, store.Current().Assets.ID, id)
	assert.False(t, m.Dirty())
}

func TestCursorWraps(t *testing.T) {
	t.Parallel()

	m, _, _ := newTestModel(t, "")

	m, _ = send(t, m, keyPress("k"))
	assert.Equal(t, len(m.rows)-1, m.cursor)

	m, _ = send(t, m, keyPress("j"))
	assert.Zero(t, m.cursor)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.cursor)
}

func TestDeleteUndoRedo(t *testing.T) {
	t.Parallel()

	m, store, sample := newTestModel(t, "")
	m = selectNode(t, m, sample.Y.ID)

	m, _ = send(t, m, keyPress("d"))
	assert.Equal(t, []string{"X", "Z"}, cellNames(t, store, sample.Overlay.ID))
	assert.True(t, m.Dirty())
	assert.Equal(t, `Deleted "Y"`, m.status)
	assert.Len(t, m.rows, style.Count(store.Current())-1)

	m, _ = send(t, m, keyPress("u"))
	assert.Equal(t, []string{"X", "Y", "Z"}, cellNames(t, store, sample.Overlay.ID))
	assert.Len(t, store.RedoStack(), 1)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	assert.Equal(t, []string{"X", "Z"}, cellNames(t, store, sample.Overlay.ID))
	assert.Empty(t, m.errorMsg)
}

func TestDeleteStructuralNodeIsRefused(t *testing.T) {
	t.Parallel()

	m, store, _ := newTestModel(t, "")
	before := store.Current()

	m, _ = send(t, m, keyPress("d"))
	assert.Contains(t, m.errorMsg, "cannot be deleted")
	assert.False(t, m.Dirty())
	assert.Same(t, before, store.Current())
}

func TestMoveKeepsSelection(t *testing.T) {
	t.Parallel()

	m, store, sample := newTestModel(t, "")
	m = selectNode(t, m, sample.Y.ID)

	m, _ = send(t, m, keyPress("J"))
	assert.Equal(t, []string{"X", "Z", "Y"}, cellNames(t, store, sample.Overlay.ID))
	id, _ := m.Selected()
	assert.Equal(t, sample.Y.ID, id)

	m, _ = send(t, m, keyPress("J"))
	assert.Equal(t, []string{"X", "Z", "Y"}, cellNames(t, store, sample.Overlay.ID), "last child stays put")

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyShiftUp})
	m, _ = send(t, m, keyPress("K"))
	assert.Equal(t, []string{"Y", "X", "Z"}, cellNames(t, store, sample.Overlay.ID))
	assert.Len(t, store.UndoStack(), 3)

	m = selectNode(t, m, store.Current().TimingTower.ID)
	m, _ = send(t, m, keyPress("K"))
	assert.Contains(t, m.errorMsg, "cannot be moved")
}

func TestUndoWithEmptyHistory(t *testing.T) {
	t.Parallel()

	m, _, _ := newTestModel(t, "")

	m, _ = send(t, m, keyPress("u"))
	assert.Equal(t, "Nothing to undo", m.status)
	m, _ = send(t, m, keyPress("U"))
	assert.Equal(t, "Nothing to redo", m.status)
	assert.False(t, m.Dirty())
}

func TestUndoReportsDroppedEntry(t *testing.T) {
	t.Parallel()

	sample := styletest.NewSample()
	item, ok := style.ItemOf(style.NewFreeCell())
	require.True(t, ok)

	// The history entry removes a cell that only exists in another copy.
	manager := command.NewManager()
	manager.Queue(command.InsertNode{Target: sample.Overlay.Cells.ID, Position: command.Last(), Node: item})
	_, changed := manager.ApplyQueue(context.Background(), sample.Doc.Clone(), nil)
	require.True(t, changed)

	store := document.NewStore(sample.Doc, document.WithManager(manager))
	m := NewModel(context.Background(), store, "")
	m, _ = send(t, m, keyPress("u"))

	assert.Contains(t, m.errorMsg, "Could not undo")
	assert.Empty(t, m.status)
	assert.Empty(t, store.UndoStack())
	assert.False(t, m.Dirty())

	m, _ = send(t, m, keyPress("u"))
	assert.Equal(t, "Nothing to undo", m.status)
}

func TestSave(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "style.json")
	m, _, sample := newTestModel(t, path)
	m = selectNode(t, m, sample.Z.ID)
	m, _ = send(t, m, keyPress("d"))
	require.True(t, m.Dirty())

	m, cmd := send(t, m, keyPress("s"))
	require.NotNil(t, cmd)
	assert.True(t, m.saving)

	m, _ = send(t, m, cmd())
	assert.False(t, m.Dirty())
	assert.False(t, m.saving)
	assert.Equal(t, "Saved "+path, m.status)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"name": "Y"`)
	assert.NotContains(t, string(data), `"name": "Z"`)
}

func TestSaveFailureKeepsDirty(t *testing.T) {
	t.Parallel()

	m, _, _ := newTestModel(t, "")
	m, cmd := send(t, m, keyPress("s"))
	assert.Nil(t, cmd)
	assert.Equal(t, "No file to save to", m.errorMsg)

	m.dirty = true
	m, _ = send(t, m, savedMsg{path: "x", err: os.ErrPermission})
	assert.True(t, m.Dirty())
	assert.Contains(t, m.errorMsg, "Save failed")
}

func TestQuitAndHelp(t *testing.T) {
	t.Parallel()

	m, _, _ := newTestModel(t, "")

	m, _ = send(t, m, keyPress("?"))
	assert.True(t, m.showHelp)
	assert.True(t, m.help.ShowAll)

	_, cmd := send(t, m, keyPress("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestWindowSize(t *testing.T) {
	t.Parallel()

	m, _, _ := newTestModel(t, "")
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	assert.Equal(t, 100, m.width)
	assert.Equal(t, 40, m.height)
	assert.Equal(t, 100, m.help.Width)
}

func TestView(t *testing.T) {
	t.Parallel()

	m, _, sample := newTestModel(t, "style.json")
	m = selectNode(t, m, sample.X.ID)
	m, _ = send(t, m, keyPress("d"))

	view := m.View()
	assert.Contains(t, view, "towerstyle • style.json")
	assert.Contains(t, view, "tex1")
	assert.Contains(t, view, "undo 1 · redo 0")
	assert.Contains(t, view, `Deleted "X"`)
}
