package command

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/towerstyle/internal/style"
	"github.com/alexisbeaulieu97/towerstyle/internal/style/styletest"
)

func itemOf(t *testing.T, n style.Node) style.StyleItem {
	t.Helper()
	item, ok := style.ItemOf(n)
	require.True(t, ok)
	return item
}

func TestRemoveSingleAssetAndRestore(t *testing.T) {
	t.Parallel()

	doc := style.NewStyleDefinition()
	root := style.NewFolder[*style.AssetDefinition]()
	root.Name = "Root"
	asset := style.NewAssetDefinition()
	asset.Name = "tex1"
	root.Append(asset)
	doc.Assets.AppendFolder(root)

	inverse := RemoveNode{ID: asset.ID}.Execute(doc, nil)
	require.NotNil(t, inverse)
	assert.Zero(t, root.Len())

	undo, ok := inverse.(RemoveNodeUndo)
	require.True(t, ok)
	assert.Equal(t, root.ID, undo.Removed.Parent)
	assert.Equal(t, asset.ID, undo.Removed.Node.ID())
	assert.Equal(t, First(), undo.Removed.Position)

	again := undo.Execute(doc, nil)
	assert.Equal(t, RemoveNode{ID: asset.ID}, again)
	require.Equal(t, 1, root.Len())
	restored := root.AllT()[0]
	assert.Equal(t, asset.ID, restored.ID)
	assert.Equal(t, "tex1", restored.Name)
}

func TestRemoveInverseRestoresEveryFolderChild(t *testing.T) {
	t.Parallel()

	doc := styletest.NewSample().Doc
	var ids []uuid.UUID
	style.Walk(doc, func(n style.Node, m style.Method) style.ControlFlow {
		if m == style.Visit {
			if _, _, ok := style.ParentOf(doc, n.NodeID()); ok {
				ids = append(ids, n.NodeID())
			}
		}
		return style.Continue
	})
	require.NotEmpty(t, ids)

	for _, id := range ids {
		working := doc.Clone()
		inverse := RemoveNode{ID: id}.Execute(working, nil)
		require.NotNil(t, inverse)
		assert.False(t, style.Contains(working, id))

		require.NotNil(t, inverse.Execute(working, nil))
		styletest.RequireSame(t, doc, working)
	}
}

func TestRemoveCapturesPreviousSibling(t *testing.T) {
	t.Parallel()

	s := styletest.NewSample()
	inverse := RemoveNode{ID: s.Z.ID}.Execute(s.Doc, nil).(RemoveNodeUndo)
	assert.Equal(t, After(s.Y.ID), inverse.Removed.Position)
	assert.Equal(t, s.Overlay.Cells.ID, inverse.Removed.Parent)
}

func TestRemoveStructuralNodeHasNoEffect(t *testing.T) {
	t.Parallel()

	s := styletest.NewSample()
	assert.Nil(t, RemoveNode{ID: s.Doc.Assets.ID}.Execute(s.Doc, nil))
	assert.Nil(t, RemoveNode{ID: s.Doc.TimingTower.ID}.Execute(s.Doc, nil))
	assert.Nil(t, RemoveNode{ID: uuid.New()}.Execute(s.Doc, nil))
}

func TestMoveWithinFolder(t *testing.T) {
	t.Parallel()

	s := styletest.NewSample()
	cells := s.Overlay.Cells

	inverse := MoveNode{ID: s.X.ID, Target: cells.ID, Position: After(s.Z.ID)}.Execute(s.Doc, nil)
	require.NotNil(t, inverse)
	assert.Equal(t, []string{"Y", "Z", "X"}, styletest.Names(cells))

	require.NotNil(t, inverse.Execute(s.Doc, nil))
	assert.Equal(t, []string{"X", "Y", "Z"}, styletest.Names(cells))
}

func TestMoveInverseRestoresParentAndPosition(t *testing.T) {
	t.Parallel()

	s := styletest.NewSample()
	before := s.Doc.Clone()

	inverse := MoveNode{ID: s.Y.ID, Target: s.Inner.ID, Position: Last()}.Execute(s.Doc, nil)
	require.NotNil(t, inverse)
	assert.Equal(t, []string{"X", "Z"}, styletest.Names(s.Overlay.Cells))
	assert.Equal(t, []string{"Y"}, styletest.Names(s.Inner))
	assert.Equal(t, MoveNode{ID: s.Y.ID, Target: s.Overlay.Cells.ID, Position: After(s.X.ID)}, inverse)

	back := inverse.Execute(s.Doc, nil)
	require.NotNil(t, back)
	styletest.RequireSame(t, before, s.Doc)
}

func TestMoveFolderIntoItsOwnSubtreeFails(t *testing.T) {
	t.Parallel()

	s := styletest.NewSample()
	before := s.Doc.Clone()

	assert.Nil(t, MoveNode{ID: s.Group.ID, Target: s.Inner.ID, Position: First()}.Execute(s.Doc, nil))
	assert.Nil(t, MoveNode{ID: s.Group.ID, Target: s.Group.ID, Position: First()}.Execute(s.Doc, nil))
	styletest.RequireSame(t, before, s.Doc)
}

func TestMoveRejectedDestinationPutsNodeBack(t *testing.T) {
	t.Parallel()

	s := styletest.NewSample()
	before := s.Doc.Clone()

	tests := []MoveNode{
		{ID: s.Y.ID, Target: uuid.New(), Position: First()},
		{ID: s.Y.ID, Target: s.Doc.Assets.ID, Position: First()},
		{ID: s.Y.ID, Target: s.Overlay.Cells.ID, Position: After(s.Y.ID)},
		{ID: s.Y.ID, Target: s.Overlay.Cells.ID, Position: Before(uuid.New())},
		{ID: uuid.New(), Target: s.Overlay.Cells.ID, Position: First()},
	}
	for _, move := range tests {
		assert.Nil(t, move.Execute(s.Doc, nil), "move to %s", move.Position)
	}
	styletest.RequireSame(t, before, s.Doc)
}

func TestInsertPositions(t *testing.T) {
	t.Parallel()

	s := styletest.NewSample()
	cells := s.Overlay.Cells

	insert := func(name string, pos DropPosition) {
		c := style.NewFreeCell()
		c.Name = name
		inverse := InsertNode{Target: cells.ID, Position: pos, Node: itemOf(t, c)}.Execute(s.Doc, nil)
		require.Equal(t, RemoveNode{ID: c.ID}, inverse)
	}
	insert("first", First())
	insert("last", Last())
	insert("afterY", After(s.Y.ID))
	insert("beforeX", Before(s.X.ID))

	assert.Equal(t, []string{"first", "beforeX", "X", "Y", "afterY", "Z", "last"}, styletest.Names(cells))
}

func TestInsertRejections(t *testing.T) {
	t.Parallel()

	s := styletest.NewSample()
	before := s.Doc.Clone()
	fontCopy := style.NewFolder[*style.AssetDefinition]()
	fontCopy.Append(s.Font.Clone())

	tests := []struct {
		name string
		cmd  InsertNode
	}{
		{"wrong kind", InsertNode{Target: s.Doc.Assets.ID, Position: First(), Node: itemOf(t, style.NewFreeCell())}},
		{"missing target", InsertNode{Target: uuid.New(), Position: First(), Node: itemOf(t, style.NewFreeCell())}},
		{"target is not a folder", InsertNode{Target: s.Overlay.ID, Position: First(), Node: itemOf(t, style.NewFreeCell())}},
		{"unknown sibling", InsertNode{Target: s.Overlay.Cells.ID, Position: After(uuid.New()), Node: itemOf(t, style.NewFreeCell())}},
		{"duplicate id", InsertNode{Target: s.Overlay.Cells.ID, Position: First(), Node: itemOf(t, s.X.Clone())}},
		{"duplicate nested id", InsertNode{Target: s.Doc.Assets.ID, Position: First(), Node: itemOf(t, fontCopy)}},
		{"id repeated inside node", InsertNode{Target: s.Overlay.Cells.ID, Position: Last(), Node: itemOf(t, twinFolder())}},
		{"empty item", InsertNode{Target: s.Overlay.Cells.ID, Position: First()}},
	}
	for _, tt := range tests {
		assert.Nil(t, tt.cmd.Execute(s.Doc, nil), tt.name)
	}
	styletest.RequireSame(t, before, s.Doc)
}

// twinFolder holds two cells sharing one id.
func twinFolder() *style.Folder[*style.FreeCell] {
	folder := style.NewFolder[*style.FreeCell]()
	c := style.NewFreeCell()
	folder.Append(c)
	folder.Append(c.Clone())
	return folder
}

func TestRestoreRefusesRepeatedIDs(t *testing.T) {
	t.Parallel()

	s := styletest.NewSample()
	before := s.Doc.Clone()
	restore := RemoveNodeUndo{Removed: RemovedNode{
		Parent:   s.Overlay.Cells.ID,
		Node:     itemOf(t, twinFolder()),
		Position: First(),
	}}

	assert.Nil(t, restore.Execute(s.Doc, nil))
	styletest.RequireSame(t, before, s.Doc)
	require.NoError(t, style.Validate(s.Doc, style.ValidateOptions{KnownGameSource: func(string) bool { return true }}))
}

func TestInsertDoesNotAliasCommandNode(t *testing.T) {
	t.Parallel()

	s := styletest.NewSample()
	c := style.NewFreeCell()
	cmd := InsertNode{Target: s.Overlay.Cells.ID, Position: Last(), Node: itemOf(t, c)}
	require.NotNil(t, cmd.Execute(s.Doc, nil))

	c.Name = "mutated after insert"
	inserted, ok := style.Find[*style.FreeCell](s.Doc, c.ID)
	require.True(t, ok)
	assert.Equal(t, "Cell", inserted.Name)
}

func TestEditPropertyInverse(t *testing.T) {
	t.Parallel()

	s := styletest.NewSample()

	rename := Set(s.X.ID, "name", "renamed")
	inverse := rename.Execute(s.Doc, nil)
	require.NotNil(t, inverse)
	assert.Equal(t, "renamed", s.X.Name)
	assert.Equal(t, FieldValue[string]{Field: "name", Value: "X"}, inverse.(EditProperty).Value)

	require.NotNil(t, inverse.Execute(s.Doc, nil))
	assert.Equal(t, "X", s.X.Name)

	originalSize := s.Y.Cell.TextSize
	resize := Set(s.Y.ID, "text_size", style.Fixed(31.25))
	inverse = resize.Execute(s.Doc, nil)
	require.NotNil(t, inverse)
	got, _ := s.Y.Cell.TextSize.Value()
	assert.Equal(t, 31.25, got)
	inverse.Execute(s.Doc, nil)
	assert.Equal(t, originalSize, s.Y.Cell.TextSize)

	bind := Set(s.Y.ID, "text", style.FromProducer[string](s.Label.ID))
	inverse = bind.Execute(s.Doc, nil)
	require.NotNil(t, inverse)
	assert.False(t, s.Y.Cell.Text.IsFixed())
	inverse.Execute(s.Doc, nil)
	assert.True(t, s.Y.Cell.Text.IsFixed())
}

func TestEditPropertyKeepsWidgetAndTimestamp(t *testing.T) {
	t.Parallel()

	s := styletest.NewSample()
	edit := Set(s.X.ID, "pos.x", style.Fixed(4.0))
	edit.WidgetID = "pos-x-slider"
	edit.Timestamp = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	inverse := edit.Execute(s.Doc, nil).(EditProperty)
	assert.Equal(t, edit.ID, inverse.ID)
	assert.Equal(t, edit.WidgetID, inverse.WidgetID)
	assert.Equal(t, edit.Timestamp, inverse.Timestamp)
	assert.Equal(t, "pos.x", inverse.Value.FieldName())
}

func TestSetStampsCurrentTime(t *testing.T) {
	t.Parallel()

	before := time.Now()
	edit := Set(uuid.New(), "name", "x")
	assert.False(t, edit.Timestamp.IsZero())
	assert.WithinDuration(t, before, edit.Timestamp, time.Second)
}

func TestEditPropertyNoEffect(t *testing.T) {
	t.Parallel()

	s := styletest.NewSample()
	before := s.Doc.Clone()

	assert.Nil(t, Set(uuid.New(), "name", "x").Execute(s.Doc, nil))
	assert.Nil(t, Set(s.X.ID, "unknown", "x").Execute(s.Doc, nil))
	assert.Nil(t, Set(s.X.ID, "pos.x", "not a property").Execute(s.Doc, nil))
	assert.Nil(t, Set(s.Doc.Assets.ID, "name", "root folders keep their name").Execute(s.Doc, nil))
	assert.Nil(t, EditProperty{ID: s.X.ID}.Execute(s.Doc, nil))
	styletest.RequireSame(t, before, s.Doc)
}

func TestEditBehaviorDoesNotAliasCommandValue(t *testing.T) {
	t.Parallel()

	s := styletest.NewSample()
	fixed := &style.FixedBehavior{Value: "P2"}
	cmd := Set(s.Label.ID, "definition", style.NewBehavior(fixed))
	require.NotNil(t, cmd.Execute(s.Doc, nil))

	fixed.Value = "changed later"
	assert.Equal(t, "P2", s.Label.Behavior.Case().(*style.FixedBehavior).Value)
}

type recordingAdapter struct {
	actions []AdapterAction
}

func (r *recordingAdapter) Dispatch(action AdapterAction) {
	r.actions = append(r.actions, action)
}

func TestAdapterCommandDispatches(t *testing.T) {
	t.Parallel()

	adapter := &recordingAdapter{}
	cmd := AdapterCommand{Action: AdapterAction{Name: "reset_session"}}

	assert.Nil(t, cmd.Execute(style.NewStyleDefinition(), adapter))
	assert.Nil(t, cmd.Execute(style.NewStyleDefinition(), nil))
	assert.Equal(t, []AdapterAction{{Name: "reset_session"}}, adapter.actions)
}
