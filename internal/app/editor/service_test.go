package editor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/towerstyle/internal/command"
	"github.com/alexisbeaulieu97/towerstyle/internal/config"
	"github.com/alexisbeaulieu97/towerstyle/internal/document"
	"github.com/alexisbeaulieu97/towerstyle/internal/ports"
	"github.com/alexisbeaulieu97/towerstyle/internal/style"
	"github.com/alexisbeaulieu97/towerstyle/internal/style/styletest"
	"github.com/alexisbeaulieu97/towerstyle/internal/valuestore"
	towererrors "github.com/alexisbeaulieu97/towerstyle/pkg/errors"
)

func newService(t *testing.T, cfg *config.Config) *Service {
	t.Helper()
	svc, err := NewService(cfg, nil)
	require.NoError(t, err)
	return svc
}

func writeSample(t *testing.T, dir string) (string, *styletest.Sample) {
	t.Helper()
	sample := styletest.NewSample()
	path := filepath.Join(dir, "style.json")
	require.NoError(t, document.Save(path, sample.Doc))
	return path, sample
}

func writeScript(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "edit.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func overlayCells(t *testing.T, svc *Service, path string, sample *styletest.Sample) []string {
	t.Helper()
	doc, err := svc.Load(path)
	require.NoError(t, err)
	g, ok := style.Find[*style.GraphicDefinition](doc, sample.Overlay.ID)
	require.True(t, ok)
	return styletest.Names(g.Cells)
}

func TestCreate(t *testing.T) {
	t.Parallel()

	svc := newService(t, nil)
	path := filepath.Join(t.TempDir(), "nested", "new.json")

	doc, err := svc.Create(context.Background(), path, false)
	require.NoError(t, err)
	loaded, err := svc.Load(path)
	require.NoError(t, err)
	styletest.RequireSame(t, doc, loaded)

	_, err = svc.Create(context.Background(), path, false)
	assert.ErrorIs(t, err, ErrExists)

	_, err = svc.Create(context.Background(), path, true)
	assert.NoError(t, err)
}

func TestApplySavesChanges(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	svc := newService(t, nil)
	path, sample := writeSample(t, dir)
	scriptPath := writeScript(t, dir, fmt.Sprintf(`operations:
  - op: remove
    id: %s
  - op: edit
    id: %s
    field: name
    value: first
`, sample.Y.ID, sample.X.ID))

	outcome, err := svc.Apply(context.Background(), ApplyRequest{DocumentPath: path, ScriptPath: scriptPath})
	require.NoError(t, err)
	assert.Equal(t, 2, outcome.Commands)
	assert.True(t, outcome.Changed)
	assert.True(t, outcome.Saved)
	assert.Equal(t, path, outcome.OutputPath)
	assert.Equal(t, 2, outcome.UndoDepth)
	assert.Regexp(t, `(?m)^-\s+"name": "X",?$`, outcome.Diff)
	assert.Regexp(t, `(?m)^\+\s+"name": "first",?$`, outcome.Diff)

	assert.Equal(t, []string{"first", "Z"}, overlayCells(t, svc, path, sample))
}

func TestApplyDryRunLeavesFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	svc := newService(t, nil)
	path, sample := writeSample(t, dir)
	before, err := os.ReadFile(path)
	require.NoError(t, err)
	scriptPath := writeScript(t, dir, fmt.Sprintf("operations:\n  - op: remove\n    id: %s\n", sample.Z.ID))

	outcome, err := svc.Apply(context.Background(), ApplyRequest{DocumentPath: path, ScriptPath: scriptPath, DryRun: true})
	require.NoError(t, err)
	assert.True(t, outcome.Changed)
	assert.False(t, outcome.Saved)
	assert.NotEmpty(t, outcome.Diff)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestApplyToOtherOutput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	svc := newService(t, nil)
	path, sample := writeSample(t, dir)
	out := filepath.Join(dir, "out.json")
	scriptPath := writeScript(t, dir, "operations:\n  - op: undo\n")

	outcome, err := svc.Apply(context.Background(), ApplyRequest{DocumentPath: path, ScriptPath: scriptPath, OutputPath: out})
	require.NoError(t, err)
	assert.False(t, outcome.Changed)
	assert.True(t, outcome.Saved, "a separate output is always written")
	assert.Empty(t, outcome.Diff)
	assert.Equal(t, []string{"X", "Y", "Z"}, overlayCells(t, svc, out, sample))
}

func TestApplyReportsScriptErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	svc := newService(t, nil)
	path, sample := writeSample(t, dir)
	scriptPath := writeScript(t, dir, fmt.Sprintf(`operations:
  - op: remove
    id: %s
  - op: edit
    id: %s
    field: nope
    value: 1
`, sample.Y.ID, sample.X.ID))

	_, err := svc.Apply(context.Background(), ApplyRequest{DocumentPath: path, ScriptPath: scriptPath})
	var scriptErr *towererrors.ScriptError
	require.ErrorAs(t, err, &scriptErr)
	assert.Equal(t, 1, scriptErr.Index)
	assert.Equal(t, []string{"X", "Y", "Z"}, overlayCells(t, svc, path, sample))
}

func TestApplyRefusesResultsLoadWouldReject(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		script func(s *styletest.Sample) string
	}{
		{
			name: "empty name",
			script: func(s *styletest.Sample) string {
				return fmt.Sprintf("operations:\n  - op: edit\n    id: %s\n    field: name\n    value: \"\"\n", s.X.ID)
			},
		},
		{
			name: "repeated id inside inserted graphic",
			script: func(s *styletest.Sample) string {
				return fmt.Sprintf(`operations:
  - op: insert
    target: %s
    node:
      element_type: graphic
      cells:
        content:
          - element_type: cell
            id: %[2]s
          - element_type: cell
            id: %[2]s
`, s.Doc.Graphics.ID, uuid.New())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			svc := newService(t, nil)
			path, sample := writeSample(t, dir)
			original, err := os.ReadFile(path)
			require.NoError(t, err)

			_, err = svc.Apply(context.Background(), ApplyRequest{DocumentPath: path, ScriptPath: writeScript(t, dir, tt.script(sample))})
			var scriptErr *towererrors.ScriptError
			require.ErrorAs(t, err, &scriptErr)
			assert.Equal(t, 0, scriptErr.Index)

			current, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, original, current)
			_, err = svc.Load(path)
			require.NoError(t, err)
		})
	}
}

func TestOpenUsesConfiguredHistory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	svc := newService(t, &config.Config{HistoryLimit: 1})
	path, sample := writeSample(t, dir)

	changes := 0
	sub, err := svc.Publisher().Subscribe(ports.EventStyleChanged, func(context.Context, ports.DomainEvent) error {
		changes++
		return nil
	})
	require.NoError(t, err)
	defer sub.Unsubscribe()

	store, err := svc.Open(context.Background(), path)
	require.NoError(t, err)
	for _, cell := range []*style.FreeCell{sample.X, sample.Y} {
		store.QueueCommand(command.RemoveNode{ID: cell.ID})
	}
	require.True(t, store.Commit(context.Background(), nil))
	assert.Len(t, store.UndoStack(), 1)
	assert.Equal(t, 1, changes)
	assert.EqualValues(t, 1, svc.Revision())
}

func TestUnknownGameSourceFailsLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	sample := styletest.NewSample()
	sample.Speed.Behavior = style.NewBehavior(&style.GameBehavior{Source: "fuel"})
	path := filepath.Join(dir, "style.json")
	require.NoError(t, document.Save(path, sample.Doc))

	_, err := newService(t, nil).Load(path)
	var validationErr *towererrors.ValidationError
	require.ErrorAs(t, err, &validationErr)

	svc := newService(t, &config.Config{GameSources: []valuestore.GameSource{{Name: "fuel", Output: style.ValueNumber}}})
	_, err = svc.Load(path)
	assert.NoError(t, err)
}

func TestDiffAndPatch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	svc := newService(t, nil)
	path, sample := writeSample(t, dir)

	edited := sample.Doc.Clone()
	asset, ok := style.Find[*style.AssetDefinition](edited, sample.Tex.ID)
	require.True(t, ok)
	asset.Path = "images/tex2.png"
	editedPath := filepath.Join(dir, "edited.json")
	require.NoError(t, document.Save(editedPath, edited))

	unified, err := svc.Diff(path, editedPath, DiffUnified)
	require.NoError(t, err)
	assert.Regexp(t, `(?m)^-\s+"path": "images/tex1.png",?$`, unified)
	assert.Regexp(t, `(?m)^\+\s+"path": "images/tex2.png",?$`, unified)

	same, err := svc.Diff(path, path, DiffUnified)
	require.NoError(t, err)
	assert.Empty(t, same)

	patch, err := svc.Diff(path, editedPath, DiffMergePatch)
	require.NoError(t, err)
	assert.Contains(t, patch, "tex2.png")

	out := filepath.Join(dir, "patched.json")
	require.NoError(t, svc.Patch(context.Background(), path, []byte(patch), out))
	patched, err := svc.Load(out)
	require.NoError(t, err)
	styletest.RequireSame(t, edited, patched)

	_, err = svc.Diff(path, editedPath, DiffFormat("xml"))
	assert.Error(t, err)
}

func TestPatchRejectsInvalidResult(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	svc := newService(t, nil)
	path, _ := writeSample(t, dir)

	err := svc.Patch(context.Background(), path, []byte(`{"assets":{"id":"nope"}}`), "")
	assert.Error(t, err)

	_, err = svc.Load(path)
	assert.NoError(t, err, "original is untouched")
}
