// Package styletest provides sample documents and comparison helpers for
// tests of packages built on internal/style.
package styletest

import (
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/alexisbeaulieu97/towerstyle/internal/style"
)

// Sample is a small document with one of everything.
//
//	assets:   [tex1, fonts{font1}]
//	vars:     [speed(game "speed"), label(fixed text "P1")]
//	graphics: [overlay{cells: [X, Y, Z]}, extras{cells: [group{inner{}}]}]
//	tower:    columns [position, name]
type Sample struct {
	Doc     *style.StyleDefinition
	Tex     *style.AssetDefinition
	Fonts   *style.Folder[*style.AssetDefinition]
	Font    *style.AssetDefinition
	Speed   *style.VariableDefinition
	Label   *style.VariableDefinition
	Overlay *style.GraphicDefinition
	X, Y, Z *style.FreeCell
	Extras  *style.GraphicDefinition
	Group   *style.Folder[*style.FreeCell]
	Inner   *style.Folder[*style.FreeCell]
}

// NewSample builds a fresh Sample. Every call yields new identities.
func NewSample() *Sample {
	s := &Sample{Doc: style.NewStyleDefinition()}

	s.Tex = style.NewAssetDefinition()
	s.Tex.Name = "tex1"
	s.Tex.Path = "images/tex1.png"
	s.Doc.Assets.Append(s.Tex)

	s.Fonts = style.NewFolder[*style.AssetDefinition]()
	s.Fonts.Name = "fonts"
	s.Font = style.NewAssetDefinition()
	s.Font.Name = "font1"
	s.Font.AssetType = style.AssetFont
	s.Font.Path = "fonts/main.ttf"
	s.Fonts.Append(s.Font)
	s.Doc.Assets.AppendFolder(s.Fonts)

	s.Speed = style.NewVariableDefinition()
	s.Speed.Name = "speed"
	s.Speed.Behavior = style.NewBehavior(&style.GameBehavior{Source: "speed"})
	s.Doc.Vars.Append(s.Speed)

	s.Label = style.NewVariableDefinition()
	s.Label.Name = "label"
	s.Label.OutputType = style.ValueText
	s.Label.Behavior = style.NewBehavior(&style.FixedBehavior{Value: "P1"})
	s.Doc.Vars.Append(s.Label)

	s.Overlay = style.NewGraphicDefinition()
	s.Overlay.Name = "overlay"
	s.X, s.Y, s.Z = cell("X"), cell("Y"), cell("Z")
	s.X.Cell.Text = style.FromProducer[string](s.Label.ID)
	s.Overlay.Cells.Append(s.X)
	s.Overlay.Cells.Append(s.Y)
	s.Overlay.Cells.Append(s.Z)
	s.Doc.Graphics.Append(s.Overlay)

	s.Extras = style.NewGraphicDefinition()
	s.Extras.Name = "extras"
	s.Group = style.NewFolder[*style.FreeCell]()
	s.Group.Name = "group"
	s.Inner = style.NewFolder[*style.FreeCell]()
	s.Inner.Name = "inner"
	s.Group.AppendFolder(s.Inner)
	s.Extras.Cells.AppendFolder(s.Group)
	s.Doc.Graphics.Append(s.Extras)

	for _, name := range []string{"position", "name"} {
		column := style.NewTimingTowerColumn()
		column.Name = name
		s.Doc.TimingTower.Table.Row.Columns.Append(column)
	}
	return s
}

func cell(name string) *style.FreeCell {
	c := style.NewFreeCell()
	c.Name = name
	return c
}

// Diff returns a human-readable difference between two documents, or "".
func Diff(want, got *style.StyleDefinition) string {
	return cmp.Diff(want, got, cmp.Exporter(func(reflect.Type) bool { return true }), cmpopts.EquateEmpty())
}

// RequireSame fails the test when the documents differ structurally.
func RequireSame(t testing.TB, want, got *style.StyleDefinition) {
	t.Helper()
	if diff := Diff(want, got); diff != "" {
		t.Fatalf("documents differ (-want +got):\n%s", diff)
	}
}

// Names lists the display names of a container's direct children.
func Names(c style.Container) []string {
	var out []string
	for _, n := range c.Content() {
		out = append(out, n.DisplayName())
	}
	return out
}
