package style

import (
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// sampleStyle builds a document that touches every node kind.
//
//	assets:   [tex1, fonts{font1}]
//	vars:     [speed(game), label(fixed text)]
//	graphics: [overlay{cells: [X, Y, Z]}]
//	tower:    columns [position, name]
func sampleStyle() *StyleDefinition {
	doc := NewStyleDefinition()

	tex := NewAssetDefinition()
	tex.Name = "tex1"
	doc.Assets.Append(tex)

	fonts := NewFolder[*AssetDefinition]()
	fonts.Name = "fonts"
	font := NewAssetDefinition()
	font.Name = "font1"
	font.AssetType = AssetFont
	font.Path = "fonts/main.ttf"
	fonts.Append(font)
	doc.Assets.AppendFolder(fonts)

	speed := NewVariableDefinition()
	speed.Name = "speed"
	speed.Behavior = NewBehavior(&GameBehavior{Source: "speed"})
	doc.Vars.Append(speed)

	label := NewVariableDefinition()
	label.Name = "label"
	label.OutputType = ValueText
	label.Behavior = NewBehavior(&FixedBehavior{Value: "P1"})
	doc.Vars.Append(label)

	graphic := NewGraphicDefinition()
	graphic.Name = "overlay"
	for _, name := range []string{"X", "Y", "Z"} {
		cell := NewFreeCell()
		cell.Name = name
		graphic.Cells.Append(cell)
	}
	graphic.Cells.AllT()[0].Cell.Text = FromProducer[string](label.ID)
	doc.Graphics.Append(graphic)

	for _, name := range []string{"position", "name"} {
		column := NewTimingTowerColumn()
		column.Name = name
		doc.TimingTower.Table.Row.Columns.Append(column)
	}

	return doc
}

func diffStyles(a, b *StyleDefinition) string {
	return cmp.Diff(a, b, cmp.Exporter(func(reflect.Type) bool { return true }), cmpopts.EquateEmpty())
}

func requireSameStyle(t *testing.T, want, got *StyleDefinition) {
	t.Helper()
	if diff := diffStyles(want, got); diff != "" {
		t.Fatalf("documents differ (-want +got):\n%s", diff)
	}
}
