package style

import (
	"github.com/google/uuid"
)

// ClipArea restricts a graphic's cells to a rounded rectangle.
type ClipArea struct {
	Pos      Vec2Property      `json:"pos"`
	Size     Vec2Property      `json:"size"`
	Rounding Property[float64] `json:"rounding"`
}

// GraphicDefinition is a free-standing overlay graphic made of cells.
type GraphicDefinition struct {
	ID      uuid.UUID          `json:"id" validate:"uuid_set"`
	Name    string             `json:"name" validate:"required,max=100"`
	Visible Property[bool]     `json:"visible"`
	Clip    ClipArea           `json:"clip"`
	Cells   *Folder[*FreeCell] `json:"cells" validate:"required"`
}

// NewGraphicDefinition returns an empty visible graphic.
func NewGraphicDefinition() *GraphicDefinition {
	cells := NewFolder[*FreeCell]()
	cells.Name = "Cells"
	cells.Renameable = false
	return &GraphicDefinition{
		ID:      uuid.New(),
		Name:    "Graphic",
		Visible: Fixed(true),
		Clip: ClipArea{
			Pos:      Vec2(0, 0),
			Size:     Vec2(1920, 1080),
			Rounding: Fixed(0.0),
		},
		Cells: cells,
	}
}

func (g *GraphicDefinition) node() {}

// NodeID implements Node.
func (g *GraphicDefinition) NodeID() uuid.UUID { return g.ID }

// Kind implements Node.
func (g *GraphicDefinition) Kind() NodeKind { return KindGraphic }

// DisplayName implements Node.
func (g *GraphicDefinition) DisplayName() string { return g.Name }

func (g *GraphicDefinition) folderKind() NodeKind { return KindGraphicFolder }

// Field implements Node.
func (g *GraphicDefinition) Field(name string) any {
	switch name {
	case "name":
		return &g.Name
	case "visible":
		return &g.Visible
	case "clip.rounding":
		return &g.Clip.Rounding
	}
	if f := g.Clip.Pos.field("clip.pos", name); f != nil {
		return f
	}
	return g.Clip.Size.field("clip.size", name)
}

// Clone returns a deep copy with the same identities.
func (g *GraphicDefinition) Clone() *GraphicDefinition {
	out := *g
	if g.Cells != nil {
		out.Cells = g.Cells.Clone()
	}
	return &out
}

// FreeCell is a single cell placed directly in a graphic.
type FreeCell struct {
	ID   uuid.UUID `json:"id" validate:"uuid_set"`
	Name string    `json:"name" validate:"required,max=100"`
	Cell CellStyle `json:"cell"`
}

// NewFreeCell returns a default cell with a fresh identity.
func NewFreeCell() *FreeCell {
	return &FreeCell{
		ID:   uuid.New(),
		Name: "Cell",
		Cell: DefaultCellStyle(),
	}
}

func (c *FreeCell) node() {}

// NodeID implements Node.
func (c *FreeCell) NodeID() uuid.UUID { return c.ID }

// Kind implements Node.
func (c *FreeCell) Kind() NodeKind { return KindCell }

// DisplayName implements Node.
func (c *FreeCell) DisplayName() string { return c.Name }

func (c *FreeCell) folderKind() NodeKind { return KindCellFolder }

// Field implements Node.
func (c *FreeCell) Field(name string) any {
	if name == "name" {
		return &c.Name
	}
	return c.Cell.field(name)
}

// Clone returns a copy with the same identity.
func (c *FreeCell) Clone() *FreeCell {
	out := *c
	out.Cell = c.Cell.clone()
	return &out
}
