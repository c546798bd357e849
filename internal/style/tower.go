package style

import (
	"github.com/google/uuid"
)

// TimingTower is the root of the timing tower structure.
type TimingTower struct {
	ID    uuid.UUID         `json:"id" validate:"uuid_set"`
	Cell  CellStyle         `json:"cell"`
	Table *TimingTowerTable `json:"table" validate:"required"`
}

// TimingTowerTable lays out one row per entry.
type TimingTowerTable struct {
	ID        uuid.UUID       `json:"id" validate:"uuid_set"`
	Cell      CellStyle       `json:"cell"`
	RowOffset Vec2Property    `json:"row_offset"`
	Row       *TimingTowerRow `json:"row" validate:"required"`
}

// TimingTowerRow is the template repeated for every entry.
type TimingTowerRow struct {
	ID      uuid.UUID                   `json:"id" validate:"uuid_set"`
	Cell    CellStyle                   `json:"cell"`
	Columns *Folder[*TimingTowerColumn] `json:"columns" validate:"required"`
}

// TimingTowerColumn is one cell of the row template.
type TimingTowerColumn struct {
	ID   uuid.UUID `json:"id" validate:"uuid_set"`
	Name string    `json:"name" validate:"required,max=100"`
	Cell CellStyle `json:"cell"`
}

// NewTimingTower returns a tower with a table, a row and no columns.
func NewTimingTower() *TimingTower {
	columns := NewFolder[*TimingTowerColumn]()
	columns.Name = "Columns"
	columns.Renameable = false

	return &TimingTower{
		ID:   uuid.New(),
		Cell: DefaultCellStyle(),
		Table: &TimingTowerTable{
			ID:        uuid.New(),
			Cell:      DefaultCellStyle(),
			RowOffset: Vec2(0, 30),
			Row: &TimingTowerRow{
				ID:      uuid.New(),
				Cell:    DefaultCellStyle(),
				Columns: columns,
			},
		},
	}
}

// NewTimingTowerColumn returns a default column with a fresh identity.
func NewTimingTowerColumn() *TimingTowerColumn {
	return &TimingTowerColumn{
		ID:   uuid.New(),
		Name: "Column",
		Cell: DefaultCellStyle(),
	}
}

func (t *TimingTower) node()       {}
func (t *TimingTowerTable) node()  {}
func (t *TimingTowerRow) node()    {}
func (c *TimingTowerColumn) node() {}

// NodeID implements Node.
func (t *TimingTower) NodeID() uuid.UUID { return t.ID }

// Kind implements Node.
func (t *TimingTower) Kind() NodeKind { return KindTimingTower }

// DisplayName implements Node.
func (t *TimingTower) DisplayName() string { return "Timing tower" }

// Field implements Node.
func (t *TimingTower) Field(name string) any { return t.Cell.field(name) }

// Clone returns a deep copy with the same identities.
func (t *TimingTower) Clone() *TimingTower {
	out := *t
	out.Cell = t.Cell.clone()
	if t.Table != nil {
		out.Table = t.Table.Clone()
	}
	return &out
}

// NodeID implements Node.
func (t *TimingTowerTable) NodeID() uuid.UUID { return t.ID }

// Kind implements Node.
func (t *TimingTowerTable) Kind() NodeKind { return KindTimingTowerTable }

// DisplayName implements Node.
func (t *TimingTowerTable) DisplayName() string { return "Table" }

// Field implements Node.
func (t *TimingTowerTable) Field(name string) any {
	if f := t.RowOffset.field("row_offset", name); f != nil {
		return f
	}
	return t.Cell.field(name)
}

// Clone returns a deep copy with the same identities.
func (t *TimingTowerTable) Clone() *TimingTowerTable {
	out := *t
	out.Cell = t.Cell.clone()
	if t.Row != nil {
		out.Row = t.Row.Clone()
	}
	return &out
}

// NodeID implements Node.
func (t *TimingTowerRow) NodeID() uuid.UUID { return t.ID }

// Kind implements Node.
func (t *TimingTowerRow) Kind() NodeKind { return KindTimingTowerRow }

// DisplayName implements Node.
func (t *TimingTowerRow) DisplayName() string { return "Row" }

// Field implements Node.
func (t *TimingTowerRow) Field(name string) any { return t.Cell.field(name) }

// Clone returns a deep copy with the same identities.
func (t *TimingTowerRow) Clone() *TimingTowerRow {
	out := *t
	out.Cell = t.Cell.clone()
	if t.Columns != nil {
		out.Columns = t.Columns.Clone()
	}
	return &out
}

// NodeID implements Node.
func (c *TimingTowerColumn) NodeID() uuid.UUID { return c.ID }

// Kind implements Node.
func (c *TimingTowerColumn) Kind() NodeKind { return KindColumn }

// DisplayName implements Node.
func (c *TimingTowerColumn) DisplayName() string { return c.Name }

func (c *TimingTowerColumn) folderKind() NodeKind { return KindColumnFolder }

// Field implements Node.
func (c *TimingTowerColumn) Field(name string) any {
	if name == "name" {
		return &c.Name
	}
	return c.Cell.field(name)
}

// Clone returns a copy with the same identity.
func (c *TimingTowerColumn) Clone() *TimingTowerColumn {
	out := *c
	out.Cell = c.Cell.clone()
	return &out
}
