package style

import (
	"github.com/google/uuid"
)

// StyleDefinition is the document root.
type StyleDefinition struct {
	ID          uuid.UUID                    `json:"id" validate:"uuid_set"`
	Assets      *Folder[*AssetDefinition]    `json:"assets" validate:"required"`
	Vars        *Folder[*VariableDefinition] `json:"vars" validate:"required"`
	Graphics    *Folder[*GraphicDefinition]  `json:"graphics" validate:"required"`
	TimingTower *TimingTower                 `json:"timing_tower" validate:"required"`
}

// NewStyleDefinition returns an empty document with a default timing tower.
func NewStyleDefinition() *StyleDefinition {
	assets := NewFolder[*AssetDefinition]()
	assets.Name = "Assets"
	assets.Renameable = false

	vars := NewFolder[*VariableDefinition]()
	vars.Name = "Variables"
	vars.Renameable = false

	graphics := NewFolder[*GraphicDefinition]()
	graphics.Name = "Graphics"
	graphics.Renameable = false

	return &StyleDefinition{
		ID:          uuid.New(),
		Assets:      assets,
		Vars:        vars,
		Graphics:    graphics,
		TimingTower: NewTimingTower(),
	}
}

func (s *StyleDefinition) node() {}

// NodeID implements Node.
func (s *StyleDefinition) NodeID() uuid.UUID { return s.ID }

// Kind implements Node.
func (s *StyleDefinition) Kind() NodeKind { return KindStyle }

// DisplayName implements Node.
func (s *StyleDefinition) DisplayName() string { return "Style" }

// Field implements Node. The root has no editable fields.
func (s *StyleDefinition) Field(string) any { return nil }

// Clone returns a deep copy with the same identities.
func (s *StyleDefinition) Clone() *StyleDefinition {
	out := *s
	if s.Assets != nil {
		out.Assets = s.Assets.Clone()
	}
	if s.Vars != nil {
		out.Vars = s.Vars.Clone()
	}
	if s.Graphics != nil {
		out.Graphics = s.Graphics.Clone()
	}
	if s.TimingTower != nil {
		out.TimingTower = s.TimingTower.Clone()
	}
	return &out
}
