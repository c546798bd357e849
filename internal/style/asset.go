package style

import (
	"github.com/google/uuid"
)

// AssetType is the "asset_type" tag of assets.
type AssetType string

const (
	AssetImage AssetType = "image"
	AssetFont  AssetType = "font"
)

// AssetDefinition references an image or font file used by the overlay.
type AssetDefinition struct {
	ID        uuid.UUID `json:"id" validate:"uuid_set"`
	Name      string    `json:"name" validate:"required,max=100"`
	AssetType AssetType `json:"asset_type" validate:"oneof=image font"`
	Path      string    `json:"path" validate:"required"`
}

// NewAssetDefinition returns an image asset with a fresh identity.
func NewAssetDefinition() *AssetDefinition {
	return &AssetDefinition{
		ID:        uuid.New(),
		Name:      "Image",
		AssetType: AssetImage,
		Path:      "image.png",
	}
}

func (a *AssetDefinition) node() {}

// NodeID implements Node.
func (a *AssetDefinition) NodeID() uuid.UUID { return a.ID }

// Kind implements Node.
func (a *AssetDefinition) Kind() NodeKind { return KindAsset }

// DisplayName implements Node.
func (a *AssetDefinition) DisplayName() string { return a.Name }

func (a *AssetDefinition) folderKind() NodeKind { return KindAssetFolder }

// Field implements Node.
func (a *AssetDefinition) Field(name string) any {
	switch name {
	case "name":
		return &a.Name
	case "path":
		return &a.Path
	}
	return nil
}

// Clone returns a copy with the same identity.
func (a *AssetDefinition) Clone() *AssetDefinition {
	out := *a
	return &out
}

// ValueID is the id properties use to reference this asset.
func (a *AssetDefinition) ValueID() uuid.UUID { return a.ID }

// ValueProducer describes what this asset produces when referenced.
func (a *AssetDefinition) ValueProducer() Producer {
	return AssetProducer{AssetType: a.AssetType, Path: a.Path}
}
