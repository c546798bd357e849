// Package style implements the timing tower style document: the node
// hierarchy, folders, properties, tree traversal and the JSON codec.
package style

import (
	"github.com/google/uuid"
)

// NodeKind identifies a concrete node type. It doubles as the
// "element_type" tag of detached nodes on disk.
type NodeKind string

const (
	KindStyle            NodeKind = "style"
	KindAssetFolder      NodeKind = "asset_folder"
	KindAsset            NodeKind = "asset"
	KindVariableFolder   NodeKind = "variable_folder"
	KindVariable         NodeKind = "variable"
	KindGraphicFolder    NodeKind = "graphic_folder"
	KindGraphic          NodeKind = "graphic"
	KindCellFolder       NodeKind = "cell_folder"
	KindCell             NodeKind = "cell"
	KindTimingTower      NodeKind = "timing_tower"
	KindTimingTowerTable NodeKind = "timing_tower_table"
	KindTimingTowerRow   NodeKind = "timing_tower_row"
	KindColumnFolder     NodeKind = "column_folder"
	KindColumn           NodeKind = "column"
)

// IsFolder reports whether nodes of this kind are folders.
func (k NodeKind) IsFolder() bool {
	switch k {
	case KindAssetFolder, KindVariableFolder, KindGraphicFolder, KindCellFolder, KindColumnFolder:
		return true
	}
	return false
}

// Detachable reports whether nodes of this kind can be removed from or
// inserted into a folder.
func (k NodeKind) Detachable() bool {
	switch k {
	case KindAsset, KindVariable, KindGraphic, KindCell, KindColumn:
		return true
	}
	return k.IsFolder()
}

// Node is the polymorphic view over every concrete node type. It is only
// implemented by pointers into a document, so a Node can be used to mutate
// the node it refers to.
type Node interface {
	NodeID() uuid.UUID
	Kind() NodeKind
	DisplayName() string
	// Field returns a pointer to the named editable field, or nil.
	Field(name string) any
	node()
}

// Leaf is the constraint on folder content types.
type Leaf[T any] interface {
	Node
	Clone() T
	folderKind() NodeKind
}

// IsNil reports whether n is nil or a typed nil pointer.
func IsNil(n Node) bool {
	if n == nil {
		return true
	}
	switch n := n.(type) {
	case *StyleDefinition:
		return n == nil
	case *AssetDefinition:
		return n == nil
	case *VariableDefinition:
		return n == nil
	case *GraphicDefinition:
		return n == nil
	case *FreeCell:
		return n == nil
	case *TimingTower:
		return n == nil
	case *TimingTowerTable:
		return n == nil
	case *TimingTowerRow:
		return n == nil
	case *TimingTowerColumn:
		return n == nil
	case *Folder[*AssetDefinition]:
		return n == nil
	case *Folder[*VariableDefinition]:
		return n == nil
	case *Folder[*GraphicDefinition]:
		return n == nil
	case *Folder[*FreeCell]:
		return n == nil
	case *Folder[*TimingTowerColumn]:
		return n == nil
	}
	return false
}

// Children returns the direct children of n in stored order.
func Children(n Node) []Node {
	var out []Node
	add := func(child Node) {
		if !IsNil(child) {
			out = append(out, child)
		}
	}

	switch n := n.(type) {
	case *StyleDefinition:
		add(n.Assets)
		add(n.Vars)
		add(n.Graphics)
		add(n.TimingTower)
	case *GraphicDefinition:
		add(n.Cells)
	case *TimingTower:
		add(n.Table)
	case *TimingTowerTable:
		add(n.Row)
	case *TimingTowerRow:
		add(n.Columns)
	case Container:
		return n.Content()
	}
	return out
}
