package style

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// StyleItem is the closed enum of nodes that can live in a folder: every
// leaf kind and every folder kind. Detached nodes travel as StyleItems and
// folder children are stored on disk in this tagged form.
type StyleItem struct {
	node Node
}

// ItemOf wraps a detachable node.
func ItemOf(n Node) (StyleItem, bool) {
	var item StyleItem
	ok := item.SetCase(n)
	return item, ok
}

// Case returns the wrapped node (as its concrete pointer type) or nil.
func (s StyleItem) Case() any {
	if s.node == nil {
		return nil
	}
	return s.node
}

// SetCase switches the active case. Only detachable, non-nil nodes are
// accepted.
func (s *StyleItem) SetCase(v any) bool {
	n, ok := v.(Node)
	if !ok || IsNil(n) || !n.Kind().Detachable() {
		return false
	}
	s.node = n
	return true
}

// Node returns the wrapped node.
func (s StyleItem) Node() Node { return s.node }

// IsZero reports whether the item holds nothing.
func (s StyleItem) IsZero() bool { return s.node == nil }

// Kind returns the wrapped node's kind.
func (s StyleItem) Kind() NodeKind {
	if s.node == nil {
		return ""
	}
	return s.node.Kind()
}

// ID returns the wrapped node's identity.
func (s StyleItem) ID() uuid.UUID {
	if s.node == nil {
		return uuid.Nil
	}
	return s.node.NodeID()
}

// Clone deep-copies the wrapped node.
func (s StyleItem) Clone() StyleItem {
	switch n := s.node.(type) {
	case *AssetDefinition:
		return StyleItem{node: n.Clone()}
	case *VariableDefinition:
		return StyleItem{node: n.Clone()}
	case *GraphicDefinition:
		return StyleItem{node: n.Clone()}
	case *FreeCell:
		return StyleItem{node: n.Clone()}
	case *TimingTowerColumn:
		return StyleItem{node: n.Clone()}
	case *Folder[*AssetDefinition]:
		return StyleItem{node: n.Clone()}
	case *Folder[*VariableDefinition]:
		return StyleItem{node: n.Clone()}
	case *Folder[*GraphicDefinition]:
		return StyleItem{node: n.Clone()}
	case *Folder[*FreeCell]:
		return StyleItem{node: n.Clone()}
	case *Folder[*TimingTowerColumn]:
		return StyleItem{node: n.Clone()}
	}
	return StyleItem{}
}

// MarshalJSON writes the node's fields plus an "element_type" tag.
func (s StyleItem) MarshalJSON() ([]byte, error) {
	if s.node == nil {
		return []byte("null"), nil
	}
	body, err := json.Marshal(s.node)
	if err != nil {
		return nil, err
	}
	fields := make(map[string]json.RawMessage)
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, err
	}
	tag, err := json.Marshal(s.node.Kind())
	if err != nil {
		return nil, err
	}
	fields["element_type"] = tag
	return json.Marshal(fields)
}

// UnmarshalJSON selects the concrete node type from "element_type".
func (s *StyleItem) UnmarshalJSON(data []byte) error {
	var probe struct {
		ElementType NodeKind `json:"element_type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}

	var n Node
	switch probe.ElementType {
	case KindAsset:
		n = &AssetDefinition{}
	case KindVariable:
		n = &VariableDefinition{}
	case KindGraphic:
		n = &GraphicDefinition{}
	case KindCell:
		n = &FreeCell{}
	case KindColumn:
		n = &TimingTowerColumn{}
	case KindAssetFolder:
		n = &Folder[*AssetDefinition]{}
	case KindVariableFolder:
		n = &Folder[*VariableDefinition]{}
	case KindGraphicFolder:
		n = &Folder[*GraphicDefinition]{}
	case KindCellFolder:
		n = &Folder[*FreeCell]{}
	case KindColumnFolder:
		n = &Folder[*TimingTowerColumn]{}
	case "":
		return fmt.Errorf("missing element_type")
	default:
		return fmt.Errorf("unknown element_type %q", probe.ElementType)
	}

	if err := json.Unmarshal(data, n); err != nil {
		return fmt.Errorf("decode %s: %w", probe.ElementType, err)
	}
	s.node = n
	return nil
}

// NewItem returns a default node of the given detachable kind with a fresh
// identity.
func NewItem(kind NodeKind) (StyleItem, bool) {
	var n Node
	switch kind {
	case KindAsset:
		n = NewAssetDefinition()
	case KindVariable:
		n = NewVariableDefinition()
	case KindGraphic:
		n = NewGraphicDefinition()
	case KindCell:
		n = NewFreeCell()
	case KindColumn:
		n = NewTimingTowerColumn()
	case KindAssetFolder:
		n = NewFolder[*AssetDefinition]()
	case KindVariableFolder:
		n = NewFolder[*VariableDefinition]()
	case KindGraphicFolder:
		n = NewFolder[*GraphicDefinition]()
	case KindCellFolder:
		n = NewFolder[*FreeCell]()
	case KindColumnFolder:
		n = NewFolder[*TimingTowerColumn]()
	default:
		return StyleItem{}, false
	}
	return StyleItem{node: n}, true
}
