package command

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/alexisbeaulieu97/towerstyle/internal/style"
)

// PositionKind selects how a DropPosition is resolved inside a folder.
type PositionKind string

const (
	PositionFirst  PositionKind = "first"
	PositionLast   PositionKind = "last"
	PositionAfter  PositionKind = "after"
	PositionBefore PositionKind = "before"
)

// DropPosition names a slot inside a folder relative to its edges or to a
// sibling.
type DropPosition struct {
	Kind    PositionKind `json:"position"`
	Sibling uuid.UUID    `json:"sibling"`
}

// First is the slot before every child.
func First() DropPosition { return DropPosition{Kind: PositionFirst} }

// Last is the slot after every child.
func Last() DropPosition { return DropPosition{Kind: PositionLast} }

// After is the slot right after sibling.
func After(sibling uuid.UUID) DropPosition {
	return DropPosition{Kind: PositionAfter, Sibling: sibling}
}

// Before is the slot right before sibling.
func Before(sibling uuid.UUID) DropPosition {
	return DropPosition{Kind: PositionBefore, Sibling: sibling}
}

func (p DropPosition) String() string {
	switch p.Kind {
	case PositionAfter, PositionBefore:
		return fmt.Sprintf("%s %s", p.Kind, p.Sibling)
	default:
		return string(p.Kind)
	}
}

// resolve turns p into an insertion index for c. It fails when the sibling
// is not a direct child of c.
func (p DropPosition) resolve(c style.Container) (int, bool) {
	switch p.Kind {
	case PositionFirst:
		return 0, true
	case PositionLast:
		return c.Len(), true
	case PositionAfter:
		i := c.IndexOf(p.Sibling)
		return i + 1, i >= 0
	case PositionBefore:
		i := c.IndexOf(p.Sibling)
		return i, i >= 0
	default:
		return 0, false
	}
}

// positionOf describes where the child at index sits so it can be put back
// after removal: after its previous sibling, or first.
func positionOf(c style.Container, index int) DropPosition {
	if index == 0 {
		return First()
	}
	return After(c.Content()[index-1].NodeID())
}
