// Package command implements the editing commands of a style document and
// the manager that applies them with undo, redo and edit coalescing.
//
// Every command mutates the document in place and returns its inverse, or
// nil when it had no effect. The inverse is itself a command, so undo and
// redo are the same operation applied to opposite stacks.
package command

import (
	"time"

	"github.com/google/uuid"

	"github.com/alexisbeaulieu97/towerstyle/internal/style"
)

// Adapter receives side effects aimed at the live telemetry connection. It
// is passed to each apply call and never stored.
type Adapter interface {
	Dispatch(action AdapterAction)
}

// AdapterAction is a named request for the telemetry adapter.
type AdapterAction struct {
	Name string
	Args map[string]string
}

// Command is a single edit.
type Command interface {
	// Execute applies the command to doc and returns the command that
	// reverts it, or nil when nothing changed.
	Execute(doc *style.StyleDefinition, adapter Adapter) Command
	// Name identifies the command in logs and history views.
	Name() string
}

// Undo asks the manager to revert the most recent command.
type Undo struct{}

// Execute is never called; the manager handles Undo itself.
func (Undo) Execute(*style.StyleDefinition, Adapter) Command { return nil }

// Name implements Command.
func (Undo) Name() string { return "undo" }

// Redo asks the manager to reapply the most recently undone command.
type Redo struct{}

// Execute is never called; the manager handles Redo itself.
func (Redo) Execute(*style.StyleDefinition, Adapter) Command { return nil }

// Name implements Command.
func (Redo) Name() string { return "redo" }

// InsertNode places a copy of Node into the folder Target.
type InsertNode struct {
	Target   uuid.UUID
	Position DropPosition
	Node     style.StyleItem
}

// Execute implements Command. It fails when the target is missing, the
// position cannot be resolved, the folder holds another kind, or an id in
// Node repeats or already exists in doc.
func (c InsertNode) Execute(doc *style.StyleDefinition, _ Adapter) Command {
	if c.Node.IsZero() {
		return nil
	}
	item := c.Node.Clone()
	if !insert(doc, c.Target, c.Position, item) {
		return nil
	}
	return RemoveNode{ID: item.ID()}
}

// Name implements Command.
func (InsertNode) Name() string { return "insert" }

// RemoveNode detaches a folder child.
type RemoveNode struct {
	ID uuid.UUID
}

// Execute implements Command. Only folder children can be removed.
func (c RemoveNode) Execute(doc *style.StyleDefinition, _ Adapter) Command {
	parent, index, ok := style.ParentOf(doc, c.ID)
	if !ok {
		return nil
	}
	position := positionOf(parent, index)
	item := parent.RemoveIndex(index)
	return RemoveNodeUndo{Removed: RemovedNode{
		Parent:   parent.NodeID(),
		Node:     item,
		Position: position,
	}}
}

// Name implements Command.
func (RemoveNode) Name() string { return "remove" }

// RemovedNode records a detached node and where it came from.
type RemovedNode struct {
	Parent   uuid.UUID
	Node     style.StyleItem
	Position DropPosition
}

// RemoveNodeUndo reinserts a node removed by RemoveNode.
type RemoveNodeUndo struct {
	Removed RemovedNode
}

// Execute implements Command.
func (c RemoveNodeUndo) Execute(doc *style.StyleDefinition, _ Adapter) Command {
	if c.Removed.Node.IsZero() {
		return nil
	}
	item := c.Removed.Node.Clone()
	if !insert(doc, c.Removed.Parent, c.Removed.Position, item) {
		return nil
	}
	return RemoveNode{ID: item.ID()}
}

// Name implements Command.
func (RemoveNodeUndo) Name() string { return "restore" }

// MoveNode relocates a folder child, possibly into another folder.
type MoveNode struct {
	ID       uuid.UUID
	Target   uuid.UUID
	Position DropPosition
}

// Execute implements Command. The move is all or nothing: when the node
// cannot be inserted at the destination it is put back where it was.
// Moving a folder into its own subtree fails because the target is no
// longer reachable once the folder is detached.
func (c MoveNode) Execute(doc *style.StyleDefinition, _ Adapter) Command {
	parent, index, ok := style.ParentOf(doc, c.ID)
	if !ok {
		return nil
	}
	origin := positionOf(parent, index)
	item := parent.RemoveIndex(index)

	target, found := style.Find[style.Container](doc, c.Target)
	if found {
		if i, resolved := c.Position.resolve(target); resolved && target.InsertIndex(i, item) {
			return MoveNode{ID: c.ID, Target: parent.NodeID(), Position: origin}
		}
	}
	if !parent.InsertIndex(index, item) {
		panic("command: failed to restore node after rejected move")
	}
	return nil
}

// Name implements Command.
func (MoveNode) Name() string { return "move" }

// EditProperty replaces one field of a node. WidgetID and Timestamp identify
// the UI control and the moment of the edit; they drive coalescing.
type EditProperty struct {
	ID        uuid.UUID
	WidgetID  string
	Timestamp time.Time
	Value     NewValue
}

// Execute implements Command.
func (c EditProperty) Execute(doc *style.StyleDefinition, _ Adapter) Command {
	if c.Value == nil {
		return nil
	}
	node, ok := style.FindNode(doc, c.ID)
	if !ok {
		return nil
	}
	old, ok := c.Value.Apply(node)
	if !ok {
		return nil
	}
	return EditProperty{ID: c.ID, WidgetID: c.WidgetID, Timestamp: c.Timestamp, Value: old}
}

// Name implements Command.
func (EditProperty) Name() string { return "edit" }

// NewValue is a typed replacement for one node field.
type NewValue interface {
	// Apply stores the value in node and returns the previous value. It
	// fails when node has no field of that name and type.
	Apply(node style.Node) (NewValue, bool)
	FieldName() string
}

// FieldValue sets the field named Field to Value.
type FieldValue[T any] struct {
	Field string
	Value T
}

// Set builds an EditProperty assigning value to field, stamped with the
// current time. Callers that add a WidgetID get coalescing by wall clock.
func Set[T any](id uuid.UUID, field string, value T) EditProperty {
	return EditProperty{ID: id, Timestamp: time.Now(), Value: FieldValue[T]{Field: field, Value: value}}
}

// Apply implements NewValue.
func (v FieldValue[T]) Apply(node style.Node) (NewValue, bool) {
	ptr, ok := node.Field(v.Field).(*T)
	if !ok || ptr == nil {
		return nil, false
	}
	value := v.Value
	if c, ok := any(value).(interface{ Clone() T }); ok {
		value = c.Clone()
	}
	old := *ptr
	*ptr = value
	return FieldValue[T]{Field: v.Field, Value: old}, true
}

// FieldName implements NewValue.
func (v FieldValue[T]) FieldName() string { return v.Field }

// AdapterCommand forwards Action to the telemetry adapter. It does not touch
// the document and cannot be undone.
type AdapterCommand struct {
	Action AdapterAction
}

// Execute implements Command.
func (c AdapterCommand) Execute(_ *style.StyleDefinition, adapter Adapter) Command {
	if adapter != nil {
		adapter.Dispatch(c.Action)
	}
	return nil
}

// Name implements Command.
func (AdapterCommand) Name() string { return "adapter" }

// insert puts item into the folder target at position, refusing ids that
// already exist in doc or repeat inside item.
func insert(doc *style.StyleDefinition, target uuid.UUID, position DropPosition, item style.StyleItem) bool {
	if collides(doc, item.Node()) {
		return false
	}
	folder, ok := style.Find[style.Container](doc, target)
	if !ok {
		return false
	}
	index, ok := position.resolve(folder)
	if !ok {
		return false
	}
	return folder.InsertIndex(index, item)
}

func collides(doc *style.StyleDefinition, n style.Node) bool {
	_, hit := style.Collision(doc, n)
	return hit
}
