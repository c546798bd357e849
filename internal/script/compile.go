package script

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/alexisbeaulieu97/towerstyle/internal/command"
	"github.com/alexisbeaulieu97/towerstyle/internal/style"
	towererrors "github.com/alexisbeaulieu97/towerstyle/pkg/errors"
)

// Compiler turns scripts into commands.
type Compiler struct {
	// Now stamps edit commands. Defaults to time.Now.
	Now func() time.Time
	// Validate, when set, checks the preview after every operation so a
	// script cannot leave the document in a state Load would reject.
	Validate func(doc *style.StyleDefinition) error
}

// Compile converts s into commands for doc. Each operation is previewed on a
// copy of doc, so later operations can address nodes that earlier ones
// inserted or moved and references are checked against the state the
// operation will actually see. doc is not modified.
func (c Compiler) Compile(ctx context.Context, doc *style.StyleDefinition, s *Script) ([]command.Command, error) {
	now := c.Now
	if now == nil {
		now = time.Now
	}

	preview := doc.Clone()
	manager := command.NewManager(command.WithCoalesceWindow(0))
	out := make([]command.Command, 0, len(s.Operations))
	for i, op := range s.Operations {
		cmd, err := compileOp(preview, op, now)
		if err != nil {
			return nil, towererrors.NewScriptError(i, string(op.Op), err)
		}
		manager.Queue(cmd)
		if next, changed := manager.ApplyQueue(ctx, preview, nil); changed {
			preview = next
			if c.Validate != nil {
				if err := c.Validate(preview); err != nil {
					return nil, towererrors.NewScriptError(i, string(op.Op), err)
				}
			}
		}
		out = append(out, cmd)
	}
	return out, nil
}

// Compile uses a default Compiler.
func Compile(ctx context.Context, doc *style.StyleDefinition, s *Script) ([]command.Command, error) {
	return Compiler{}.Compile(ctx, doc, s)
}

func compileOp(doc *style.StyleDefinition, op Operation, now func() time.Time) (command.Command, error) {
	switch op.Op {
	case OpInsert:
		return compileInsert(doc, op)
	case OpRemove:
		id, err := requireID("id", op.ID)
		if err != nil {
			return nil, err
		}
		if _, _, ok := style.ParentOf(doc, id); !ok {
			return nil, towererrors.NewValidationError("id", fmt.Sprintf("%s is not a folder child", id), nil)
		}
		return command.RemoveNode{ID: id}, nil
	case OpMove:
		return compileMove(doc, op)
	case OpEdit:
		return compileEdit(doc, op, now)
	case OpUndo:
		return command.Undo{}, nil
	case OpRedo:
		return command.Redo{}, nil
	case OpAdapter:
		if op.Action == "" {
			return nil, towererrors.NewValidationError("action", "is required", nil)
		}
		return command.AdapterCommand{Action: command.AdapterAction{Name: op.Action, Args: op.Args}}, nil
	}
	return nil, towererrors.NewValidationError("op", fmt.Sprintf("unknown operation %q", op.Op), nil)
}

func compileInsert(doc *style.StyleDefinition, op Operation) (command.Command, error) {
	target, err := findFolder(doc, op.Target)
	if err != nil {
		return nil, err
	}
	position, err := dropPosition(target, op)
	if err != nil {
		return nil, err
	}
	if op.Node.Kind == 0 {
		return nil, towererrors.NewValidationError("node", "is required", nil)
	}
	item, err := decodeItem(&op.Node)
	if err != nil {
		return nil, towererrors.NewValidationError("node", err.Error(), err)
	}
	if !target.Accepts(item) {
		return nil, towererrors.NewValidationError("node", fmt.Sprintf("a %s cannot be stored in a %s", item.Kind(), target.Kind()), nil)
	}
	if id, hit := style.Collision(doc, item.Node()); hit {
		if style.Contains(doc, id) {
			return nil, towererrors.NewValidationError("node.id", fmt.Sprintf("%s already exists", id), nil)
		}
		return nil, towererrors.NewValidationError("node.id", fmt.Sprintf("%s is used more than once in node", id), nil)
	}
	return command.InsertNode{Target: target.NodeID(), Position: position, Node: item}, nil
}

func compileMove(doc *style.StyleDefinition, op Operation) (command.Command, error) {
	id, err := requireID("id", op.ID)
	if err != nil {
		return nil, err
	}
	if _, _, ok := style.ParentOf(doc, id); !ok {
		return nil, towererrors.NewValidationError("id", fmt.Sprintf("%s is not a folder child", id), nil)
	}
	target, err := findFolder(doc, op.Target)
	if err != nil {
		return nil, err
	}
	position, err := dropPosition(target, op)
	if err != nil {
		return nil, err
	}
	return command.MoveNode{ID: id, Target: target.NodeID(), Position: position}, nil
}

func compileEdit(doc *style.StyleDefinition, op Operation, now func() time.Time) (command.Command, error) {
	id, err := requireID("id", op.ID)
	if err != nil {
		return nil, err
	}
	node, ok := style.FindNode(doc, id)
	if !ok {
		return nil, towererrors.NewValidationError("id", fmt.Sprintf("no node %s", id), nil)
	}
	if op.Field == "" {
		return nil, towererrors.NewValidationError("field", "is required", nil)
	}
	target := node.Field(op.Field)
	if target == nil {
		return nil, towererrors.NewValidationError("field", fmt.Sprintf("%s has no editable field %q", node.Kind(), op.Field), nil)
	}
	if op.Value.Kind == 0 {
		return nil, towererrors.NewValidationError("value", "is required", nil)
	}
	value, err := decodeValue(target, op.Field, &op.Value)
	if err != nil {
		return nil, towererrors.NewValidationError("value", err.Error(), err)
	}
	return command.EditProperty{ID: id, WidgetID: op.Widget, Timestamp: now(), Value: value}, nil
}

func requireID(field, raw string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, towererrors.NewValidationError(field, "is required", nil)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, towererrors.NewValidationError(field, "must be a UUID", err)
	}
	return id, nil
}

func findFolder(doc *style.StyleDefinition, raw string) (style.Container, error) {
	id, err := requireID("target", raw)
	if err != nil {
		return nil, err
	}
	folder, ok := style.Find[style.Container](doc, id)
	if !ok {
		return nil, towererrors.NewValidationError("target", fmt.Sprintf("no folder %s", id), nil)
	}
	return folder, nil
}

// dropPosition reads position and sibling. An empty position means last.
func dropPosition(target style.Container, op Operation) (command.DropPosition, error) {
	switch op.Position {
	case "", string(command.PositionLast):
		return command.Last(), nil
	case string(command.PositionFirst):
		return command.First(), nil
	}
	sibling, err := requireID("sibling", op.Sibling)
	if err != nil {
		return command.DropPosition{}, err
	}
	if target.IndexOf(sibling) < 0 {
		return command.DropPosition{}, towererrors.NewValidationError("sibling", fmt.Sprintf("%s is not in %s", sibling, target.NodeID()), nil)
	}
	if op.Position == string(command.PositionAfter) {
		return command.After(sibling), nil
	}
	return command.Before(sibling), nil
}

// decodeItem builds a node from YAML, starting from the defaults of its
// element_type so scripts only spell out what differs. Nested folder
// content is defaulted the same way.
func decodeItem(node *yaml.Node) (style.StyleItem, error) {
	var raw map[string]any
	if err := node.Decode(&raw); err != nil {
		return style.StyleItem{}, err
	}
	merged, err := withDefaults(raw)
	if err != nil {
		return style.StyleItem{}, err
	}
	data, err := json.Marshal(merged)
	if err != nil {
		return style.StyleItem{}, err
	}
	var item style.StyleItem
	if err := json.Unmarshal(data, &item); err != nil {
		return style.StyleItem{}, err
	}
	return item, nil
}

func withDefaults(raw map[string]any) (map[string]any, error) {
	kind, _ := raw["element_type"].(string)
	if kind == "" {
		return nil, fmt.Errorf("missing element_type")
	}
	item, ok := style.NewItem(style.NodeKind(kind))
	if !ok {
		return nil, fmt.Errorf("unknown element_type %q", kind)
	}
	data, err := json.Marshal(item)
	if err != nil {
		return nil, err
	}
	var base map[string]any
	if err := json.Unmarshal(data, &base); err != nil {
		return nil, err
	}
	merged := merge(base, raw)
	if err := defaultContent(merged); err != nil {
		return nil, err
	}
	return merged, nil
}

// merge overlays src onto dst, recursing into objects present in both.
func merge(dst, src map[string]any) map[string]any {
	for key, value := range src {
		srcMap, srcIsMap := value.(map[string]any)
		dstMap, dstIsMap := dst[key].(map[string]any)
		if srcIsMap && dstIsMap {
			dst[key] = merge(dstMap, srcMap)
			continue
		}
		dst[key] = value
	}
	return dst
}

// defaultContent applies withDefaults to every folder child below m.
func defaultContent(m map[string]any) error {
	for key, value := range m {
		switch v := value.(type) {
		case map[string]any:
			if err := defaultContent(v); err != nil {
				return err
			}
		case []any:
			if key != "content" {
				continue
			}
			for i, child := range v {
				childMap, ok := child.(map[string]any)
				if !ok {
					return fmt.Errorf("content entries must be objects")
				}
				merged, err := withDefaults(childMap)
				if err != nil {
					return err
				}
				v[i] = merged
			}
		}
	}
	return nil
}

// decodeValue decodes a YAML value into the type of the field target points
// to.
func decodeValue(target any, field string, node *yaml.Node) (command.NewValue, error) {
	var raw any
	if err := node.Decode(&raw); err != nil {
		return nil, err
	}
	switch target.(type) {
	case *string:
		return fieldValue[string](field, raw)
	case *style.ValueType:
		return fieldValue[style.ValueType](field, raw)
	case *style.TextAlignment:
		return fieldValue[style.TextAlignment](field, raw)
	case *style.VariableBehavior:
		return fieldValue[style.VariableBehavior](field, raw)
	case *style.Property[bool]:
		return fieldValue[style.Property[bool]](field, raw)
	case *style.Property[string]:
		return fieldValue[style.Property[string]](field, raw)
	case *style.Property[float64]:
		return fieldValue[style.Property[float64]](field, raw)
	case *style.Property[style.Tint]:
		return fieldValue[style.Property[style.Tint]](field, raw)
	case **uuid.UUID:
		return fieldValue[*uuid.UUID](field, raw)
	}
	return nil, fmt.Errorf("field %q has unsupported type %T", field, target)
}

func fieldValue[T any](field string, raw any) (command.NewValue, error) {
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, fmt.Errorf("invalid value for %s: %w", field, err)
	}
	return command.FieldValue[T]{Field: field, Value: value}, nil
}
