package style

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// VariableDefinition is a named value producer that properties can bind to.
type VariableDefinition struct {
	ID         uuid.UUID        `json:"id" validate:"uuid_set"`
	Name       string           `json:"name" validate:"required,max=100"`
	OutputType ValueType        `json:"output_type" validate:"oneof=number text boolean tint"`
	Behavior   VariableBehavior `json:"definition"`
}

// NewVariableDefinition returns a fixed number variable with a fresh identity.
func NewVariableDefinition() *VariableDefinition {
	return &VariableDefinition{
		ID:         uuid.New(),
		Name:       "Variable",
		OutputType: ValueNumber,
		Behavior:   NewBehavior(&FixedBehavior{Value: 0.0}),
	}
}

func (v *VariableDefinition) node() {}

// NodeID implements Node.
func (v *VariableDefinition) NodeID() uuid.UUID { return v.ID }

// Kind implements Node.
func (v *VariableDefinition) Kind() NodeKind { return KindVariable }

// DisplayName implements Node.
func (v *VariableDefinition) DisplayName() string { return v.Name }

func (v *VariableDefinition) folderKind() NodeKind { return KindVariableFolder }

// Field implements Node.
func (v *VariableDefinition) Field(name string) any {
	switch name {
	case "name":
		return &v.Name
	case "output_type":
		return &v.OutputType
	case "definition":
		return &v.Behavior
	}
	return nil
}

// Clone returns a copy with the same identity.
func (v *VariableDefinition) Clone() *VariableDefinition {
	out := *v
	out.Behavior = v.Behavior.Clone()
	return &out
}

// ValueID is the id properties use to reference this variable.
func (v *VariableDefinition) ValueID() uuid.UUID { return v.ID }

// ValueProducer describes what this variable produces when referenced.
func (v *VariableDefinition) ValueProducer() Producer {
	return VariableProducer{Output: v.OutputType, Behavior: v.Behavior.Clone()}
}

// BehaviorKind is the "behavior" tag of a variable definition.
type BehaviorKind string

const (
	BehaviorFixed BehaviorKind = "fixed"
	BehaviorGame  BehaviorKind = "game"
)

// FixedBehavior always produces the same literal. The literal is a float64,
// string or bool as decoded from JSON; tints are hex strings.
type FixedBehavior struct {
	Value any `json:"value"`
}

// GameBehavior reads a named telemetry source.
type GameBehavior struct {
	Source string `json:"source"`
}

// VariableBehavior is the closed enum of variable behaviors.
type VariableBehavior struct {
	value any
}

// NewBehavior wraps a *FixedBehavior or *GameBehavior. Other values yield an
// empty behavior.
func NewBehavior(v any) VariableBehavior {
	var b VariableBehavior
	b.SetCase(v)
	return b
}

// Case returns the active *FixedBehavior or *GameBehavior, or nil.
func (b VariableBehavior) Case() any { return b.value }

// SetCase switches the active case.
func (b *VariableBehavior) SetCase(v any) bool {
	switch v := v.(type) {
	case *FixedBehavior:
		if v == nil {
			return false
		}
		b.value = v
	case *GameBehavior:
		if v == nil {
			return false
		}
		b.value = v
	default:
		return false
	}
	return true
}

// Kind returns the tag of the active case.
func (b VariableBehavior) Kind() BehaviorKind {
	switch b.value.(type) {
	case *FixedBehavior:
		return BehaviorFixed
	case *GameBehavior:
		return BehaviorGame
	}
	return ""
}

// Clone deep-copies the active case.
func (b VariableBehavior) Clone() VariableBehavior {
	switch v := b.value.(type) {
	case *FixedBehavior:
		out := *v
		return VariableBehavior{value: &out}
	case *GameBehavior:
		out := *v
		return VariableBehavior{value: &out}
	}
	return VariableBehavior{}
}

// MarshalJSON implements json.Marshaler.
func (b VariableBehavior) MarshalJSON() ([]byte, error) {
	switch v := b.value.(type) {
	case *FixedBehavior:
		return json.Marshal(struct {
			Behavior BehaviorKind `json:"behavior"`
			*FixedBehavior
		}{BehaviorFixed, v})
	case *GameBehavior:
		return json.Marshal(struct {
			Behavior BehaviorKind `json:"behavior"`
			*GameBehavior
		}{BehaviorGame, v})
	}
	return []byte("null"), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (b *VariableBehavior) UnmarshalJSON(data []byte) error {
	var probe struct {
		Behavior BehaviorKind `json:"behavior"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	switch probe.Behavior {
	case BehaviorFixed:
		v := &FixedBehavior{}
		if err := json.Unmarshal(data, v); err != nil {
			return err
		}
		b.value = v
	case BehaviorGame:
		v := &GameBehavior{}
		if err := json.Unmarshal(data, v); err != nil {
			return err
		}
		b.value = v
	default:
		return fmt.Errorf("unknown behavior %q", probe.Behavior)
	}
	return nil
}
