package style

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ValueType enumerates the value kinds a producer can output. It is the
// "output_type" tag of variables.
type ValueType string

const (
	ValueNumber  ValueType = "number"
	ValueText    ValueType = "text"
	ValueBoolean ValueType = "boolean"
	ValueTint    ValueType = "tint"
	ValueImage   ValueType = "image"
	ValueFont    ValueType = "font"
)

// ValueRef points at a value producer elsewhere in the document.
type ValueRef struct {
	ID uuid.UUID `json:"producer_ref"`
}

// Property is either a fixed value or a reference to a producer that is
// resolved at render time. The zero value is a fixed zero T.
type Property[T any] struct {
	fixed T
	ref   *ValueRef
}

// Fixed returns a property holding v.
func Fixed[T any](v T) Property[T] {
	return Property[T]{fixed: v}
}

// FromProducer returns a property bound to the producer with the given id.
func FromProducer[T any](id uuid.UUID) Property[T] {
	return Property[T]{ref: &ValueRef{ID: id}}
}

// IsFixed reports whether the property holds a literal value.
func (p Property[T]) IsFixed() bool {
	return p.ref == nil
}

// Value returns the fixed value. ok is false for producer references.
func (p Property[T]) Value() (T, bool) {
	if p.ref != nil {
		var zero T
		return zero, false
	}
	return p.fixed, true
}

// Ref returns the producer reference. ok is false for fixed values.
func (p Property[T]) Ref() (ValueRef, bool) {
	if p.ref == nil {
		return ValueRef{}, false
	}
	return *p.ref, true
}

// MarshalJSON writes fixed values bare and references as a tagged object.
func (p Property[T]) MarshalJSON() ([]byte, error) {
	if p.ref != nil {
		return json.Marshal(p.ref)
	}
	return json.Marshal(p.fixed)
}

// UnmarshalJSON accepts either a bare T or a {"producer_ref": ...} object.
func (p *Property[T]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var probe map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &probe); err != nil {
			return err
		}
		if raw, ok := probe["producer_ref"]; ok {
			var id uuid.UUID
			if err := json.Unmarshal(raw, &id); err != nil {
				return fmt.Errorf("producer_ref: %w", err)
			}
			*p = FromProducer[T](id)
			return nil
		}
	}

	var v T
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return err
	}
	*p = Fixed(v)
	return nil
}

// Tint is an RGBA color. It is written as "#rrggbbaa".
type Tint struct {
	R, G, B, A uint8
}

// RGBA builds a Tint.
func RGBA(r, g, b, a uint8) Tint {
	return Tint{R: r, G: g, B: b, A: a}
}

// String formats the tint as a hex string.
func (t Tint) String() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", t.R, t.G, t.B, t.A)
}

// ParseTint parses "#rrggbb" or "#rrggbbaa".
func ParseTint(s string) (Tint, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	var t Tint
	switch len(s) {
	case 6:
		t.A = 0xff
		if _, err := fmt.Sscanf(s, "%02x%02x%02x", &t.R, &t.G, &t.B); err != nil {
			return Tint{}, fmt.Errorf("parse tint %q: %w", s, err)
		}
	case 8:
		if _, err := fmt.Sscanf(s, "%02x%02x%02x%02x", &t.R, &t.G, &t.B, &t.A); err != nil {
			return Tint{}, fmt.Errorf("parse tint %q: %w", s, err)
		}
	default:
		return Tint{}, fmt.Errorf("parse tint %q: want 6 or 8 hex digits", s)
	}
	return t, nil
}

// MarshalJSON implements json.Marshaler.
func (t Tint) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Tint) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseTint(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Vec2Property is a pair of number properties.
type Vec2Property struct {
	X Property[float64] `json:"x"`
	Y Property[float64] `json:"y"`
}

// Vec2 returns a fixed Vec2Property.
func Vec2(x, y float64) Vec2Property {
	return Vec2Property{X: Fixed(x), Y: Fixed(y)}
}

func (v *Vec2Property) field(prefix, name string) any {
	switch name {
	case prefix + ".x":
		return &v.X
	case prefix + ".y":
		return &v.Y
	}
	return nil
}

// TextAlignment positions text inside a cell.
type TextAlignment string

const (
	AlignLeft   TextAlignment = "left"
	AlignCenter TextAlignment = "center"
	AlignRight  TextAlignment = "right"
)

// CellStyle is the set of visual properties shared by every cell-like node.
type CellStyle struct {
	Visible   Property[bool]    `json:"visible"`
	Text      Property[string]  `json:"text"`
	TextColor Property[Tint]    `json:"text_color"`
	TextSize  Property[float64] `json:"text_size"`
	TextAlign TextAlignment     `json:"text_alignment" validate:"omitempty,oneof=left center right"`
	Color     Property[Tint]    `json:"color"`
	Image     *uuid.UUID        `json:"image,omitempty"`
	Pos       Vec2Property      `json:"pos"`
	Size      Vec2Property      `json:"size"`
	Rounding  Property[float64] `json:"rounding"`
}

// DefaultCellStyle returns the style new cells start with.
func DefaultCellStyle() CellStyle {
	return CellStyle{
		Visible:   Fixed(true),
		Text:      Fixed(""),
		TextColor: Fixed(RGBA(0, 0, 0, 0xff)),
		TextSize:  Fixed(20.0),
		TextAlign: AlignCenter,
		Color:     Fixed(RGBA(0xff, 0xff, 0xff, 0xff)),
		Pos:       Vec2(0, 0),
		Size:      Vec2(60, 30),
		Rounding:  Fixed(0.0),
	}
}

func (c CellStyle) clone() CellStyle {
	out := c
	if c.Image != nil {
		image := *c.Image
		out.Image = &image
	}
	return out
}

// field resolves the editable cell properties by name.
func (c *CellStyle) field(name string) any {
	switch name {
	case "visible":
		return &c.Visible
	case "text":
		return &c.Text
	case "text_color":
		return &c.TextColor
	case "text_size":
		return &c.TextSize
	case "text_alignment":
		return &c.TextAlign
	case "color":
		return &c.Color
	case "rounding":
		return &c.Rounding
	case "image":
		return &c.Image
	}
	if f := c.Pos.field("pos", name); f != nil {
		return f
	}
	return c.Size.field("size", name)
}
