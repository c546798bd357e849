package variant

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type circle struct {
	Radius float64 `json:"radius"`
}

type square struct {
	Side float64 `json:"side"`
}

// shape is a minimal tagged enum used to exercise the wrapper.
type shape struct {
	value any
}

func (s shape) Case() any { return s.value }

func (s *shape) SetCase(v any) bool {
	switch v.(type) {
	case *circle, *square:
		s.value = v
		return true
	}
	return false
}

func (s shape) MarshalJSON() ([]byte, error) {
	switch v := s.value.(type) {
	case *circle:
		return json.Marshal(map[string]any{"kind": "circle", "radius": v.Radius})
	case *square:
		return json.Marshal(map[string]any{"kind": "square", "side": v.Side})
	}
	return []byte("null"), nil
}

func (s *shape) UnmarshalJSON(data []byte) error {
	var probe struct {
		Kind string `json:"kind"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	switch probe.Kind {
	case "circle":
		c := &circle{}
		s.value = c
		return json.Unmarshal(data, c)
	case "square":
		sq := &square{}
		s.value = sq
		return json.Unmarshal(data, sq)
	}
	return fmt.Errorf("unknown shape %q", probe.Kind)
}

func TestNewMatchesActiveCase(t *testing.T) {
	t.Parallel()

	c := &circle{Radius: 2}
	e := shape{value: c}

	got, ok := New[shape, *circle](e)
	require.True(t, ok)
	assert.Same(t, c, got.Get())

	_, ok = New[shape, *square](e)
	assert.False(t, ok)

	_, ok = New[shape, *circle](shape{})
	assert.False(t, ok)
}

func TestGetWritesThroughToEnum(t *testing.T) {
	t.Parallel()

	x := From[shape](&square{Side: 1})
	x.Get().Side = 4

	sq, ok := x.Enum().Case().(*square)
	require.True(t, ok)
	assert.Equal(t, 4.0, sq.Side)
}

func TestGetPanicsOnZeroWrapper(t *testing.T) {
	t.Parallel()

	var x ExactVariant[shape, *circle]
	assert.Panics(t, func() { _ = x.Get() })
}

func TestFromPanicsOnForeignCase(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { _ = From[shape]("not a shape") })
}

func TestJSONMatchesEnumEncoding(t *testing.T) {
	t.Parallel()

	x := From[shape](&circle{Radius: 3})
	wrapped, err := json.Marshal(x)
	require.NoError(t, err)

	plain, err := json.Marshal(x.Enum())
	require.NoError(t, err)
	assert.JSONEq(t, string(plain), string(wrapped))

	var decoded ExactVariant[shape, *circle]
	require.NoError(t, json.Unmarshal(wrapped, &decoded))
	assert.Equal(t, 3.0, decoded.Get().Radius)
}

func TestUnmarshalRejectsOtherCase(t *testing.T) {
	t.Parallel()

	var decoded ExactVariant[shape, *circle]
	err := json.Unmarshal([]byte(`{"kind":"square","side":1}`), &decoded)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrVariantMismatch))
}
