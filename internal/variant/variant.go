// Package variant narrows a closed enum to one of its cases.
//
// Closed enums in this module are types whose active case is reported by
// Case. An ExactVariant keeps the full enum value (so it still serializes with
// the enum's tag) while giving callers typed access to the one case it was
// constructed with.
package variant

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrVariantMismatch is returned when decoded data holds a different case than
// the one an ExactVariant requires.
var ErrVariantMismatch = errors.New("enum does not hold the expected variant")

// Enum is implemented by closed sum types.
type Enum interface {
	Case() any
}

// settable is the pointer form of an enum that can switch its active case.
type settable[E any] interface {
	*E
	SetCase(v any) bool
}

// ExactVariant wraps an enum value E that is known to hold case V.
type ExactVariant[E Enum, V any] struct {
	inner E
}

// New wraps e if it currently holds case V.
func New[E Enum, V any](e E) (ExactVariant[E, V], bool) {
	if _, ok := e.Case().(V); !ok {
		return ExactVariant[E, V]{}, false
	}
	return ExactVariant[E, V]{inner: e}, true
}

// From wraps a bare case value. It panics if V is not a case of E, which can
// only happen through a wrong instantiation.
func From[E Enum, V any, P settable[E]](v V) ExactVariant[E, V] {
	var e E
	if !P(&e).SetCase(v) {
		panic(fmt.Sprintf("variant: %T is not a case of %T", v, e))
	}
	return ExactVariant[E, V]{inner: e}
}

// Get returns the narrowed case.
func (x ExactVariant[E, V]) Get() V {
	v, ok := x.inner.Case().(V)
	if !ok {
		var want V
		panic(fmt.Sprintf("variant: %T holds %T, want %T", x.inner, x.inner.Case(), want))
	}
	return v
}

// Enum returns the wrapped enum value.
func (x ExactVariant[E, V]) Enum() E {
	return x.inner
}

// MarshalJSON encodes the wrapper exactly as the enum.
func (x ExactVariant[E, V]) MarshalJSON() ([]byte, error) {
	return json.Marshal(x.inner)
}

// UnmarshalJSON decodes an enum and checks that it holds case V.
func (x *ExactVariant[E, V]) UnmarshalJSON(data []byte) error {
	var e E
	if err := json.Unmarshal(data, &e); err != nil {
		return err
	}
	if _, ok := e.Case().(V); !ok {
		var want V
		return fmt.Errorf("%w: got %T, want %T", ErrVariantMismatch, e.Case(), want)
	}
	x.inner = e
	return nil
}
