package errors

import (
	"fmt"
)

// ParseError reports a document or script that could not be decoded. Line is
// zero when the position is unknown.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError reports a structurally invalid document, script or config.
// Field locates the offending value, e.g. "asset[3f2c...].path".
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ScriptError locates a failure inside an edit script.
type ScriptError struct {
	Index int
	Op    string
	Err   error
}

// NewScriptError constructs a ScriptError for the operation at index.
func NewScriptError(index int, op string, err error) error {
	return &ScriptError{Index: index, Op: op, Err: err}
}

func (e *ScriptError) Error() string {
	if e == nil {
		return ""
	}
	if e.Op != "" {
		return fmt.Sprintf("script error at operation %d (%s): %v", e.Index, e.Op, e.Err)
	}
	return fmt.Sprintf("script error at operation %d: %v", e.Index, e.Err)
}

// Unwrap exposes the root error.
func (e *ScriptError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
