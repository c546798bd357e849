package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/alexisbeaulieu97/towerstyle/internal/style"
	towererrors "github.com/alexisbeaulieu97/towerstyle/pkg/errors"
)

// Load reads and validates the style document at path. Any decoding or
// validation failure aborts the load; a partially valid document is never
// returned.
func Load(path string, opts style.ValidateOptions) (*style.StyleDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, towererrors.NewParseError(path, 0, err)
	}
	return Parse(path, data, opts)
}

// Decode reads a document from r. name is used in error messages.
func Decode(r io.Reader, name string, opts style.ValidateOptions) (*style.StyleDefinition, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, towererrors.NewParseError(name, 0, err)
	}
	return Parse(name, data, opts)
}

// Parse decodes and validates an in-memory document.
func Parse(name string, data []byte, opts style.ValidateOptions) (*style.StyleDefinition, error) {
	var doc style.StyleDefinition
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, towererrors.NewParseError(name, errorLine(data, err), err)
	}
	if err := style.Validate(&doc, opts); err != nil {
		return nil, err
	}
	return &doc, nil
}

// errorLine maps the byte offset carried by encoding/json errors to a
// 1-based line number, or 0 when the error has no offset.
func errorLine(data []byte, err error) int {
	var offset int64
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxErr):
		offset = syntaxErr.Offset
	case errors.As(err, &typeErr):
		offset = typeErr.Offset
	default:
		return 0
	}
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	return bytes.Count(data[:offset], []byte("\n")) + 1
}

// Encode writes doc as indented JSON.
func Encode(w io.Writer, doc *style.StyleDefinition) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// Marshal returns doc as indented JSON.
func Marshal(doc *style.StyleDefinition) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save writes doc to path atomically through a temporary file in the same
// directory.
func Save(path string, doc *style.StyleDefinition) error {
	data, err := Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal style: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create style directory: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temporary file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}
	return nil
}
