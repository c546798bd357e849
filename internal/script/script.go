// Package script reads YAML edit scripts and turns them into commands.
//
// A script is a list of operations applied in order:
//
//	operations:
//	  - op: edit
//	    id: 6f1c2d8e-4b7a-4c1e-9d2f-0a1b2c3d4e5f
//	    field: text_size
//	    value: 24
//	  - op: move
//	    id: 0b4a...
//	    target: 93de...
//	    position: after
//	    sibling: 51aa...
package script

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	towererrors "github.com/alexisbeaulieu97/towerstyle/pkg/errors"
)

// Op names a script operation.
type Op string

const (
	OpInsert  Op = "insert"
	OpRemove  Op = "remove"
	OpMove    Op = "move"
	OpEdit    Op = "edit"
	OpUndo    Op = "undo"
	OpRedo    Op = "redo"
	OpAdapter Op = "adapter"
)

// Operation is one step of a script.
type Operation struct {
	Op       Op                `yaml:"op" validate:"required,oneof=insert remove move edit undo redo adapter"`
	ID       string            `yaml:"id" validate:"omitempty,uuid"`
	Target   string            `yaml:"target" validate:"omitempty,uuid"`
	Position string            `yaml:"position" validate:"omitempty,oneof=first last after before"`
	Sibling  string            `yaml:"sibling" validate:"omitempty,uuid"`
	Node     yaml.Node         `yaml:"node" validate:"-"`
	Field    string            `yaml:"field" validate:"omitempty,max=64"`
	Value    yaml.Node         `yaml:"value" validate:"-"`
	Widget   string            `yaml:"widget" validate:"omitempty,max=64"`
	Action   string            `yaml:"action" validate:"omitempty,max=64"`
	Args     map[string]string `yaml:"args"`

	// Line is the 1-based line of the operation in its source.
	Line int `yaml:"-"`
}

// Script is a parsed edit script.
type Script struct {
	Name       string
	Operations []Operation
}

type file struct {
	Operations []yaml.Node `yaml:"operations"`
}

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	yamlLineRegex = regexp.MustCompile(`line (\d+)`)
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		validateInst = v
	})
	return validateInst
}

// Load parses the script at path.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, towererrors.NewParseError(path, 0, err)
	}
	return Parse(path, data)
}

// Decode parses a script read from r.
func Decode(r io.Reader, name string) (*Script, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, towererrors.NewParseError(name, 0, err)
	}
	return Parse(name, data)
}

// Parse decodes and validates script source. name is used in errors.
func Parse(name string, data []byte) (*Script, error) {
	var f file
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, towererrors.NewParseError(name, 0, errors.New("script is empty"))
		}
		return nil, towererrors.NewParseError(name, extractLine(err), err)
	}
	if len(f.Operations) == 0 {
		return nil, towererrors.NewValidationError("operations", "script has no operations", nil)
	}

	out := &Script{Name: name, Operations: make([]Operation, 0, len(f.Operations))}
	for i := range f.Operations {
		node := &f.Operations[i]
		var op Operation
		if err := node.Decode(&op); err != nil {
			return nil, towererrors.NewParseError(name, node.Line, err)
		}
		op.Line = node.Line
		if err := validatorInstance().Struct(op); err != nil {
			return nil, towererrors.NewScriptError(i, string(op.Op), convertValidationError(err))
		}
		out.Operations = append(out.Operations, op)
	}
	return out, nil
}

func convertValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return towererrors.NewValidationError("", err.Error(), err)
	}
	fe := validationErrs[0]
	var message string
	switch fe.Tag() {
	case "required":
		message = "is required"
	case "oneof":
		message = fmt.Sprintf("must be one of [%s]", fe.Param())
	case "uuid":
		message = "must be a UUID"
	case "max":
		message = fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		message = fmt.Sprintf("failed %s validation", fe.Tag())
	}
	return towererrors.NewValidationError(fe.Field(), message, err)
}

func extractLine(err error) int {
	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}
	line, convErr := strconv.Atoi(matches[1])
	if convErr != nil {
		return 0
	}
	return line
}
