package style

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	towererrors "github.com/alexisbeaulieu97/towerstyle/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		_ = v.RegisterValidation("uuid_set", func(fl validator.FieldLevel) bool {
			id, ok := fl.Field().Interface().(uuid.UUID)
			return ok && id != uuid.Nil
		})

		validateInst = v
	})

	return validateInst
}

// ValidateOptions tunes document validation.
type ValidateOptions struct {
	// KnownGameSource reports whether a game behavior's source exists. Nil
	// skips the check.
	KnownGameSource func(name string) bool
}

// Validate checks struct constraints on every node, identifier uniqueness
// and variable definitions. It returns the first problem found as a
// ValidationError.
func Validate(doc *StyleDefinition, opts ValidateOptions) error {
	if doc == nil {
		return towererrors.NewValidationError("style", "document is nil", nil)
	}

	v := validatorInstance()
	seen := make(map[uuid.UUID]NodeKind)
	var failure error

	Walk(doc, func(n Node, m Method) ControlFlow {
		if m != Visit {
			return Continue
		}
		if kind, dup := seen[n.NodeID()]; dup {
			failure = towererrors.NewValidationError(nodeField(n, "id"), fmt.Sprintf("duplicate id also used by a %s", kind), nil)
			return Break
		}
		seen[n.NodeID()] = n.Kind()

		if err := v.Struct(n); err != nil {
			failure = convertValidationError(n, err)
			return Break
		}
		if variable, ok := n.(*VariableDefinition); ok {
			if err := validateVariable(variable, opts); err != nil {
				failure = err
				return Break
			}
		}
		return Continue
	})

	return failure
}

func validateVariable(variable *VariableDefinition, opts ValidateOptions) error {
	field := nodeField(variable, "definition")
	switch behavior := variable.Behavior.Case().(type) {
	case *GameBehavior:
		if strings.TrimSpace(behavior.Source) == "" {
			return towererrors.NewValidationError(field, "game source is required", nil)
		}
		if opts.KnownGameSource != nil && !opts.KnownGameSource(behavior.Source) {
			return towererrors.NewValidationError(field, fmt.Sprintf("unknown game source %q", behavior.Source), nil)
		}
	case *FixedBehavior:
		if !literalMatches(variable.OutputType, behavior.Value) {
			return towererrors.NewValidationError(field, fmt.Sprintf("fixed value %v is not a %s", behavior.Value, variable.OutputType), nil)
		}
	default:
		return towererrors.NewValidationError(field, "behavior is required", nil)
	}
	return nil
}

func literalMatches(t ValueType, value any) bool {
	switch t {
	case ValueNumber:
		_, ok := value.(float64)
		return ok
	case ValueBoolean:
		_, ok := value.(bool)
		return ok
	case ValueText:
		_, ok := value.(string)
		return ok
	case ValueTint:
		s, ok := value.(string)
		if !ok {
			return false
		}
		_, err := ParseTint(s)
		return err == nil
	}
	return false
}

func nodeField(n Node, field string) string {
	return fmt.Sprintf("%s[%s].%s", n.Kind(), n.NodeID(), field)
}

func convertValidationError(n Node, err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return towererrors.NewValidationError(nodeField(n, ""), err.Error(), err)
	}

	fe := validationErrs[0]
	namespace := fe.Namespace()
	if idx := strings.Index(namespace, "."); idx >= 0 {
		namespace = namespace[idx+1:]
	}

	var message string
	switch fe.Tag() {
	case "required":
		message = "is required"
	case "uuid_set":
		message = "must be a non-nil identifier"
	case "max":
		message = fmt.Sprintf("must be at most %s characters", fe.Param())
	case "oneof":
		message = fmt.Sprintf("must be one of [%s]", fe.Param())
	default:
		message = fmt.Sprintf("failed %s validation", fe.Tag())
	}

	return towererrors.NewValidationError(nodeField(n, namespace), message, err)
}
