package config

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	towererrors "github.com/alexisbeaulieu97/towerstyle/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

// validatorInstance configures and returns the shared validator instance used across the config package.
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("yaml"), ",", 2)[0]
			if name == "-" || name == "" {
				return field.Name
			}
			return name
		})
		validateInst = v
	})

	return validateInst
}

// ValidateConfig checks field rules and that the configured game sources merge
// cleanly with the built-in table.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return towererrors.NewValidationError("config", "configuration is required", nil)
	}
	if err := validatorInstance().Struct(cfg); err != nil {
		return convertValidationError(err)
	}
	if _, err := cfg.Sources(); err != nil {
		return towererrors.NewValidationError("game_sources", err.Error(), err)
	}
	return nil
}

func convertValidationError(err error) error {
	if err == nil {
		return nil
	}

	if ves, ok := err.(validator.ValidationErrors); ok {
		ve := ves[0]
		field := yamlishFieldName(ve)
		msg := fmt.Sprintf("%s failed validation for tag '%s'", field, ve.Tag())
		return towererrors.NewValidationError(field, msg, err)
	}

	return towererrors.NewValidationError("config", err.Error(), err)
}

// yamlishFieldName drops the root struct name from the namespace.
func yamlishFieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		ns = ns[i+1:]
	}
	return ns
}
