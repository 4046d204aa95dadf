// Package val validates configuration and input schemas with go-playground/validator.
package val

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/code19m/errx"
	"github.com/go-playground/validator/v10"
)

const (
	CodeValidationFailed = "VALIDATION_FAILED"
)

//nolint:gochecknoglobals // validator caches struct metadata and is safe for concurrent use
var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(getTagName)
	})
	return validate
}

// getTagName returns the name of a struct field based on its struct tags.
// It checks 'json' and 'yaml' tags in that order, and falls back to the field name.
func getTagName(fld reflect.StructField) string {
	for _, tagName := range []string{"json", "yaml"} {
		name, _, _ := strings.Cut(fld.Tag.Get(tagName), ",")
		if name != "" && name != "-" {
			return name
		}
	}
	return fld.Name
}

// ValidateSchema validates a given schema using the go-playground/validator package.
// Field failures are reported in the fields of the returned errx error, keyed by the
// field's namespace (for instance "logger.level").
func ValidateSchema(schema any) error {
	err := getValidator().Struct(schema)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		fields := make(errx.M)
		for _, fieldErr := range validationErrors {
			fields[fieldPath(fieldErr)] = getFieldErrDescription(fieldErr)
		}

		return errx.New(
			"Validation failed. See fields for details.",
			errx.WithCode(CodeValidationFailed),
			errx.WithType(errx.T_Validation),
			errx.WithFields(fields),
		)
	}

	return errx.New(
		fmt.Sprintf("Unknown validation error: %s", err.Error()),
		errx.WithCode(CodeValidationFailed),
		errx.WithType(errx.T_Validation),
	)
}

// fieldPath drops the top-level struct name from the namespace.
func fieldPath(fieldErr validator.FieldError) string {
	ns := fieldErr.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func getFieldErrDescription(fieldErr validator.FieldError) string {
	param := fieldErr.Param()

	switch fieldErr.Tag() {
	case "required":
		return "This field is required"
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", strings.ReplaceAll(param, " ", ", "))
	case "min":
		if fieldErr.Kind() == reflect.String {
			return fmt.Sprintf("Must be at least %s characters", param)
		}
		return fmt.Sprintf("Must be at least %s", param)
	case "max":
		if fieldErr.Kind() == reflect.String {
			return fmt.Sprintf("Must be at most %s characters", param)
		}
		return fmt.Sprintf("Must be at most %s", param)
	case "gte":
		return fmt.Sprintf("Must be greater than or equal to %s", param)
	case "lte":
		return fmt.Sprintf("Must be less than or equal to %s", param)
	case "alphanum":
		return "Must contain only alphanumeric characters"
	case "printascii":
		return "Must contain only printable ASCII characters"
	}

	return fmt.Sprintf("Failed validation: %s", fieldErr.Tag())
}
