// Package validator wraps go-playground/validator with request-friendly
// error reporting: a failed validation yields a per-field message map the
// HTTP layer can return as-is.
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var v = newValidator()

// newValidator reports failing fields under their json names so error maps
// line up with the request body the client sent.
func newValidator() *validator.Validate {
	val := validator.New(validator.WithRequiredStructEnabled())
	val.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return val
}

// FieldErrors reports which struct fields failed validation and why.
type FieldErrors struct {
	inner validator.ValidationErrors
}

func (e *FieldErrors) Error() string {
	return e.inner.Error()
}

// Fields maps each failing field name to a human-readable reason.
func (e *FieldErrors) Fields() map[string]string {
	out := make(map[string]string, len(e.inner))
	for _, fe := range e.inner {
		out[fe.Field()] = describe(fe)
	}
	return out
}

// Validate checks s against its `validate` struct tags. Tag failures come
// back as *FieldErrors; anything else (such as passing a non-struct) is
// returned unwrapped.
func Validate(s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return &FieldErrors{inner: verrs}
	}
	return err
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must have at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must have at most %s characters", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "uuid":
		return "must be a valid UUID"
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}
