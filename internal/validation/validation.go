package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type FieldError struct {
	Field string
	Tag   string
	Param string
}

// Errors lists field failures in struct declaration order.
type Errors []FieldError

func (errs Errors) Error() string {
	parts := make([]string, 0, len(errs))
	for _, fieldError := range errs {
		parts = append(parts, fieldError.Field+": "+fieldError.Tag)
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonFieldName)
	return &Validator{validate: validate}
}

// RegisterStructRule adds a cross-field rule for the given struct types.
func (v *Validator) RegisterStructRule(rule validator.StructLevelFunc, types ...any) {
	v.validate.RegisterStructValidation(rule, types...)
}

// Struct returns nil or Errors; any other failure is returned unchanged.
func (v *Validator) Struct(value any) error {
	err := v.validate.Struct(value)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	result := make(Errors, 0, len(validationErrors))
	for _, fieldError := range validationErrors {
		result = append(result, FieldError{
			Field: fieldPath(fieldError.Namespace()),
			Tag:   fieldError.Tag(),
			Param: fieldError.Param(),
		})
	}
	return result
}

func AsErrors(err error) (Errors, bool) {
	var result Errors
	if errors.As(err, &result) {
		return result, true
	}
	return nil, false
}

func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return field.Name
	}
	return name
}

// fieldPath drops the root struct name: "orderInput.items[0].quantity"
// becomes "items[0].quantity".
func fieldPath(namespace string) string {
	if separator := strings.Index(namespace, "."); separator >= 0 {
		return namespace[separator+1:]
	}
	return namespace
}
