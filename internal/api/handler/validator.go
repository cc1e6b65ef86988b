package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// requestValidator plugs go-playground/validator into echo's c.Validate.
type requestValidator struct {
	validate *validator.Validate
}

// NewValidator returns the validator assigned to echo.Echo.Validator. Field
// names in messages follow the json tags so clients see their own keys.
func NewValidator() *requestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)
	return &requestValidator{validate: v}
}

func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return f.Name
	}
	return name
}

// Validate joins every failed rule into one "; "-separated message.
func (rv *requestValidator) Validate(i any) error {
	err := rv.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	msgs := make([]string, len(fieldErrs))
	for n, fe := range fieldErrs {
		msgs[n] = describe(fe)
	}
	return errors.New(strings.Join(msgs, "; "))
}

var ruleMessages = map[string]string{
	"required": "is required",
	"email":    "must be a valid email",
	"gte":      "must be at least %s",
	"lte":      "must be at most %s",
	"min":      "must be at least %s characters",
	"max":      "must be at most %s characters",
	"oneof":    "must be one of: %s",
}

func describe(fe validator.FieldError) string {
	format, ok := ruleMessages[fe.Tag()]
	if !ok {
		return fmt.Sprintf("%s failed validation (%s)", fe.Field(), fe.Tag())
	}
	if strings.Contains(format, "%s") {
		format = fmt.Sprintf(format, fe.Param())
	}
	return fe.Field() + " " + format
}
