package httpx

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/storefront-admin/storefront-admin/internal/shared"
)

// ValidationError carries the location of the first invalid request field.
type ValidationError struct {
	Location string
	Field    string
	Message  string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s.%s: %s", e.Location, e.Field, e.Message)
}

// Unwrap lets callers match ValidationError with shared.ErrValidation.
func (e ValidationError) Unwrap() error {
	return shared.ErrValidation
}

// Problem renders the error as a 422 body.
func (e ValidationError) Problem() ProblemDetail {
	if e.Field == "" {
		return NewProblem("str", e.Message, CodeValidation, e.Location)
	}
	return NewProblem("str", e.Message, CodeValidation, e.Location, e.Field)
}

// Validator validates decoded request shapes. Field names in violations
// come from the json or form tag of the struct field.
type Validator struct {
	validate *validator.Validate
}

// NewValidator constructs a Validator.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})
	// numeric tags (gte, lte) on decimal fields compare the float value
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return &Validator{validate: v}
}

// Struct validates target and converts the first violation into a
// ValidationError located at location ("body", "query", "path").
func (v *Validator) Struct(location string, target any) error {
	err := v.validate.Struct(target)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return ValidationError{Location: location, Field: fe.Field(), Message: describe(fe)}
	}
	return fmt.Errorf("%w: %v", shared.ErrValidation, err)
}

// DecodeAndValidate decodes a JSON body into target and validates it.
func (v *Validator) DecodeAndValidate(r *http.Request, target any) error {
	if err := DecodeJSON(r, target); err != nil {
		return ValidationError{Location: "body", Field: "", Message: "malformed JSON body: " + err.Error()}
	}
	return v.Struct("body", target)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("field %s is required", fe.Field())
	case "email":
		return fmt.Sprintf("field %s must be a valid email", fe.Field())
	case "gt":
		return fmt.Sprintf("field %s must be greater than %s", fe.Field(), fe.Param())
	case "gte", "min":
		return fmt.Sprintf("field %s must be at least %s", fe.Field(), fe.Param())
	case "lt":
		return fmt.Sprintf("field %s must be less than %s", fe.Field(), fe.Param())
	case "lte", "max":
		return fmt.Sprintf("field %s must be at most %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("field %s must be one of [%s]", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("field %s failed %s validation", fe.Field(), fe.Tag())
	}
}
