package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// phoneRegex accepts E.164-like numbers: 10 to 15 digits, optional
// leading +, no leading zero.
var phoneRegex = regexp.MustCompile(`^\+?[1-9][0-9]{9,14}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their json names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phoneRegex.MatchString(fl.Field().String())
	})

	return v
}

// FieldError describes a single failed field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// RegisterInput is the request body for POST /auth/register.
type RegisterInput struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Number   string `json:"number" validate:"required,phone"`
	Password string `json:"password" validate:"required,min=8,max=100"`
	Role     string `json:"role" validate:"required,oneof=driver rider"`
}

// LoginInput is the request body for POST /auth/login.
type LoginInput struct {
	Number   string `json:"number" validate:"required,phone"`
	Password string `json:"password" validate:"required"`
}

// Check validates v and returns one entry per failed field, or nil when
// the value passes.
func Check(v any) []FieldError {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "", Message: err.Error()}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Message: message(fe)})
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "min":
		return fmt.Sprintf("Must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("Must be at most %s characters", fe.Param())
	case "phone":
		return "Must be a valid phone number (10-15 digits, optional +)"
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	}
	return "Invalid value"
}
