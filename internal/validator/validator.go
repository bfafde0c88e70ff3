package validator

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError is one failed rule, reported by JSON field name.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationErrors []ValidationError

// Error joins the individual messages so the API can report every missing
// field in a single `{error: ...}` body.
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	msgs := make([]string, len(ve))
	for i, e := range ve {
		msgs[i] = e.Message
	}
	return strings.Join(msgs, ", ")
}

// Validator wraps go-playground struct validation and maps its field errors
// to client-facing messages.
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	validate := validator.New()

	// Report fields under their JSON names
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: validate}
}

// Struct validates any tagged request struct and returns nil when it passes.
func (v *Validator) Struct(s interface{}) ValidationErrors {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	return ToValidationErrors(err)
}

// ToValidationErrors converts a go-playground error into our client-facing
// form.
func ToValidationErrors(err error) ValidationErrors {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return ValidationErrors{{Message: "Invalid request data"}}
	}

	out := make(ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, ValidationError{Field: fe.Field(), Message: messageFor(fe)})
	}
	return out
}

var fieldLabels = map[string]string{
	"email":       "Email",
	"password":    "Password",
	"contentType": "Content type",
	"department":  "Department",
	"semester":    "Semester",
	"subject":     "Subject",
	"topic":       "Topic",
	"professor":   "Professor",
	"title":       "Title",
	"description": "Description",
	"price":       "Price",
	"quote":       "Quote",
	"imageUrl":    "Image URL",
}

func labelFor(field string) string {
	if label, ok := fieldLabels[field]; ok {
		return label
	}
	return field
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if", "required_unless":
		return labelFor(fe.Field()) + " is required"
	case "email":
		return "Invalid email format"
	case "oneof":
		if fe.Field() == "contentType" {
			return "Invalid content type"
		}
		return labelFor(fe.Field()) + " is invalid"
	}
	return labelFor(fe.Field()) + " is invalid"
}
