package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FieldViolation describes one rejected input field.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var ErrValidation = New(
	CodeValidation,
	"Validation failed",
	http.StatusBadRequest,
)

// Validation builds a VALIDATION_ERROR carrying every violation.
func Validation(violations ...FieldViolation) *AppError {
	return ErrValidation.WithDetails(violations)
}

// FieldViolations returns the violations carried by a VALIDATION_ERROR
// anywhere in err's chain, or nil.
func FieldViolations(err error) []FieldViolation {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return nil
	}
	v, _ := appErr.Details.([]FieldViolation)
	return v
}

// formatFieldName turns employeeId / joined_on into "Employee Id" / "Joined On".
func formatFieldName(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r == '_' {
			b.WriteRune(' ')
			continue
		}
		if i > 0 && unicode.IsUpper(r) {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
	}

	caser := cases.Title(language.English)
	return caser.String(b.String())
}

// Violations converts validator errors into field violations, one per
// failing field, in declaration order.
func Violations(err error) []FieldViolation {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return nil
	}

	out := make([]FieldViolation, 0, len(errs))
	for _, e := range errs {
		// e.Field() sudah berupa nama json karena RegisterTagNameFunc di Init()
		field := e.Field()
		label := formatFieldName(field)

		var msg string
		switch e.Tag() {
		case "required":
			msg = fmt.Sprintf("%s is required", label)
		case "oneof":
			msg = fmt.Sprintf("%s must be one of [%s]", label, e.Param())
		case "max":
			msg = fmt.Sprintf("%s must be at most %s", label, e.Param())
		case "min", "gte":
			msg = fmt.Sprintf("%s must be at least %s", label, e.Param())
		case "gt":
			msg = fmt.Sprintf("%s must be greater than %s", label, e.Param())
		case "email":
			msg = fmt.Sprintf("%s must be a valid email address", label)
		case "isodate":
			msg = fmt.Sprintf("%s must be an ISO date (YYYY-MM-DD)", label)
		default:
			msg = fmt.Sprintf("%s is invalid", label)
		}
		out = append(out, FieldViolation{Field: field, Message: msg})
	}
	return out
}

// MapValidationError maps a binding/validator error to a VALIDATION_ERROR
// listing every violated field. Malformed JSON yields a single body violation.
func MapValidationError(err error) error {
	if v := Violations(err); len(v) > 0 {
		return Validation(v...)
	}

	return Validation(FieldViolation{Field: "body", Message: "Request body is malformed"})
}

// ValidateStruct runs the shared gin validator against obj and returns the
// violations, or nil when obj is valid.
func ValidateStruct(obj any) []FieldViolation {
	err := binding.Validator.ValidateStruct(obj)
	if err == nil {
		return nil
	}
	if v := Violations(err); len(v) > 0 {
		return v
	}
	return []FieldViolation{{Field: "body", Message: err.Error()}}
}
