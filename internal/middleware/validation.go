package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"product-catalog/internal/apperror"

	"github.com/go-playground/validator/v10"
)

// Validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// DecodeAndValidate decodes a JSON request body into v and checks it
// against the struct's validation tags. A decode failure or the first
// failing rule produces a validation error; v is never default-filled.
func DecodeAndValidate(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperror.Validation("invalid request body")
	}

	if err := validate.Struct(v); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok && len(validationErrors) > 0 {
			first := validationErrors[0]
			return apperror.Validation(fieldErrorMessage(first))
		}
		return apperror.Validation("validation failed")
	}

	return nil
}

// fieldErrorMessage names the offending field in the client-facing message
func fieldErrorMessage(e validator.FieldError) string {
	field := jsonFieldName(e.Field())

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("field '%s' is required", field)
	case "gte":
		return fmt.Sprintf("field '%s' must be greater than or equal to %s", field, e.Param())
	case "lte":
		return fmt.Sprintf("field '%s' must be less than or equal to %s", field, e.Param())
	case "min":
		return fmt.Sprintf("field '%s' is too short", field)
	case "max":
		return fmt.Sprintf("field '%s' is too long", field)
	default:
		return fmt.Sprintf("field '%s' is invalid", field)
	}
}

// jsonFieldName lower-cases the leading character of a Go field name so
// messages match the wire names (Name -> name, InStock -> inStock).
func jsonFieldName(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}
