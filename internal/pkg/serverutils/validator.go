package serverutils

import (
	"fmt"
	"strings"

	"ai-customer-service-be/pkg/apperrors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest runs struct tag validation and converts failures into
// a typed invalid-input error, so the error middleware renders them as
// a 422 with a field-level detail.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.Wrap(apperrors.KindInvalidInput, "request validation failed", err)
	}

	details := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		details = append(details, fieldErrorMessage(fe))
	}

	return apperrors.New(apperrors.KindInvalidInput, strings.Join(details, "; "))
}

func fieldErrorMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "uuid4", "uuid4_rfc4122":
		return fmt.Sprintf("%s must be a valid UUID v4", field)
	default:
		return fmt.Sprintf("%s failed validation on %s", field, fe.Tag())
	}
}
