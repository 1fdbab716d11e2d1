package serverutils

import (
	"ai-customer-service-be/pkg/apperrors"

	"github.com/gofiber/fiber/v2"
)

// Machine-readable error codes exposed on the wire. Clients branch on
// these, the human-readable detail is free text.
const (
	CodeValidationError = "validation_error"
	CodeRateLimited     = "rate_limited"
	CodeUnavailable     = "service_unavailable"
	CodeTimeout         = "upstream_timeout"
	CodeInternal        = "internal_error"
)

// ErrorHandlerMiddleware converts typed errors bubbling out of handlers
// into JSON responses. Handlers just return errors; the mapping to a
// status code lives here and nowhere else.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		status, code := statusFor(err)

		body := fiber.Map{
			"error":  code,
			"detail": apperrors.DetailOf(err),
		}
		if sessionID, ok := ctx.Locals("session_id").(string); ok && sessionID != "" {
			body["session_id"] = sessionID
		}

		return ctx.Status(status).JSON(body)
	}
}

func statusFor(err error) (int, string) {
	switch apperrors.KindOf(err) {
	case apperrors.KindInvalidInput:
		return fiber.StatusUnprocessableEntity, CodeValidationError
	case apperrors.KindRateLimited:
		return fiber.StatusTooManyRequests, CodeRateLimited
	case apperrors.KindUnavailable:
		return fiber.StatusServiceUnavailable, CodeUnavailable
	case apperrors.KindTimeout:
		return fiber.StatusGatewayTimeout, CodeTimeout
	default:
		// AuthFailure, NotInitialized, InvalidDomain and anything
		// untyped are server faults.
		return fiber.StatusInternalServerError, CodeInternal
	}
}
