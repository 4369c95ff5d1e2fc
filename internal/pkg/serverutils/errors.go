package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// AppError is the service-level error taxonomy. Controllers and the websocket
// gateway both map onto it, so a failure reaches its initiator with the same
// code regardless of transport.
type AppError struct {
	Code      string `json:"code"`
	Status    int    `json:"-"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable,omitempty"`
}

func (e *AppError) Error() string {
	return e.Message
}

func NewValidationError(message string) *AppError {
	return &AppError{Code: "VALIDATION_ERROR", Status: fiber.StatusBadRequest, Message: message}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{Code: "NOT_FOUND", Status: fiber.StatusNotFound, Message: message}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{Code: "UNAUTHORIZED", Status: fiber.StatusUnauthorized, Message: message}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{Code: "FORBIDDEN", Status: fiber.StatusForbidden, Message: message}
}

func NewRoomNotLiveError(message string) *AppError {
	return &AppError{Code: "ROOM_NOT_LIVE", Status: fiber.StatusConflict, Message: message}
}

// NewUnavailableError marks persistence-layer failures. The caller is expected
// to resubmit; nothing is queued server-side.
func NewUnavailableError(message string) *AppError {
	return &AppError{Code: "STORE_UNAVAILABLE", Status: fiber.StatusServiceUnavailable, Message: message, Retryable: true}
}

func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// ErrorHandlerMiddleware renders AppError values and hides everything else
// behind a generic 500.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		if appErr, ok := AsAppError(err); ok {
			return ctx.Status(appErr.Status).JSON(fiber.Map{
				"success": false,
				"error":   appErr,
			})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(fiber.Map{
				"success": false,
				"error":   fiber.Map{"code": "HTTP_ERROR", "message": fiberErr.Message},
			})
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   fiber.Map{"code": "INTERNAL_ERROR", "message": "internal server error"},
		})
	}
}
