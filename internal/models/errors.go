package models

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
)

// AppError carries an HTTP status code alongside a safe, user-facing message.
// The wrapped error is for logs only and is never serialized.
type AppError struct {
	Code    int    `json:"-"`
	Message string `json:"error"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewValidationError returns a 400 for rejected input.
func NewValidationError(message string) *AppError {
	return &AppError{Code: fiber.StatusBadRequest, Message: message}
}

// NewNotFoundError returns a 404 for a missing resource.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: fiber.StatusNotFound, Message: message}
}

// NewUnauthorizedError returns a 401.
func NewUnauthorizedError(message string) *AppError {
	return &AppError{Code: fiber.StatusUnauthorized, Message: message}
}

// NewInternalError returns a 500 wrapping the underlying cause.
func NewInternalError(err error) *AppError {
	return &AppError{Code: fiber.StatusInternalServerError, Message: "internal server error", Err: err}
}

// RespondWithError writes a JSON error response for err. AppErrors keep their
// status and message; anything else becomes an opaque 500.
func RespondWithError(c *fiber.Ctx, err error) error {
	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr.Code >= fiber.StatusInternalServerError {
			slog.Error("request failed", "path", c.Path(), "error", err)
		}
		return c.Status(appErr.Code).JSON(fiber.Map{"error": appErr.Message})
	}

	slog.Error("unhandled error", "path", c.Path(), "error", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
}
