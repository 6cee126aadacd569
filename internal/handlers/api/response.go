package api

import (
	"github.com/gofiber/fiber/v3"

	"verbum/internal/models"
)

// Client-facing error messages.
const (
	MsgNoWord        = "No word provided"
	MsgInvalidFormat = "Invalid word format"
	MsgInappropriate = "Inappropriate content not allowed"
	MsgNotFound      = "Not found"
	MsgInternal      = "Internal server error"
)

// jsonError returns an error response with the given HTTP status code.
func jsonError(c fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(models.ErrorResponse{Error: message})
}

// JSONError is jsonError for callers outside the package, such as the
// server's error handler.
func JSONError(c fiber.Ctx, status int, message string) error {
	return jsonError(c, status, message)
}
