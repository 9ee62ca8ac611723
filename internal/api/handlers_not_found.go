package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) NotFound(c *fiber.Ctx) error {
	return handler.apiErrorCode(c, fiber.StatusNotFound, codeNotFound, "error.not_found")
}

// ErrorHandler renders errors that escape the handlers, including recovered
// panics and Fiber's own routing errors, in the JSON error envelope.
func (handler *Handler) ErrorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		switch fiberErr.Code {
		case fiber.StatusNotFound:
			return handler.NotFound(c)
		case fiber.StatusMethodNotAllowed:
			return handler.apiErrorCode(c, fiberErr.Code, codeNotFound, "error.not_found")
		case fiber.StatusRequestEntityTooLarge, fiber.StatusBadRequest, fiber.StatusUnprocessableEntity:
			return handler.invalidInput(c)
		}
		if fiberErr.Code < fiber.StatusInternalServerError {
			return c.Status(fiberErr.Code).JSON(fiber.Map{"status": statusError, "message": fiberErr.Message})
		}
	}
	return handler.respondServiceError(c, err)
}
