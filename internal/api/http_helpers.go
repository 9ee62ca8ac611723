package api

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

func (handler *Handler) apiError(c *fiber.Ctx, status int, key string) error {
	return handler.apiErrorCode(c, status, "", key)
}

func (handler *Handler) apiErrorCode(c *fiber.Ctx, status int, code string, key string) error {
	payload := fiber.Map{
		"status":  statusError,
		"message": handler.translate(c, key),
	}
	if code != "" {
		payload["code"] = code
	}
	return c.Status(status).JSON(payload)
}

func successData(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(fiber.Map{"status": statusSuccess, "data": data})
}

func successList(c *fiber.Ctx, data any, count int) error {
	return c.JSON(fiber.Map{"status": statusSuccess, "count": count, "data": data})
}

// parseIDParam accepts positive decimal ids only.
func parseIDParam(c *fiber.Ctx, name string) (uint, bool) {
	raw := strings.TrimSpace(c.Params(name))
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || value == 0 {
		return 0, false
	}
	return uint(value), true
}

func (handler *Handler) unauthorized(c *fiber.Ctx) error {
	return handler.apiErrorCode(c, fiber.StatusUnauthorized, codeUnauthorized, "error.unauthorized")
}

func (handler *Handler) invalidInput(c *fiber.Ctx) error {
	return handler.apiErrorCode(c, fiber.StatusBadRequest, codeInvalidInput, "error.invalid_input")
}
