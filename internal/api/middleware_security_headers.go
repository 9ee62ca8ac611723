package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) SecurityHeaders(c *fiber.Ctx) error {
	c.Set(fiber.HeaderXFrameOptions, "SAMEORIGIN")
	c.Set(fiber.HeaderXContentTypeOptions, "nosniff")
	c.Set(fiber.HeaderXXSSProtection, "1; mode=block")
	c.Set(fiber.HeaderReferrerPolicy, "strict-origin-when-cross-origin")
	return c.Next()
}
