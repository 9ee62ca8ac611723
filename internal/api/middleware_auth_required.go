package api

import (
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	user, err := handler.sessionUser(c)
	if err != nil {
		return handler.unauthorized(c)
	}

	c.Locals(contextUserKey, user)
	return c.Next()
}

// AdminOnly must run after AuthRequired. The admin flag is read from the
// stored user, not from the token claims, so demotions apply immediately.
func (handler *Handler) AdminOnly(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.unauthorized(c)
	}
	if !user.IsAdmin {
		return handler.apiErrorCode(c, fiber.StatusForbidden, codeAdminRequired, "error.admin_required")
	}
	return c.Next()
}

func (handler *Handler) PremiumOnly(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.unauthorized(c)
	}
	if !user.IsAdmin && !user.HasActivePremium(handler.currentTime()) {
		return handler.apiErrorCode(c, fiber.StatusForbidden, codePremiumRequired, "error.premium_required")
	}
	return c.Next()
}
