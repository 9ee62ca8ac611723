package api

import "github.com/gofiber/fiber/v2"

// The v1 handlers keep the legacy response shapes and skip schema
// validation; the services still apply their business checks.

func (handler *Handler) V1ListProducts(c *fiber.Ctx) error {
	handler.ensureDependencies()
	products, err := handler.catalogService.ListActive()
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(products)
}

func (handler *Handler) V1CreateOrder(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.unauthorized(c)
	}

	payload := orderPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return handler.invalidInput(c)
	}

	handler.ensureDependencies()
	order, err := handler.orderService.Create(user.ID, payload.toLines(), handler.currentTime())
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":  statusSuccess,
		"message": handler.translate(c, "order.created"),
		"order":   order,
	})
}

func (handler *Handler) V1CreateFeedback(c *fiber.Ctx) error {
	payload := feedbackPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return handler.invalidInput(c)
	}

	handler.ensureDependencies()
	feedback, err := handler.feedbackSvc.Create(payload.toInput(), handler.currentTime())
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"status": statusSuccess, "data": feedback})
}
