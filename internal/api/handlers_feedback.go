package api

import "github.com/gofiber/fiber/v2"

const publicFeedbackLimit = 50

func (handler *Handler) CreateFeedback(c *fiber.Ctx) error {
	payload := feedbackPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return handler.invalidInput(c)
	}

	handler.ensureDependencies()
	feedback, err := handler.feedbackSvc.Create(payload.toInput(), handler.currentTime())
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"status":  statusSuccess,
		"message": handler.translate(c, "feedback.saved"),
		"data":    feedback,
	})
}

func (handler *Handler) ListFeedback(c *fiber.Ctx) error {
	handler.ensureDependencies()
	items, err := handler.feedbackSvc.List(0)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(items)
}

func (handler *Handler) DeleteFeedback(c *fiber.Ctx) error {
	feedbackID, ok := parseIDParam(c, "id")
	if !ok {
		return handler.apiErrorCode(c, fiber.StatusNotFound, "FEEDBACK_NOT_FOUND", "error.feedback_not_found")
	}

	handler.ensureDependencies()
	if err := handler.feedbackSvc.Delete(feedbackID); err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"status": statusSuccess})
}
