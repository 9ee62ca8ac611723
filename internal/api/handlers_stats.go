package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) Statistics(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.unauthorized(c)
	}

	handler.ensureDependencies()
	stats, err := handler.statsService.Summary(user.ID, handler.currentTime(), handler.location)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return successData(c, fiber.StatusOK, stats)
}

func (handler *Handler) PredictMood(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.unauthorized(c)
	}

	handler.ensureDependencies()
	prediction, err := handler.predictor.PredictTomorrow(user.ID, handler.currentTime(), handler.location)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return successData(c, fiber.StatusOK, prediction)
}
