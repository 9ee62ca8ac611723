package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) ListGoals(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.unauthorized(c)
	}

	handler.ensureDependencies()
	goals, err := handler.goalService.List(user.ID)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(newGoalViews(goals))
}

func (handler *Handler) CreateGoal(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.unauthorized(c)
	}

	payload := namedPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return handler.invalidInput(c)
	}

	handler.ensureDependencies()
	goal, err := handler.goalService.Create(user.ID, payload.Name, payload.Deadline, handler.currentTime())
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return successData(c, fiber.StatusCreated, newGoalView(goal))
}

func (handler *Handler) ToggleGoal(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.unauthorized(c)
	}
	goalID, ok := parseIDParam(c, "id")
	if !ok {
		return handler.apiErrorCode(c, fiber.StatusNotFound, "GOAL_NOT_FOUND", "error.goal_not_found")
	}

	handler.ensureDependencies()
	goal, err := handler.goalService.Toggle(user.ID, goalID)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return successData(c, fiber.StatusOK, newGoalView(goal))
}

func (handler *Handler) DeleteGoal(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.unauthorized(c)
	}
	goalID, ok := parseIDParam(c, "id")
	if !ok {
		return handler.apiErrorCode(c, fiber.StatusNotFound, "GOAL_NOT_FOUND", "error.goal_not_found")
	}

	handler.ensureDependencies()
	if err := handler.goalService.Delete(user.ID, goalID); err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"status": statusSuccess})
}
