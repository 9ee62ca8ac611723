package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) ListHabits(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.unauthorized(c)
	}

	handler.ensureDependencies()
	habits, err := handler.habitService.List(user.ID, handler.currentTime(), handler.location)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(newHabitViews(habits))
}

func (handler *Handler) CreateHabit(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.unauthorized(c)
	}

	payload := namedPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return handler.invalidInput(c)
	}

	handler.ensureDependencies()
	habit, err := handler.habitService.Create(user.ID, payload.Name, payload.Type, handler.currentTime())
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return successData(c, fiber.StatusCreated, habitView{
		ID:          habit.ID,
		Name:        habit.Name,
		Type:        habit.Type,
		CreatedAt:   habit.CreatedAt,
		Completions: []string{},
	})
}

func (handler *Handler) DeleteHabit(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.unauthorized(c)
	}
	habitID, ok := parseIDParam(c, "id")
	if !ok {
		return handler.apiErrorCode(c, fiber.StatusNotFound, "HABIT_NOT_FOUND", "error.habit_not_found")
	}

	handler.ensureDependencies()
	if err := handler.habitService.Delete(user.ID, habitID); err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"status": statusSuccess})
}

func (handler *Handler) ToggleHabit(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.unauthorized(c)
	}
	habitID, ok := parseIDParam(c, "id")
	if !ok {
		return handler.apiErrorCode(c, fiber.StatusNotFound, "HABIT_NOT_FOUND", "error.habit_not_found")
	}

	handler.ensureDependencies()
	completed, err := handler.habitService.ToggleToday(user.ID, habitID, handler.currentTime(), handler.location)
	if err != nil {
		return handler.respondServiceError(c, err)
	}

	message := "Unchecked"
	if completed {
		message = "Checked"
	}
	return c.JSON(fiber.Map{"status": statusSuccess, "message": message, "completed": completed})
}
