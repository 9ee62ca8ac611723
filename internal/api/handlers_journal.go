package api

import (
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) ListJournal(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.unauthorized(c)
	}

	handler.ensureDependencies()
	entries, err := handler.journalService.List(user.ID, c.Query("month"), c.Query("mood"))
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(newEntryViews(entries))
}

func (handler *Handler) CreateJournalEntry(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.unauthorized(c)
	}

	payload := journalEntryPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return handler.invalidInput(c)
	}

	handler.ensureDependencies()
	entry, err := handler.journalService.Create(user.ID, payload.toInput())
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":  statusSuccess,
		"message": handler.translate(c, "journal.saved"),
		"data":    newEntryView(entry),
	})
}

func (handler *Handler) UpdateJournalEntry(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.unauthorized(c)
	}
	entryID, ok := parseIDParam(c, "id")
	if !ok {
		return handler.apiErrorCode(c, fiber.StatusNotFound, "ENTRY_NOT_FOUND", "error.entry_not_found")
	}

	payload := journalEntryPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return handler.invalidInput(c)
	}

	handler.ensureDependencies()
	entry, err := handler.journalService.Update(user.ID, entryID, payload.toPatch())
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return successData(c, fiber.StatusOK, newEntryView(entry))
}

func (handler *Handler) DeleteJournalEntry(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.unauthorized(c)
	}
	entryID, ok := parseIDParam(c, "id")
	if !ok {
		return handler.apiErrorCode(c, fiber.StatusNotFound, "ENTRY_NOT_FOUND", "error.entry_not_found")
	}

	handler.ensureDependencies()
	if err := handler.journalService.Delete(user.ID, entryID); err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"status": statusSuccess})
}
