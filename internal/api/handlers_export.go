package api

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Yarik-eng/DailyMood/internal/services"
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) ExportCSV(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.unauthorized(c)
	}
	from, to, err := services.ParseExportRange(c.Query("from"), c.Query("to"))
	if err != nil {
		return handler.respondServiceError(c, err)
	}

	handler.ensureDependencies()
	rows, err := handler.exportService.BuildCSVRows(user.ID, from, to)
	if err != nil {
		return handler.respondServiceError(c, err)
	}

	var output bytes.Buffer
	writer := csv.NewWriter(&output)
	if err := writer.Write(services.ExportCSVHeaders); err != nil {
		return handler.respondServiceError(c, fmt.Errorf("write csv header: %w", err))
	}
	for _, row := range rows {
		if err := writer.Write(row.Columns()); err != nil {
			return handler.respondServiceError(c, fmt.Errorf("write csv row: %w", err))
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return handler.respondServiceError(c, fmt.Errorf("flush csv: %w", err))
	}

	filename := services.ExportFilename(handler.currentTime(), handler.location, "csv")
	setExportAttachmentHeaders(c, "text/csv; charset=utf-8", filename)
	return c.Send(output.Bytes())
}

func (handler *Handler) ExportJSON(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.unauthorized(c)
	}
	from, to, err := services.ParseExportRange(c.Query("from"), c.Query("to"))
	if err != nil {
		return handler.respondServiceError(c, err)
	}

	handler.ensureDependencies()
	entries, err := handler.exportService.BuildJSONEntries(user.ID, from, to)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	now := handler.currentTime()

	payload := fiber.Map{
		"exported_at": now.Format(time.RFC3339),
		"count":       len(entries),
		"entries":     entries,
	}

	serialized, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return handler.respondServiceError(c, fmt.Errorf("build json export: %w", err))
	}

	setExportAttachmentHeaders(c, fiber.MIMEApplicationJSON, services.ExportFilename(now, handler.location, "json"))
	return c.Send(serialized)
}

func setExportAttachmentHeaders(c *fiber.Ctx, contentType string, filename string) {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", filename))
}
