package api

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/Yarik-eng/DailyMood/internal/services"
)

// activityList accepts either a JSON array of strings or one comma
// separated string.
type activityList []string

func (list *activityList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*list = nil
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var joined string
		if err := json.Unmarshal(trimmed, &joined); err != nil {
			return err
		}
		*list = strings.Split(joined, ",")
		return nil
	}
	var values []string
	if err := json.Unmarshal(trimmed, &values); err != nil {
		return err
	}
	*list = values
	return nil
}

type journalEntryPayload struct {
	Mood         *string       `json:"mood"`
	Date         *string       `json:"date"`
	Title        *string       `json:"title"`
	Content      *string       `json:"content"`
	Activities   *activityList `json:"activities"`
	SleepHours   *float64      `json:"sleep_hours"`
	SleepQuality *int          `json:"sleep_quality"`
}

func (payload journalEntryPayload) toInput() services.JournalEntryInput {
	input := services.JournalEntryInput{
		Mood:         stringValue(payload.Mood),
		Date:         stringValue(payload.Date),
		Title:        stringValue(payload.Title),
		Content:      stringValue(payload.Content),
		SleepHours:   payload.SleepHours,
		SleepQuality: payload.SleepQuality,
	}
	if payload.Activities != nil {
		input.Activities = []string(*payload.Activities)
	}
	return input
}

func (payload journalEntryPayload) toPatch() services.JournalEntryPatch {
	patch := services.JournalEntryPatch{
		Mood:         payload.Mood,
		Date:         payload.Date,
		Title:        payload.Title,
		Content:      payload.Content,
		SleepHours:   payload.SleepHours,
		SleepQuality: payload.SleepQuality,
	}
	if payload.Activities != nil {
		activities := []string(*payload.Activities)
		patch.Activities = &activities
	}
	return patch
}

type namedPayload struct {
	Name     string `json:"name" form:"name"`
	Type     string `json:"type" form:"type"`
	Deadline string `json:"deadline" form:"deadline"`
}

type orderItemPayload struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

type orderPayload struct {
	Items []orderItemPayload `json:"items"`
}

func (payload orderPayload) toLines() []services.OrderLine {
	lines := make([]services.OrderLine, 0, len(payload.Items))
	for _, item := range payload.Items {
		lines = append(lines, services.OrderLine{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return lines
}

type feedbackPayload struct {
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Message string `json:"message" form:"message"`
	Rating  *int   `json:"rating" form:"rating"`
}

func (payload feedbackPayload) toInput() services.FeedbackInput {
	return services.FeedbackInput{
		Name:    payload.Name,
		Email:   payload.Email,
		Message: payload.Message,
		Rating:  payload.Rating,
	}
}

func stringValue(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
