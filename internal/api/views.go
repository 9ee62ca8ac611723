package api

import (
	"time"

	"github.com/Yarik-eng/DailyMood/internal/models"
	"github.com/Yarik-eng/DailyMood/internal/services"
)

type entryView struct {
	ID           uint      `json:"id"`
	Mood         string    `json:"mood"`
	Emoji        string    `json:"emoji"`
	Date         string    `json:"date"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	Activities   []string  `json:"activities"`
	SleepHours   *float64  `json:"sleep_hours"`
	SleepQuality *int      `json:"sleep_quality"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type habitView struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	CreatedAt   time.Time `json:"created_at"`
	Completions []string  `json:"completions"`
	Completed   bool      `json:"completed"`
}

type goalView struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Deadline  string    `json:"deadline"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
}

type paymentView struct {
	Payment    models.Payment `json:"payment"`
	Order      models.Order   `json:"order"`
	Idempotent bool           `json:"idempotent"`
}

func newEntryView(entry models.MoodEntry) entryView {
	return entryView{
		ID:           entry.ID,
		Mood:         entry.Mood,
		Emoji:        models.MoodEmoji(entry.Mood),
		Date:         services.FormatDay(entry.Date),
		Title:        entry.Title,
		Content:      entry.Content,
		Activities:   entry.ActivityList(),
		SleepHours:   entry.SleepHours,
		SleepQuality: entry.SleepQuality,
		CreatedAt:    entry.CreatedAt,
		UpdatedAt:    entry.UpdatedAt,
	}
}

func newEntryViews(entries []models.MoodEntry) []entryView {
	views := make([]entryView, 0, len(entries))
	for _, entry := range entries {
		views = append(views, newEntryView(entry))
	}
	return views
}

func newHabitViews(habits []services.HabitView) []habitView {
	views := make([]habitView, 0, len(habits))
	for _, habit := range habits {
		completions := habit.Completions
		if completions == nil {
			completions = []string{}
		}
		views = append(views, habitView{
			ID:          habit.Habit.ID,
			Name:        habit.Habit.Name,
			Type:        habit.Habit.Type,
			CreatedAt:   habit.Habit.CreatedAt,
			Completions: completions,
			Completed:   habit.CompletedToday,
		})
	}
	return views
}

func newGoalView(goal models.MonthlyGoal) goalView {
	return goalView{
		ID:        goal.ID,
		Name:      goal.Name,
		Deadline:  services.FormatDay(goal.Deadline),
		Completed: goal.Completed,
		CreatedAt: goal.CreatedAt,
	}
}

func newGoalViews(goals []models.MonthlyGoal) []goalView {
	views := make([]goalView, 0, len(goals))
	for _, goal := range goals {
		views = append(views, newGoalView(goal))
	}
	return views
}

func newPaymentView(result services.PaymentResult) paymentView {
	return paymentView{Payment: result.Payment, Order: result.Order, Idempotent: result.Idempotent}
}
