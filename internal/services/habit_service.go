package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Yarik-eng/DailyMood/internal/models"
)

const habitHistoryDays = 30

var (
	ErrHabitFieldsRequired = errors.New("habit name and type are required")
	ErrHabitNotFound       = errors.New("habit not found")
)

type HabitRepository interface {
	ListByUser(userID uint) ([]models.Habit, error)
	FindByIDForUser(userID uint, habitID uint) (models.Habit, bool, error)
	Create(habit *models.Habit) error
	DeleteForUser(userID uint, habitID uint) (bool, error)
	ListCompletionsSince(habitIDs []uint, since time.Time) ([]models.HabitCompletion, error)
	ToggleCompletion(habitID uint, day time.Time) (bool, error)
}

type HabitView struct {
	Habit          models.Habit
	Completions    []string
	CompletedToday bool
}

type HabitService struct {
	habits HabitRepository
}

func NewHabitService(habits HabitRepository) *HabitService {
	return &HabitService{habits: habits}
}

// List attaches the completions of the trailing window, today included.
func (service *HabitService) List(userID uint, now time.Time, location *time.Location) ([]HabitView, error) {
	habits, err := service.habits.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("list habits: %w", err)
	}

	today := CalendarDay(now, location)
	since := today.AddDate(0, 0, -(habitHistoryDays - 1))
	habitIDs := make([]uint, 0, len(habits))
	for _, habit := range habits {
		habitIDs = append(habitIDs, habit.ID)
	}
	completions, err := service.habits.ListCompletionsSince(habitIDs, since)
	if err != nil {
		return nil, fmt.Errorf("list habit completions: %w", err)
	}

	byHabit := make(map[uint][]string, len(habits))
	doneToday := make(map[uint]bool, len(habits))
	todayKey := FormatDay(today)
	for _, completion := range completions {
		day := FormatDay(completion.Date)
		byHabit[completion.HabitID] = append(byHabit[completion.HabitID], day)
		if day == todayKey {
			doneToday[completion.HabitID] = true
		}
	}

	views := make([]HabitView, 0, len(habits))
	for _, habit := range habits {
		days := byHabit[habit.ID]
		if days == nil {
			days = []string{}
		}
		views = append(views, HabitView{Habit: habit, Completions: days, CompletedToday: doneToday[habit.ID]})
	}
	return views, nil
}

func (service *HabitService) Create(userID uint, name string, habitType string, now time.Time) (models.Habit, error) {
	name = strings.TrimSpace(name)
	habitType = strings.TrimSpace(habitType)
	if name == "" || habitType == "" {
		return models.Habit{}, ErrHabitFieldsRequired
	}

	habit := models.Habit{UserID: userID, Name: name, Type: habitType, CreatedAt: now.UTC()}
	if err := service.habits.Create(&habit); err != nil {
		return models.Habit{}, fmt.Errorf("create habit: %w", err)
	}
	return habit, nil
}

func (service *HabitService) Delete(userID uint, habitID uint) error {
	deleted, err := service.habits.DeleteForUser(userID, habitID)
	if err != nil {
		return fmt.Errorf("delete habit: %w", err)
	}
	if !deleted {
		return ErrHabitNotFound
	}
	return nil
}

// ToggleToday reports whether the habit is completed for today after the toggle.
func (service *HabitService) ToggleToday(userID uint, habitID uint, now time.Time, location *time.Location) (bool, error) {
	_, found, err := service.habits.FindByIDForUser(userID, habitID)
	if err != nil {
		return false, fmt.Errorf("load habit: %w", err)
	}
	if !found {
		return false, ErrHabitNotFound
	}

	completed, err := service.habits.ToggleCompletion(habitID, CalendarDay(now, location))
	if err != nil {
		return false, fmt.Errorf("toggle habit: %w", err)
	}
	return completed, nil
}
