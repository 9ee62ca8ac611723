package db

import (
	"time"

	"github.com/Yarik-eng/DailyMood/internal/models"
	"gorm.io/gorm"
)

type HabitRepository struct {
	database *gorm.DB
}

func NewHabitRepository(database *gorm.DB) *HabitRepository {
	return &HabitRepository{database: database}
}

func (repo *HabitRepository) ListByUser(userID uint) ([]models.Habit, error) {
	habits := make([]models.Habit, 0)
	if err := repo.database.Where("user_id = ?", userID).Order("created_at ASC, id ASC").Find(&habits).Error; err != nil {
		return nil, err
	}
	return habits, nil
}

func (repo *HabitRepository) FindByIDForUser(userID uint, habitID uint) (models.Habit, bool, error) {
	habit := models.Habit{}
	result := repo.database.Where("id = ? AND user_id = ?", habitID, userID).Limit(1).Find(&habit)
	if result.Error != nil {
		return models.Habit{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Habit{}, false, nil
	}
	return habit, true, nil
}

func (repo *HabitRepository) Create(habit *models.Habit) error {
	return repo.database.Create(habit).Error
}

func (repo *HabitRepository) DeleteForUser(userID uint, habitID uint) (bool, error) {
	deleted := false
	err := repo.database.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND user_id = ?", habitID, userID).Delete(&models.Habit{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}
		deleted = true
		return tx.Where("habit_id = ?", habitID).Delete(&models.HabitCompletion{}).Error
	})
	return deleted, err
}

// ListCompletionsSince returns completions with date >= since for the given habits.
func (repo *HabitRepository) ListCompletionsSince(habitIDs []uint, since time.Time) ([]models.HabitCompletion, error) {
	completions := make([]models.HabitCompletion, 0)
	if len(habitIDs) == 0 {
		return completions, nil
	}
	if err := repo.database.
		Where("habit_id IN ? AND date >= ?", habitIDs, since).
		Order("date ASC").
		Find(&completions).Error; err != nil {
		return nil, err
	}
	return completions, nil
}

// ToggleCompletion flips the completion for the day and reports whether the
// habit is completed afterwards.
func (repo *HabitRepository) ToggleCompletion(habitID uint, dayStart time.Time) (bool, error) {
	dayEnd := dayStart.AddDate(0, 0, 1)
	completed := false
	err := repo.database.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("habit_id = ? AND date >= ? AND date < ?", habitID, dayStart, dayEnd).
			Delete(&models.HabitCompletion{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			return nil
		}
		completed = true
		return tx.Create(&models.HabitCompletion{HabitID: habitID, Date: dayStart}).Error
	})
	return completed, err
}
