package db

import (
	"github.com/Yarik-eng/DailyMood/internal/models"
	"gorm.io/gorm"
)

type GoalRepository struct {
	database *gorm.DB
}

func NewGoalRepository(database *gorm.DB) *GoalRepository {
	return &GoalRepository{database: database}
}

func (repo *GoalRepository) ListByUser(userID uint) ([]models.MonthlyGoal, error) {
	goals := make([]models.MonthlyGoal, 0)
	if err := repo.database.Where("user_id = ?", userID).Order("deadline ASC, id ASC").Find(&goals).Error; err != nil {
		return nil, err
	}
	return goals, nil
}

func (repo *GoalRepository) FindByIDForUser(userID uint, goalID uint) (models.MonthlyGoal, bool, error) {
	goal := models.MonthlyGoal{}
	result := repo.database.Where("id = ? AND user_id = ?", goalID, userID).Limit(1).Find(&goal)
	if result.Error != nil {
		return models.MonthlyGoal{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.MonthlyGoal{}, false, nil
	}
	return goal, true, nil
}

func (repo *GoalRepository) Create(goal *models.MonthlyGoal) error {
	return repo.database.Create(goal).Error
}

func (repo *GoalRepository) UpdateCompleted(goalID uint, completed bool) error {
	return repo.database.Model(&models.MonthlyGoal{}).Where("id = ?", goalID).Update("completed", completed).Error
}

func (repo *GoalRepository) DeleteForUser(userID uint, goalID uint) (bool, error) {
	result := repo.database.Where("id = ? AND user_id = ?", goalID, userID).Delete(&models.MonthlyGoal{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
