package db

import (
	"github.com/Yarik-eng/DailyMood/internal/models"
	"gorm.io/gorm"
)

type FeedbackRepository struct {
	database *gorm.DB
}

func NewFeedbackRepository(database *gorm.DB) *FeedbackRepository {
	return &FeedbackRepository{database: database}
}

func (repo *FeedbackRepository) Create(feedback *models.Feedback) error {
	return repo.database.Create(feedback).Error
}

// List returns feedback newest first; limit <= 0 means no limit.
func (repo *FeedbackRepository) List(limit int) ([]models.Feedback, error) {
	query := repo.database.Order("created_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	items := make([]models.Feedback, 0)
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (repo *FeedbackRepository) Delete(feedbackID uint) (bool, error) {
	result := repo.database.Delete(&models.Feedback{}, feedbackID)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
