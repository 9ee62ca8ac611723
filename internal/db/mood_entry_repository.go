package db

import (
	"time"

	"github.com/Yarik-eng/DailyMood/internal/models"
	"gorm.io/gorm"
)

type MoodEntryFilter struct {
	From *time.Time
	// To is exclusive.
	To   *time.Time
	Mood string
}

type MoodEntryRepository struct {
	database *gorm.DB
}

func NewMoodEntryRepository(database *gorm.DB) *MoodEntryRepository {
	return &MoodEntryRepository{database: database}
}

func (repo *MoodEntryRepository) ListByUser(userID uint, filter MoodEntryFilter) ([]models.MoodEntry, error) {
	query := repo.database.Model(&models.MoodEntry{}).Where("user_id = ?", userID)
	if filter.From != nil {
		query = query.Where("date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("date < ?", *filter.To)
	}
	if filter.Mood != "" {
		query = query.Where("mood = ?", filter.Mood)
	}

	entries := make([]models.MoodEntry, 0)
	if err := query.Order("date DESC, id DESC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (repo *MoodEntryRepository) ListRecent(userID uint, limit int) ([]models.MoodEntry, error) {
	entries := make([]models.MoodEntry, 0, limit)
	if err := repo.database.
		Where("user_id = ?", userID).
		Order("date DESC, id DESC").
		Limit(limit).
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (repo *MoodEntryRepository) FindByIDForUser(userID uint, entryID uint) (models.MoodEntry, bool, error) {
	entry := models.MoodEntry{}
	result := repo.database.Where("id = ? AND user_id = ?", entryID, userID).Limit(1).Find(&entry)
	if result.Error != nil {
		return models.MoodEntry{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.MoodEntry{}, false, nil
	}
	return entry, true, nil
}

func (repo *MoodEntryRepository) Create(entry *models.MoodEntry) error {
	return repo.database.Create(entry).Error
}

func (repo *MoodEntryRepository) Save(entry *models.MoodEntry) error {
	return repo.database.Save(entry).Error
}

func (repo *MoodEntryRepository) DeleteForUser(userID uint, entryID uint) (bool, error) {
	result := repo.database.Where("id = ? AND user_id = ?", entryID, userID).Delete(&models.MoodEntry{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
