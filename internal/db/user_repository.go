package db

import (
	"time"

	"github.com/Yarik-eng/DailyMood/internal/models"
	"gorm.io/gorm"
)

type UserRepository struct {
	database *gorm.DB
}

func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{database: database}
}

func (repo *UserRepository) CountUsers() (int64, error) {
	var count int64
	if err := repo.database.Model(&models.User{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (repo *UserRepository) CountPremium(now time.Time) (int64, error) {
	var count int64
	if err := repo.database.Model(&models.User{}).
		Where("is_premium = ? AND (premium_expires_at IS NULL OR premium_expires_at > ?)", true, now).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (repo *UserRepository) CountAdmins() (int64, error) {
	var count int64
	if err := repo.database.Model(&models.User{}).Where("is_admin = ?", true).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (repo *UserRepository) FindByID(userID uint) (models.User, error) {
	var user models.User
	if err := repo.database.First(&user, userID).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (repo *UserRepository) FindByNormalizedEmail(email string) (models.User, error) {
	var user models.User
	if err := repo.database.Where("lower(trim(email)) = ?", email).First(&user).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (repo *UserRepository) ExistsByNormalizedEmail(email string) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.User{}).
		Where("lower(trim(email)) = ?", email).
		Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

func (repo *UserRepository) List() ([]models.User, error) {
	users := make([]models.User, 0)
	if err := repo.database.Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (repo *UserRepository) Create(user *models.User) error {
	return repo.database.Create(user).Error
}

func (repo *UserRepository) Save(user *models.User) error {
	return repo.database.Save(user).Error
}

func (repo *UserRepository) UpdatePassword(userID uint, passwordHash string) error {
	return repo.database.Model(&models.User{}).Where("id = ?", userID).Update("password_hash", passwordHash).Error
}

func (repo *UserRepository) UpdateByID(userID uint, updates map[string]any) error {
	return repo.database.Model(&models.User{}).Where("id = ?", userID).Updates(updates).Error
}

// DemoteAdmin clears the admin flag unless the user is the last remaining
// admin. The count and the update share one transaction.
func (repo *UserRepository) DemoteAdmin(userID uint) (bool, error) {
	demoted := false
	err := repo.database.Transaction(func(tx *gorm.DB) error {
		var admins int64
		if err := tx.Model(&models.User{}).Where("is_admin = ?", true).Count(&admins).Error; err != nil {
			return err
		}
		if admins <= 1 {
			return nil
		}
		result := tx.Model(&models.User{}).Where("id = ? AND is_admin = ?", userID, true).Update("is_admin", false)
		if result.Error != nil {
			return result.Error
		}
		demoted = result.RowsAffected > 0
		return nil
	})
	return demoted, err
}

func (repo *UserRepository) DeleteAccountAndRelatedData(userID uint) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		habitIDs := tx.Model(&models.Habit{}).Select("id").Where("user_id = ?", userID)
		if err := tx.Where("habit_id IN (?)", habitIDs).Delete(&models.HabitCompletion{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Habit{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.MonthlyGoal{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.MoodEntry{}).Error; err != nil {
			return err
		}

		orderIDs := tx.Model(&models.Order{}).Select("id").Where("user_id = ?", userID)
		if err := tx.Where("order_id IN (?)", orderIDs).Delete(&models.Payment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("order_id IN (?)", orderIDs).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Order{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, userID).Error
	})
}
