package db

import (
	"time"

	"github.com/Yarik-eng/DailyMood/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PremiumGrant struct {
	UserID    uint
	StartedAt time.Time
	ExpiresAt time.Time
}

// PaymentSettlement is everything that changes when a payment completes.
type PaymentSettlement struct {
	Payment     *models.Payment
	OrderStatus string
	Premium     *PremiumGrant
}

type PaymentRepository struct {
	database *gorm.DB
}

func NewPaymentRepository(database *gorm.DB) *PaymentRepository {
	return &PaymentRepository{database: database}
}

func (repo *PaymentRepository) FindByOrderID(orderID uint) (models.Payment, bool, error) {
	payment := models.Payment{}
	result := repo.database.Where("order_id = ?", orderID).Limit(1).Find(&payment)
	if result.Error != nil {
		return models.Payment{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Payment{}, false, nil
	}
	return payment, true, nil
}

func (repo *PaymentRepository) Settle(settlement PaymentSettlement) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(settlement.Payment).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Order{}).
			Where("id = ?", settlement.Payment.OrderID).
			Update("status", settlement.OrderStatus).Error; err != nil {
			return err
		}
		if settlement.Premium == nil {
			return nil
		}
		return tx.Model(&models.User{}).Where("id = ?", settlement.Premium.UserID).Updates(map[string]any{
			"is_premium":         true,
			"premium_started_at": settlement.Premium.StartedAt,
			"premium_expires_at": settlement.Premium.ExpiresAt,
		}).Error
	})
}

func (repo *PaymentRepository) SumCompleted() (decimal.Decimal, error) {
	amounts := make([]decimal.Decimal, 0)
	if err := repo.database.Model(&models.Payment{}).
		Where("status = ?", models.PaymentStatusCompleted).
		Pluck("amount", &amounts).Error; err != nil {
		return decimal.Zero, err
	}
	return decimal.Sum(decimal.Zero, amounts...), nil
}
