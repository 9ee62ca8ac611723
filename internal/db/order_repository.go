package db

import (
	"errors"

	"github.com/Yarik-eng/DailyMood/internal/models"
	"gorm.io/gorm"
)

var ErrProductsUnavailable = errors.New("one or more products are unavailable")

type OrderRepository struct {
	database *gorm.DB
}

func NewOrderRepository(database *gorm.DB) *OrderRepository {
	return &OrderRepository{database: database}
}

// CreateWithItems inserts the order and its items in one transaction. The
// referenced products are checked again inside the transaction and the whole
// order is rolled back when any of them is missing or inactive.
func (repo *OrderRepository) CreateWithItems(order *models.Order) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		productIDs := make([]uint, 0, len(order.Items))
		seen := make(map[uint]struct{}, len(order.Items))
		for _, item := range order.Items {
			if _, ok := seen[item.ProductID]; ok {
				continue
			}
			seen[item.ProductID] = struct{}{}
			productIDs = append(productIDs, item.ProductID)
		}

		var active int64
		if err := tx.Model(&models.Product{}).
			Where("id IN ? AND is_active = ?", productIDs, true).
			Count(&active).Error; err != nil {
			return err
		}
		if int(active) != len(productIDs) {
			return ErrProductsUnavailable
		}

		return tx.Create(order).Error
	})
}

func (repo *OrderRepository) FindByID(orderID uint) (models.Order, bool, error) {
	order := models.Order{}
	result := repo.database.Preload("Items").Where("id = ?", orderID).Limit(1).Find(&order)
	if result.Error != nil {
		return models.Order{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Order{}, false, nil
	}
	return order, true, nil
}

func (repo *OrderRepository) ListByUser(userID uint) ([]models.Order, error) {
	orders := make([]models.Order, 0)
	if err := repo.database.Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (repo *OrderRepository) ListAll(status string) ([]models.Order, error) {
	query := repo.database.Preload("Items")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	orders := make([]models.Order, 0)
	if err := query.Order("created_at DESC, id DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (repo *OrderRepository) UpdateStatus(orderID uint, status string) error {
	return repo.database.Model(&models.Order{}).Where("id = ?", orderID).Update("status", status).Error
}

type orderStatusCount struct {
	Status string `gorm:"column:status"`
	Total  int64  `gorm:"column:total"`
}

func (repo *OrderRepository) CountByStatus() (map[string]int64, error) {
	rows := make([]orderStatusCount, 0)
	if err := repo.database.Model(&models.Order{}).
		Select("status, count(*) AS total").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(models.OrderStatuses))
	for _, status := range models.OrderStatuses {
		counts[status] = 0
	}
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}
