package db

import (
	"github.com/Yarik-eng/DailyMood/internal/models"
	"gorm.io/gorm"
)

type ProductRepository struct {
	database *gorm.DB
}

func NewProductRepository(database *gorm.DB) *ProductRepository {
	return &ProductRepository{database: database}
}

func (repo *ProductRepository) ListActive() ([]models.Product, error) {
	products := make([]models.Product, 0)
	if err := repo.database.Where("is_active = ?", true).Order("id ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (repo *ProductRepository) ListAll() ([]models.Product, error) {
	products := make([]models.Product, 0)
	if err := repo.database.Order("id ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (repo *ProductRepository) FindByID(productID uint) (models.Product, bool, error) {
	product := models.Product{}
	result := repo.database.Where("id = ?", productID).Limit(1).Find(&product)
	if result.Error != nil {
		return models.Product{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Product{}, false, nil
	}
	return product, true, nil
}

func (repo *ProductRepository) FindByIDs(productIDs []uint) ([]models.Product, error) {
	products := make([]models.Product, 0, len(productIDs))
	if len(productIDs) == 0 {
		return products, nil
	}
	if err := repo.database.Where("id IN ?", productIDs).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (repo *ProductRepository) ExistsBySlug(slug string) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.Product{}).Where("slug = ?", slug).Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

func (repo *ProductRepository) Create(product *models.Product) error {
	return repo.database.Create(product).Error
}

func (repo *ProductRepository) Save(product *models.Product) error {
	return repo.database.Save(product).Error
}

func (repo *ProductRepository) Deactivate(productID uint) (bool, error) {
	result := repo.database.Model(&models.Product{}).Where("id = ?", productID).Update("is_active", false)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
