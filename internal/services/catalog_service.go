package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/Yarik-eng/DailyMood/internal/logging"
	"github.com/Yarik-eng/DailyMood/internal/models"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const maxSlugAttempts = 50

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidProduct  = errors.New("invalid product")
	ErrSlugTaken       = errors.New("product slug already exists")
)

type CatalogRepository interface {
	ListActive() ([]models.Product, error)
	ListAll() ([]models.Product, error)
	FindByID(productID uint) (models.Product, bool, error)
	ExistsBySlug(slug string) (bool, error)
	Create(product *models.Product) error
	Save(product *models.Product) error
	Deactivate(productID uint) (bool, error)
}

type ProductInput struct {
	Name        string
	Slug        string
	Type        string
	Description string
	Price       decimal.Decimal
	IsActive    *bool
}

type CatalogService struct {
	products CatalogRepository
	log      *logrus.Entry
}

func NewCatalogService(products CatalogRepository, logger logrus.FieldLogger) *CatalogService {
	return &CatalogService{products: products, log: logging.Component(logger, "catalog")}
}

func (service *CatalogService) ListActive() ([]models.Product, error) {
	products, err := service.products.ListActive()
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (service *CatalogService) ListAll() ([]models.Product, error) {
	products, err := service.products.ListAll()
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// GetActive hides inactive products the same way as missing ones.
func (service *CatalogService) GetActive(productID uint) (models.Product, error) {
	product, found, err := service.products.FindByID(productID)
	if err != nil {
		return models.Product{}, fmt.Errorf("load product: %w", err)
	}
	if !found || !product.IsActive {
		return models.Product{}, ErrProductNotFound
	}
	return product, nil
}

func (service *CatalogService) Create(input ProductInput, now time.Time) (models.Product, error) {
	name, productType, err := normalizeProductInput(input)
	if err != nil {
		return models.Product{}, err
	}

	slug := strings.TrimSpace(input.Slug)
	if slug == "" {
		slug, err = service.uniqueSlug(name)
		if err != nil {
			return models.Product{}, err
		}
	} else {
		slug = Slugify(slug)
		if slug == "" {
			return models.Product{}, ErrInvalidProduct
		}
		exists, err := service.products.ExistsBySlug(slug)
		if err != nil {
			return models.Product{}, fmt.Errorf("check slug: %w", err)
		}
		if exists {
			return models.Product{}, ErrSlugTaken
		}
	}

	product := models.Product{
		Name:        name,
		Slug:        slug,
		Type:        productType,
		Description: strings.TrimSpace(input.Description),
		Price:       input.Price.Round(2),
		IsActive:    input.IsActive == nil || *input.IsActive,
		CreatedAt:   now.UTC(),
	}
	if err := service.products.Create(&product); err != nil {
		return models.Product{}, fmt.Errorf("create product: %w", err)
	}

	service.log.WithFields(logrus.Fields{"product_id": product.ID, "slug": product.Slug}).Info("product created")
	return product, nil
}

func (service *CatalogService) Update(productID uint, input ProductInput) (models.Product, error) {
	product, found, err := service.products.FindByID(productID)
	if err != nil {
		return models.Product{}, fmt.Errorf("load product: %w", err)
	}
	if !found {
		return models.Product{}, ErrProductNotFound
	}

	name, productType, err := normalizeProductInput(input)
	if err != nil {
		return models.Product{}, err
	}

	if raw := strings.TrimSpace(input.Slug); raw != "" {
		slug := Slugify(raw)
		if slug == "" {
			return models.Product{}, ErrInvalidProduct
		}
		if slug != product.Slug {
			exists, err := service.products.ExistsBySlug(slug)
			if err != nil {
				return models.Product{}, fmt.Errorf("check slug: %w", err)
			}
			if exists {
				return models.Product{}, ErrSlugTaken
			}
			product.Slug = slug
		}
	}

	product.Name = name
	product.Type = productType
	product.Description = strings.TrimSpace(input.Description)
	product.Price = input.Price.Round(2)
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	if err := service.products.Save(&product); err != nil {
		return models.Product{}, fmt.Errorf("update product: %w", err)
	}
	return product, nil
}

// Deactivate hides the product from the storefront; order items keep their snapshot.
func (service *CatalogService) Deactivate(productID uint) error {
	updated, err := service.products.Deactivate(productID)
	if err != nil {
		return fmt.Errorf("deactivate product: %w", err)
	}
	if !updated {
		return ErrProductNotFound
	}
	service.log.WithField("product_id", productID).Info("product deactivated")
	return nil
}

func (service *CatalogService) uniqueSlug(name string) (string, error) {
	base := Slugify(name)
	if base == "" {
		base = "product"
	}

	candidate := base
	for attempt := 2; attempt <= maxSlugAttempts; attempt++ {
		exists, err := service.products.ExistsBySlug(candidate)
		if err != nil {
			return "", fmt.Errorf("check slug: %w", err)
		}
		if !exists {
			return candidate, nil
		}
		candidate = base + "-" + strconv.Itoa(attempt)
	}
	return "", ErrSlugTaken
}

func normalizeProductInput(input ProductInput) (string, string, error) {
	name := strings.TrimSpace(input.Name)
	productType := strings.TrimSpace(input.Type)
	if name == "" || !models.IsValidProductType(productType) || input.Price.IsNegative() || input.Price.GreaterThan(models.MaxAmount) {
		return "", "", ErrInvalidProduct
	}
	return name, productType, nil
}

// Slugify keeps ASCII letters and digits and collapses everything else into single dashes.
func Slugify(value string) string {
	var builder strings.Builder
	pendingDash := false
	for _, char := range strings.ToLower(strings.TrimSpace(value)) {
		if char < unicode.MaxASCII && (unicode.IsLetter(char) || unicode.IsDigit(char)) {
			if pendingDash && builder.Len() > 0 {
				builder.WriteByte('-')
			}
			builder.WriteRune(char)
			pendingDash = false
			continue
		}
		pendingDash = true
	}
	return builder.String()
}
