package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/Yarik-eng/DailyMood/internal/db"
	"github.com/Yarik-eng/DailyMood/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type seedProduct struct {
	name        string
	slug        string
	productType string
	description string
	price       string
}

var defaultProducts = []seedProduct{
	{
		name:        "Premium підписка",
		slug:        "premium-subscription",
		productType: models.ProductTypeSubscription,
		description: "Доступ до всіх преміум-функцій: Mood Predictor, рекомендації активностей, додаткові теми та аватари.",
		price:       "99.00",
	},
	{
		name:        "Пакет мотиваційних цитат",
		slug:        "motivation-quotes-pack",
		productType: models.ProductTypeQuotePack,
		description: "100+ ексклюзивних мотиваційних цитат для щоденного натхнення.",
		price:       "29.00",
	},
	{
		name:        "Тема \"Океан спокою\"",
		slug:        "ocean-theme",
		productType: models.ProductTypeTheme,
		description: "Заспокійлива синя тема з морськими акцентами для вашого щоденника.",
		price:       "19.00",
	},
	{
		name:        "Шаблон щоденника \"Подорожі\"",
		slug:        "travel-journal-template",
		productType: models.ProductTypeJournalTemplate,
		description: "Готовий шаблон для фіксації ваших подорожей та вражень.",
		price:       "25.00",
	},
	{
		name:        "Курс \"21 день продуктивності\"",
		slug:        "productivity-course",
		productType: models.ProductTypeHabitCourse,
		description: "Покроковий курс для формування продуктивних звичок за 21 день.",
		price:       "149.00",
	},
}

// RunSeedProductsCommand inserts the default catalog. Products whose slug
// already exists are left untouched.
func RunSeedProductsCommand(database *gorm.DB, out io.Writer) (int, error) {
	products := db.NewProductRepository(database)
	now := time.Now().UTC()

	created := 0
	for _, seed := range defaultProducts {
		exists, err := products.ExistsBySlug(seed.slug)
		if err != nil {
			return created, fmt.Errorf("check product %s: %w", seed.slug, err)
		}
		if exists {
			fmt.Fprintf(out, "Skipped %s: already exists\n", seed.slug)
			continue
		}

		product := models.Product{
			Name:        seed.name,
			Slug:        seed.slug,
			Type:        seed.productType,
			Description: seed.description,
			Price:       decimal.RequireFromString(seed.price),
			IsActive:    true,
			CreatedAt:   now,
		}
		if err := products.Create(&product); err != nil {
			return created, fmt.Errorf("create product %s: %w", seed.slug, err)
		}
		created++
		fmt.Fprintf(out, "Created %s (%s)\n", product.Name, product.Price.StringFixed(2))
	}

	fmt.Fprintf(out, "Seeded %d of %d products\n", created, len(defaultProducts))
	return created, nil
}
