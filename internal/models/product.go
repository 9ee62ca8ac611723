package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	ProductTypeSubscription    = "subscription"
	ProductTypeQuotePack       = "quote_pack"
	ProductTypeTheme           = "theme"
	ProductTypeJournalTemplate = "journal_template"
	ProductTypeHabitCourse     = "habit_course"
	ProductTypePremium         = "premium"
)

var ProductTypes = []string{
	ProductTypeSubscription,
	ProductTypeQuotePack,
	ProductTypeTheme,
	ProductTypeJournalTemplate,
	ProductTypeHabitCourse,
	ProductTypePremium,
}

type Product struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"not null" json:"name"`
	Slug        string          `gorm:"uniqueIndex;not null" json:"slug"`
	Type        string          `gorm:"not null" json:"type"`
	Description string          `json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	IsActive    bool            `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
}

func IsValidProductType(productType string) bool {
	for _, candidate := range ProductTypes {
		if candidate == productType {
			return true
		}
	}
	return false
}

// IsDigitalProduct reports whether buying the product grants premium access
// instead of requiring manual fulfilment.
func IsDigitalProduct(productType string, name string) bool {
	if productType == ProductTypeSubscription || productType == ProductTypePremium {
		return true
	}
	lowered := strings.ToLower(name)
	return strings.Contains(lowered, "premium") || strings.Contains(lowered, "преміум")
}
