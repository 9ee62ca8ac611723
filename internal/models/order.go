package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	OrderStatusNew        = "new"
	OrderStatusProcessing = "processing"
	OrderStatusCompleted  = "completed"
	OrderStatusCanceled   = "canceled"
)

// MaxAmount is the largest value the numeric(10,2) money columns hold.
var MaxAmount = decimal.RequireFromString("99999999.99")

var OrderStatuses = []string{
	OrderStatusNew,
	OrderStatusProcessing,
	OrderStatusCompleted,
	OrderStatusCanceled,
}

type Order struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	UserID      uint            `gorm:"not null;index" json:"user_id"`
	Status      string          `gorm:"not null;default:new" json:"status"`
	TotalAmount decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"total_amount"`
	Items       []OrderItem     `gorm:"constraint:OnDelete:CASCADE" json:"items,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type OrderItem struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	OrderID     uint            `gorm:"not null;index" json:"order_id"`
	ProductID   uint            `gorm:"not null" json:"product_id"`
	ProductName string          `gorm:"not null" json:"product_name"`
	ProductType string          `gorm:"not null" json:"product_type"`
	Quantity    int             `gorm:"not null;default:1" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"unit_price"`
	Subtotal    decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"subtotal"`
}

func IsValidOrderStatus(status string) bool {
	for _, candidate := range OrderStatuses {
		if candidate == status {
			return true
		}
	}
	return false
}

// CalculateTotal recomputes subtotals from unit prices and returns their sum.
func (order *Order) CalculateTotal() decimal.Decimal {
	total := decimal.Zero
	for index := range order.Items {
		item := &order.Items[index]
		item.Subtotal = item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(item.Subtotal)
	}
	order.TotalAmount = total
	return total
}

// FitsAmountColumns reports whether every subtotal and the total can be
// stored. Call it after CalculateTotal.
func (order Order) FitsAmountColumns() bool {
	if order.TotalAmount.GreaterThan(MaxAmount) {
		return false
	}
	for _, item := range order.Items {
		if item.Subtotal.GreaterThan(MaxAmount) {
			return false
		}
	}
	return true
}

func (order Order) HasDigitalItem() bool {
	for _, item := range order.Items {
		if IsDigitalProduct(item.ProductType, item.ProductName) {
			return true
		}
	}
	return false
}
