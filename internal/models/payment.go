package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	PaymentMethodCard          = "card"
	PaymentMethodOnlineBanking = "online_banking"
	PaymentMethodPayPal        = "paypal"
)

const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
	PaymentStatusRefunded  = "refunded"
)

var PaymentMethods = []string{PaymentMethodCard, PaymentMethodOnlineBanking, PaymentMethodPayPal}

type Payment struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	OrderID       uint            `gorm:"uniqueIndex;not null" json:"order_id"`
	Method        string          `gorm:"column:payment_method;not null" json:"payment_method"`
	Status        string          `gorm:"not null;default:pending" json:"status"`
	Amount        decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"amount"`
	TransactionID string          `gorm:"uniqueIndex" json:"transaction_id"`
	CardLast4     string          `gorm:"column:card_last4" json:"card_last4,omitempty"`
	CardBrand     string          `json:"card_brand,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	CompletedAt   *time.Time      `json:"completed_at"`
}

func IsValidPaymentMethod(method string) bool {
	for _, candidate := range PaymentMethods {
		if candidate == method {
			return true
		}
	}
	return false
}

func TransactionPrefix(method string) string {
	switch method {
	case PaymentMethodOnlineBanking:
		return "BANK"
	case PaymentMethodPayPal:
		return "PP"
	default:
		return "TXN"
	}
}
