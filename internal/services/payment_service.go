package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/Yarik-eng/DailyMood/internal/db"
	"github.com/Yarik-eng/DailyMood/internal/logging"
	"github.com/Yarik-eng/DailyMood/internal/metrics"
	"github.com/Yarik-eng/DailyMood/internal/models"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	PremiumPeriod        = 30 * 24 * time.Hour
	MaxCardHolderLength  = 200
	transactionHexLength = 12
)

const (
	CardBrandVisa       = "Visa"
	CardBrandMastercard = "Mastercard"
	CardBrandAmex       = "Amex"
	CardBrandUnknown    = "Unknown"
)

var (
	ErrOrderNotPayable      = errors.New("order cannot be paid")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrMissingCardFields    = errors.New("card fields are required")
	ErrCardFieldsNotAllowed = errors.New("card fields are only allowed for card payments")
	ErrInvalidCard          = errors.New("invalid card details")
)

var (
	cardNumberPattern = regexp.MustCompile(`^\d{13,19}$`)
	cardExpiryPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
	cardCVVPattern    = regexp.MustCompile(`^\d{3,4}$`)
)

type PaymentRepository interface {
	FindByOrderID(orderID uint) (models.Payment, bool, error)
	Settle(settlement db.PaymentSettlement) error
}

type PaymentOrderReader interface {
	FindByID(orderID uint) (models.Order, bool, error)
}

type PaymentUserReader interface {
	FindByID(userID uint) (models.User, error)
}

type PaymentRequest struct {
	OrderID    uint
	Method     string
	CardNumber string
	CardHolder string
	CardExpiry string
	CardCVV    string
}

type PaymentResult struct {
	Payment        models.Payment
	Order          models.Order
	Idempotent     bool
	PremiumGranted bool
}

type PaymentService struct {
	payments      PaymentRepository
	orders        PaymentOrderReader
	users         PaymentUserReader
	transactionID func(method string) string
	log           *logrus.Entry
}

func NewPaymentService(payments PaymentRepository, orders PaymentOrderReader, users PaymentUserReader, logger logrus.FieldLogger) *PaymentService {
	return &PaymentService{
		payments:      payments,
		orders:        orders,
		users:         users,
		transactionID: NewTransactionID,
		log:           logging.Component(logger, "payments"),
	}
}

// Pay settles the order with a simulated provider. A second call for an
// already paid order returns the stored payment untouched.
func (service *PaymentService) Pay(userID uint, request PaymentRequest, now time.Time) (PaymentResult, error) {
	method := strings.TrimSpace(request.Method)
	if !models.IsValidPaymentMethod(method) {
		return PaymentResult{}, ErrInvalidPaymentMethod
	}
	card, err := validateCardFields(method, request)
	if err != nil {
		return PaymentResult{}, err
	}

	order, found, err := service.orders.FindByID(request.OrderID)
	if err != nil {
		return PaymentResult{}, fmt.Errorf("load order: %w", err)
	}
	if !found || order.UserID != userID {
		return PaymentResult{}, ErrOrderNotFound
	}

	existing, found, err := service.payments.FindByOrderID(order.ID)
	if err != nil {
		return PaymentResult{}, fmt.Errorf("load payment: %w", err)
	}
	if found {
		metrics.RecordPayment(existing.Method, "idempotent")
		return PaymentResult{Payment: existing, Order: order, Idempotent: true}, nil
	}
	if order.Status != models.OrderStatusNew {
		return PaymentResult{}, ErrOrderNotPayable
	}

	completedAt := now.UTC()
	payment := models.Payment{
		OrderID:       order.ID,
		Method:        method,
		Status:        models.PaymentStatusCompleted,
		Amount:        order.TotalAmount,
		TransactionID: service.transactionID(method),
		CardLast4:     card.last4,
		CardBrand:     card.brand,
		CreatedAt:     completedAt,
		CompletedAt:   &completedAt,
	}
	settlement := db.PaymentSettlement{Payment: &payment, OrderStatus: models.OrderStatusProcessing}

	if order.HasDigitalItem() {
		user, err := service.users.FindByID(userID)
		if err != nil {
			return PaymentResult{}, fmt.Errorf("load user: %w", err)
		}
		settlement.OrderStatus = models.OrderStatusCompleted
		settlement.Premium = premiumGrantFor(user, completedAt)
	}

	if err := service.payments.Settle(settlement); err != nil {
		if existing, found, findErr := service.payments.FindByOrderID(order.ID); findErr == nil && found {
			return PaymentResult{Payment: existing, Order: order, Idempotent: true}, nil
		}
		metrics.RecordPayment(method, "failed")
		return PaymentResult{}, fmt.Errorf("settle payment: %w", err)
	}

	order.Status = settlement.OrderStatus
	metrics.RecordPayment(method, "completed")
	service.log.WithFields(logrus.Fields{
		"order_id":       order.ID,
		"user_id":        userID,
		"method":         method,
		"transaction_id": payment.TransactionID,
		"premium":        settlement.Premium != nil,
	}).Info("payment completed")

	return PaymentResult{Payment: payment, Order: order, PremiumGranted: settlement.Premium != nil}, nil
}

// NewTransactionID formats "<PREFIX>-<12 upper hex chars>" from a random UUID.
func NewTransactionID(method string) string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return models.TransactionPrefix(method) + "-" + strings.ToUpper(hex[:transactionHexLength])
}

// CardBrand detects the network from the leading digits.
func CardBrand(number string) string {
	switch {
	case strings.HasPrefix(number, "4"):
		return CardBrandVisa
	case strings.HasPrefix(number, "34"), strings.HasPrefix(number, "37"):
		return CardBrandAmex
	case len(number) >= 2 && number[:2] >= "51" && number[:2] <= "55":
		return CardBrandMastercard
	case len(number) >= 4 && number[:4] >= "2221" && number[:4] <= "2720":
		return CardBrandMastercard
	default:
		return CardBrandUnknown
	}
}

func NormalizeCardNumber(raw string) string {
	return strings.NewReplacer(" ", "", "-", "").Replace(strings.TrimSpace(raw))
}

// ValidCardNumber expects a number already passed through NormalizeCardNumber.
func ValidCardNumber(number string) bool {
	return cardNumberPattern.MatchString(number)
}

// ValidCardExpiry checks the MM/YY format only; past dates are accepted.
func ValidCardExpiry(raw string) bool {
	return cardExpiryPattern.MatchString(strings.TrimSpace(raw))
}

func ValidCardCVV(raw string) bool {
	return cardCVVPattern.MatchString(strings.TrimSpace(raw))
}

type cardSummary struct {
	last4 string
	brand string
}

func validateCardFields(method string, request PaymentRequest) (cardSummary, error) {
	fields := []string{request.CardNumber, request.CardHolder, request.CardExpiry, request.CardCVV}
	if method != models.PaymentMethodCard {
		for _, field := range fields {
			if strings.TrimSpace(field) != "" {
				return cardSummary{}, ErrCardFieldsNotAllowed
			}
		}
		return cardSummary{}, nil
	}

	for _, field := range fields {
		if strings.TrimSpace(field) == "" {
			return cardSummary{}, ErrMissingCardFields
		}
	}

	number := NormalizeCardNumber(request.CardNumber)
	if !ValidCardNumber(number) ||
		len([]rune(strings.TrimSpace(request.CardHolder))) > MaxCardHolderLength ||
		!ValidCardExpiry(request.CardExpiry) ||
		!ValidCardCVV(request.CardCVV) {
		return cardSummary{}, ErrInvalidCard
	}

	return cardSummary{last4: number[len(number)-4:], brand: CardBrand(number)}, nil
}

// premiumGrantFor extends an active window instead of restarting it. Users
// with open-ended premium get no grant.
func premiumGrantFor(user models.User, now time.Time) *db.PremiumGrant {
	if !user.HasActivePremium(now) {
		return &db.PremiumGrant{UserID: user.ID, StartedAt: now, ExpiresAt: now.Add(PremiumPeriod)}
	}
	if user.PremiumExpiresAt == nil {
		return nil
	}

	grant := &db.PremiumGrant{UserID: user.ID, StartedAt: now, ExpiresAt: user.PremiumExpiresAt.Add(PremiumPeriod)}
	if user.PremiumStartedAt != nil {
		grant.StartedAt = *user.PremiumStartedAt
	}
	return grant
}
