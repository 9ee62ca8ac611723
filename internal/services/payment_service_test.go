package services

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/Yarik-eng/DailyMood/internal/db"
	"github.com/Yarik-eng/DailyMood/internal/logging"
	"github.com/Yarik-eng/DailyMood/internal/models"
	"github.com/shopspring/decimal"
)

type paymentFixture struct {
	service  *PaymentService
	payments *stubPaymentRepo
	orders   *stubOrderRepo
	users    *stubUserRepo
}

func newPaymentFixture(user models.User, orders ...models.Order) paymentFixture {
	users := newStubUserRepo(user)
	orderRepo := newStubOrderRepo(orders...)
	payments := newStubPaymentRepo(orderRepo, users)
	service := NewPaymentService(payments, orderRepo, users, logging.Discard())
	return paymentFixture{service: service, payments: payments, orders: orderRepo, users: users}
}

func digitalOrder(orderID uint, userID uint) models.Order {
	return models.Order{
		ID:          orderID,
		UserID:      userID,
		Status:      models.OrderStatusNew,
		TotalAmount: decimal.RequireFromString("99.00"),
		Items: []models.OrderItem{{
			ProductID: 1, ProductName: "Premium підписка", ProductType: models.ProductTypeSubscription,
			Quantity: 1, UnitPrice: decimal.RequireFromString("99.00"), Subtotal: decimal.RequireFromString("99.00"),
		}},
	}
}

func physicalOrder(orderID uint, userID uint) models.Order {
	return models.Order{
		ID:          orderID,
		UserID:      userID,
		Status:      models.OrderStatusNew,
		TotalAmount: decimal.RequireFromString("19.99"),
		Items: []models.OrderItem{{
			ProductID: 2, ProductName: "Quote pack", ProductType: models.ProductTypeQuotePack,
			Quantity: 1, UnitPrice: decimal.RequireFromString("19.99"), Subtotal: decimal.RequireFromString("19.99"),
		}},
	}
}

func cardRequest(orderID uint) PaymentRequest {
	return PaymentRequest{
		OrderID:    orderID,
		Method:     models.PaymentMethodCard,
		CardNumber: "4242 4242 4242 4242",
		CardHolder: "Test User",
		CardExpiry: "12/29",
		CardCVV:    "123",
	}
}

func TestPaymentServicePayDigitalOrderGrantsPremium(t *testing.T) {
	now := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	fixture := newPaymentFixture(models.User{ID: 1, Email: "buyer@example.com"}, digitalOrder(10, 1))

	result, err := fixture.service.Pay(1, cardRequest(10), now)
	if err != nil {
		t.Fatalf("Pay() unexpected error: %v", err)
	}
	if result.Idempotent || !result.PremiumGranted {
		t.Fatalf("unexpected result flags %+v", result)
	}
	if result.Order.Status != models.OrderStatusCompleted {
		t.Fatalf("expected completed order, got %s", result.Order.Status)
	}
	payment := result.Payment
	if payment.Status != models.PaymentStatusCompleted || payment.CompletedAt == nil {
		t.Fatalf("expected completed payment, got %+v", payment)
	}
	if payment.CardLast4 != "4242" || payment.CardBrand != CardBrandVisa {
		t.Fatalf("unexpected card summary %s/%s", payment.CardLast4, payment.CardBrand)
	}
	if !payment.Amount.Equal(decimal.RequireFromString("99.00")) {
		t.Fatalf("expected amount to equal order total, got %s", payment.Amount)
	}
	if !regexp.MustCompile(`^TXN-[0-9A-F]{12}$`).MatchString(payment.TransactionID) {
		t.Fatalf("unexpected transaction id %q", payment.TransactionID)
	}

	user := fixture.users.users[1]
	if !user.HasActivePremium(now) || user.PremiumExpiresAt == nil || !user.PremiumExpiresAt.Equal(now.Add(PremiumPeriod)) {
		t.Fatalf("expected 30 days of premium, got %+v", user)
	}
}

func TestPaymentServicePayIsIdempotent(t *testing.T) {
	now := time.Now()
	fixture := newPaymentFixture(models.User{ID: 1}, physicalOrder(11, 1))
	request := PaymentRequest{OrderID: 11, Method: models.PaymentMethodPayPal}

	first, err := fixture.service.Pay(1, request, now)
	if err != nil {
		t.Fatalf("first Pay() unexpected error: %v", err)
	}
	if first.Order.Status != models.OrderStatusProcessing || first.PremiumGranted {
		t.Fatalf("expected processing order without premium, got %+v", first)
	}

	second, err := fixture.service.Pay(1, request, now.Add(time.Minute))
	if err != nil {
		t.Fatalf("second Pay() unexpected error: %v", err)
	}
	if !second.Idempotent || second.Payment.TransactionID != first.Payment.TransactionID {
		t.Fatalf("expected the stored payment back, got %+v", second)
	}
	if len(fixture.payments.settlements) != 1 {
		t.Fatalf("expected exactly one settlement, got %d", len(fixture.payments.settlements))
	}
}

func TestPaymentServiceExtendsActivePremium(t *testing.T) {
	now := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	startedAt := now.Add(-10 * 24 * time.Hour)
	expiresAt := now.Add(20 * 24 * time.Hour)
	fixture := newPaymentFixture(
		models.User{ID: 1, IsPremium: true, PremiumStartedAt: &startedAt, PremiumExpiresAt: &expiresAt},
		digitalOrder(12, 1),
	)

	if _, err := fixture.service.Pay(1, PaymentRequest{OrderID: 12, Method: models.PaymentMethodOnlineBanking}, now); err != nil {
		t.Fatalf("Pay() unexpected error: %v", err)
	}
	grant := fixture.payments.settlements[0].Premium
	if grant == nil || !grant.ExpiresAt.Equal(expiresAt.Add(PremiumPeriod)) || !grant.StartedAt.Equal(startedAt) {
		t.Fatalf("expected extension from current expiry, got %+v", grant)
	}
	if prefix := fixture.payments.settlements[0].Payment.TransactionID[:5]; prefix != "BANK-" {
		t.Fatalf("expected BANK prefix, got %q", prefix)
	}
}

func TestPaymentServiceRejections(t *testing.T) {
	canceled := physicalOrder(21, 1)
	canceled.Status = models.OrderStatusCanceled
	fixture := newPaymentFixture(models.User{ID: 1}, physicalOrder(20, 1), canceled)
	now := time.Now()

	missingCVV := cardRequest(20)
	missingCVV.CardCVV = ""
	badExpiry := cardRequest(20)
	badExpiry.CardExpiry = "13/29"
	shortNumber := cardRequest(20)
	shortNumber.CardNumber = "4242 4242"

	tests := []struct {
		name    string
		userID  uint
		request PaymentRequest
		want    error
	}{
		{name: "unknown method", userID: 1, request: PaymentRequest{OrderID: 20, Method: "cash"}, want: ErrInvalidPaymentMethod},
		{name: "missing card field", userID: 1, request: missingCVV, want: ErrMissingCardFields},
		{name: "invalid expiry", userID: 1, request: badExpiry, want: ErrInvalidCard},
		{name: "short card number", userID: 1, request: shortNumber, want: ErrInvalidCard},
		{name: "card fields on paypal", userID: 1, request: PaymentRequest{OrderID: 20, Method: models.PaymentMethodPayPal, CardNumber: "4242424242424242"}, want: ErrCardFieldsNotAllowed},
		{name: "foreign order", userID: 2, request: PaymentRequest{OrderID: 20, Method: models.PaymentMethodPayPal}, want: ErrOrderNotFound},
		{name: "missing order", userID: 1, request: PaymentRequest{OrderID: 99, Method: models.PaymentMethodPayPal}, want: ErrOrderNotFound},
		{name: "canceled order", userID: 1, request: PaymentRequest{OrderID: 21, Method: models.PaymentMethodPayPal}, want: ErrOrderNotPayable},
	}
	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			if _, err := fixture.service.Pay(testCase.userID, testCase.request, now); !errors.Is(err, testCase.want) {
				t.Fatalf("Pay() error = %v, want %v", err, testCase.want)
			}
		})
	}
	if len(fixture.payments.settlements) != 0 {
		t.Fatalf("expected no settlements, got %d", len(fixture.payments.settlements))
	}
}

func TestCardBrand(t *testing.T) {
	tests := map[string]string{
		"4111111111111111": CardBrandVisa,
		"5105105105105100": CardBrandMastercard,
		"2221000000000009": CardBrandMastercard,
		"2720990000000000": CardBrandMastercard,
		"2721000000000000": CardBrandUnknown,
		"378282246310005":  CardBrandAmex,
		"341111111111111":  CardBrandAmex,
		"6011111111111117": CardBrandUnknown,
	}
	for number, want := range tests {
		if got := CardBrand(number); got != want {
			t.Fatalf("CardBrand(%s) = %s, want %s", number, got, want)
		}
	}
}

func TestNewTransactionIDPrefixes(t *testing.T) {
	pattern := regexp.MustCompile(`^(TXN|BANK|PP)-[0-9A-F]{12}$`)
	for _, method := range models.PaymentMethods {
		if id := NewTransactionID(method); !pattern.MatchString(id) {
			t.Fatalf("unexpected transaction id %q for %s", id, method)
		}
	}
	if NewTransactionID(models.PaymentMethodPayPal)[:3] != "PP-" {
		t.Fatal("expected PP prefix for paypal")
	}
}

// racingPaymentRepo stores a competing payment for the order and then fails
// the settlement, as a unique-index violation would.
type racingPaymentRepo struct {
	*stubPaymentRepo
	winner    models.Payment
	settleErr error
}

func (repo *racingPaymentRepo) Settle(settlement db.PaymentSettlement) error {
	repo.payments[repo.winner.OrderID] = repo.winner
	return repo.settleErr
}

func TestPaymentServiceReturnsConcurrentWinnerWhenSettleFails(t *testing.T) {
	now := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	users := newStubUserRepo(models.User{ID: 1})
	orders := newStubOrderRepo(physicalOrder(12, 1))
	winner := models.Payment{
		ID:            7,
		OrderID:       12,
		Method:        models.PaymentMethodPayPal,
		Status:        models.PaymentStatusCompleted,
		Amount:        decimal.RequireFromString("19.99"),
		TransactionID: "PP-AAAAAAAAAAAA",
	}
	repo := &racingPaymentRepo{
		stubPaymentRepo: newStubPaymentRepo(orders, users),
		winner:          winner,
		settleErr:       errors.New("UNIQUE constraint failed: payments.order_id"),
	}
	service := NewPaymentService(repo, orders, users, logging.Discard())

	result, err := service.Pay(1, cardRequest(12), now)
	if err != nil {
		t.Fatalf("Pay() unexpected error: %v", err)
	}
	if !result.Idempotent || result.Payment.TransactionID != winner.TransactionID || result.Payment.ID != winner.ID {
		t.Fatalf("expected the concurrent winner back, got %+v", result)
	}

	repo.payments = map[uint]models.Payment{}
	repo.winner = models.Payment{}
	if _, err := service.Pay(1, cardRequest(12), now); err == nil || !errors.Is(err, repo.settleErr) {
		t.Fatalf("expected settle error without a stored winner, got %v", err)
	}
}
