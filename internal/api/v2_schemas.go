package api

import (
	"strconv"
	"strings"

	"github.com/Yarik-eng/DailyMood/internal/models"
	"github.com/Yarik-eng/DailyMood/internal/services"
	"github.com/Yarik-eng/DailyMood/internal/validation"
	"github.com/go-playground/validator/v10"
)

type v2OrderItemRequest struct {
	ProductID uint `json:"product_id" validate:"required,gte=1"`
	Quantity  int  `json:"quantity" validate:"required,gte=1,lte=100"`
}

type v2OrderRequest struct {
	Items []v2OrderItemRequest `json:"items" validate:"required,min=1,max=50,dive"`
}

func (request v2OrderRequest) toLines() []services.OrderLine {
	lines := make([]services.OrderLine, 0, len(request.Items))
	for _, item := range request.Items {
		lines = append(lines, services.OrderLine{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return lines
}

// Card fields are checked by paymentCardRule because their requirements
// depend on payment_method.
type v2PaymentRequest struct {
	OrderID       uint   `json:"order_id" validate:"required,gte=1"`
	PaymentMethod string `json:"payment_method" validate:"required,oneof=card online_banking paypal"`
	CardNumber    string `json:"card_number"`
	CardHolder    string `json:"card_holder"`
	CardExpiry    string `json:"card_expiry"`
	CardCVV       string `json:"card_cvv"`
}

func (request v2PaymentRequest) toServiceRequest() services.PaymentRequest {
	return services.PaymentRequest{
		OrderID:    request.OrderID,
		Method:     request.PaymentMethod,
		CardNumber: request.CardNumber,
		CardHolder: request.CardHolder,
		CardExpiry: request.CardExpiry,
		CardCVV:    request.CardCVV,
	}
}

type v2FeedbackRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=100"`
	Email   string `json:"email" validate:"omitempty,max=200,email"`
	Message string `json:"message" validate:"required,min=1,max=2000"`
	Rating  *int   `json:"rating" validate:"omitempty,gte=1,lte=5"`
}

func (request v2FeedbackRequest) toInput() services.FeedbackInput {
	return services.FeedbackInput{
		Name:    request.Name,
		Email:   request.Email,
		Message: request.Message,
		Rating:  request.Rating,
	}
}

type v2JournalRequest struct {
	Mood         string       `json:"mood" validate:"required,oneof=happy neutral sad"`
	Date         string       `json:"date" validate:"required,datetime=2006-01-02"`
	Title        string       `json:"title" validate:"required,max=200"`
	Content      string       `json:"content" validate:"max=5000"`
	Activities   activityList `json:"activities" validate:"dive,excludes=0x2C"`
	SleepHours   *float64     `json:"sleep_hours" validate:"omitempty,gte=0,lte=24"`
	SleepQuality *int         `json:"sleep_quality" validate:"omitempty,gte=1,lte=5"`
}

func (request v2JournalRequest) toInput() services.JournalEntryInput {
	return services.JournalEntryInput{
		Mood:         request.Mood,
		Date:         request.Date,
		Title:        request.Title,
		Content:      request.Content,
		Activities:   []string(request.Activities),
		SleepHours:   request.SleepHours,
		SleepQuality: request.SleepQuality,
	}
}

func newRequestValidator() *validation.Validator {
	requestValidator := validation.New()
	requestValidator.RegisterStructRule(paymentCardRule, v2PaymentRequest{})
	return requestValidator
}

func paymentCardRule(level validator.StructLevel) {
	request := level.Current().Interface().(v2PaymentRequest)
	fields := []struct {
		name  string
		field string
		value string
	}{
		{name: "card_number", field: "CardNumber", value: request.CardNumber},
		{name: "card_holder", field: "CardHolder", value: request.CardHolder},
		{name: "card_expiry", field: "CardExpiry", value: request.CardExpiry},
		{name: "card_cvv", field: "CardCVV", value: request.CardCVV},
	}

	if request.PaymentMethod != models.PaymentMethodCard {
		for _, candidate := range fields {
			if strings.TrimSpace(candidate.value) != "" {
				level.ReportError(candidate.value, candidate.name, candidate.field, "forbidden", "")
			}
		}
		return
	}

	for _, candidate := range fields {
		if strings.TrimSpace(candidate.value) == "" {
			level.ReportError(candidate.value, candidate.name, candidate.field, "required", "")
		}
	}

	if number := services.NormalizeCardNumber(request.CardNumber); number != "" && !services.ValidCardNumber(number) {
		level.ReportError(request.CardNumber, "card_number", "CardNumber", "card_number", "")
	}
	if holder := strings.TrimSpace(request.CardHolder); len([]rune(holder)) > services.MaxCardHolderLength {
		level.ReportError(request.CardHolder, "card_holder", "CardHolder", "max", strconv.Itoa(services.MaxCardHolderLength))
	}
	if expiry := strings.TrimSpace(request.CardExpiry); expiry != "" && !services.ValidCardExpiry(expiry) {
		level.ReportError(request.CardExpiry, "card_expiry", "CardExpiry", "card_expiry", "")
	}
	if cvv := strings.TrimSpace(request.CardCVV); cvv != "" && !services.ValidCardCVV(cvv) {
		level.ReportError(request.CardCVV, "card_cvv", "CardCVV", "card_cvv", "")
	}
}
