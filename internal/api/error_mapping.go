package api

import (
	"errors"

	"github.com/Yarik-eng/DailyMood/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const (
	codeUnauthorized      = "UNAUTHORIZED"
	codeAdminRequired     = "ADMIN_REQUIRED"
	codePremiumRequired   = "PREMIUM_REQUIRED"
	codeRateLimited       = "RATE_LIMITED"
	codeInvalidInput      = "INVALID_INPUT"
	codeValidation        = "VALIDATION_ERROR"
	codeNotFound          = "NOT_FOUND"
	codeInternal          = "INTERNAL_ERROR"
	codeNotEnoughHistory  = "NOT_ENOUGH_HISTORY"
	codeProductNotFound   = "PRODUCT_NOT_FOUND"
	codeOrderNotFound     = "ORDER_NOT_FOUND"
	codeMissingCardFields = "MISSING_CARD_FIELDS"
)

type errorResponse struct {
	status int
	code   string
	key    string
}

var serviceErrorResponses = []struct {
	target   error
	response errorResponse
}{
	{services.ErrInvalidEmail, errorResponse{fiber.StatusBadRequest, "INVALID_EMAIL", "error.invalid_email"}},
	{services.ErrWeakPassword, errorResponse{fiber.StatusBadRequest, "WEAK_PASSWORD", "error.weak_password"}},
	{services.ErrEmailTaken, errorResponse{fiber.StatusBadRequest, "EMAIL_TAKEN", "error.email_taken"}},
	{services.ErrInvalidCredentials, errorResponse{fiber.StatusUnauthorized, "INVALID_CREDENTIALS", "error.invalid_credentials"}},
	{services.ErrUserNotFound, errorResponse{fiber.StatusNotFound, "USER_NOT_FOUND", "error.user_not_found"}},

	{services.ErrInvalidDate, errorResponse{fiber.StatusBadRequest, "INVALID_DATE", "error.invalid_date"}},
	{services.ErrInvalidMonth, errorResponse{fiber.StatusBadRequest, "INVALID_MONTH", "error.invalid_month"}},
	{services.ErrJournalFieldsRequired, errorResponse{fiber.StatusBadRequest, codeValidation, "error.journal_fields_required"}},
	{services.ErrInvalidMood, errorResponse{fiber.StatusBadRequest, "INVALID_MOOD", "error.invalid_mood"}},
	{services.ErrInvalidSleep, errorResponse{fiber.StatusBadRequest, "INVALID_SLEEP", "error.invalid_sleep"}},
	{services.ErrInvalidActivity, errorResponse{fiber.StatusBadRequest, "INVALID_ACTIVITY", "error.invalid_activity"}},
	{services.ErrEntryNotFound, errorResponse{fiber.StatusNotFound, "ENTRY_NOT_FOUND", "error.entry_not_found"}},
	{services.ErrNotEnoughHistory, errorResponse{fiber.StatusUnprocessableEntity, codeNotEnoughHistory, "error.not_enough_history"}},

	{services.ErrHabitFieldsRequired, errorResponse{fiber.StatusBadRequest, codeValidation, "error.habit_fields_required"}},
	{services.ErrHabitNotFound, errorResponse{fiber.StatusNotFound, "HABIT_NOT_FOUND", "error.habit_not_found"}},
	{services.ErrGoalFieldsRequired, errorResponse{fiber.StatusBadRequest, codeValidation, "error.goal_fields_required"}},
	{services.ErrGoalNotFound, errorResponse{fiber.StatusNotFound, "GOAL_NOT_FOUND", "error.goal_not_found"}},

	{services.ErrProductNotFound, errorResponse{fiber.StatusNotFound, codeProductNotFound, "error.product_not_found"}},
	{services.ErrInvalidProduct, errorResponse{fiber.StatusBadRequest, "INVALID_PRODUCT", "error.invalid_product"}},
	{services.ErrSlugTaken, errorResponse{fiber.StatusBadRequest, "SLUG_TAKEN", "error.slug_taken"}},

	{services.ErrOrderItemsRequired, errorResponse{fiber.StatusBadRequest, codeValidation, "error.order_items_required"}},
	{services.ErrInvalidQuantity, errorResponse{fiber.StatusBadRequest, "INVALID_QUANTITY", "error.invalid_quantity"}},
	{services.ErrProductUnavailable, errorResponse{fiber.StatusBadRequest, "PRODUCT_UNAVAILABLE", "error.product_unavailable"}},
	{services.ErrOrderNotFound, errorResponse{fiber.StatusNotFound, codeOrderNotFound, "error.order_not_found"}},

	{services.ErrOrderNotPayable, errorResponse{fiber.StatusBadRequest, "ORDER_NOT_PAYABLE", "error.order_not_payable"}},
	{services.ErrInvalidPaymentMethod, errorResponse{fiber.StatusBadRequest, "INVALID_PAYMENT_METHOD", "error.invalid_payment_method"}},
	{services.ErrMissingCardFields, errorResponse{fiber.StatusBadRequest, codeMissingCardFields, "error.missing_card_fields"}},
	{services.ErrCardFieldsNotAllowed, errorResponse{fiber.StatusBadRequest, "CARD_FIELDS_NOT_ALLOWED", "error.card_fields_not_allowed"}},
	{services.ErrInvalidCard, errorResponse{fiber.StatusBadRequest, "INVALID_CARD", "error.invalid_card"}},

	{services.ErrPrimaryAdminProtected, errorResponse{fiber.StatusForbidden, "PRIMARY_ADMIN_PROTECTED", "error.primary_admin_protected"}},
	{services.ErrLastAdmin, errorResponse{fiber.StatusBadRequest, "LAST_ADMIN", "error.last_admin"}},
	{services.ErrSelfDelete, errorResponse{fiber.StatusBadRequest, "SELF_DELETE", "error.self_delete"}},
	{services.ErrInvalidStatus, errorResponse{fiber.StatusBadRequest, "INVALID_STATUS", "error.invalid_status"}},
	{services.ErrInvalidStatusTransition, errorResponse{fiber.StatusBadRequest, "INVALID_STATUS_TRANSITION", "error.invalid_status_transition"}},

	{services.ErrFeedbackMessageRequired, errorResponse{fiber.StatusBadRequest, codeValidation, "error.feedback_message_required"}},
	{services.ErrInvalidRating, errorResponse{fiber.StatusBadRequest, "INVALID_RATING", "error.invalid_rating"}},
	{services.ErrFeedbackNotFound, errorResponse{fiber.StatusNotFound, "FEEDBACK_NOT_FOUND", "error.feedback_not_found"}},

	{services.ErrExportFromDateInvalid, errorResponse{fiber.StatusBadRequest, "INVALID_EXPORT_RANGE", "error.invalid_date"}},
	{services.ErrExportToDateInvalid, errorResponse{fiber.StatusBadRequest, "INVALID_EXPORT_RANGE", "error.invalid_date"}},
	{services.ErrExportRangeInvalid, errorResponse{fiber.StatusBadRequest, "INVALID_EXPORT_RANGE", "error.invalid_export_range"}},
}

func lookupErrorResponse(err error) (errorResponse, bool) {
	for _, candidate := range serviceErrorResponses {
		if errors.Is(err, candidate.target) {
			return candidate.response, true
		}
	}
	return errorResponse{}, false
}

// respondServiceError renders known service errors and logs the rest as 500.
func (handler *Handler) respondServiceError(c *fiber.Ctx, err error) error {
	if response, ok := lookupErrorResponse(err); ok {
		return handler.apiErrorCode(c, response.status, response.code, response.key)
	}

	handler.log.WithError(err).WithFields(logrus.Fields{
		"method": c.Method(),
		"path":   c.Path(),
	}).Error("request failed")
	return handler.apiErrorCode(c, fiber.StatusInternalServerError, codeInternal, "error.internal")
}
