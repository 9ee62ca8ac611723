package api

import (
	"fmt"
	"strings"

	"github.com/Yarik-eng/DailyMood/internal/validation"
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) parseAndValidate(c *fiber.Ctx, target any) (bool, error) {
	if err := c.BodyParser(target); err != nil {
		return false, handler.invalidInput(c)
	}
	if err := handler.validator.Struct(target); err != nil {
		return false, handler.validationFailed(c, err, codeValidation)
	}
	return true, nil
}

func (handler *Handler) validationFailed(c *fiber.Ctx, err error, code string) error {
	fieldErrors, ok := validation.AsErrors(err)
	if !ok {
		return handler.respondServiceError(c, err)
	}

	messages := make(map[string]string, len(fieldErrors))
	for _, fieldError := range fieldErrors {
		if _, exists := messages[fieldError.Field]; exists {
			continue
		}
		messages[fieldError.Field] = handler.validationMessage(c, fieldError)
	}

	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"status":  statusError,
		"message": handler.translate(c, "error.validation_failed"),
		"code":    code,
		"errors":  messages,
	})
}

func (handler *Handler) validationMessage(c *fiber.Ctx, fieldError validation.FieldError) string {
	key := "validation." + fieldError.Tag
	message := handler.translate(c, key)
	if message == key {
		message = handler.translate(c, "validation.invalid")
	}
	if !strings.Contains(message, "%s") {
		return message
	}

	param := fieldError.Param
	switch fieldError.Tag {
	case "datetime":
		param = "YYYY-MM-DD"
	case "oneof":
		param = strings.Join(strings.Fields(param), ", ")
	}
	return fmt.Sprintf(message, param)
}

func (handler *Handler) V2ListProducts(c *fiber.Ctx) error {
	handler.ensureDependencies()
	products, err := handler.catalogService.ListActive()
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return successList(c, products, len(products))
}

func (handler *Handler) V2GetProduct(c *fiber.Ctx) error {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return handler.apiErrorCode(c, fiber.StatusNotFound, codeProductNotFound, "error.product_not_found")
	}

	handler.ensureDependencies()
	product, err := handler.catalogService.GetActive(productID)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return successData(c, fiber.StatusOK, product)
}

func (handler *Handler) V2CreateOrder(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.unauthorized(c)
	}

	request := v2OrderRequest{}
	if valid, err := handler.parseAndValidate(c, &request); !valid {
		return err
	}

	handler.ensureDependencies()
	order, err := handler.orderService.Create(user.ID, request.toLines(), handler.currentTime())
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":  statusSuccess,
		"message": handler.translate(c, "order.created"),
		"data":    order,
	})
}

func (handler *Handler) V2ListOrders(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.unauthorized(c)
	}

	handler.ensureDependencies()
	orders, err := handler.orderService.ListForUser(user.ID)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return successList(c, orders, len(orders))
}

func (handler *Handler) V2GetOrder(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.unauthorized(c)
	}
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return handler.apiErrorCode(c, fiber.StatusNotFound, codeOrderNotFound, "error.order_not_found")
	}

	handler.ensureDependencies()
	order, err := handler.orderService.GetForUser(user.ID, orderID)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return successData(c, fiber.StatusOK, order)
}

func (handler *Handler) V2CreatePayment(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.unauthorized(c)
	}

	request := v2PaymentRequest{}
	if err := c.BodyParser(&request); err != nil {
		return handler.invalidInput(c)
	}
	if err := handler.validator.Struct(&request); err != nil {
		code := codeValidation
		if missingCardFields(err) {
			code = codeMissingCardFields
		}
		return handler.validationFailed(c, err, code)
	}

	handler.ensureDependencies()
	result, err := handler.paymentService.Pay(user.ID, request.toServiceRequest(), handler.currentTime())
	if err != nil {
		return handler.respondServiceError(c, err)
	}

	status := fiber.StatusCreated
	messageKey := "payment.completed"
	if result.Idempotent {
		status = fiber.StatusOK
		messageKey = "payment.already_paid"
	}
	return c.Status(status).JSON(fiber.Map{
		"status":  statusSuccess,
		"message": handler.translate(c, messageKey),
		"data":    newPaymentView(result),
	})
}

func missingCardFields(err error) bool {
	fieldErrors, ok := validation.AsErrors(err)
	if !ok {
		return false
	}
	for _, fieldError := range fieldErrors {
		if fieldError.Tag == "required" && strings.HasPrefix(fieldError.Field, "card_") {
			return true
		}
	}
	return false
}

func (handler *Handler) V2CreateFeedback(c *fiber.Ctx) error {
	request := v2FeedbackRequest{}
	if valid, err := handler.parseAndValidate(c, &request); !valid {
		return err
	}

	handler.ensureDependencies()
	feedback, err := handler.feedbackSvc.Create(request.toInput(), handler.currentTime())
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":  statusSuccess,
		"message": handler.translate(c, "feedback.saved"),
		"data":    feedback,
	})
}

func (handler *Handler) V2ListFeedback(c *fiber.Ctx) error {
	handler.ensureDependencies()
	items, err := handler.feedbackSvc.List(publicFeedbackLimit)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return successList(c, items, len(items))
}

func (handler *Handler) V2CreateJournalEntry(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.unauthorized(c)
	}

	request := v2JournalRequest{}
	if valid, err := handler.parseAndValidate(c, &request); !valid {
		return err
	}

	handler.ensureDependencies()
	entry, err := handler.journalService.Create(user.ID, request.toInput())
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":  statusSuccess,
		"message": handler.translate(c, "journal.saved"),
		"data":    newEntryView(entry),
	})
}

func (handler *Handler) V2Profile(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.unauthorized(c)
	}
	return successData(c, fiber.StatusOK, user)
}
