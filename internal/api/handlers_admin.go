package api

import (
	"github.com/Yarik-eng/DailyMood/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type productPayload struct {
	Name        string          `json:"name"`
	Slug        string          `json:"slug"`
	Type        string          `json:"type"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	IsActive    *bool           `json:"is_active"`
}

func (payload productPayload) toInput() services.ProductInput {
	return services.ProductInput{
		Name:        payload.Name,
		Slug:        payload.Slug,
		Type:        payload.Type,
		Description: payload.Description,
		Price:       payload.Price,
		IsActive:    payload.IsActive,
	}
}

type orderStatusPayload struct {
	Status string `json:"status"`
}

func (handler *Handler) AdminDashboard(c *fiber.Ctx) error {
	handler.ensureDependencies()
	stats, err := handler.adminService.Dashboard(handler.currentTime())
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return successData(c, fiber.StatusOK, stats)
}

func (handler *Handler) AdminListUsers(c *fiber.Ctx) error {
	handler.ensureDependencies()
	users, err := handler.adminService.ListUsers()
	if err != nil {
		return handler.respondServiceError(c, err)
	}

	views := make([]fiber.Map, 0, len(users))
	for _, user := range users {
		views = append(views, fiber.Map{
			"id":                 user.ID,
			"email":              user.Email,
			"is_admin":           user.IsAdmin,
			"is_premium":         user.IsPremium,
			"premium_started_at": user.PremiumStartedAt,
			"premium_expires_at": user.PremiumExpiresAt,
			"created_at":         user.CreatedAt,
			"is_primary_admin":   handler.adminService.IsPrimaryAdmin(user),
		})
	}
	return successList(c, views, len(views))
}

func (handler *Handler) AdminToggleAdmin(c *fiber.Ctx) error {
	actor, ok := currentUser(c)
	if !ok {
		return handler.unauthorized(c)
	}
	targetID, ok := parseIDParam(c, "id")
	if !ok {
		return handler.apiErrorCode(c, fiber.StatusNotFound, "USER_NOT_FOUND", "error.user_not_found")
	}

	handler.ensureDependencies()
	user, err := handler.adminService.ToggleAdmin(actor.ID, targetID)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return successData(c, fiber.StatusOK, user)
}

func (handler *Handler) AdminTogglePremium(c *fiber.Ctx) error {
	actor, ok := currentUser(c)
	if !ok {
		return handler.unauthorized(c)
	}
	targetID, ok := parseIDParam(c, "id")
	if !ok {
		return handler.apiErrorCode(c, fiber.StatusNotFound, "USER_NOT_FOUND", "error.user_not_found")
	}

	handler.ensureDependencies()
	user, err := handler.adminService.TogglePremium(actor.ID, targetID, handler.currentTime())
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return successData(c, fiber.StatusOK, user)
}

func (handler *Handler) AdminDeleteUser(c *fiber.Ctx) error {
	actor, ok := currentUser(c)
	if !ok {
		return handler.unauthorized(c)
	}
	targetID, ok := parseIDParam(c, "id")
	if !ok {
		return handler.apiErrorCode(c, fiber.StatusNotFound, "USER_NOT_FOUND", "error.user_not_found")
	}

	handler.ensureDependencies()
	if err := handler.adminService.DeleteUser(actor.ID, targetID); err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"status": statusSuccess})
}

func (handler *Handler) AdminListOrders(c *fiber.Ctx) error {
	handler.ensureDependencies()
	orders, err := handler.adminService.ListOrders(c.Query("status"))
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return successList(c, orders, len(orders))
}

func (handler *Handler) AdminUpdateOrderStatus(c *fiber.Ctx) error {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return handler.apiErrorCode(c, fiber.StatusNotFound, codeOrderNotFound, "error.order_not_found")
	}
	payload := orderStatusPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return handler.invalidInput(c)
	}

	handler.ensureDependencies()
	order, err := handler.adminService.UpdateOrderStatus(orderID, payload.Status)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return successData(c, fiber.StatusOK, order)
}

func (handler *Handler) AdminListProducts(c *fiber.Ctx) error {
	handler.ensureDependencies()
	products, err := handler.catalogService.ListAll()
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return successList(c, products, len(products))
}

func (handler *Handler) AdminCreateProduct(c *fiber.Ctx) error {
	payload := productPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return handler.invalidInput(c)
	}

	handler.ensureDependencies()
	product, err := handler.catalogService.Create(payload.toInput(), handler.currentTime())
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return successData(c, fiber.StatusCreated, product)
}

func (handler *Handler) AdminUpdateProduct(c *fiber.Ctx) error {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return handler.apiErrorCode(c, fiber.StatusNotFound, codeProductNotFound, "error.product_not_found")
	}
	payload := productPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return handler.invalidInput(c)
	}

	handler.ensureDependencies()
	product, err := handler.catalogService.Update(productID, payload.toInput())
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return successData(c, fiber.StatusOK, product)
}

func (handler *Handler) AdminDeleteProduct(c *fiber.Ctx) error {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return handler.apiErrorCode(c, fiber.StatusNotFound, codeProductNotFound, "error.product_not_found")
	}

	handler.ensureDependencies()
	if err := handler.catalogService.Deactivate(productID); err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"status": statusSuccess})
}

func (handler *Handler) AdminListFeedback(c *fiber.Ctx) error {
	handler.ensureDependencies()
	items, err := handler.feedbackSvc.List(0)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return successList(c, items, len(items))
}
