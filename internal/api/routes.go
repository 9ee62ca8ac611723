package api

import (
	"github.com/Yarik-eng/DailyMood/internal/metrics"
	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Use(handler.SecurityHeaders)
	app.Use("/auth", handler.RateLimit)
	app.Use("/api", handler.RateLimit)

	app.Get("/health", handler.Health)
	app.Get(metrics.MetricsPath, metrics.Handler())
	app.Get("/lang/:lang", handler.SetLanguage)

	registerAuthRoutes(app, handler)
	registerAppRoutes(app, handler)
	registerAdminRoutes(app, handler)
	registerV1Routes(app, handler)
	registerV2Routes(app, handler)
}

func registerAuthRoutes(app *fiber.App, handler *Handler) {
	auth := app.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.Logout)
	auth.Get("/me", handler.AuthRequired, handler.Profile)
}

func registerAppRoutes(app *fiber.App, handler *Handler) {
	api := app.Group("/api")

	api.Get("/journal", handler.AuthRequired, handler.ListJournal)
	api.Post("/journal", handler.AuthRequired, handler.CreateJournalEntry)
	api.Put("/journal/:id", handler.AuthRequired, handler.UpdateJournalEntry)
	api.Delete("/journal/:id", handler.AuthRequired, handler.DeleteJournalEntry)

	api.Get("/statistics", handler.AuthRequired, handler.Statistics)
	api.Get("/premium/predict", handler.AuthRequired, handler.PremiumOnly, handler.PredictMood)

	api.Get("/habits", handler.AuthRequired, handler.ListHabits)
	api.Post("/habits", handler.AuthRequired, handler.CreateHabit)
	api.Delete("/habits/:id", handler.AuthRequired, handler.DeleteHabit)
	api.Post("/habits/:id/toggle", handler.AuthRequired, handler.ToggleHabit)

	api.Get("/goals", handler.AuthRequired, handler.ListGoals)
	api.Post("/goals", handler.AuthRequired, handler.CreateGoal)
	api.Delete("/goals/:id", handler.AuthRequired, handler.DeleteGoal)
	api.Post("/goals/:id/toggle", handler.AuthRequired, handler.ToggleGoal)

	api.Get("/feedback", handler.ListFeedback)
	api.Post("/feedback", handler.CreateFeedback)
	api.Delete("/feedback/:id", handler.AuthRequired, handler.AdminOnly, handler.DeleteFeedback)

	api.Get("/export/csv", handler.AuthRequired, handler.ExportCSV)
	api.Get("/export/json", handler.AuthRequired, handler.ExportJSON)
}

func registerAdminRoutes(app *fiber.App, handler *Handler) {
	admin := app.Group("/api/admin", handler.AuthRequired, handler.AdminOnly)

	admin.Get("/dashboard", handler.AdminDashboard)

	admin.Get("/users", handler.AdminListUsers)
	admin.Post("/users/:id/toggle-admin", handler.AdminToggleAdmin)
	admin.Post("/users/:id/toggle-premium", handler.AdminTogglePremium)
	admin.Delete("/users/:id", handler.AdminDeleteUser)

	admin.Get("/orders", handler.AdminListOrders)
	admin.Put("/orders/:id/status", handler.AdminUpdateOrderStatus)

	admin.Get("/products", handler.AdminListProducts)
	admin.Post("/products", handler.AdminCreateProduct)
	admin.Put("/products/:id", handler.AdminUpdateProduct)
	admin.Delete("/products/:id", handler.AdminDeleteProduct)

	admin.Get("/feedback", handler.AdminListFeedback)
	admin.Delete("/feedback/:id", handler.DeleteFeedback)
}

func registerV1Routes(app *fiber.App, handler *Handler) {
	v1 := app.Group("/api/v1")

	v1.Get("/products", handler.V1ListProducts)
	v1.Post("/orders", handler.AuthRequired, handler.V1CreateOrder)
	v1.Post("/feedback", handler.V1CreateFeedback)
	v1.Get("/profile", handler.AuthRequired, handler.Profile)
	v1.Get("/journal", handler.AuthRequired, handler.ListJournal)
	v1.Post("/journal", handler.AuthRequired, handler.CreateJournalEntry)
}

func registerV2Routes(app *fiber.App, handler *Handler) {
	v2 := app.Group("/api/v2")

	v2.Get("/products", handler.V2ListProducts)
	v2.Get("/products/:id", handler.V2GetProduct)
	v2.Post("/orders", handler.AuthRequired, handler.V2CreateOrder)
	v2.Get("/orders", handler.AuthRequired, handler.V2ListOrders)
	v2.Get("/orders/:id", handler.AuthRequired, handler.V2GetOrder)
	v2.Post("/payments", handler.AuthRequired, handler.V2CreatePayment)
	v2.Post("/feedback", handler.V2CreateFeedback)
	v2.Get("/feedback", handler.V2ListFeedback)
	v2.Post("/journal", handler.AuthRequired, handler.V2CreateJournalEntry)
	v2.Get("/profile", handler.AuthRequired, handler.V2Profile)
}
