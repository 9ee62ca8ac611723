package api

import (
	"github.com/Yarik-eng/DailyMood/internal/db"
	"github.com/Yarik-eng/DailyMood/internal/services"
	"gorm.io/gorm"
)

func (handler *Handler) withDependencies(database *gorm.DB) *Handler {
	handler.repositories = db.NewRepositories(database)
	handler.buildServices()
	return handler
}

func (handler *Handler) ensureDependencies() {
	if handler.repositories == nil {
		if handler.db == nil {
			return
		}
		handler.repositories = db.NewRepositories(handler.db)
	}
	handler.buildServices()
}

func (handler *Handler) buildServices() {
	repositories := handler.repositories

	if handler.authService == nil {
		handler.authService = services.NewAuthService(repositories.Users, handler.logger)
	}
	if handler.journalService == nil {
		handler.journalService = services.NewJournalService(repositories.MoodEntries, handler.logger)
	}
	if handler.statsService == nil {
		handler.statsService = services.NewStatsService(repositories.MoodEntries)
	}
	if handler.predictor == nil {
		handler.predictor = services.NewMoodPredictor(repositories.MoodEntries)
	}
	if handler.habitService == nil {
		handler.habitService = services.NewHabitService(repositories.Habits)
	}
	if handler.goalService == nil {
		handler.goalService = services.NewGoalService(repositories.Goals)
	}
	if handler.catalogService == nil {
		handler.catalogService = services.NewCatalogService(repositories.Products, handler.logger)
	}
	if handler.orderService == nil {
		handler.orderService = services.NewOrderService(repositories.Orders, repositories.Products, handler.logger)
	}
	if handler.paymentService == nil {
		handler.paymentService = services.NewPaymentService(repositories.Payments, repositories.Orders, repositories.Users, handler.logger)
	}
	if handler.adminService == nil {
		handler.adminService = services.NewAdminService(repositories.Users, repositories.Orders, repositories.Payments, handler.primaryAdminEmail, handler.logger)
	}
	if handler.feedbackSvc == nil {
		handler.feedbackSvc = services.NewFeedbackService(repositories.Feedback)
	}
	if handler.exportService == nil {
		handler.exportService = services.NewExportService(repositories.MoodEntries)
	}
}
