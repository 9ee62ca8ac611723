package db

import "gorm.io/gorm"

type Repositories struct {
	Users       *UserRepository
	MoodEntries *MoodEntryRepository
	Products    *ProductRepository
	Orders      *OrderRepository
	Payments    *PaymentRepository
	Feedback    *FeedbackRepository
	Habits      *HabitRepository
	Goals       *GoalRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:       NewUserRepository(database),
		MoodEntries: NewMoodEntryRepository(database),
		Products:    NewProductRepository(database),
		Orders:      NewOrderRepository(database),
		Payments:    NewPaymentRepository(database),
		Feedback:    NewFeedbackRepository(database),
		Habits:      NewHabitRepository(database),
		Goals:       NewGoalRepository(database),
	}
}
