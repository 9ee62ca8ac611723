package models

import "time"

type Habit struct {
	ID          uint              `gorm:"primaryKey" json:"id"`
	UserID      uint              `gorm:"not null;index" json:"user_id"`
	Name        string            `gorm:"not null" json:"name"`
	Type        string            `gorm:"not null" json:"type"`
	Completions []HabitCompletion `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt   time.Time         `json:"created_at"`
}

type HabitCompletion struct {
	ID      uint      `gorm:"primaryKey"`
	HabitID uint      `gorm:"not null;uniqueIndex:uidx_habit_date"`
	Date    time.Time `gorm:"type:date;not null;uniqueIndex:uidx_habit_date"`
}

type MonthlyGoal struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Name      string    `gorm:"not null" json:"name"`
	Deadline  time.Time `gorm:"type:date;not null" json:"-"`
	Completed bool      `gorm:"not null;default:false" json:"completed"`
	CreatedAt time.Time `json:"created_at"`
}
