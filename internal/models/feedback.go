package models

import "time"

type Feedback struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `gorm:"not null" json:"message"`
	Rating    *int      `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}

func (Feedback) TableName() string {
	return "feedback"
}
