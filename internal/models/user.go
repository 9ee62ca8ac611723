package models

import "time"

type User struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	Email            string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash     string     `gorm:"not null" json:"-"`
	IsAdmin          bool       `gorm:"not null;default:false" json:"is_admin"`
	IsPremium        bool       `gorm:"not null;default:false" json:"is_premium"`
	PremiumStartedAt *time.Time `json:"premium_started_at"`
	PremiumExpiresAt *time.Time `json:"premium_expires_at"`
	Avatar           string     `json:"avatar"`
	CreatedAt        time.Time  `gorm:"not null" json:"created_at"`
}

// HasActivePremium reports whether the premium flag is set and the window, if any, has not ended.
func (user User) HasActivePremium(now time.Time) bool {
	if !user.IsPremium {
		return false
	}
	if user.PremiumExpiresAt == nil {
		return true
	}
	return now.Before(*user.PremiumExpiresAt)
}
