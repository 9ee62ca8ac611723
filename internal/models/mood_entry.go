package models

import (
	"strings"
	"time"
)

const (
	MoodHappy   = "happy"
	MoodNeutral = "neutral"
	MoodSad     = "sad"
)

var ValidMoods = []string{MoodHappy, MoodNeutral, MoodSad}

type MoodEntry struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;index" json:"user_id"`
	Mood         string    `gorm:"not null" json:"mood"`
	Date         time.Time `gorm:"type:date;not null;index" json:"-"`
	Title        string    `gorm:"not null" json:"title"`
	Content      string    `json:"content"`
	Activities   string    `json:"-"`
	SleepHours   *float64  `json:"sleep_hours"`
	SleepQuality *int      `json:"sleep_quality"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func IsValidMood(mood string) bool {
	for _, candidate := range ValidMoods {
		if candidate == mood {
			return true
		}
	}
	return false
}

func MoodEmoji(mood string) string {
	switch mood {
	case MoodHappy:
		return "😊"
	case MoodNeutral:
		return "😐"
	case MoodSad:
		return "😢"
	default:
		return "❓"
	}
}

// MoodValue maps a mood onto the 0..1 scale used by statistics and prediction.
func MoodValue(mood string) float64 {
	switch mood {
	case MoodHappy:
		return 1
	case MoodNeutral:
		return 0.5
	default:
		return 0
	}
}

// ActivitySeparator joins activities in the stored column.
const ActivitySeparator = ","

func JoinActivities(activities []string) string {
	cleaned := make([]string, 0, len(activities))
	for _, activity := range activities {
		trimmed := strings.TrimSpace(activity)
		if trimmed == "" {
			continue
		}
		cleaned = append(cleaned, trimmed)
	}
	return strings.Join(cleaned, ActivitySeparator)
}

func (entry MoodEntry) ActivityList() []string {
	if strings.TrimSpace(entry.Activities) == "" {
		return []string{}
	}
	parts := strings.Split(entry.Activities, ActivitySeparator)
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
