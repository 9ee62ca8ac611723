package services

import (
	"errors"
	"strings"
	"time"
)

const DayLayout = "2006-01-02"

const monthLayout = "2006-01"

var (
	ErrInvalidDate  = errors.New("invalid date")
	ErrInvalidMonth = errors.New("invalid month")
)

// CalendarDay returns the local calendar date of value as UTC midnight,
// which is how date-only columns are stored.
func CalendarDay(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	year, month, day := value.In(location).Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func ParseDay(raw string) (time.Time, error) {
	parsed, err := time.ParseInLocation(DayLayout, strings.TrimSpace(raw), time.UTC)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return parsed, nil
}

// ParseMonth returns the first day of the month and the first day of the next one.
func ParseMonth(raw string) (time.Time, time.Time, error) {
	parsed, err := time.ParseInLocation(monthLayout, strings.TrimSpace(raw), time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidMonth
	}
	return parsed, parsed.AddDate(0, 1, 0), nil
}

func FormatDay(value time.Time) string {
	return value.UTC().Format(DayLayout)
}
