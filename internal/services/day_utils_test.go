package services

import (
	"errors"
	"testing"
	"time"
)

func TestCalendarDayUsesLocalDate(t *testing.T) {
	location := time.FixedZone("UTC+3", 3*60*60)
	raw := time.Date(2026, 2, 1, 22, 35, 10, 0, time.UTC)

	got := CalendarDay(raw, location)
	want := time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("CalendarDay() = %s, want %s", got, want)
	}
	if nilLocation := CalendarDay(raw, nil); FormatDay(nilLocation) != "2026-02-01" {
		t.Fatalf("expected UTC fallback, got %s", FormatDay(nilLocation))
	}
}

func TestParseDayAndMonth(t *testing.T) {
	if _, err := ParseDay("2026-13-01"); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
	parsed, err := ParseDay(" 2026-03-09 ")
	if err != nil || FormatDay(parsed) != "2026-03-09" {
		t.Fatalf("ParseDay() = %s, %v", parsed, err)
	}

	start, end, err := ParseMonth("2026-12")
	if err != nil {
		t.Fatalf("ParseMonth() unexpected error: %v", err)
	}
	if FormatDay(start) != "2026-12-01" || FormatDay(end) != "2027-01-01" {
		t.Fatalf("ParseMonth() = %s..%s", FormatDay(start), FormatDay(end))
	}
	if _, _, err := ParseMonth("2026/12"); !errors.Is(err, ErrInvalidMonth) {
		t.Fatalf("expected ErrInvalidMonth, got %v", err)
	}
}
