package services

import (
	"errors"
	"testing"

	"github.com/Yarik-eng/DailyMood/internal/logging"
	"github.com/Yarik-eng/DailyMood/internal/models"
)

func TestJournalServiceCreateNormalizesInput(t *testing.T) {
	entries := newStubEntryRepo()
	service := NewJournalService(entries, logging.Discard())

	entry, err := service.Create(1, JournalEntryInput{
		Mood:         models.MoodHappy,
		Date:         "2026-04-02",
		Title:        "  Good day ",
		Activities:   []string{" walk ", "", "read"},
		SleepHours:   floatPointer(7.5),
		SleepQuality: intPointer(4),
	})
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}
	if entry.Title != "Good day" || entry.Activities != "walk,read" {
		t.Fatalf("unexpected normalized entry: %+v", entry)
	}
	if FormatDay(entry.Date) != "2026-04-02" {
		t.Fatalf("unexpected entry date %s", FormatDay(entry.Date))
	}
}

func TestJournalServiceCreateValidation(t *testing.T) {
	service := NewJournalService(newStubEntryRepo(), logging.Discard())

	tests := []struct {
		name  string
		input JournalEntryInput
		want  error
	}{
		{name: "missing title", input: JournalEntryInput{Mood: "happy", Date: "2026-04-02"}, want: ErrJournalFieldsRequired},
		{name: "unknown mood", input: JournalEntryInput{Mood: "angry", Date: "2026-04-02", Title: "x"}, want: ErrInvalidMood},
		{name: "bad date", input: JournalEntryInput{Mood: "sad", Date: "04/02/2026", Title: "x"}, want: ErrInvalidDate},
		{name: "sleep hours out of range", input: JournalEntryInput{Mood: "sad", Date: "2026-04-02", Title: "x", SleepHours: floatPointer(25)}, want: ErrInvalidSleep},
		{name: "sleep quality out of range", input: JournalEntryInput{Mood: "sad", Date: "2026-04-02", Title: "x", SleepQuality: intPointer(0)}, want: ErrInvalidSleep},
		{name: "comma inside activity", input: JournalEntryInput{Mood: "sad", Date: "2026-04-02", Title: "x", Activities: []string{"a,b", " c "}}, want: ErrInvalidActivity},
	}
	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			if _, err := service.Create(1, testCase.input); !errors.Is(err, testCase.want) {
				t.Fatalf("Create() error = %v, want %v", err, testCase.want)
			}
		})
	}
}

func TestJournalServiceListFiltersByMonthAndMood(t *testing.T) {
	entries := newStubEntryRepo(
		models.MoodEntry{UserID: 1, Mood: "happy", Date: day("2026-03-31"), Title: "a"},
		models.MoodEntry{UserID: 1, Mood: "sad", Date: day("2026-04-01"), Title: "b"},
		models.MoodEntry{UserID: 1, Mood: "happy", Date: day("2026-04-15"), Title: "c"},
		models.MoodEntry{UserID: 2, Mood: "happy", Date: day("2026-04-16"), Title: "d"},
	)
	service := NewJournalService(entries, logging.Discard())

	april, err := service.List(1, "2026-04", "")
	if err != nil {
		t.Fatalf("List() unexpected error: %v", err)
	}
	if len(april) != 2 || april[0].Title != "c" || april[1].Title != "b" {
		t.Fatalf("expected april entries newest first, got %+v", april)
	}

	happy, err := service.List(1, "", "happy")
	if err != nil {
		t.Fatalf("List() unexpected error: %v", err)
	}
	if len(happy) != 2 {
		t.Fatalf("expected 2 happy entries, got %d", len(happy))
	}

	if _, err := service.List(1, "2026-4", ""); !errors.Is(err, ErrInvalidMonth) {
		t.Fatalf("expected ErrInvalidMonth, got %v", err)
	}
	if _, err := service.List(1, "", "meh"); !errors.Is(err, ErrInvalidMood) {
		t.Fatalf("expected ErrInvalidMood, got %v", err)
	}
}

func TestJournalServiceUpdateAndDeleteScopeToOwner(t *testing.T) {
	entries := newStubEntryRepo(models.MoodEntry{ID: 7, UserID: 1, Mood: "neutral", Date: day("2026-04-01"), Title: "before"})
	service := NewJournalService(entries, logging.Discard())

	if _, err := service.Update(2, 7, JournalEntryPatch{Title: stringPointer("stolen")}); !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound for foreign entry, got %v", err)
	}

	updated, err := service.Update(1, 7, JournalEntryPatch{Mood: stringPointer("happy")})
	if err != nil {
		t.Fatalf("Update() unexpected error: %v", err)
	}
	if updated.Mood != "happy" || updated.Title != "before" {
		t.Fatalf("expected partial update, got %+v", updated)
	}
	if _, err := service.Update(1, 7, JournalEntryPatch{Title: stringPointer("  ")}); !errors.Is(err, ErrJournalFieldsRequired) {
		t.Fatalf("expected ErrJournalFieldsRequired for blank title, got %v", err)
	}

	if err := service.Delete(2, 7); !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound for foreign delete, got %v", err)
	}
	if err := service.Delete(1, 7); err != nil {
		t.Fatalf("Delete() unexpected error: %v", err)
	}
}
