package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Yarik-eng/DailyMood/internal/db"
	"github.com/Yarik-eng/DailyMood/internal/models"
)

const exportFilePrefix = "dailymood-journal"

var ExportCSVHeaders = []string{
	"Date",
	"Mood",
	"Emoji",
	"Title",
	"Content",
	"Activities",
	"Sleep hours",
	"Sleep quality",
}

type ExportEntryReader interface {
	ListByUser(userID uint, filter db.MoodEntryFilter) ([]models.MoodEntry, error)
}

type ExportService struct {
	entries ExportEntryReader
}

type ExportJSONEntry struct {
	Date         string   `json:"date"`
	Mood         string   `json:"mood"`
	Emoji        string   `json:"emoji"`
	Title        string   `json:"title"`
	Content      string   `json:"content"`
	Activities   []string `json:"activities"`
	SleepHours   *float64 `json:"sleep_hours"`
	SleepQuality *int     `json:"sleep_quality"`
}

type ExportCSVRow struct {
	Date         string
	Mood         string
	Emoji        string
	Title        string
	Content      string
	Activities   []string
	SleepHours   *float64
	SleepQuality *int
}

func NewExportService(entries ExportEntryReader) *ExportService {
	return &ExportService{entries: entries}
}

// LoadEntries returns entries in the inclusive range, oldest first.
func (service *ExportService) LoadEntries(userID uint, from *time.Time, to *time.Time) ([]models.MoodEntry, error) {
	filter := db.MoodEntryFilter{From: from}
	if to != nil {
		exclusive := to.AddDate(0, 0, 1)
		filter.To = &exclusive
	}

	entries, err := service.entries.ListByUser(userID, filter)
	if err != nil {
		return nil, fmt.Errorf("load export entries: %w", err)
	}
	for left, right := 0, len(entries)-1; left < right; left, right = left+1, right-1 {
		entries[left], entries[right] = entries[right], entries[left]
	}
	return entries, nil
}

func (service *ExportService) BuildJSONEntries(userID uint, from *time.Time, to *time.Time) ([]ExportJSONEntry, error) {
	entries, err := service.LoadEntries(userID, from, to)
	if err != nil {
		return nil, err
	}

	result := make([]ExportJSONEntry, 0, len(entries))
	for _, entry := range entries {
		result = append(result, ExportJSONEntry{
			Date:         FormatDay(entry.Date),
			Mood:         entry.Mood,
			Emoji:        models.MoodEmoji(entry.Mood),
			Title:        entry.Title,
			Content:      entry.Content,
			Activities:   entry.ActivityList(),
			SleepHours:   entry.SleepHours,
			SleepQuality: entry.SleepQuality,
		})
	}
	return result, nil
}

func (service *ExportService) BuildCSVRows(userID uint, from *time.Time, to *time.Time) ([]ExportCSVRow, error) {
	entries, err := service.LoadEntries(userID, from, to)
	if err != nil {
		return nil, err
	}

	rows := make([]ExportCSVRow, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, ExportCSVRow{
			Date:         FormatDay(entry.Date),
			Mood:         entry.Mood,
			Emoji:        models.MoodEmoji(entry.Mood),
			Title:        entry.Title,
			Content:      entry.Content,
			Activities:   entry.ActivityList(),
			SleepHours:   entry.SleepHours,
			SleepQuality: entry.SleepQuality,
		})
	}
	return rows, nil
}

func (row ExportCSVRow) Columns() []string {
	return []string{
		row.Date,
		row.Mood,
		row.Emoji,
		row.Title,
		row.Content,
		strings.Join(row.Activities, ", "),
		csvSleepHours(row.SleepHours),
		csvSleepQuality(row.SleepQuality),
	}
}

// ExportFilename names the attachment after the export day.
func ExportFilename(now time.Time, location *time.Location, extension string) string {
	return fmt.Sprintf("%s-%s.%s", exportFilePrefix, FormatDay(CalendarDay(now, location)), extension)
}

func csvSleepHours(hours *float64) string {
	if hours == nil {
		return ""
	}
	return strconv.FormatFloat(*hours, 'f', -1, 64)
}

func csvSleepQuality(quality *int) string {
	if quality == nil {
		return ""
	}
	return strconv.Itoa(*quality)
}
