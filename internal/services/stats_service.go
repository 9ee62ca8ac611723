package services

import (
	"fmt"
	"math"
	"time"

	"github.com/Yarik-eng/DailyMood/internal/db"
	"github.com/Yarik-eng/DailyMood/internal/models"
)

const statisticsWindowDays = 30

type StatsEntryReader interface {
	ListByUser(userID uint, filter db.MoodEntryFilter) ([]models.MoodEntry, error)
}

type MoodStatistics struct {
	From                string         `json:"from"`
	To                  string         `json:"to"`
	TotalEntries        int            `json:"total_entries"`
	MoodCounts          map[string]int `json:"mood_counts"`
	MostCommonMood      string         `json:"most_common_mood"`
	AverageMood         float64        `json:"average_mood"`
	AverageMoodCategory string         `json:"average_mood_category"`
	AverageSleepHours   *float64       `json:"average_sleep_hours"`
	// Dates and Values form the trend series, one point per entry, oldest
	// first. Values use the MoodValue scale.
	Dates  []string  `json:"dates"`
	Values []float64 `json:"values"`
}

type StatsService struct {
	entries StatsEntryReader
}

func NewStatsService(entries StatsEntryReader) *StatsService {
	return &StatsService{entries: entries}
}

// Summary covers the trailing window ending today, inclusive.
func (service *StatsService) Summary(userID uint, now time.Time, location *time.Location) (MoodStatistics, error) {
	today := CalendarDay(now, location)
	from := today.AddDate(0, 0, -(statisticsWindowDays - 1))
	to := today.AddDate(0, 0, 1)

	entries, err := service.entries.ListByUser(userID, db.MoodEntryFilter{From: &from, To: &to})
	if err != nil {
		return MoodStatistics{}, fmt.Errorf("load statistics entries: %w", err)
	}

	stats := MoodStatistics{
		From:         FormatDay(from),
		To:           FormatDay(today),
		TotalEntries: len(entries),
		MoodCounts:   map[string]int{},
		Dates:        make([]string, 0, len(entries)),
		Values:       make([]float64, 0, len(entries)),
	}
	for _, mood := range models.ValidMoods {
		stats.MoodCounts[mood] = 0
	}
	if len(entries) == 0 {
		return stats, nil
	}

	for index := len(entries) - 1; index >= 0; index-- {
		stats.Dates = append(stats.Dates, FormatDay(entries[index].Date))
		stats.Values = append(stats.Values, models.MoodValue(entries[index].Mood))
	}

	moodTotal := 0.0
	sleepTotal := 0.0
	sleepSamples := 0
	for _, entry := range entries {
		stats.MoodCounts[entry.Mood]++
		moodTotal += models.MoodValue(entry.Mood)
		if entry.SleepHours != nil {
			sleepTotal += *entry.SleepHours
			sleepSamples++
		}
	}

	stats.MostCommonMood, _ = pluralityMood(entries)
	stats.AverageMood = roundTo(moodTotal/float64(len(entries)), 2)
	stats.AverageMoodCategory = MoodCategory(moodTotal / float64(len(entries)))
	if sleepSamples > 0 {
		average := roundTo(sleepTotal/float64(sleepSamples), 1)
		stats.AverageSleepHours = &average
	}
	return stats, nil
}

func MoodCategory(average float64) string {
	switch {
	case average > 0.66:
		return models.MoodHappy
	case average > 0.33:
		return models.MoodNeutral
	default:
		return models.MoodSad
	}
}

// pluralityMood expects entries newest first; ties go to the mood seen most recently.
func pluralityMood(entries []models.MoodEntry) (string, int) {
	counts := map[string]int{}
	order := make([]string, 0, len(models.ValidMoods))
	for _, entry := range entries {
		if _, seen := counts[entry.Mood]; !seen {
			order = append(order, entry.Mood)
		}
		counts[entry.Mood]++
	}

	winner := ""
	best := 0
	for _, mood := range order {
		if counts[mood] > best {
			winner = mood
			best = counts[mood]
		}
	}
	return winner, best
}

func roundTo(value float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(value*scale) / scale
}
