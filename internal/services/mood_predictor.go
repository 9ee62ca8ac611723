package services

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/Yarik-eng/DailyMood/internal/models"
)

const (
	predictionHistorySize   = 30
	minWeekdaySamples       = 2
	trendThreshold          = 0.15
	trendAgreementBonus     = 0.1
	maxPredictionConfidence = 0.9
)

const (
	PredictionBasisWeekday = "weekday"
	PredictionBasisOverall = "overall"
	PredictionTrendRising  = "rising"
	PredictionTrendFalling = "falling"
	PredictionTrendStable  = "stable"
)

var ErrNotEnoughHistory = errors.New("not enough mood history")

// moodScale orders moods from saddest to happiest for trend nudges.
var moodScale = []string{models.MoodSad, models.MoodNeutral, models.MoodHappy}

type MoodHistoryReader interface {
	ListRecent(userID uint, limit int) ([]models.MoodEntry, error)
}

type MoodPrediction struct {
	Date           string  `json:"date"`
	Weekday        string  `json:"weekday"`
	Mood           string  `json:"mood"`
	Emoji          string  `json:"emoji"`
	BaseMood       string  `json:"base_mood"`
	Confidence     float64 `json:"confidence"`
	Basis          string  `json:"basis"`
	Trend          string  `json:"trend"`
	SampleSize     int     `json:"sample_size"`
	WeekdaySamples int     `json:"weekday_samples"`
}

type MoodPredictor struct {
	history MoodHistoryReader
}

func NewMoodPredictor(history MoodHistoryReader) *MoodPredictor {
	return &MoodPredictor{history: history}
}

func (predictor *MoodPredictor) PredictTomorrow(userID uint, now time.Time, location *time.Location) (MoodPrediction, error) {
	entries, err := predictor.history.ListRecent(userID, predictionHistorySize)
	if err != nil {
		return MoodPrediction{}, fmt.Errorf("load mood history: %w", err)
	}
	today := CalendarDay(now, location)
	return PredictMood(entries, today)
}

// PredictMood scores the history for the day after today. It is a heuristic:
// weekday plurality when there are enough same-weekday samples, overall
// plurality otherwise, shifted one step by a week-over-week trend.
func PredictMood(entries []models.MoodEntry, today time.Time) (MoodPrediction, error) {
	if len(entries) == 0 {
		return MoodPrediction{}, ErrNotEnoughHistory
	}

	history := make([]models.MoodEntry, len(entries))
	copy(history, entries)
	sort.SliceStable(history, func(i, j int) bool {
		if history[i].Date.Equal(history[j].Date) {
			return history[i].ID > history[j].ID
		}
		return history[i].Date.After(history[j].Date)
	})
	if len(history) > predictionHistorySize {
		history = history[:predictionHistorySize]
	}

	tomorrow := today.AddDate(0, 0, 1)
	sameWeekday := make([]models.MoodEntry, 0)
	for _, entry := range history {
		if entry.Date.Weekday() == tomorrow.Weekday() {
			sameWeekday = append(sameWeekday, entry)
		}
	}

	prediction := MoodPrediction{
		Date:           FormatDay(tomorrow),
		Weekday:        tomorrow.Weekday().String(),
		SampleSize:     len(history),
		WeekdaySamples: len(sameWeekday),
	}

	pool := history
	prediction.Basis = PredictionBasisOverall
	if len(sameWeekday) >= minWeekdaySamples {
		pool = sameWeekday
		prediction.Basis = PredictionBasisWeekday
	}

	baseMood, votes := pluralityMood(pool)
	prediction.BaseMood = baseMood
	prediction.Trend = moodTrend(history, today)

	confidence := float64(votes) / float64(len(pool))
	prediction.Mood = nudgeMood(baseMood, prediction.Trend)
	if prediction.Mood == baseMood && trendAgrees(baseMood, prediction.Trend) {
		confidence += trendAgreementBonus
	}
	if confidence > maxPredictionConfidence {
		confidence = maxPredictionConfidence
	}
	prediction.Confidence = roundTo(confidence, 2)
	prediction.Emoji = models.MoodEmoji(prediction.Mood)
	return prediction, nil
}

// moodTrend compares the average mood of the last 7 days with the 7 days
// before them; both windows need at least one entry.
func moodTrend(entries []models.MoodEntry, today time.Time) string {
	recentStart := today.AddDate(0, 0, -6)
	previousStart := today.AddDate(0, 0, -13)

	recentTotal, recentCount := 0.0, 0
	previousTotal, previousCount := 0.0, 0
	for _, entry := range entries {
		switch {
		case entry.Date.After(today):
			continue
		case !entry.Date.Before(recentStart):
			recentTotal += models.MoodValue(entry.Mood)
			recentCount++
		case !entry.Date.Before(previousStart):
			previousTotal += models.MoodValue(entry.Mood)
			previousCount++
		}
	}
	if recentCount == 0 || previousCount == 0 {
		return PredictionTrendStable
	}

	delta := recentTotal/float64(recentCount) - previousTotal/float64(previousCount)
	switch {
	case delta > trendThreshold:
		return PredictionTrendRising
	case delta < -trendThreshold:
		return PredictionTrendFalling
	default:
		return PredictionTrendStable
	}
}

func nudgeMood(mood string, trend string) string {
	position := -1
	for index, candidate := range moodScale {
		if candidate == mood {
			position = index
		}
	}
	if position < 0 {
		return mood
	}

	switch trend {
	case PredictionTrendRising:
		if position < len(moodScale)-1 {
			position++
		}
	case PredictionTrendFalling:
		if position > 0 {
			position--
		}
	}
	return moodScale[position]
}

func trendAgrees(mood string, trend string) bool {
	return (trend == PredictionTrendRising && mood == models.MoodHappy) ||
		(trend == PredictionTrendFalling && mood == models.MoodSad)
}
