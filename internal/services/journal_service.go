package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Yarik-eng/DailyMood/internal/db"
	"github.com/Yarik-eng/DailyMood/internal/logging"
	"github.com/Yarik-eng/DailyMood/internal/models"
	"github.com/sirupsen/logrus"
)

var (
	ErrJournalFieldsRequired = errors.New("journal mood, date and title are required")
	ErrInvalidMood           = errors.New("invalid mood")
	ErrInvalidSleep          = errors.New("invalid sleep values")
	ErrInvalidActivity       = errors.New("activities must not contain commas")
	ErrEntryNotFound         = errors.New("journal entry not found")
)

type JournalEntryRepository interface {
	ListByUser(userID uint, filter db.MoodEntryFilter) ([]models.MoodEntry, error)
	FindByIDForUser(userID uint, entryID uint) (models.MoodEntry, bool, error)
	Create(entry *models.MoodEntry) error
	Save(entry *models.MoodEntry) error
	DeleteForUser(userID uint, entryID uint) (bool, error)
}

type JournalEntryInput struct {
	Mood         string
	Date         string
	Title        string
	Content      string
	Activities   []string
	SleepHours   *float64
	SleepQuality *int
}

// JournalEntryPatch carries only the fields the caller sent.
type JournalEntryPatch struct {
	Mood         *string
	Date         *string
	Title        *string
	Content      *string
	Activities   *[]string
	SleepHours   *float64
	SleepQuality *int
}

type JournalService struct {
	entries JournalEntryRepository
	log     *logrus.Entry
}

func NewJournalService(entries JournalEntryRepository, logger logrus.FieldLogger) *JournalService {
	return &JournalService{entries: entries, log: logging.Component(logger, "journal")}
}

func (service *JournalService) List(userID uint, month string, mood string) ([]models.MoodEntry, error) {
	filter := db.MoodEntryFilter{}
	if strings.TrimSpace(month) != "" {
		from, to, err := ParseMonth(month)
		if err != nil {
			return nil, err
		}
		filter.From = &from
		filter.To = &to
	}
	if mood = strings.TrimSpace(mood); mood != "" {
		if !models.IsValidMood(mood) {
			return nil, ErrInvalidMood
		}
		filter.Mood = mood
	}

	entries, err := service.entries.ListByUser(userID, filter)
	if err != nil {
		return nil, fmt.Errorf("list journal entries: %w", err)
	}
	return entries, nil
}

func (service *JournalService) Create(userID uint, input JournalEntryInput) (models.MoodEntry, error) {
	mood := strings.TrimSpace(input.Mood)
	title := strings.TrimSpace(input.Title)
	if mood == "" || strings.TrimSpace(input.Date) == "" || title == "" {
		return models.MoodEntry{}, ErrJournalFieldsRequired
	}
	if !models.IsValidMood(mood) {
		return models.MoodEntry{}, ErrInvalidMood
	}
	day, err := ParseDay(input.Date)
	if err != nil {
		return models.MoodEntry{}, err
	}
	if err := validateSleep(input.SleepHours, input.SleepQuality); err != nil {
		return models.MoodEntry{}, err
	}
	if err := validateActivities(input.Activities); err != nil {
		return models.MoodEntry{}, err
	}

	entry := models.MoodEntry{
		UserID:       userID,
		Mood:         mood,
		Date:         day,
		Title:        title,
		Content:      strings.TrimSpace(input.Content),
		Activities:   models.JoinActivities(input.Activities),
		SleepHours:   input.SleepHours,
		SleepQuality: input.SleepQuality,
	}
	if err := service.entries.Create(&entry); err != nil {
		return models.MoodEntry{}, fmt.Errorf("create journal entry: %w", err)
	}

	service.log.WithFields(logrus.Fields{"user_id": userID, "entry_id": entry.ID}).Debug("journal entry created")
	return entry, nil
}

func (service *JournalService) Update(userID uint, entryID uint, patch JournalEntryPatch) (models.MoodEntry, error) {
	entry, found, err := service.entries.FindByIDForUser(userID, entryID)
	if err != nil {
		return models.MoodEntry{}, fmt.Errorf("load journal entry: %w", err)
	}
	if !found {
		return models.MoodEntry{}, ErrEntryNotFound
	}

	if patch.Mood != nil {
		mood := strings.TrimSpace(*patch.Mood)
		if !models.IsValidMood(mood) {
			return models.MoodEntry{}, ErrInvalidMood
		}
		entry.Mood = mood
	}
	if patch.Date != nil {
		day, err := ParseDay(*patch.Date)
		if err != nil {
			return models.MoodEntry{}, err
		}
		entry.Date = day
	}
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return models.MoodEntry{}, ErrJournalFieldsRequired
		}
		entry.Title = title
	}
	if patch.Content != nil {
		entry.Content = strings.TrimSpace(*patch.Content)
	}
	if patch.Activities != nil {
		if err := validateActivities(*patch.Activities); err != nil {
			return models.MoodEntry{}, err
		}
		entry.Activities = models.JoinActivities(*patch.Activities)
	}
	if patch.SleepHours != nil {
		entry.SleepHours = patch.SleepHours
	}
	if patch.SleepQuality != nil {
		entry.SleepQuality = patch.SleepQuality
	}
	if err := validateSleep(entry.SleepHours, entry.SleepQuality); err != nil {
		return models.MoodEntry{}, err
	}

	if err := service.entries.Save(&entry); err != nil {
		return models.MoodEntry{}, fmt.Errorf("save journal entry: %w", err)
	}
	return entry, nil
}

func (service *JournalService) Delete(userID uint, entryID uint) error {
	deleted, err := service.entries.DeleteForUser(userID, entryID)
	if err != nil {
		return fmt.Errorf("delete journal entry: %w", err)
	}
	if !deleted {
		return ErrEntryNotFound
	}
	return nil
}

// validateActivities rejects separators inside a single activity, which
// would split it in two once stored.
func validateActivities(activities []string) error {
	for _, activity := range activities {
		if strings.Contains(activity, models.ActivitySeparator) {
			return ErrInvalidActivity
		}
	}
	return nil
}

func validateSleep(hours *float64, quality *int) error {
	if hours != nil && (*hours < 0 || *hours > 24) {
		return ErrInvalidSleep
	}
	if quality != nil && (*quality < 1 || *quality > 5) {
		return ErrInvalidSleep
	}
	return nil
}
