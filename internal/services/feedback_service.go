package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Yarik-eng/DailyMood/internal/models"
)

var (
	ErrFeedbackMessageRequired = errors.New("feedback message is required")
	ErrInvalidRating           = errors.New("rating must be between 1 and 5")
	ErrFeedbackNotFound        = errors.New("feedback not found")
)

type FeedbackRepository interface {
	Create(feedback *models.Feedback) error
	List(limit int) ([]models.Feedback, error)
	Delete(feedbackID uint) (bool, error)
}

type FeedbackInput struct {
	Name    string
	Email   string
	Message string
	Rating  *int
}

type FeedbackService struct {
	feedback FeedbackRepository
}

func NewFeedbackService(feedback FeedbackRepository) *FeedbackService {
	return &FeedbackService{feedback: feedback}
}

func (service *FeedbackService) Create(input FeedbackInput, now time.Time) (models.Feedback, error) {
	message := strings.TrimSpace(input.Message)
	if message == "" {
		return models.Feedback{}, ErrFeedbackMessageRequired
	}
	if input.Rating != nil && (*input.Rating < 1 || *input.Rating > 5) {
		return models.Feedback{}, ErrInvalidRating
	}

	feedback := models.Feedback{
		Name:      strings.TrimSpace(input.Name),
		Email:     strings.ToLower(strings.TrimSpace(input.Email)),
		Message:   message,
		Rating:    input.Rating,
		CreatedAt: now.UTC(),
	}
	if err := service.feedback.Create(&feedback); err != nil {
		return models.Feedback{}, fmt.Errorf("create feedback: %w", err)
	}
	return feedback, nil
}

// List returns feedback newest first; limit <= 0 returns everything.
func (service *FeedbackService) List(limit int) ([]models.Feedback, error) {
	items, err := service.feedback.List(limit)
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	return items, nil
}

func (service *FeedbackService) Delete(feedbackID uint) error {
	deleted, err := service.feedback.Delete(feedbackID)
	if err != nil {
		return fmt.Errorf("delete feedback: %w", err)
	}
	if !deleted {
		return ErrFeedbackNotFound
	}
	return nil
}
