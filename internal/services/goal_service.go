package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Yarik-eng/DailyMood/internal/models"
)

var (
	ErrGoalFieldsRequired = errors.New("goal name and deadline are required")
	ErrGoalNotFound       = errors.New("goal not found")
)

type GoalRepository interface {
	ListByUser(userID uint) ([]models.MonthlyGoal, error)
	FindByIDForUser(userID uint, goalID uint) (models.MonthlyGoal, bool, error)
	Create(goal *models.MonthlyGoal) error
	UpdateCompleted(goalID uint, completed bool) error
	DeleteForUser(userID uint, goalID uint) (bool, error)
}

type GoalService struct {
	goals GoalRepository
}

func NewGoalService(goals GoalRepository) *GoalService {
	return &GoalService{goals: goals}
}

func (service *GoalService) List(userID uint) ([]models.MonthlyGoal, error) {
	goals, err := service.goals.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	return goals, nil
}

func (service *GoalService) Create(userID uint, name string, deadline string, now time.Time) (models.MonthlyGoal, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.TrimSpace(deadline) == "" {
		return models.MonthlyGoal{}, ErrGoalFieldsRequired
	}
	day, err := ParseDay(deadline)
	if err != nil {
		return models.MonthlyGoal{}, err
	}

	goal := models.MonthlyGoal{UserID: userID, Name: name, Deadline: day, CreatedAt: now.UTC()}
	if err := service.goals.Create(&goal); err != nil {
		return models.MonthlyGoal{}, fmt.Errorf("create goal: %w", err)
	}
	return goal, nil
}

func (service *GoalService) Toggle(userID uint, goalID uint) (models.MonthlyGoal, error) {
	goal, found, err := service.goals.FindByIDForUser(userID, goalID)
	if err != nil {
		return models.MonthlyGoal{}, fmt.Errorf("load goal: %w", err)
	}
	if !found {
		return models.MonthlyGoal{}, ErrGoalNotFound
	}

	goal.Completed = !goal.Completed
	if err := service.goals.UpdateCompleted(goal.ID, goal.Completed); err != nil {
		return models.MonthlyGoal{}, fmt.Errorf("toggle goal: %w", err)
	}
	return goal, nil
}

func (service *GoalService) Delete(userID uint, goalID uint) error {
	deleted, err := service.goals.DeleteForUser(userID, goalID)
	if err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	if !deleted {
		return ErrGoalNotFound
	}
	return nil
}
