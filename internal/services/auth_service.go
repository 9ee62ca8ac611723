package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/Yarik-eng/DailyMood/internal/logging"
	"github.com/Yarik-eng/DailyMood/internal/models"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

type AuthUserRepository interface {
	ExistsByNormalizedEmail(email string) (bool, error)
	FindByNormalizedEmail(email string) (models.User, error)
	FindByID(userID uint) (models.User, error)
	Create(user *models.User) error
}

type AuthService struct {
	users AuthUserRepository
	log   *logrus.Entry
}

func NewAuthService(users AuthUserRepository, logger logrus.FieldLogger) *AuthService {
	return &AuthService{users: users, log: logging.Component(logger, "auth")}
}

func (service *AuthService) Register(rawEmail string, password string, now time.Time) (models.User, error) {
	email := NormalizeAuthEmail(rawEmail)
	if email == "" {
		return models.User{}, ErrInvalidEmail
	}
	if err := ValidatePasswordStrength(password); err != nil {
		return models.User{}, err
	}

	exists, err := service.users.ExistsByNormalizedEmail(email)
	if err != nil {
		return models.User{}, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return models.User{}, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now.UTC(),
	}
	if err := service.users.Create(&user); err != nil {
		if exists, checkErr := service.users.ExistsByNormalizedEmail(email); checkErr == nil && exists {
			return models.User{}, ErrEmailTaken
		}
		return models.User{}, fmt.Errorf("create user: %w", err)
	}

	service.log.WithField("user_id", user.ID).Info("user registered")
	return user, nil
}

func (service *AuthService) Authenticate(rawEmail string, password string) (models.User, error) {
	email := NormalizeAuthEmail(rawEmail)
	if email == "" || password == "" {
		return models.User{}, ErrInvalidCredentials
	}

	user, err := service.users.FindByNormalizedEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, fmt.Errorf("load user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		service.log.WithField("user_id", user.ID).Warn("login rejected")
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}

func (service *AuthService) FindByID(userID uint) (models.User, error) {
	user, err := service.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}
