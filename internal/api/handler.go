package api

import (
	"errors"
	"time"

	"github.com/Yarik-eng/DailyMood/internal/db"
	"github.com/Yarik-eng/DailyMood/internal/i18n"
	"github.com/Yarik-eng/DailyMood/internal/logging"
	"github.com/Yarik-eng/DailyMood/internal/services"
	"github.com/Yarik-eng/DailyMood/internal/validation"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	defaultAuthTokenTTL  = 7 * 24 * time.Hour
	rememberAuthTokenTTL = 30 * 24 * time.Hour

	loginAttemptLimit  = 8
	loginAttemptWindow = 15 * time.Minute

	defaultRateLimitRPS   = 20
	defaultRateLimitBurst = 40
)

type Config struct {
	SecretKey         string
	Location          *time.Location
	CookieSecure      bool
	PrimaryAdminEmail string
	Logger            logrus.FieldLogger
	// RateLimitRPS <= 0 selects the default; use DisableRateLimit to turn it off.
	RateLimitRPS     float64
	RateLimitBurst   int
	DisableRateLimit bool
}

type Handler struct {
	db                *gorm.DB
	location          *time.Location
	cookieSecure      bool
	primaryAdminEmail string
	i18n              *i18n.Manager
	logger            logrus.FieldLogger
	log               *logrus.Entry
	validator         *validation.Validator
	sessions          sessionCodec
	loginThrottle     *loginThrottle
	requestLimiter    *ipRateLimiter
	now               func() time.Time

	repositories   *db.Repositories
	authService    *services.AuthService
	journalService *services.JournalService
	statsService   *services.StatsService
	predictor      *services.MoodPredictor
	habitService   *services.HabitService
	goalService    *services.GoalService
	catalogService *services.CatalogService
	orderService   *services.OrderService
	paymentService *services.PaymentService
	adminService   *services.AdminService
	feedbackSvc    *services.FeedbackService
	exportService  *services.ExportService
}

func NewHandler(database *gorm.DB, i18nManager *i18n.Manager, config Config) (*Handler, error) {
	if database == nil {
		return nil, errors.New("database is required")
	}
	if i18nManager == nil {
		return nil, errors.New("i18n manager is required")
	}
	if len(config.SecretKey) == 0 {
		return nil, errors.New("secret key is required")
	}

	location := config.Location
	if location == nil {
		location = time.UTC
	}
	logger := config.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	var requestLimiter *ipRateLimiter
	if !config.DisableRateLimit {
		rps := config.RateLimitRPS
		if rps <= 0 {
			rps = defaultRateLimitRPS
		}
		burst := config.RateLimitBurst
		if burst <= 0 {
			burst = defaultRateLimitBurst
		}
		requestLimiter = newIPRateLimiter(rps, burst, 10*time.Minute)
	}

	handler := &Handler{
		db:                database,
		location:          location,
		cookieSecure:      config.CookieSecure,
		primaryAdminEmail: config.PrimaryAdminEmail,
		i18n:              i18nManager,
		logger:            logger,
		log:               logging.Component(logger, "api"),
		validator:         newRequestValidator(),
		sessions:          sessionCodec{secret: []byte(config.SecretKey), secure: config.CookieSecure},
		loginThrottle:     newLoginThrottle(loginAttemptLimit, loginAttemptWindow),
		requestLimiter:    requestLimiter,
		now:               time.Now,
	}
	return handler.withDependencies(database), nil
}

func (handler *Handler) currentTime() time.Time {
	return handler.now().In(handler.location)
}
