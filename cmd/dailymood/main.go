package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/Yarik-eng/DailyMood/internal/api"
	"github.com/Yarik-eng/DailyMood/internal/cli"
	"github.com/Yarik-eng/DailyMood/internal/db"
	"github.com/Yarik-eng/DailyMood/internal/i18n"
	"github.com/Yarik-eng/DailyMood/internal/logging"
	"github.com/Yarik-eng/DailyMood/internal/metrics"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	minSecretKeyLength = 32
	shutdownTimeout    = 10 * time.Second
	usage              = "usage: dailymood [serve | create-admin [email] | seed-products | reset-password <email>]"
)

var insecureSecretKeys = map[string]struct{}{
	"change_me_in_production":                    {},
	"replace_with_at_least_32_random_characters": {},
	"your-secret-key":                            {},
}

var errUsage = errors.New(usage)

type config struct {
	port              string
	secretKey         string
	dbPath            string
	databaseURL       string
	timezone          string
	cookieSecure      bool
	primaryAdminEmail string
	defaultLanguage   string
	logLevel          string
	logFormat         string
	rateLimitRPS      float64
	rateLimitBurst    int
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		logrus.WithError(err).Fatal("dailymood exited")
	}
}

func run(args []string) error {
	if err := loadEnvFile(); err != nil {
		return err
	}

	command := "serve"
	if len(args) > 0 {
		command = args[0]
		args = args[1:]
	}

	switch command {
	case "serve":
		return serve()
	case "create-admin":
		email := ""
		if len(args) > 0 {
			email = args[0]
		}
		return withDatabase(func(database *gorm.DB) error {
			return cli.RunCreateAdminCommand(database, email, cli.TerminalPasswordPrompt(os.Stdin, os.Stdout), os.Stdout)
		})
	case "seed-products":
		return withDatabase(func(database *gorm.DB) error {
			_, err := cli.RunSeedProductsCommand(database, os.Stdout)
			return err
		})
	case "reset-password":
		if len(args) != 1 {
			return errUsage
		}
		return withDatabase(func(database *gorm.DB) error {
			return cli.RunResetPasswordCommand(database, args[0], os.Stdout)
		})
	default:
		return errUsage
	}
}

func serve() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := logging.New(logging.Options{Level: cfg.logLevel, Format: cfg.logFormat})
	if err != nil {
		return fmt.Errorf("logger init failed: %w", err)
	}
	appLog := logging.Component(logger, "app")

	location := resolveLocation(cfg.timezone, appLog)
	time.Local = location

	database, err := openDatabase(cfg, logger)
	if err != nil {
		return err
	}
	defer closeDatabase(database)

	i18nManager, err := i18n.NewManager(cfg.defaultLanguage)
	if err != nil {
		return fmt.Errorf("i18n init failed: %w", err)
	}

	handler, err := api.NewHandler(database, i18nManager, api.Config{
		SecretKey:         cfg.secretKey,
		Location:          location,
		CookieSecure:      cfg.cookieSecure,
		PrimaryAdminEmail: cfg.primaryAdminEmail,
		Logger:            logger,
		RateLimitRPS:      cfg.rateLimitRPS,
		RateLimitBurst:    cfg.rateLimitBurst,
		DisableRateLimit:  cfg.rateLimitRPS <= 0,
	})
	if err != nil {
		return fmt.Errorf("handler init failed: %w", err)
	}

	app := newApp(handler, logger)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			appLog.WithError(err).Error("server shutdown failed")
		}
	}()

	appLog.WithFields(logrus.Fields{
		"port": cfg.port,
		"db":   databaseLabel(cfg),
		"tz":   location.String(),
	}).Info("DailyMood listening")
	if err := app.Listen(":" + cfg.port); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	appLog.Info("server stopped")
	return nil
}

func newApp(handler *api.Handler, logger *logrus.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "DailyMood",
		DisableStartupMessage: true,
		ErrorHandler:          handler.ErrorHandler,
		BodyLimit:             1 << 20,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{Output: logger.Writer()}))
	app.Use(compress.New())
	app.Use(metrics.Middleware())
	app.Use(handler.LanguageMiddleware)

	api.RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	return app
}

func withDatabase(action func(database *gorm.DB) error) error {
	logger, err := logging.New(logging.Options{Level: getEnv("LOG_LEVEL", "warn"), Format: getEnv("LOG_FORMAT", logging.FormatText)})
	if err != nil {
		return fmt.Errorf("logger init failed: %w", err)
	}
	database, err := openDatabase(config{dbPath: resolveDBPath(), databaseURL: getEnv("DATABASE_URL", "")}, logger)
	if err != nil {
		return err
	}
	defer closeDatabase(database)
	return action(database)
}

func openDatabase(cfg config, logger logrus.FieldLogger) (*gorm.DB, error) {
	database, err := db.Open(db.Options{
		SQLitePath: cfg.dbPath,
		URL:        cfg.databaseURL,
		Logger:     logging.Component(logger, "db"),
	})
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}
	return database, nil
}

func closeDatabase(database *gorm.DB) {
	if sqlDB, err := database.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func databaseLabel(cfg config) string {
	if cfg.databaseURL != "" {
		return db.DialectPostgres
	}
	return cfg.dbPath
}

// loadEnvFile reads .env, or ENV_FILE when set. Variables already present in
// the environment win.
func loadEnvFile() error {
	path, explicit := os.LookupEnv("ENV_FILE")
	if !explicit {
		path = ".env"
	}
	if _, err := os.Stat(path); err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("env file %s: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

func loadConfig() (config, error) {
	secretKey, err := resolveSecretKey()
	if err != nil {
		return config{}, err
	}
	port, err := resolvePort()
	if err != nil {
		return config{}, err
	}
	cookieSecure, err := resolveBool("COOKIE_SECURE", false)
	if err != nil {
		return config{}, err
	}
	rps, burst, err := resolveRateLimit()
	if err != nil {
		return config{}, err
	}

	return config{
		port:              port,
		secretKey:         secretKey,
		dbPath:            resolveDBPath(),
		databaseURL:       strings.TrimSpace(getEnv("DATABASE_URL", "")),
		timezone:          getEnv("TZ", "UTC"),
		cookieSecure:      cookieSecure,
		primaryAdminEmail: getEnv("PRIMARY_ADMIN_EMAIL", ""),
		defaultLanguage:   getEnv("DEFAULT_LANGUAGE", i18n.LangEN),
		logLevel:          getEnv("LOG_LEVEL", "info"),
		logFormat:         getEnv("LOG_FORMAT", logging.FormatText),
		rateLimitRPS:      rps,
		rateLimitBurst:    burst,
	}, nil
}

func resolveSecretKey() (string, error) {
	secretKey := strings.TrimSpace(os.Getenv("SECRET_KEY"))
	if secretKey == "" {
		return "", errors.New("SECRET_KEY is required")
	}
	if _, insecure := insecureSecretKeys[strings.ToLower(secretKey)]; insecure {
		return "", errors.New("SECRET_KEY uses a placeholder value")
	}
	if len(secretKey) < minSecretKeyLength {
		return "", fmt.Errorf("SECRET_KEY must be at least %d characters", minSecretKeyLength)
	}
	return secretKey, nil
}

func resolvePort() (string, error) {
	raw := strings.TrimSpace(getEnv("PORT", "8080"))
	port, err := strconv.Atoi(raw)
	if err != nil || port < 1 || port > 65535 {
		return "", fmt.Errorf("invalid PORT %q", raw)
	}
	return strconv.Itoa(port), nil
}

func resolveDBPath() string {
	return getEnv("DB_PATH", filepath.Join("data", "dailymood.db"))
}

func resolveLocation(name string, logger logrus.FieldLogger) *time.Location {
	location, err := time.LoadLocation(strings.TrimSpace(name))
	if err != nil {
		logger.WithError(err).WithField("tz", name).Warn("invalid TZ, falling back to UTC")
		return time.UTC
	}
	return location
}

func resolveBool(key string, fallback bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q", key, raw)
	}
	return value, nil
}

// resolveRateLimit returns the per-IP request rate. RATE_LIMIT_RPS=0 turns
// the limiter off.
func resolveRateLimit() (float64, int, error) {
	rps, err := strconv.ParseFloat(strings.TrimSpace(getEnv("RATE_LIMIT_RPS", "20")), 64)
	if err != nil || rps < 0 {
		return 0, 0, fmt.Errorf("invalid RATE_LIMIT_RPS %q", os.Getenv("RATE_LIMIT_RPS"))
	}
	burst, err := strconv.Atoi(strings.TrimSpace(getEnv("RATE_LIMIT_BURST", "40")))
	if err != nil || burst < 1 {
		return 0, 0, fmt.Errorf("invalid RATE_LIMIT_BURST %q", os.Getenv("RATE_LIMIT_BURST"))
	}
	return rps, burst, nil
}

func getEnv(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
