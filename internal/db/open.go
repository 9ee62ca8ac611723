package db

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	DialectSQLite   = "sqlite"
	DialectPostgres = "postgres"
)

type Options struct {
	// SQLitePath is used when URL is empty.
	SQLitePath string
	// URL selects Postgres when it has a postgres:// or postgresql:// scheme.
	URL    string
	Logger gormlogger.Writer
}

func Open(options Options) (*gorm.DB, error) {
	url := strings.TrimSpace(options.URL)
	if url == "" {
		return OpenSQLite(options.SQLitePath, options.Logger)
	}
	if !IsPostgresURL(url) {
		return nil, fmt.Errorf("unsupported database url scheme in %q", redactURL(url))
	}
	return OpenPostgres(url, options.Logger)
}

func OpenSQLite(dbPath string, writer gormlogger.Writer) (*gorm.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	dsn := fmt.Sprintf("%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", dbPath)
	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: newGormLogger(writer)})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := applyEmbeddedMigrations(database, migrationLogf(writer)); err != nil {
		return nil, fmt.Errorf("apply embedded migrations: %w", err)
	}
	return database, nil
}

func OpenPostgres(url string, writer gormlogger.Writer) (*gorm.DB, error) {
	database, err := gorm.Open(postgres.Open(url), &gorm.Config{Logger: newGormLogger(writer)})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := applyEmbeddedMigrations(database, migrationLogf(writer)); err != nil {
		return nil, fmt.Errorf("apply embedded migrations: %w", err)
	}
	return database, nil
}

func IsPostgresURL(url string) bool {
	lowered := strings.ToLower(strings.TrimSpace(url))
	return strings.HasPrefix(lowered, "postgres://") || strings.HasPrefix(lowered, "postgresql://")
}

func newGormLogger(writer gormlogger.Writer) gormlogger.Interface {
	if writer == nil {
		writer = log.New(os.Stdout, "\r\n", log.LstdFlags)
	}
	return gormlogger.New(writer, gormlogger.Config{
		SlowThreshold:             time.Second,
		LogLevel:                  gormlogger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

func migrationLogf(writer gormlogger.Writer) func(string, ...any) {
	if writer == nil {
		return nil
	}
	return writer.Printf
}

func redactURL(url string) string {
	at := strings.LastIndex(url, "@")
	scheme := strings.Index(url, "://")
	if at < 0 || scheme < 0 || at < scheme {
		return url
	}
	return url[:scheme+3] + "***" + url[at:]
}
