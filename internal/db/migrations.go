package db

import (
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strconv"
	"strings"

	embeddedmigrations "github.com/Yarik-eng/DailyMood/migrations"
	"gorm.io/gorm"
)

// migration is one forward-only SQL file. Version is the numeric prefix as
// written in the file name and is what schema_migrations records.
type migration struct {
	Version    string
	Order      int
	Name       string
	Statements []string
}

// schemaDialect holds the parts of the runner that differ per database.
type schemaDialect interface {
	directory() string
	hasColumn(tx *gorm.DB, table string, column string) (bool, error)
}

type sqliteSchema struct{}

func (sqliteSchema) directory() string { return "sqlite" }

func (sqliteSchema) hasColumn(tx *gorm.DB, table string, column string) (bool, error) {
	var count int64
	err := tx.Raw(`SELECT count(*) FROM pragma_table_info(?) WHERE lower(name) = lower(?)`, table, column).Scan(&count).Error
	return count > 0, err
}

type postgresSchema struct{}

func (postgresSchema) directory() string { return "postgres" }

func (postgresSchema) hasColumn(tx *gorm.DB, table string, column string) (bool, error) {
	var count int64
	err := tx.Raw(
		`SELECT count(*) FROM information_schema.columns WHERE table_schema = current_schema() AND table_name = lower(?) AND column_name = lower(?)`,
		table,
		column,
	).Scan(&count).Error
	return count > 0, err
}

func schemaDialectFor(name string) (schemaDialect, error) {
	switch name {
	case DialectSQLite:
		return sqliteSchema{}, nil
	case DialectPostgres:
		return postgresSchema{}, nil
	default:
		return nil, fmt.Errorf("no migrations for dialect %q", name)
	}
}

type migrationRunner struct {
	database *gorm.DB
	dialect  schemaDialect
	source   fs.FS
	logf     func(format string, args ...any)
}

func newMigrationRunner(database *gorm.DB, source fs.FS, logf func(string, ...any)) (*migrationRunner, error) {
	dialect, err := schemaDialectFor(database.Dialector.Name())
	if err != nil {
		return nil, err
	}
	if logf == nil {
		logf = func(string, ...any) {}
	}
	return &migrationRunner{database: database, dialect: dialect, source: source, logf: logf}, nil
}

// applyEmbeddedMigrations brings the schema up to the newest embedded
// migration for the database's dialect.
func applyEmbeddedMigrations(database *gorm.DB, logf func(string, ...any)) error {
	runner, err := newMigrationRunner(database, embeddedmigrations.Files, logf)
	if err != nil {
		return err
	}
	_, err = runner.run()
	return err
}

// run applies pending migrations in order and returns their names. Each
// migration commits together with its schema_migrations row.
func (runner *migrationRunner) run() ([]string, error) {
	if err := runner.database.Exec(`
CREATE TABLE IF NOT EXISTS schema_migrations (
  version TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`).Error; err != nil {
		return nil, fmt.Errorf("create schema_migrations table: %w", err)
	}

	plan, err := loadMigrationPlan(runner.source, runner.dialect.directory())
	if err != nil {
		return nil, err
	}

	var versions []string
	if err := runner.database.Table("schema_migrations").Pluck("version", &versions).Error; err != nil {
		return nil, fmt.Errorf("load applied migration versions: %w", err)
	}

	applied := make([]string, 0, len(plan))
	for _, next := range plan {
		if slices.Contains(versions, next.Version) {
			continue
		}
		if err := runner.database.Transaction(func(tx *gorm.DB) error {
			return runner.apply(tx, next)
		}); err != nil {
			return applied, err
		}
		runner.logf("applied migration %s", next.Name)
		applied = append(applied, next.Name)
	}
	return applied, nil
}

func (runner *migrationRunner) apply(tx *gorm.DB, next migration) error {
	for _, statement := range next.Statements {
		if table, column, ok := addedColumn(statement); ok {
			exists, err := runner.dialect.hasColumn(tx, table, column)
			if err != nil {
				return fmt.Errorf("inspect %s.%s for %s: %w", table, column, next.Name, err)
			}
			if exists {
				continue
			}
		}
		if err := tx.Exec(statement).Error; err != nil {
			return fmt.Errorf("execute migration %s statement %q: %w", next.Name, statement, err)
		}
	}

	if err := tx.Exec(`INSERT INTO schema_migrations(version, name) VALUES (?, ?)`, next.Version, next.Name).Error; err != nil {
		return fmt.Errorf("record migration %s: %w", next.Name, err)
	}
	return nil
}

// loadMigrationPlan reads NNN_name.sql files from directory, ordered by
// version. Other files are ignored.
func loadMigrationPlan(source fs.FS, directory string) ([]migration, error) {
	entries, err := fs.ReadDir(source, directory)
	if err != nil {
		return nil, fmt.Errorf("read migrations %s: %w", directory, err)
	}

	plan := make([]migration, 0, len(entries))
	owners := make(map[string]string, len(entries))
	for _, entry := range entries {
		version, order, ok := parseMigrationName(entry.Name())
		if entry.IsDir() || !ok {
			continue
		}
		if owner, taken := owners[version]; taken {
			return nil, fmt.Errorf("duplicate migration version %s in %s and %s", version, owner, entry.Name())
		}
		owners[version] = entry.Name()

		raw, err := fs.ReadFile(source, path.Join(directory, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", entry.Name(), err)
		}
		statements := splitSQLStatements(string(raw))
		if len(statements) == 0 {
			return nil, fmt.Errorf("migration %s: %w", entry.Name(), errEmptyMigration)
		}

		plan = append(plan, migration{
			Version:    version,
			Order:      order,
			Name:       entry.Name(),
			Statements: statements,
		})
	}

	slices.SortFunc(plan, func(a migration, b migration) int {
		return cmp.Compare(a.Order, b.Order)
	})
	return plan, nil
}

var errEmptyMigration = errors.New("migration has no SQL statements")

func parseMigrationName(name string) (string, int, bool) {
	if !strings.HasSuffix(name, ".sql") {
		return "", 0, false
	}
	version, _, found := strings.Cut(name, "_")
	if !found || version == "" {
		return "", 0, false
	}
	order, err := strconv.Atoi(version)
	if err != nil || order < 0 {
		return "", 0, false
	}
	return version, order, true
}

func splitSQLStatements(sqlText string) []string {
	statements := make([]string, 0)
	for _, part := range strings.Split(sqlText, ";") {
		if statement := strings.TrimSpace(part); statement != "" {
			statements = append(statements, statement)
		}
	}
	return statements
}

// addedColumn recognizes "ALTER TABLE t ADD COLUMN c ...". Such statements
// are skipped when the column already exists, so databases patched by hand
// still upgrade.
func addedColumn(statement string) (string, string, bool) {
	fields := strings.Fields(statement)
	if len(fields) < 6 {
		return "", "", false
	}
	if !strings.EqualFold(fields[0], "ALTER") || !strings.EqualFold(fields[1], "TABLE") ||
		!strings.EqualFold(fields[3], "ADD") || !strings.EqualFold(fields[4], "COLUMN") {
		return "", "", false
	}
	return unquoteIdentifier(fields[2]), unquoteIdentifier(fields[5]), true
}

func unquoteIdentifier(identifier string) string {
	return strings.Trim(identifier, "\"`[]")
}
