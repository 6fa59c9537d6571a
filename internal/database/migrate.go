package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"
)

// Dialect selects the migration set and goose dialect.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrations embed.FS

// goose keeps its base FS and dialect in package state.
var gooseMu sync.Mutex

// Migrate applies every pending migration for dialect to db.
func Migrate(ctx context.Context, db *sql.DB, dialect Dialect) error {
	var gooseDialect, dir string
	switch dialect {
	case DialectPostgres:
		gooseDialect, dir = "pgx", "migrations/postgres"
	case DialectSQLite:
		gooseDialect, dir = "sqlite3", "migrations/sqlite"
	default:
		return fmt.Errorf("unknown migration dialect %q", dialect)
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrations)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect(gooseDialect); err != nil {
		return fmt.Errorf("setting goose dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, dir); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}
