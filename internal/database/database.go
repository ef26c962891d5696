// Package database handles connection management for the embedded SQLite
// database (or an optional PostgreSQL server) and schema migrations using
// goose. Connect returns a ready-to-use pool tagged with its dialect and
// Migrate brings the schema up to date.
package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	_ "github.com/glebarez/go-sqlite"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// ErrUnknownSchemaVersion is returned by Migrate when the database was
// written by a newer build whose migrations this binary does not know.
var ErrUnknownSchemaVersion = errors.New("database schema version is newer than this build")

// Dialect identifies the SQL flavour behind a DB.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// DB is a connection pool plus the dialect it speaks. Queries are written
// with ? placeholders and passed through Rebind.
type DB struct {
	*sql.DB
	Dialect Dialect
}

// Connect opens a connection pool for the given dialect and verifies it
// with a ping before returning.
func Connect(dialect Dialect, dsn string) (*DB, error) {
	var driver string
	switch dialect {
	case DialectSQLite:
		driver = "sqlite"
	case DialectPostgres:
		driver = "pgx"
	default:
		return nil, fmt.Errorf("database: unsupported dialect %q", dialect)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("database open: %w", err)
	}

	// SQLite allows a single writer; one connection avoids SQLITE_BUSY.
	if dialect == DialectSQLite {
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
	}

	// Verify the connection is alive.
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database ping: %w", err)
	}

	slog.Info("database connected", "dialect", dialect)
	return &DB{DB: db, Dialect: dialect}, nil
}

// Rebind rewrites ? placeholders into the dialect's native form.
func (d *DB) Rebind(query string) string {
	if d.Dialect != DialectPostgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

// goose keeps its dialect and filesystem in package globals.
var migrateMu sync.Mutex

// Migrate applies all pending migrations in order. The migrations are
// embedded at compile time and written in the SQL subset shared by SQLite
// and PostgreSQL. A database already past the newest embedded migration is
// refused with ErrUnknownSchemaVersion.
func Migrate(db *DB) error {
	migrateMu.Lock()
	defer migrateMu.Unlock()

	goose.SetBaseFS(embedMigrations)
	defer goose.SetBaseFS(nil)

	gooseDialect := "sqlite3"
	if db.Dialect == DialectPostgres {
		gooseDialect = "postgres"
	}
	if err := goose.SetDialect(gooseDialect); err != nil {
		return fmt.Errorf("goose set dialect: %w", err)
	}

	known, err := latestVersion()
	if err != nil {
		return err
	}
	current, err := goose.GetDBVersion(db.DB)
	if err != nil {
		return fmt.Errorf("goose version: %w", err)
	}
	if current > known {
		return fmt.Errorf("%w: database at %d, newest known migration is %d",
			ErrUnknownSchemaVersion, current, known)
	}

	if err := goose.Up(db.DB, "migrations"); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	slog.Info("database migrations applied", "from", current, "to", known)
	return nil
}

// latestVersion returns the version of the newest embedded migration.
// The caller must have set goose's base filesystem.
func latestVersion() (int64, error) {
	migrations, err := goose.CollectMigrations("migrations", 0, goose.MaxVersion)
	if err != nil {
		return 0, fmt.Errorf("goose collect: %w", err)
	}
	last, err := migrations.Last()
	if err != nil {
		return 0, fmt.Errorf("goose last migration: %w", err)
	}
	return last.Version, nil
}
