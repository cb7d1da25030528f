// Package sqlite provides SQLite-based storage for the page cache and the
// lookup history.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// BusyTimeout is how long, in milliseconds, a connection waits for a lock
// held by another process, such as a prune running next to the server.
const BusyTimeout = 5000

// Connection pragmas, applied by the driver in order on every connection.
// auto_vacuum only takes effect on a new database, so it comes first.
var pragmas = []string{
	"auto_vacuum(incremental)",
	fmt.Sprintf("busy_timeout(%d)", BusyTimeout),
	"synchronous(normal)",
}

// migrations create the schema. PRAGMA user_version counts the ones applied.
var migrations = []string{
	`CREATE TABLE pages (
		id TEXT PRIMARY KEY,
		url TEXT NOT NULL UNIQUE,
		html TEXT NOT NULL,
		content_hash TEXT NOT NULL DEFAULT '',
		fetched_at TEXT NOT NULL
	);
	CREATE INDEX idx_pages_fetched_at ON pages(fetched_at);`,

	`CREATE TABLE lookups (
		id TEXT PRIMARY KEY,
		chat_id INTEGER NOT NULL,
		query TEXT NOT NULL,
		found INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	);
	CREATE INDEX idx_lookups_chat_id ON lookups(chat_id);
	CREATE INDEX idx_lookups_created_at ON lookups(created_at);`,
}

// SchemaVersion is the user_version of a fully migrated database.
var SchemaVersion = len(migrations)

// DB represents a SQLite database connection.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB creates a new DB instance with the given path.
// Use ":memory:" for an in-memory database.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// dsn builds the driver URI. File databases use WAL so the server keeps
// answering while a prune writes; in-memory databases do not support it.
// Write transactions take the lock up front instead of failing to upgrade.
func (db *DB) dsn() string {
	q := url.Values{"_txlock": {"immediate"}}
	for _, p := range pragmas {
		q.Add("_pragma", p)
	}
	if db.path == ":memory:" {
		return "file::memory:?" + q.Encode()
	}
	q.Add("_pragma", "journal_mode(wal)")
	return "file:" + (&url.URL{Path: db.path}).EscapedPath() + "?" + q.Encode()
}

// Open opens the database and migrates it to the current schema.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.dsn())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// One connection serializes writes and keeps an in-memory database alive.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	db.db = conn

	if err := db.migrate(context.Background()); err != nil {
		conn.Close()
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// migrate applies the migrations the database has not seen yet, each in
// its own transaction together with the version bump.
func (db *DB) migrate(ctx context.Context) error {
	var version int
	if err := db.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return err
	}
	if version > len(migrations) {
		return fmt.Errorf("database schema version %d is newer than this program (%d)", version, len(migrations))
	}

	for i := version; i < len(migrations); i++ {
		tx, err := db.db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, migrations[i]); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", i+1)); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
	}
	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// QueryRowContext executes a query that returns a single row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// ExecContext executes a statement that doesn't return rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}

// vacuum returns the pages freed by deleted rows to the file system.
func (db *DB) vacuum(ctx context.Context) error {
	_, err := db.db.ExecContext(ctx, "PRAGMA incremental_vacuum")
	return err
}
