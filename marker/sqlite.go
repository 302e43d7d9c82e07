package marker

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/lixenwraith/scrolldeck/parameter"
)

const schema = `
CREATE TABLE IF NOT EXISTS intro_marker (
    key TEXT PRIMARY KEY,
    seen_at DATETIME NOT NULL DEFAULT (datetime('now'))
);`

// SQLite stores the flag as a row keyed by name
type SQLite struct {
	db  *sql.DB
	key string
}

// OpenSQLite creates or opens a SQLite marker database at path
func OpenSQLite(path, key string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating marker directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening marker database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging marker database: %w", err)
	}

	return newSQLite(db, key)
}

// OpenSQLiteMemory creates an in-memory marker database
func OpenSQLiteMemory(key string) (*SQLite, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory marker database: %w", err)
	}
	// Each pooled connection would get its own empty :memory: database
	db.SetMaxOpenConns(1)
	return newSQLite(db, key)
}

func newSQLite(db *sql.DB, key string) (*SQLite, error) {
	if key == "" {
		key = parameter.IntroMarkerKey
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("running marker migration: %w", err)
	}
	return &SQLite{db: db, key: key}, nil
}

// Seen reports whether the marker row exists
func (s *SQLite) Seen(ctx context.Context) (bool, error) {
	var key string
	err := s.db.QueryRowContext(ctx, `SELECT key FROM intro_marker WHERE key = ?`, s.key).Scan(&key)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading marker: %w", err)
	}
	return true, nil
}

// MarkSeen inserts the marker row, keeping the first seen time
func (s *SQLite) MarkSeen(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `INSERT OR IGNORE INTO intro_marker (key) VALUES (?)`, s.key)
	if err != nil {
		return fmt.Errorf("writing marker: %w", err)
	}
	return nil
}

// Reset removes the marker row
func (s *SQLite) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM intro_marker WHERE key = ?`, s.key); err != nil {
		return fmt.Errorf("resetting marker: %w", err)
	}
	return nil
}

// Close releases the database
func (s *SQLite) Close() error {
	return s.db.Close()
}
