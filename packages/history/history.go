// Package history keeps a local SQLite log of upload attempts so past
// submissions can be reviewed from the CLI.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	// SQLite driver
	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS uploads (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	created_at TIMESTAMP NOT NULL,
	url        TEXT NOT NULL,
	file       TEXT NOT NULL,
	status     INTEGER NOT NULL,
	ok         BOOLEAN NOT NULL
);
`

// Entry is one recorded upload attempt. Status 0 means the request
// never completed.
type Entry struct {
	ID        int64
	CreatedAt time.Time
	URL       string
	File      string
	Status    int
	OK        bool
}

// Store is an append-only log backed by a SQLite file.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the history database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize history database: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Record appends one attempt. CreatedAt defaults to now when unset.
func (s *Store) Record(ctx context.Context, e Entry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO uploads (created_at, url, file, status, ok) VALUES (?, ?, ?, ?, ?)`,
		e.CreatedAt, e.URL, e.File, e.Status, e.OK)
	if err != nil {
		return fmt.Errorf("record upload: %w", err)
	}
	return nil
}

// List returns the most recent attempts, newest first. A limit of zero
// or less means no limit.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	query := `SELECT id, created_at, url, file, status, ok FROM uploads ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list uploads: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.CreatedAt, &e.URL, &e.File, &e.Status, &e.OK); err != nil {
			return nil, fmt.Errorf("scan upload row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list uploads: %w", err)
	}

	return entries, nil
}
