package logstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore keeps blobs in a single-table SQLite database, one row
// per environment key. Appends use SQLite's string concatenation in a
// single UPDATE, so concurrent appenders serialize on the row instead
// of read-modify-writing the blob.
type SQLiteStore struct {
	db   *sql.DB
	key  string
	path string
}

// NewSQLiteStore opens (creating if needed) the database at dbPath and
// binds the store to the given key.
func NewSQLiteStore(dbPath, key string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	store := &SQLiteStore{db: db, key: key, path: dbPath}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

func (s *SQLiteStore) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS changelogs (
			key        TEXT PRIMARY KEY,
			content    TEXT NOT NULL DEFAULT '',
			updated_at DATETIME NOT NULL
		);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("migrate changelogs table: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Append(ctx context.Context, text string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO changelogs (key, content, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			content    = changelogs.content || excluded.content,
			updated_at = excluded.updated_at`,
		s.key, text, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("append changelog %q: %w", s.key, err)
	}
	return nil
}

func (s *SQLiteStore) ReadAll(ctx context.Context) (string, error) {
	var content string
	err := s.db.QueryRowContext(ctx,
		`SELECT content FROM changelogs WHERE key = ?`, s.key).Scan(&content)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read changelog %q: %w", s.key, err)
	}
	return content, nil
}

func (s *SQLiteStore) Overwrite(ctx context.Context, text string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO changelogs (key, content, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			content    = excluded.content,
			updated_at = excluded.updated_at`,
		s.key, text, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("overwrite changelog %q: %w", s.key, err)
	}
	return nil
}

func (s *SQLiteStore) Metadata(ctx context.Context) (Metadata, error) {
	meta := Metadata{Source: "sqlite:" + s.path}

	var size int64
	err := s.db.QueryRowContext(ctx,
		`SELECT length(content) FROM changelogs WHERE key = ?`, s.key).Scan(&size)
	if errors.Is(err, sql.ErrNoRows) {
		return meta, nil
	}
	if err != nil {
		return meta, fmt.Errorf("stat changelog %q: %w", s.key, err)
	}

	meta.SizeBytes = size
	return meta, nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
