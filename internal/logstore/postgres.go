package logstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore keeps blobs in a Postgres table, one row per
// environment key. The upsert concatenates server-side, which is the
// store's native atomic append: concurrent writers serialize on the
// row lock and no append is lost.
type PostgresStore struct {
	pool *pgxpool.Pool
	key  string
}

// NewPostgresStore binds a store to the given key and ensures the
// backing table exists.
func NewPostgresStore(ctx context.Context, pool *pgxpool.Pool, key string) (*PostgresStore, error) {
	store := &PostgresStore{pool: pool, key: key}
	if err := store.ensureTable(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *PostgresStore) ensureTable(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS changelogs (
			key        TEXT PRIMARY KEY,
			content    TEXT NOT NULL DEFAULT '',
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return fmt.Errorf("ensure changelogs table: %w", err)
	}
	return nil
}

func (s *PostgresStore) Append(ctx context.Context, text string) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO changelogs (key, content, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET
			content    = changelogs.content || EXCLUDED.content,
			updated_at = now()`,
		s.key, text)
	if err != nil {
		return fmt.Errorf("append changelog %q: %w", s.key, err)
	}
	return nil
}

func (s *PostgresStore) ReadAll(ctx context.Context) (string, error) {
	var content string
	err := s.pool.QueryRow(ctx,
		`SELECT content FROM changelogs WHERE key = $1`, s.key).Scan(&content)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read changelog %q: %w", s.key, err)
	}
	return content, nil
}

func (s *PostgresStore) Overwrite(ctx context.Context, text string) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO changelogs (key, content, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET
			content    = EXCLUDED.content,
			updated_at = now()`,
		s.key, text)
	if err != nil {
		return fmt.Errorf("overwrite changelog %q: %w", s.key, err)
	}
	return nil
}

func (s *PostgresStore) Metadata(ctx context.Context) (Metadata, error) {
	meta := Metadata{Source: "postgres:changelogs/" + s.key}

	var size int64
	err := s.pool.QueryRow(ctx,
		`SELECT octet_length(content) FROM changelogs WHERE key = $1`, s.key).Scan(&size)
	if errors.Is(err, pgx.ErrNoRows) {
		return meta, nil
	}
	if err != nil {
		return meta, fmt.Errorf("stat changelog %q: %w", s.key, err)
	}

	meta.SizeBytes = size
	return meta, nil
}
