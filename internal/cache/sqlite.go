package cache

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS acg_cache (
	key        TEXT PRIMARY KEY,
	payload    BLOB NOT NULL,
	created_at INTEGER NOT NULL,
	expires_at INTEGER
);`

// SQLite is a durable Backend stored in a single database file, letting
// repeated runs share results across processes.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens (or creates) the database at path.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open cache database: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create cache schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

// Get implements Backend.
func (s *SQLite) Get(ctx context.Context, key string) ([]byte, error) {
	var payload []byte
	var expiresAt sql.NullInt64

	row := s.db.QueryRowContext(ctx,
		`SELECT payload, expires_at FROM acg_cache WHERE key = ?`, key)
	if err := row.Scan(&payload, &expiresAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("cache get: %w", err)
	}

	if expiresAt.Valid && time.Now().UnixNano() > expiresAt.Int64 {
		_, _ = s.db.ExecContext(ctx, `DELETE FROM acg_cache WHERE key = ?`, key)
		return nil, ErrNotFound
	}
	return payload, nil
}

// Set implements Backend.
func (s *SQLite) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	now := time.Now()
	var expiresAt any
	if ttl > 0 {
		expiresAt = now.Add(ttl).UnixNano()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO acg_cache (key, payload, created_at, expires_at) VALUES (?, ?, ?, ?)`,
		key, payload, now.UnixNano(), expiresAt)
	if err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Clear implements Backend.
func (s *SQLite) Clear(ctx context.Context, pattern string) error {
	var err error
	if pattern == "" || pattern == "*" {
		_, err = s.db.ExecContext(ctx, `DELETE FROM acg_cache`)
	} else {
		like := strings.ReplaceAll(pattern, "*", "%")
		_, err = s.db.ExecContext(ctx, `DELETE FROM acg_cache WHERE key LIKE ?`, like)
	}
	if err != nil {
		return fmt.Errorf("cache clear: %w", err)
	}
	return nil
}

// Close implements Backend.
func (s *SQLite) Close() error { return s.db.Close() }
