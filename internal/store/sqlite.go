// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/content-engine/pkg/types"
)

// DefaultSQLitePath is used when no path is configured.
const DefaultSQLitePath = "data/content-engine.db"

// timeLayout is fixed width so created_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// SQLiteStore keeps generations in a local SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates the database at path and its schema.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if path == "" {
		path = DefaultSQLitePath
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS generations (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			topic TEXT NOT NULL,
			platform TEXT NOT NULL,
			tone TEXT NOT NULL,
			content TEXT NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_generations_user_created ON generations(user_id, created_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Insert records g.
func (s *SQLiteStore) Insert(ctx context.Context, g types.Generation) error {
	g = stamp(g)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO generations (id, user_id, topic, platform, tone, content, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		g.ID, g.UserID, g.Topic, g.Platform, g.Tone, g.Content,
		g.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("inserting generation: %w", err)
	}
	return nil
}

// ListByUser returns userID's generations, newest first.
func (s *SQLiteStore) ListByUser(ctx context.Context, userID string) ([]types.Generation, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, topic, platform, tone, content, created_at
		FROM generations WHERE user_id = ? ORDER BY created_at DESC, rowid DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying generations: %w", err)
	}
	defer rows.Close()

	out := []types.Generation{}
	for rows.Next() {
		var g types.Generation
		var created string
		if err := rows.Scan(&g.ID, &g.UserID, &g.Topic, &g.Platform, &g.Tone, &g.Content, &created); err != nil {
			return nil, fmt.Errorf("scanning generation: %w", err)
		}
		if g.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
			return nil, fmt.Errorf("parsing created_at of %s: %w", g.ID, err)
		}
		out = append(out, g)
	}
	return out, rows.Err()
}
