// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists generated content per user and lists a user's
// history newest first. Backends: SQLite (local), Postgres through gorm, and
// the Supabase REST API.
package store

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/content-engine/internal/logging"
	"github.com/pdiddy/content-engine/pkg/types"
)

// Table is the name of the generations collection in every backend.
const Table = "generations"

// ErrStoreDisabled is returned by Disabled.
var ErrStoreDisabled = errors.New("persistence is not configured")

// Store records generations and lists them per user.
type Store interface {
	// Insert records g. ID and CreatedAt are assigned when empty.
	Insert(ctx context.Context, g types.Generation) error

	// ListByUser returns every generation of userID ordered by CreatedAt
	// descending. An unknown user yields an empty slice.
	ListByUser(ctx context.Context, userID string) ([]types.Generation, error)

	Close() error
}

// Disabled is the Store used when no backend is configured.
type Disabled struct{}

func (Disabled) Insert(context.Context, types.Generation) error { return ErrStoreDisabled }

func (Disabled) ListByUser(context.Context, string) ([]types.Generation, error) {
	return nil, ErrStoreDisabled
}

func (Disabled) Close() error { return nil }

// New opens the Store selected by cfg.Provider.
func New(cfg types.StoreConfig, log *logging.Logger) (Store, error) {
	if log == nil {
		log = logging.Nop()
	}
	switch cfg.Provider {
	case "", types.StoreNone:
		log.Debug("persistence disabled")
		return Disabled{}, nil
	case types.StoreSQLite:
		log.Info("opening store", "provider", "sqlite", "path", cfg.Path)
		return NewSQLiteStore(cfg.Path)
	case types.StorePostgres:
		log.Info("opening store", "provider", "postgres", "auto_migrate", cfg.AutoMigrate)
		return NewPostgresStore(cfg.DSN, cfg.AutoMigrate)
	case types.StoreSupabase:
		log.Info("opening store", "provider", "supabase", "url", cfg.URL)
		return NewSupabaseStore(cfg, &http.Client{Timeout: cfg.Timeout})
	default:
		return nil, fmt.Errorf("store provider %q not supported", cfg.Provider)
	}
}

// stamp fills the server-assigned fields of g.
func stamp(g types.Generation) types.Generation {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	if g.CreatedAt.IsZero() {
		g.CreatedAt = time.Now().UTC()
	}
	return g
}
