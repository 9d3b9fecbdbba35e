// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/pdiddy/content-engine/pkg/types"
)

// generationRow is the gorm model of the generations table.
type generationRow struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    string    `gorm:"not null;index:idx_generations_user_created,priority:1"`
	Topic     string    `gorm:"not null"`
	Platform  string    `gorm:"not null"`
	Tone      string    `gorm:"not null"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"not null;index:idx_generations_user_created,priority:2"`
}

func (generationRow) TableName() string { return Table }

func (r *generationRow) BeforeCreate(*gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

func (r generationRow) toGeneration() types.Generation {
	return types.Generation{
		ID:        r.ID.String(),
		UserID:    r.UserID,
		Topic:     r.Topic,
		Platform:  r.Platform,
		Tone:      r.Tone,
		Content:   r.Content,
		CreatedAt: r.CreatedAt.UTC(),
	}
}

// GormStore keeps generations in any gorm-supported database.
type GormStore struct {
	db *gorm.DB
}

// NewPostgresStore connects to the Postgres database at dsn.
func NewPostgresStore(dsn string, autoMigrate bool) (*GormStore, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres store requires a DSN")
	}
	return NewGormStore(postgres.Open(dsn), autoMigrate)
}

// NewGormStore opens dialector and, when autoMigrate is set, creates the
// generations table.
func NewGormStore(dialector gorm.Dialector, autoMigrate bool) (*GormStore, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if autoMigrate {
		if err := db.AutoMigrate(&generationRow{}); err != nil {
			return nil, fmt.Errorf("migrating %s: %w", Table, err)
		}
	}
	return &GormStore{db: db}, nil
}

// Insert records g.
func (s *GormStore) Insert(ctx context.Context, g types.Generation) error {
	g = stamp(g)
	id, err := uuid.Parse(g.ID)
	if err != nil {
		return fmt.Errorf("generation id %q: %w", g.ID, err)
	}
	row := generationRow{
		ID:        id,
		UserID:    g.UserID,
		Topic:     g.Topic,
		Platform:  g.Platform,
		Tone:      g.Tone,
		Content:   g.Content,
		CreatedAt: g.CreatedAt,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("inserting generation: %w", err)
	}
	return nil
}

// ListByUser returns userID's generations, newest first.
func (s *GormStore) ListByUser(ctx context.Context, userID string) ([]types.Generation, error) {
	var rows []generationRow
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("querying generations: %w", err)
	}
	out := make([]types.Generation, len(rows))
	for i, r := range rows {
		out[i] = r.toGeneration()
	}
	return out, nil
}

// Close releases the underlying connection pool.
func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
