// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pdiddy/content-engine/internal/httputil"
	"github.com/pdiddy/content-engine/pkg/types"
)

// SupabaseStore talks to the PostgREST endpoint of a Supabase project.
// The database assigns id and created_at.
type SupabaseStore struct {
	Client     *http.Client
	BaseURL    string
	APIKey     string
	UserAgent  string
	MaxRetries int
}

// NewSupabaseStore builds a store from the project URL and service key.
func NewSupabaseStore(cfg types.StoreConfig, client *http.Client) (*SupabaseStore, error) {
	if cfg.URL == "" || cfg.APIKey == "" {
		return nil, fmt.Errorf("supabase store requires url and api key")
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &SupabaseStore{
		Client:     client,
		BaseURL:    strings.TrimRight(cfg.URL, "/"),
		APIKey:     cfg.APIKey,
		UserAgent:  cfg.UserAgent,
		MaxRetries: cfg.MaxRetries,
	}, nil
}

type supabaseInsert struct {
	UserID   string `json:"user_id"`
	Topic    string `json:"topic"`
	Platform string `json:"platform"`
	Tone     string `json:"tone"`
	Content  string `json:"content"`
}

type supabaseRow struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Topic     string `json:"topic"`
	Platform  string `json:"platform"`
	Tone      string `json:"tone"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

// Postgres renders timestamptz with an offset; plain timestamp has none.
var supabaseTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999-07",
}

func parseSupabaseTime(s string) (time.Time, error) {
	for _, layout := range supabaseTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

func (s *SupabaseStore) endpoint() string {
	return s.BaseURL + "/rest/v1/" + Table
}

func (s *SupabaseStore) authorize(req *http.Request) {
	req.Header.Set("apikey", s.APIKey)
	req.Header.Set("Authorization", "Bearer "+s.APIKey)
	if s.UserAgent != "" {
		req.Header.Set("User-Agent", s.UserAgent)
	}
}

// Insert records g through a PostgREST insert.
func (s *SupabaseStore) Insert(ctx context.Context, g types.Generation) error {
	req, err := httputil.NewJSONRequest(ctx, http.MethodPost, s.endpoint(), supabaseInsert{
		UserID:   g.UserID,
		Topic:    g.Topic,
		Platform: g.Platform,
		Tone:     g.Tone,
		Content:  g.Content,
	})
	if err != nil {
		return err
	}
	s.authorize(req)
	req.Header.Set("Prefer", "return=minimal")

	resp, err := httputil.DoWithRetry(ctx, s.Client, req, s.MaxRetries)
	if err != nil {
		return fmt.Errorf("Supabase insert: %w", err)
	}
	defer resp.Body.Close()
	return httputil.CheckStatus(resp, "Supabase")
}

// ListByUser returns userID's generations, newest first.
func (s *SupabaseStore) ListByUser(ctx context.Context, userID string) ([]types.Generation, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("user_id", "eq."+userID)
	q.Set("order", "created_at.desc")

	req, err := httputil.NewJSONRequest(ctx, http.MethodGet, s.endpoint()+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	s.authorize(req)

	resp, err := httputil.DoWithRetry(ctx, s.Client, req, s.MaxRetries)
	if err != nil {
		return nil, fmt.Errorf("Supabase select: %w", err)
	}
	defer resp.Body.Close()
	if err := httputil.CheckStatus(resp, "Supabase"); err != nil {
		return nil, err
	}

	var rows []supabaseRow
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("parsing Supabase response: %w", err)
	}

	out := make([]types.Generation, 0, len(rows))
	for _, r := range rows {
		g := types.Generation{
			ID:       r.ID,
			UserID:   r.UserID,
			Topic:    r.Topic,
			Platform: r.Platform,
			Tone:     r.Tone,
			Content:  r.Content,
		}
		if r.CreatedAt != "" {
			if g.CreatedAt, err = parseSupabaseTime(r.CreatedAt); err != nil {
				return nil, fmt.Errorf("generation %s: %w", r.ID, err)
			}
		}
		out = append(out, g)
	}
	return out, nil
}

// Close is a no-op; the HTTP client holds no exclusive resources.
func (s *SupabaseStore) Close() error { return nil }
