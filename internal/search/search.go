// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search queries a web search provider for material about a topic and
// normalizes the results into the text block the draft stage reads.
package search

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pdiddy/content-engine/pkg/types"
)

// DefaultMaxResults is the number of results requested when unconfigured.
const DefaultMaxResults = 5

// ErrNotConfigured is returned by Unavailable.
var ErrNotConfigured = errors.New("search provider not configured")

// Searcher is the web search capability. Implementations return at most
// maxResults results and may fail on transport, auth or quota errors.
type Searcher interface {
	Name() string
	Search(ctx context.Context, query string, maxResults int) ([]types.SearchResult, error)
}

// Unavailable is the Searcher used when no provider is configured. Every call
// fails, so the research stage falls back to general knowledge.
type Unavailable struct{}

// Name returns the backend identifier.
func (Unavailable) Name() string { return "none" }

// Search always returns ErrNotConfigured.
func (Unavailable) Search(context.Context, string, int) ([]types.SearchResult, error) {
	return nil, ErrNotConfigured
}

// FormatResults renders results as "Source: <url>\nContent: <content>" blocks
// separated by blank lines. No results yields the empty string.
func FormatResults(results []types.SearchResult) string {
	blocks := make([]string, len(results))
	for i, r := range results {
		blocks[i] = fmt.Sprintf("Source: %s\nContent: %s", r.URL, r.Content)
	}
	return strings.Join(blocks, "\n\n")
}

// New returns the Searcher selected by cfg.Provider.
func New(cfg types.SearchConfig) (Searcher, error) {
	switch strings.ToLower(cfg.Provider) {
	case "", "tavily":
		if cfg.APIKey == "" {
			return Unavailable{}, nil
		}
		return NewTavilyBackend(cfg), nil
	case "none":
		return Unavailable{}, nil
	default:
		return nil, fmt.Errorf("search provider %q not supported", cfg.Provider)
	}
}
