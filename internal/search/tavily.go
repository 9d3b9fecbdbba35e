// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/pdiddy/content-engine/internal/httputil"
	"github.com/pdiddy/content-engine/pkg/types"
)

// tavilyAPIBase is the Tavily search endpoint. Declared as a var so tests can
// substitute an httptest server.
var tavilyAPIBase = "https://api.tavily.com/search"

// TavilyBackend queries the Tavily search API.
type TavilyBackend struct {
	Client      *http.Client
	APIKey      string
	SearchDepth string
	UserAgent   string
	MaxRetries  int
}

// NewTavilyBackend builds a backend from the search configuration.
func NewTavilyBackend(cfg types.SearchConfig) *TavilyBackend {
	return &TavilyBackend{
		Client:      &http.Client{Timeout: cfg.Timeout},
		APIKey:      cfg.APIKey,
		SearchDepth: cfg.SearchDepth,
		UserAgent:   cfg.UserAgent,
		MaxRetries:  cfg.MaxRetries,
	}
}

// Name returns the backend identifier.
func (b *TavilyBackend) Name() string { return "tavily" }

type tavilyRequest struct {
	Query       string `json:"query"`
	MaxResults  int    `json:"max_results"`
	SearchDepth string `json:"search_depth,omitempty"`
	Topic       string `json:"topic"`
}

type tavilyResponse struct {
	Query   string         `json:"query"`
	Results []tavilyResult `json:"results"`
}

type tavilyResult struct {
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Content string  `json:"content"`
	Score   float64 `json:"score"`
}

// Search sends the topic to Tavily and returns up to maxResults results.
func (b *TavilyBackend) Search(ctx context.Context, query string, maxResults int) ([]types.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("empty Tavily query")
	}
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	req, err := httputil.NewJSONRequest(ctx, http.MethodPost, tavilyAPIBase, tavilyRequest{
		Query:       query,
		MaxResults:  maxResults,
		SearchDepth: b.SearchDepth,
		Topic:       "general",
	})
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+b.APIKey)
	if b.UserAgent != "" {
		req.Header.Set("User-Agent", b.UserAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, b.Client, req, b.MaxRetries)
	if err != nil {
		return nil, fmt.Errorf("Tavily API request: %w", err)
	}
	defer resp.Body.Close()

	if err := httputil.CheckStatus(resp, "Tavily API"); err != nil {
		return nil, err
	}

	var tr tavilyResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return nil, fmt.Errorf("parsing Tavily response: %w", err)
	}

	results := make([]types.SearchResult, 0, len(tr.Results))
	for _, r := range tr.Results {
		if len(results) == maxResults {
			break
		}
		results = append(results, types.SearchResult{
			URL:     r.URL,
			Title:   r.Title,
			Content: r.Content,
			Score:   r.Score,
		})
	}
	return results, nil
}
