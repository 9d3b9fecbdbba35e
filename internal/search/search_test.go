// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/pdiddy/content-engine/pkg/types"
)

func TestFormatResults(t *testing.T) {
	tests := []struct {
		name    string
		results []types.SearchResult
		want    string
	}{
		{
			name: "no results",
			want: "",
		},
		{
			name:    "single result",
			results: []types.SearchResult{{URL: "https://a.example", Content: "alpha"}},
			want:    "Source: https://a.example\nContent: alpha",
		},
		{
			name: "results joined by blank line",
			results: []types.SearchResult{
				{URL: "https://a.example", Content: "alpha"},
				{URL: "https://b.example", Content: "beta", Title: "ignored"},
			},
			want: "Source: https://a.example\nContent: alpha\n\nSource: https://b.example\nContent: beta",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatResults(tt.results); got != tt.want {
				t.Errorf("FormatResults() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatResultsSourceCount(t *testing.T) {
	for n := 0; n <= 5; n++ {
		results := make([]types.SearchResult, n)
		for i := range results {
			results[i] = types.SearchResult{URL: "https://x.example", Content: "c"}
		}
		if got := strings.Count(FormatResults(results), "Source:"); got != n {
			t.Errorf("n=%d: Source: count = %d", n, got)
		}
	}
}

func TestUnavailable(t *testing.T) {
	_, err := Unavailable{}.Search(context.Background(), "topic", 5)
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("err = %v, want ErrNotConfigured", err)
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		cfg      types.SearchConfig
		wantName string
		wantErr  bool
	}{
		{"tavily with key", types.SearchConfig{Provider: "tavily", APIKey: "tvly-1"}, "tavily", false},
		{"default provider is tavily", types.SearchConfig{APIKey: "tvly-1"}, "tavily", false},
		{"tavily without key", types.SearchConfig{Provider: "tavily"}, "none", false},
		{"explicit none", types.SearchConfig{Provider: "none", APIKey: "tvly-1"}, "none", false},
		{"unsupported", types.SearchConfig{Provider: "bing"}, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if s.Name() != tt.wantName {
				t.Errorf("Name() = %q, want %q", s.Name(), tt.wantName)
			}
		})
	}
}
