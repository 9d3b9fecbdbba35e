// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the content-engine pipeline:
// the pipeline state threaded through the stages, search results consumed by
// the research stage, generation requests and responses at the request
// boundary, persisted generation records, and configuration.
package types

// SearchResult is one web page returned by the search provider for a topic.
type SearchResult struct {
	// URL is the address of the page the content was taken from.
	URL string `json:"url" yaml:"url"`

	// Title is the page title when the provider reports one.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// Content is the provider's extract of the page relevant to the query.
	Content string `json:"content" yaml:"content"`

	// Score is the provider's relevance score between 0.0 and 1.0.
	Score float64 `json:"score,omitempty" yaml:"score,omitempty"`
}
