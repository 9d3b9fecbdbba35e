// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/pdiddy/content-engine/internal/llm"
	"github.com/pdiddy/content-engine/internal/logging"
	"github.com/pdiddy/content-engine/internal/pipeline"
	"github.com/pdiddy/content-engine/internal/search"
	"github.com/pdiddy/content-engine/internal/service"
	"github.com/pdiddy/content-engine/internal/store"
	"github.com/pdiddy/content-engine/pkg/types"
)

// buildPipeline wires the searcher and generator selected by cfg.
func buildPipeline(cfg types.Config, l *logging.Logger) (*pipeline.Pipeline, error) {
	searcher, err := search.New(cfg.Search)
	if err != nil {
		return nil, err
	}
	if _, ok := searcher.(search.Unavailable); ok {
		l.Warn("no search provider configured; drafts will use general knowledge")
	}

	gen, err := llm.New(cfg.Generation)
	if err != nil {
		return nil, fmt.Errorf("building generator: %w", err)
	}
	l.Info("generator ready", "provider", string(cfg.Generation.Provider), "model", cfg.Generation.Model)

	return pipeline.New(pipeline.Config{
		Searcher:   searcher,
		Generator:  gen,
		MaxResults: cfg.Search.MaxResults,
		Logger:     l,
	})
}

// buildService wires the full request boundary. The caller closes the
// returned store.
func buildService(cfg types.Config, l *logging.Logger) (*service.Service, store.Store, error) {
	p, err := buildPipeline(cfg, l)
	if err != nil {
		return nil, nil, err
	}
	st, err := store.New(cfg.Store, l)
	if err != nil {
		return nil, nil, fmt.Errorf("opening store: %w", err)
	}
	return service.New(p, st, l), st, nil
}
