// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/content-engine/internal/llm"
	"github.com/pdiddy/content-engine/internal/prompt"
	"github.com/pdiddy/content-engine/internal/search"
	"github.com/pdiddy/content-engine/pkg/types"
)

// NoResearchFallback replaces research data when the search provider fails.
const NoResearchFallback = "No research data available. Proceed with general knowledge."

// research queries the searcher for the topic. It never fails: provider
// errors are logged and replaced by NoResearchFallback.
func (p *Pipeline) research(ctx context.Context, s types.PipelineState) (Update, error) {
	p.log.Info("researching", "topic", s.Topic, "provider", p.searcher.Name())

	results, err := p.searcher.Search(ctx, s.Topic, p.maxResults)
	if err != nil {
		p.log.Warn("research failed; continuing with general knowledge", "provider", p.searcher.Name(), "error", err)
		return Update{ResearchData: ptr(NoResearchFallback)}, nil
	}

	p.log.Debug("research complete", "results", len(results))
	return Update{ResearchData: ptr(search.FormatResults(results))}, nil
}

// draft writes the platform-specific content from topic, tone and research.
func (p *Pipeline) draft(ctx context.Context, s types.PipelineState) (Update, error) {
	platform := prompt.ParsePlatform(s.Platform)
	p.log.Info("writing draft", "platform", s.Platform, "template", platform.String())

	text, err := p.generator.Generate(ctx, llm.Prompt{
		System:      prompt.SystemPrompt(platform, s.Tone),
		User:        prompt.DraftMessage(s.Topic, s.ResearchData),
		Temperature: llm.TemperatureForCreativity(s.Creativity),
	})
	if err != nil {
		return Update{}, fmt.Errorf("generating draft: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return Update{}, fmt.Errorf("generating draft: %w", ErrEmptyGeneration)
	}

	return Update{DraftContent: ptr(text), RevisionCount: ptr(0)}, nil
}

// critique asks the model to review the draft for tone, platform fit and
// hook strength. The reply is kept verbatim, including the PERFECT sentinel.
func (p *Pipeline) critique(ctx context.Context, s types.PipelineState) (Update, error) {
	p.log.Info("critiquing draft", "platform", s.Platform)

	text, err := p.generator.Generate(ctx, llm.Prompt{
		System:      prompt.CritiquePrompt(s.Platform, s.Tone),
		User:        prompt.CritiqueMessage(s.DraftContent, s.Platform, s.Tone),
		Temperature: llm.TemperatureForCreativity(s.Creativity),
	})
	if err != nil {
		return Update{}, fmt.Errorf("generating critique: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return Update{}, fmt.Errorf("generating critique: %w", ErrEmptyGeneration)
	}

	if prompt.IsPerfect(text) {
		p.log.Debug("editor accepted draft unchanged")
	}
	return Update{CritiqueFeedback: ptr(text)}, nil
}
