// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package llm abstracts the generation capability used by the draft and
// critique stages. Each provider implements Generator so tests and local
// runs can substitute a deterministic stand-in.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/pdiddy/content-engine/pkg/types"
)

// Default models per provider.
const (
	DefaultOpenAIModel    = "gpt-4o-mini"
	DefaultAnthropicModel = "claude-3-5-haiku-latest"
	defaultMaxTokens      = 2048
)

// ErrEmptyResponse is returned when a provider answers with no text.
var ErrEmptyResponse = errors.New("model returned an empty response")

// Prompt is one (system instruction, user message) exchange.
type Prompt struct {
	System      string
	User        string
	Temperature float64
}

// Generator is the generation capability. Generate blocks until the model
// answers and returns its text.
type Generator interface {
	Generate(ctx context.Context, p Prompt) (string, error)
}

// TemperatureForCreativity maps the 1-10 creativity scale onto a sampling
// temperature. Creativity 5 gives 0.7; values outside 1-10 are clamped.
func TemperatureForCreativity(creativity int) float64 {
	if creativity < 1 {
		creativity = 1
	}
	if creativity > 10 {
		creativity = 10
	}
	return float64(2+creativity) / 10
}

// New builds the Generator selected by cfg.Provider.
func New(cfg types.AIConfig) (Generator, error) {
	client := &http.Client{Timeout: cfg.Timeout}
	switch cfg.Provider {
	case types.ProviderOpenAI, "":
		return NewOpenAIGenerator(cfg, client)
	case types.ProviderAnthropic:
		return NewAnthropicGenerator(cfg, client)
	case types.ProviderEcho:
		return EchoGenerator{}, nil
	default:
		return nil, fmt.Errorf("llm provider %q not supported", cfg.Provider)
	}
}
