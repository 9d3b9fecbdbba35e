// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/pdiddy/content-engine/internal/httputil"
	"github.com/pdiddy/content-engine/pkg/types"
)

// anthropicAPIURL is the Messages API endpoint used when no BaseURL is set.
const anthropicAPIURL = "https://api.anthropic.com/v1/messages"

// AnthropicGenerator calls the Anthropic Messages API.
type AnthropicGenerator struct {
	APIKey     string
	Model      string
	URL        string
	MaxTokens  int
	MaxRetries int
	Client     *http.Client
}

// NewAnthropicGenerator validates cfg and fills defaults.
func NewAnthropicGenerator(cfg types.AIConfig, httpClient *http.Client) (*AnthropicGenerator, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("anthropic api key missing; set generation.api_key or ANTHROPIC_API_KEY")
	}
	g := &AnthropicGenerator{
		APIKey:     cfg.APIKey,
		Model:      cfg.Model,
		URL:        cfg.BaseURL,
		MaxTokens:  cfg.MaxTokens,
		MaxRetries: cfg.MaxRetries,
		Client:     httpClient,
	}
	if g.Model == "" {
		g.Model = DefaultAnthropicModel
	}
	if g.URL == "" {
		g.URL = anthropicAPIURL
	}
	if g.MaxTokens <= 0 {
		g.MaxTokens = defaultMaxTokens
	}
	return g, nil
}

type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	System      string             `json:"system,omitempty"`
	Temperature float64            `json:"temperature"`
	Messages    []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []anthropicContent `json:"content"`
}

type anthropicContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Generate sends one user turn with the system instruction and returns the
// concatenated text blocks of the reply.
func (g *AnthropicGenerator) Generate(ctx context.Context, p Prompt) (string, error) {
	req, err := httputil.NewJSONRequest(ctx, http.MethodPost, g.URL, anthropicRequest{
		Model:     g.Model,
		MaxTokens: g.MaxTokens,
		System:    p.System,
		// The Messages API caps temperature at 1.0.
		Temperature: min(p.Temperature, 1.0),
		Messages: []anthropicMessage{
			{Role: "user", Content: p.User},
		},
	})
	if err != nil {
		return "", err
	}
	req.Header.Set("x-api-key", g.APIKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := httputil.DoWithRetry(ctx, g.Client, req, g.MaxRetries)
	if err != nil {
		return "", fmt.Errorf("calling Anthropic API: %w", err)
	}
	defer resp.Body.Close()

	if err := httputil.CheckStatus(resp, "Anthropic API"); err != nil {
		return "", err
	}

	var aResp anthropicResponse
	if err := json.NewDecoder(resp.Body).Decode(&aResp); err != nil {
		return "", fmt.Errorf("decoding Anthropic response: %w", err)
	}

	var b strings.Builder
	for _, block := range aResp.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	if strings.TrimSpace(b.String()) == "" {
		return "", fmt.Errorf("anthropic: %w", ErrEmptyResponse)
	}
	return b.String(), nil
}
