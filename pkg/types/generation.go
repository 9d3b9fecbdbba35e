// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// DefaultCreativity is used when a request omits creativity.
const DefaultCreativity = 5

// GenerateRequest is the input accepted at the request boundary.
type GenerateRequest struct {
	Topic    string `json:"topic" yaml:"topic"`
	Platform string `json:"platform" yaml:"platform"`
	Tone     string `json:"tone" yaml:"tone"`

	// Creativity is a 1-10 scale; nil means DefaultCreativity.
	Creativity *int `json:"creativity,omitempty" yaml:"creativity,omitempty"`

	// UserID, when set, causes the generated content to be persisted.
	UserID string `json:"user_id,omitempty" yaml:"user_id,omitempty"`
}

// GenerateResponse is returned to the caller after a successful run.
type GenerateResponse struct {
	Content  string `json:"content" yaml:"content"`
	Critique string `json:"critique" yaml:"critique"`
	Research string `json:"research" yaml:"research"`
}

// Generation is one persisted row of the "generations" collection.
type Generation struct {
	ID        string    `json:"id" yaml:"id"`
	UserID    string    `json:"user_id" yaml:"user_id"`
	Topic     string    `json:"topic" yaml:"topic"`
	Platform  string    `json:"platform" yaml:"platform"`
	Tone      string    `json:"tone" yaml:"tone"`
	Content   string    `json:"content" yaml:"content"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}
