// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llm

import "context"

// EchoGenerator returns the user message unchanged. It needs no credentials
// and makes every stage's input visible in its output, which is useful for
// local runs and tests.
type EchoGenerator struct{}

func (EchoGenerator) Generate(_ context.Context, p Prompt) (string, error) {
	return p.User, nil
}
