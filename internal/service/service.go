// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package service is the request boundary: it validates generation requests,
// runs the pipeline, persists results for identified users and serves their
// history.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pdiddy/content-engine/internal/logging"
	"github.com/pdiddy/content-engine/internal/pipeline"
	"github.com/pdiddy/content-engine/internal/store"
	"github.com/pdiddy/content-engine/pkg/types"
)

// ErrInvalidRequest marks caller errors (missing or out-of-range fields).
var ErrInvalidRequest = errors.New("invalid request")

// Runner executes the content pipeline.
type Runner interface {
	Run(ctx context.Context, initial types.PipelineState) (pipeline.Result, error)
}

// Service handles generate and history requests.
type Service struct {
	runner Runner
	store  store.Store
	log    *logging.Logger
}

// New builds a Service. A nil store disables persistence.
func New(runner Runner, st store.Store, log *logging.Logger) *Service {
	if st == nil {
		st = store.Disabled{}
	}
	if log == nil {
		log = logging.Nop()
	}
	return &Service{runner: runner, store: st, log: log.With("component", "service")}
}

// Validate checks req and returns the creativity to use.
func Validate(req types.GenerateRequest) (int, error) {
	var missing []string
	if strings.TrimSpace(req.Topic) == "" {
		missing = append(missing, "topic")
	}
	if strings.TrimSpace(req.Platform) == "" {
		missing = append(missing, "platform")
	}
	if strings.TrimSpace(req.Tone) == "" {
		missing = append(missing, "tone")
	}
	if len(missing) > 0 {
		return 0, fmt.Errorf("%w: missing %s", ErrInvalidRequest, strings.Join(missing, ", "))
	}

	creativity := types.DefaultCreativity
	if req.Creativity != nil {
		creativity = *req.Creativity
	}
	if creativity < 1 || creativity > 10 {
		return 0, fmt.Errorf("%w: creativity must be between 1 and 10, got %d", ErrInvalidRequest, creativity)
	}
	return creativity, nil
}

// Generate runs the pipeline for req. When req.UserID is set the draft is
// persisted; a persistence failure is logged and does not fail the request.
func (s *Service) Generate(ctx context.Context, req types.GenerateRequest) (types.GenerateResponse, error) {
	creativity, err := Validate(req)
	if err != nil {
		return types.GenerateResponse{}, err
	}

	res, err := s.runner.Run(ctx, types.PipelineState{
		Topic:      req.Topic,
		Platform:   req.Platform,
		Tone:       req.Tone,
		Creativity: creativity,
	})
	if err != nil {
		return types.GenerateResponse{}, fmt.Errorf("generating content: %w", err)
	}
	st := res.State

	if req.UserID != "" {
		err := s.store.Insert(ctx, types.Generation{
			UserID:   req.UserID,
			Topic:    req.Topic,
			Platform: req.Platform,
			Tone:     req.Tone,
			Content:  st.DraftContent,
		})
		if err != nil {
			s.log.Error("saving generation failed", "user_id", req.UserID, "error", err)
		} else {
			s.log.Debug("generation saved", "user_id", req.UserID)
		}
	}

	return types.GenerateResponse{
		Content:  st.DraftContent,
		Critique: st.CritiqueFeedback,
		Research: st.ResearchData,
	}, nil
}

// History returns userID's generations, newest first.
func (s *Service) History(ctx context.Context, userID string) ([]types.Generation, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: missing user_id", ErrInvalidRequest)
	}
	gens, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}
	return gens, nil
}
