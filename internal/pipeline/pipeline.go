// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs the Research → Draft → Critique chain over a search
// capability and a generation capability.
//
// The orchestrator is a fixed state machine. Each stage reads the current
// state and returns an Update; the orchestrator merges the update into a new
// copy of the state and moves to the next stage. There is no branching and no
// loop back, so every run executes each stage exactly once, in order.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pdiddy/content-engine/internal/llm"
	"github.com/pdiddy/content-engine/internal/logging"
	"github.com/pdiddy/content-engine/internal/search"
	"github.com/pdiddy/content-engine/pkg/types"
)

// Stage identifies one state of the orchestrator.
type Stage string

const (
	StageResearch Stage = "research"
	StageDraft    Stage = "draft"
	StageCritique Stage = "critique"
	StageDone     Stage = "done"
)

// transitions is the complete, unconditional transition table.
var transitions = map[Stage]Stage{
	StageResearch: StageDraft,
	StageDraft:    StageCritique,
	StageCritique: StageDone,
}

var (
	// ErrEmptyGeneration is returned when the model produced no usable text.
	ErrEmptyGeneration = errors.New("generation returned empty text")

	// ErrFieldRewritten is returned when a stage writes a field an earlier
	// stage already wrote.
	ErrFieldRewritten = errors.New("state field written twice")
)

// StageError wraps the failure of one stage.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("%s stage: %v", e.Stage, e.Err) }
func (e *StageError) Unwrap() error { return e.Err }

// StageFunc executes one stage against the current state.
type StageFunc func(ctx context.Context, s types.PipelineState) (Update, error)

// StepStatus is the outcome of a stage run.
type StepStatus string

const (
	StepOK     StepStatus = "ok"
	StepFailed StepStatus = "failed"
)

// StepRecord is one entry of the run trace.
type StepRecord struct {
	Stage    Stage         `json:"stage"`
	Status   StepStatus    `json:"status"`
	Duration time.Duration `json:"duration"`
	Error    string        `json:"error,omitempty"`
}

// Result is the final state of a completed run and its trace.
type Result struct {
	State types.PipelineState
	Trace []StepRecord
}

// Config wires the pipeline's capabilities.
type Config struct {
	Searcher  search.Searcher
	Generator llm.Generator

	// MaxResults is passed to the searcher (default 5).
	MaxResults int

	Logger *logging.Logger
}

// Pipeline is safe for concurrent use: it holds no per-run state.
type Pipeline struct {
	searcher   search.Searcher
	generator  llm.Generator
	maxResults int
	log        *logging.Logger
	stages     map[Stage]StageFunc
}

// New validates cfg and builds a pipeline.
func New(cfg Config) (*Pipeline, error) {
	if cfg.Generator == nil {
		return nil, errors.New("generator is required")
	}
	p := &Pipeline{
		searcher:   cfg.Searcher,
		generator:  cfg.Generator,
		maxResults: cfg.MaxResults,
		log:        cfg.Logger,
	}
	if p.searcher == nil {
		p.searcher = search.Unavailable{}
	}
	if p.maxResults <= 0 {
		p.maxResults = search.DefaultMaxResults
	}
	if p.log == nil {
		p.log = logging.Nop()
	}
	p.log = p.log.With("component", "pipeline")
	p.stages = map[Stage]StageFunc{
		StageResearch: p.research,
		StageDraft:    p.draft,
		StageCritique: p.critique,
	}
	return p, nil
}

// Run executes every stage in order starting from initial. Any stage error
// aborts the run and no state is returned.
func (p *Pipeline) Run(ctx context.Context, initial types.PipelineState) (Result, error) {
	state := initial
	written := make(map[Field]bool)
	var trace []StepRecord

	for stage := StageResearch; stage != StageDone; stage = transitions[stage] {
		fn := p.stages[stage]
		start := time.Now()

		update, err := fn(ctx, state)
		if err == nil {
			state, err = merge(state, update, written)
		}

		rec := StepRecord{Stage: stage, Status: StepOK, Duration: time.Since(start)}
		if err != nil {
			rec.Status = StepFailed
			rec.Error = err.Error()
			trace = append(trace, rec)
			p.log.Error("stage failed", "stage", string(stage), "error", err)
			return Result{Trace: trace}, &StageError{Stage: stage, Err: err}
		}
		trace = append(trace, rec)
		p.log.Debug("stage complete", "stage", string(stage), "duration_ms", rec.Duration.Milliseconds())
	}

	return Result{State: state, Trace: trace}, nil
}
