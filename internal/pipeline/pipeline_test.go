// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/content-engine/internal/llm"
	"github.com/pdiddy/content-engine/pkg/types"
)

// --- stand-ins ---

type stubSearcher struct {
	results []types.SearchResult
	err     error
	queries []string
	max     []int
}

func (s *stubSearcher) Name() string { return "stub" }

func (s *stubSearcher) Search(_ context.Context, query string, maxResults int) ([]types.SearchResult, error) {
	s.queries = append(s.queries, query)
	s.max = append(s.max, maxResults)
	return s.results, s.err
}

// recordingGenerator records every prompt and answers through respond, or
// echoes the user message when respond is nil.
type recordingGenerator struct {
	prompts []llm.Prompt
	respond func(call int, p llm.Prompt) (string, error)
}

func (g *recordingGenerator) Generate(_ context.Context, p llm.Prompt) (string, error) {
	g.prompts = append(g.prompts, p)
	if g.respond == nil {
		return p.User, nil
	}
	return g.respond(len(g.prompts), p)
}

func newTestPipeline(t *testing.T, s *stubSearcher, g llm.Generator) *Pipeline {
	t.Helper()
	p, err := New(Config{Searcher: s, Generator: g})
	require.NoError(t, err)
	return p
}

func initialState(topic, platform, tone string) types.PipelineState {
	return types.PipelineState{Topic: topic, Platform: platform, Tone: tone, Creativity: types.DefaultCreativity}
}

func results(n int) []types.SearchResult {
	out := make([]types.SearchResult, n)
	for i := range out {
		out[i] = types.SearchResult{URL: fmt.Sprintf("https://src%d.example", i), Content: fmt.Sprintf("fact %d", i)}
	}
	return out
}

// --- construction ---

func TestNewRequiresGenerator(t *testing.T) {
	_, err := New(Config{Searcher: &stubSearcher{}})
	assert.Error(t, err)
}

func TestNewDefaults(t *testing.T) {
	p, err := New(Config{Generator: llm.EchoGenerator{}})
	require.NoError(t, err)
	assert.Equal(t, "none", p.searcher.Name())
	assert.Equal(t, 5, p.maxResults)
}

// --- research ---

func TestResearchFallbackOnProviderError(t *testing.T) {
	s := &stubSearcher{err: errors.New("quota exceeded")}
	p := newTestPipeline(t, s, &recordingGenerator{})

	res, err := p.Run(context.Background(), initialState("go", "LinkedIn", "calm"))
	require.NoError(t, err)
	assert.Equal(t, NoResearchFallback, res.State.ResearchData)
	assert.Equal(t, "No research data available. Proceed with general knowledge.", res.State.ResearchData)
}

func TestResearchSourceCountMatchesResults(t *testing.T) {
	for _, n := range []int{0, 1, 3, 5} {
		t.Run(fmt.Sprint(n), func(t *testing.T) {
			s := &stubSearcher{results: results(n)}
			p := newTestPipeline(t, s, &recordingGenerator{})

			res, err := p.Run(context.Background(), initialState("go", "Medium", "calm"))
			require.NoError(t, err)
			assert.Equal(t, n, strings.Count(res.State.ResearchData, "Source:"))
		})
	}
}

func TestResearchRequestsTopicWithMaxResults(t *testing.T) {
	s := &stubSearcher{}
	p := newTestPipeline(t, s, &recordingGenerator{})

	_, err := p.Run(context.Background(), initialState("remote work", "Twitter", "punchy"))
	require.NoError(t, err)
	assert.Equal(t, []string{"remote work"}, s.queries)
	assert.Equal(t, []int{5}, s.max)
}

// --- draft ---

func TestDraftResetsRevisionCount(t *testing.T) {
	for _, start := range []int{0, 1, 7} {
		p := newTestPipeline(t, &stubSearcher{}, &recordingGenerator{})
		in := initialState("go", "LinkedIn", "calm")
		in.RevisionCount = start

		res, err := p.Run(context.Background(), in)
		require.NoError(t, err)
		assert.Equal(t, 0, res.State.RevisionCount, "start=%d", start)
	}
}

func TestDraftUsesPlatformTemplateAndCreativity(t *testing.T) {
	g := &recordingGenerator{}
	p := newTestPipeline(t, &stubSearcher{results: results(1)}, g)
	in := initialState("remote work", "Twitter", "punchy")
	in.Creativity = 9

	_, err := p.Run(context.Background(), in)
	require.NoError(t, err)
	require.Len(t, g.prompts, 2)

	draft := g.prompts[0]
	assert.Contains(t, draft.System, "Thread (5-7 tweets)")
	assert.Contains(t, draft.System, "Tone: punchy")
	assert.Contains(t, draft.User, "Topic: remote work")
	assert.Contains(t, draft.User, "Source: https://src0.example")
	assert.InDelta(t, 1.1, draft.Temperature, 1e-9)
}

func TestDraftUnknownPlatformUsesLinkedInTemplate(t *testing.T) {
	g := &recordingGenerator{}
	p := newTestPipeline(t, &stubSearcher{}, g)

	_, err := p.Run(context.Background(), initialState("go", "Mastodon", "calm"))
	require.NoError(t, err)
	assert.Contains(t, g.prompts[0].System, "LinkedIn Influencer")
}

func TestDraftFailureAbortsRun(t *testing.T) {
	g := &recordingGenerator{respond: func(int, llm.Prompt) (string, error) {
		return "", errors.New("insufficient_quota")
	}}
	p := newTestPipeline(t, &stubSearcher{}, g)

	res, err := p.Run(context.Background(), initialState("go", "LinkedIn", "calm"))
	require.Error(t, err)

	var se *StageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, StageDraft, se.Stage)
	assert.Contains(t, err.Error(), "insufficient_quota")
	assert.Len(t, g.prompts, 1, "critique must not run")
	assert.Equal(t, types.PipelineState{}, res.State, "no partial state")
	require.Len(t, res.Trace, 2)
	assert.Equal(t, StepFailed, res.Trace[1].Status)
}

func TestDraftEmptyGenerationFails(t *testing.T) {
	g := &recordingGenerator{respond: func(int, llm.Prompt) (string, error) { return " \n", nil }}
	p := newTestPipeline(t, &stubSearcher{}, g)

	_, err := p.Run(context.Background(), initialState("go", "LinkedIn", "calm"))
	assert.ErrorIs(t, err, ErrEmptyGeneration)
}

// --- critique ---

func TestCritiquePerfectSentinelSurfacedVerbatim(t *testing.T) {
	g := &recordingGenerator{respond: func(call int, p llm.Prompt) (string, error) {
		if call == 2 {
			return "PERFECT", nil
		}
		return "a fine post", nil
	}}
	p := newTestPipeline(t, &stubSearcher{}, g)

	res, err := p.Run(context.Background(), initialState("go", "Medium", "formal"))
	require.NoError(t, err)
	assert.Equal(t, "PERFECT", res.State.CritiqueFeedback)
	assert.Equal(t, "a fine post", res.State.DraftContent)
}

func TestCritiquePromptCarriesDraftPlatformTone(t *testing.T) {
	g := &recordingGenerator{respond: func(call int, p llm.Prompt) (string, error) {
		if call == 1 {
			return "draft body", nil
		}
		return "tighten the hook", nil
	}}
	p := newTestPipeline(t, &stubSearcher{}, g)

	_, err := p.Run(context.Background(), initialState("go", "Medium", "formal"))
	require.NoError(t, err)

	critique := g.prompts[1]
	assert.Contains(t, critique.System, "Is it formal?")
	assert.Contains(t, critique.System, "Is it good for Medium?")
	assert.Equal(t, "Draft:\ndraft body\n\nPlatform: Medium\nTone: formal", critique.User)
}

func TestCritiqueEmptyGenerationIsFlagged(t *testing.T) {
	g := &recordingGenerator{respond: func(call int, p llm.Prompt) (string, error) {
		if call == 2 {
			return "", nil
		}
		return "draft", nil
	}}
	p := newTestPipeline(t, &stubSearcher{}, g)

	_, err := p.Run(context.Background(), initialState("go", "LinkedIn", "calm"))
	require.ErrorIs(t, err, ErrEmptyGeneration)
	var se *StageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, StageCritique, se.Stage)
}

// --- orchestrator ---

func TestStagesRunOnceInOrder(t *testing.T) {
	p := newTestPipeline(t, &stubSearcher{}, &recordingGenerator{})

	var order []Stage
	for stage, fn := range p.stages {
		stage, fn := stage, fn
		p.stages[stage] = func(ctx context.Context, s types.PipelineState) (Update, error) {
			order = append(order, stage)
			return fn(ctx, s)
		}
	}

	res, err := p.Run(context.Background(), initialState("go", "LinkedIn", "calm"))
	require.NoError(t, err)
	assert.Equal(t, []Stage{StageResearch, StageDraft, StageCritique}, order)

	var traced []Stage
	for _, rec := range res.Trace {
		traced = append(traced, rec.Stage)
		assert.Equal(t, StepOK, rec.Status)
	}
	assert.Equal(t, order, traced)
}

func TestStagesSeeOnlyEarlierFields(t *testing.T) {
	p := newTestPipeline(t, &stubSearcher{results: results(1)}, &recordingGenerator{})

	seen := map[Stage]types.PipelineState{}
	for stage, fn := range p.stages {
		stage, fn := stage, fn
		p.stages[stage] = func(ctx context.Context, s types.PipelineState) (Update, error) {
			seen[stage] = s
			return fn(ctx, s)
		}
	}

	_, err := p.Run(context.Background(), initialState("go", "LinkedIn", "calm"))
	require.NoError(t, err)

	assert.Empty(t, seen[StageResearch].ResearchData)
	assert.Empty(t, seen[StageDraft].DraftContent)
	assert.NotEmpty(t, seen[StageDraft].ResearchData)
	assert.NotEmpty(t, seen[StageCritique].DraftContent)
	assert.Empty(t, seen[StageCritique].CritiqueFeedback)
}

func TestFieldRewriteRejected(t *testing.T) {
	p := newTestPipeline(t, &stubSearcher{}, &recordingGenerator{})
	p.stages[StageDraft] = func(context.Context, types.PipelineState) (Update, error) {
		return Update{ResearchData: ptr("overwritten"), DraftContent: ptr("d")}, nil
	}

	_, err := p.Run(context.Background(), initialState("go", "LinkedIn", "calm"))
	assert.ErrorIs(t, err, ErrFieldRewritten)
}

func TestFinalContentNeverWritten(t *testing.T) {
	p := newTestPipeline(t, &stubSearcher{}, &recordingGenerator{})

	res, err := p.Run(context.Background(), initialState("go", "LinkedIn", "calm"))
	require.NoError(t, err)
	assert.Empty(t, res.State.FinalContent)
}

// --- end-to-end scenarios with an echoing model ---

func TestScenarioEchoTwitter(t *testing.T) {
	p := newTestPipeline(t, &stubSearcher{results: results(2)}, llm.EchoGenerator{})

	res, err := p.Run(context.Background(), initialState("remote work", "Twitter", "punchy"))
	require.NoError(t, err)
	assert.Contains(t, res.State.DraftContent, "Topic: remote work")
	assert.Contains(t, res.State.CritiqueFeedback, "Twitter")
}

func TestScenarioSearchFailureStillDrafts(t *testing.T) {
	p := newTestPipeline(t, &stubSearcher{err: errors.New("dns failure")}, llm.EchoGenerator{})

	res, err := p.Run(context.Background(), initialState("remote work", "Twitter", "punchy"))
	require.NoError(t, err)
	assert.Contains(t, res.State.DraftContent, "No research data available. Proceed with general knowledge.")
}
