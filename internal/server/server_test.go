// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/content-engine/internal/llm"
	"github.com/pdiddy/content-engine/internal/pipeline"
	"github.com/pdiddy/content-engine/internal/service"
	"github.com/pdiddy/content-engine/pkg/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeService struct {
	req      types.GenerateRequest
	resp     types.GenerateResponse
	err      error
	gens     []types.Generation
	histErr  error
	deadline bool
}

func (f *fakeService) Generate(ctx context.Context, req types.GenerateRequest) (types.GenerateResponse, error) {
	f.req = req
	_, f.deadline = ctx.Deadline()
	return f.resp, f.err
}

func (f *fakeService) History(context.Context, string) ([]types.Generation, error) {
	return f.gens, f.histErr
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func detail(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Detail
}

func TestRoot(t *testing.T) {
	r := NewRouter(Config{Service: &fakeService{}})
	rec := do(t, r, http.MethodGet, "/", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"active","message":"Welcome to the AI Content Generator API"}`, rec.Body.String())
}

func TestGenerateOK(t *testing.T) {
	svc := &fakeService{resp: types.GenerateResponse{Content: "post", Critique: "PERFECT", Research: "r"}}
	r := NewRouter(Config{Service: svc})

	rec := do(t, r, http.MethodPost, "/generate",
		`{"topic":"AI","platform":"LinkedIn","tone":"Professional","creativity":7,"user_id":"u1"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"content":"post","critique":"PERFECT","research":"r"}`, rec.Body.String())
	assert.Equal(t, "AI", svc.req.Topic)
	require.NotNil(t, svc.req.Creativity)
	assert.Equal(t, 7, *svc.req.Creativity)
	assert.Equal(t, "u1", svc.req.UserID)
	assert.False(t, svc.deadline)
}

func TestGenerateMalformedBody(t *testing.T) {
	r := NewRouter(Config{Service: &fakeService{}})

	for _, body := range []string{`{"topic":`, `{"topic":"a","platform":"b","tone":"c","creativity":"high"}`} {
		rec := do(t, r, http.MethodPost, "/generate", body)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, body)
		assert.NotEmpty(t, detail(t, rec))
	}
}

func TestGenerateValidationError(t *testing.T) {
	svc := &fakeService{err: fmt.Errorf("%w: missing topic", service.ErrInvalidRequest)}
	r := NewRouter(Config{Service: svc})

	rec := do(t, r, http.MethodPost, "/generate", `{"platform":"LinkedIn","tone":"x"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, detail(t, rec), "missing topic")
}

func TestGeneratePipelineError(t *testing.T) {
	svc := &fakeService{err: errors.New("generating content: draft stage: insufficient_quota")}
	r := NewRouter(Config{Service: svc})

	rec := do(t, r, http.MethodPost, "/generate", `{"topic":"a","platform":"b","tone":"c"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, detail(t, rec), "insufficient_quota")
}

func TestGenerateAppliesTimeout(t *testing.T) {
	svc := &fakeService{}
	r := NewRouter(Config{Service: svc, RequestTimeout: time.Minute})

	rec := do(t, r, http.MethodPost, "/generate", `{"topic":"a","platform":"b","tone":"c"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, svc.deadline)
}

func TestHistory(t *testing.T) {
	created := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	svc := &fakeService{gens: []types.Generation{{ID: "g1", UserID: "u1", Topic: "go", CreatedAt: created}}}
	r := NewRouter(Config{Service: svc})

	rec := do(t, r, http.MethodGet, "/history?user_id=u1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got []types.Generation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "g1", got[0].ID)
	assert.True(t, got[0].CreatedAt.Equal(created))
}

func TestHistoryEmptyIsArray(t *testing.T) {
	r := NewRouter(Config{Service: &fakeService{}})

	rec := do(t, r, http.MethodGet, "/history?user_id=nobody", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", rec.Body.String())
}

func TestHistoryMissingUser(t *testing.T) {
	r := NewRouter(Config{Service: &fakeService{}})

	rec := do(t, r, http.MethodGet, "/history", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "user_id is required", detail(t, rec))
}

func TestHistoryStoreFailure(t *testing.T) {
	r := NewRouter(Config{Service: &fakeService{histErr: errors.New("listing history: connection refused")}})

	rec := do(t, r, http.MethodGet, "/history?user_id=u1", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, detail(t, rec), "connection refused")
}

func TestCORSAllowsAnyOrigin(t *testing.T) {
	r := NewRouter(Config{Service: &fakeService{}})

	req := httptest.NewRequest(http.MethodOptions, "/generate", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Less(t, rec.Code, 300)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSRestrictedOrigins(t *testing.T) {
	r := NewRouter(Config{Service: &fakeService{}, AllowOrigins: []string{"http://localhost:3000"}})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGenerateEndToEndWithEcho(t *testing.T) {
	p, err := pipeline.New(pipeline.Config{Generator: llm.EchoGenerator{}})
	require.NoError(t, err)
	r := NewRouter(Config{Service: service.New(p, nil, nil)})

	rec := do(t, r, http.MethodPost, "/generate", `{"topic":"remote work","platform":"Twitter","tone":"punchy"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp types.GenerateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Content, "Topic: remote work")
	assert.Contains(t, resp.Critique, "Twitter")

	rec = do(t, r, http.MethodPost, "/generate", `{"topic":"x","platform":"Twitter","tone":"punchy","creativity":11}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestRunStopsOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	ln.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Run(ctx, addr, NewRouter(Config{Service: &fakeService{}}), nil) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
