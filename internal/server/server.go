// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the content service over HTTP.
//
//	GET  /                 liveness
//	POST /generate         run the pipeline
//	GET  /history?user_id= list a user's saved generations
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pdiddy/content-engine/internal/logging"
	"github.com/pdiddy/content-engine/pkg/types"
)

const shutdownTimeout = 10 * time.Second

// ContentService is what the handlers call.
type ContentService interface {
	Generate(ctx context.Context, req types.GenerateRequest) (types.GenerateResponse, error)
	History(ctx context.Context, userID string) ([]types.Generation, error)
}

// Config wires the router.
type Config struct {
	Service ContentService
	Logger  *logging.Logger

	// AllowOrigins lists CORS origins; empty allows all.
	AllowOrigins []string

	// RequestTimeout bounds one /generate call. Zero means no bound.
	RequestTimeout time.Duration
}

// NewRouter builds the gin engine with every route and middleware installed.
func NewRouter(cfg Config) *gin.Engine {
	log := cfg.Logger
	if log == nil {
		log = logging.Nop()
	}
	h := &handler{svc: cfg.Service, log: log, timeout: cfg.RequestTimeout}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(log.With("component", "http")))
	router.Use(CORS(cfg.AllowOrigins))

	router.GET("/", h.root)
	router.POST("/generate", h.generate)
	router.GET("/history", h.history)

	return router
}

// Run serves handler on addr until ctx is cancelled, then shuts down
// gracefully.
func Run(ctx context.Context, addr string, handler http.Handler, log *logging.Logger) error {
	if log == nil {
		log = logging.Nop()
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving on %s: %w", addr, err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}
