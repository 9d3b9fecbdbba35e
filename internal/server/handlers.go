// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pdiddy/content-engine/internal/logging"
	"github.com/pdiddy/content-engine/internal/service"
	"github.com/pdiddy/content-engine/pkg/types"
)

type handler struct {
	svc     ContentService
	log     *logging.Logger
	timeout time.Duration
}

type errorBody struct {
	Detail string `json:"detail"`
}

func (h *handler) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "active",
		"message": "Welcome to the AI Content Generator API",
	})
}

func (h *handler) generate(c *gin.Context) {
	var req types.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, errorBody{Detail: "invalid request body: " + err.Error()})
		return
	}

	ctx := c.Request.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	resp, err := h.svc.Generate(ctx, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *handler) history(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusUnprocessableEntity, errorBody{Detail: "user_id is required"})
		return
	}

	gens, err := h.svc.History(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err)
		return
	}
	if gens == nil {
		gens = []types.Generation{}
	}
	c.JSON(http.StatusOK, gens)
}

// fail maps caller errors to 422 and everything else to 500.
func (h *handler) fail(c *gin.Context, err error) {
	_ = c.Error(err)
	status := http.StatusInternalServerError
	if errors.Is(err, service.ErrInvalidRequest) {
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, errorBody{Detail: err.Error()})
}
