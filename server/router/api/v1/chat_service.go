package v1

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/lowkeyshift/planwise/plugin/ai/session"
)

// ChatRequest is the body of POST /api/v1/chat. SessionID defaults to
// "default" so single-user deployments need not manage session keys.
type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

// ChatResponse mirrors the orchestrator's reply.
type ChatResponse struct {
	Response string `json:"response"`
	Success  bool   `json:"success"`
}

// HistoryResponse is the body of GET /api/v1/sessions/:id/history.
type HistoryResponse struct {
	SessionID string         `json:"session_id"`
	Turns     []session.Turn `json:"turns"`
}

// ResetResponse is the body of POST /api/v1/sessions/:id/reset.
type ResetResponse struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
}

// Chat handles one conversation turn.
func (s *APIV1Service) Chat(c echo.Context) error {
	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	if strings.TrimSpace(req.Message) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "message is required")
	}
	if req.SessionID == "" {
		req.SessionID = "default"
	}
	if !s.rateLimiter.Allow(req.SessionID) {
		return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests, slow down")
	}

	ctx := c.Request().Context()

	// One turn at a time; waiting turns queue here.
	if err := s.turnSemaphore.Acquire(ctx, 1); err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "server is shutting down")
	}
	defer s.turnSemaphore.Release(1)

	reply := s.Orchestrator.Handle(ctx, req.SessionID, req.Message)
	return c.JSON(http.StatusOK, ChatResponse{Response: reply.Text, Success: reply.Success})
}

// GetHistory returns a session's conversation log.
func (s *APIV1Service) GetHistory(c echo.Context) error {
	sessionID := c.Param("id")

	turns, err := s.Sessions.List(c.Request().Context(), sessionID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load history")
	}
	return c.JSON(http.StatusOK, HistoryResponse{SessionID: sessionID, Turns: turns})
}

// ResetSession clears a session's conversation log.
func (s *APIV1Service) ResetSession(c echo.Context) error {
	sessionID := c.Param("id")

	if err := s.Sessions.Reset(c.Request().Context(), sessionID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to reset session")
	}
	return c.JSON(http.StatusOK, ResetResponse{Message: "Conversation history cleared!", Success: true})
}

// Healthz reports liveness.
func (s *APIV1Service) Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ok",
		"version": s.Profile.Version,
	})
}
