// Package v1 exposes the chat engine over HTTP.
package v1

import (
	"github.com/labstack/echo/v4"
	"golang.org/x/sync/semaphore"

	"github.com/lowkeyshift/planwise/internal/profile"
	"github.com/lowkeyshift/planwise/plugin/ai/agent"
	"github.com/lowkeyshift/planwise/plugin/ai/session"
	"github.com/lowkeyshift/planwise/server/middleware"
)

// APIV1Service wires the orchestrator and session log into echo routes.
type APIV1Service struct {
	Profile      *profile.Profile
	Orchestrator *agent.Orchestrator
	Sessions     session.Service

	// turnSemaphore serializes turns: each handled utterance runs to
	// completion before the next is admitted.
	turnSemaphore *semaphore.Weighted
	rateLimiter   *middleware.RateLimiter
}

// NewAPIV1Service creates the v1 API service.
func NewAPIV1Service(profile *profile.Profile, orchestrator *agent.Orchestrator, sessions session.Service) *APIV1Service {
	return &APIV1Service{
		Profile:       profile,
		Orchestrator:  orchestrator,
		Sessions:      sessions,
		turnSemaphore: semaphore.NewWeighted(1),
		rateLimiter:   middleware.NewRateLimiter(2, 5),
	}
}

// RegisterRoutes attaches all v1 routes to the echo instance.
func (s *APIV1Service) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", s.Healthz)

	group := e.Group("/api/v1")
	group.POST("/chat", s.Chat)
	group.GET("/sessions/:id/history", s.GetHistory)
	group.POST("/sessions/:id/reset", s.ResetSession)
}
