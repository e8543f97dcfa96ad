// Package server hosts the HTTP surface of the chat engine.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/lowkeyshift/planwise/internal/profile"
	"github.com/lowkeyshift/planwise/plugin/ai/agent"
	"github.com/lowkeyshift/planwise/plugin/ai/session"
	apiv1 "github.com/lowkeyshift/planwise/server/router/api/v1"
)

// Server wraps echo with the wired v1 API.
type Server struct {
	Profile *profile.Profile

	echoServer *echo.Echo
	apiService *apiv1.APIV1Service
}

// NewServer creates the HTTP server around an already-constructed
// orchestrator and session store.
func NewServer(profile *profile.Profile, orchestrator *agent.Orchestrator, sessions session.Service) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			slog.Info("http request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
			)
			return nil
		},
	}))
	e.Use(middleware.CORS())

	apiService := apiv1.NewAPIV1Service(profile, orchestrator, sessions)
	apiService.RegisterRoutes(e)

	return &Server{
		Profile:    profile,
		echoServer: e,
		apiService: apiService,
	}
}

// Start begins serving and blocks until the listener fails or is shut down.
func (s *Server) Start() error {
	address := fmt.Sprintf("%s:%d", s.Profile.Addr, s.Profile.Port)
	slog.Info("server started", "address", address, "mode", s.Profile.Mode)

	if err := s.echoServer.Start(address); err != nil {
		return errors.Wrap(err, "failed to start server")
	}
	return nil
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := s.echoServer.Shutdown(ctx); err != nil {
		slog.Error("failed to shut down server gracefully", "error", err)
	}
	slog.Info("server stopped")
}
