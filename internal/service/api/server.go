package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"taglens/internal/config"
)

// Server wraps the HTTP server lifecycle around a prepared handler.
type Server struct {
	config *config.Config
	logger *slog.Logger
	server *http.Server
}

// New creates a server for the given handler.
func New(config *config.Config, logger *slog.Logger, handler http.Handler) *Server {
	return &Server{
		config: config,
		logger: logger,
		server: &http.Server{
			Addr:    ":" + config.Port,
			Handler: handler,
			// Analyses can legitimately take tens of seconds (render
			// timeout plus model call), so write generously
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 90 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// Start begins serving. Blocks until the server stops.
func (s *Server) Start() error {
	s.logger.Info("Starting API server", "port", s.config.Port)
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping API server...")
	return s.server.Shutdown(ctx)
}
