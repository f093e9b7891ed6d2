package http

// this is entry point of the http request handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"

	"github.com/joshuaj3383/CodeGrader/internal/core/ports/primary"
	reporthdl "github.com/joshuaj3383/CodeGrader/internal/handlers/report"
)

// Server exposes the last grading run's report over HTTP when the grader is
// started with --serve.
type Server struct {
	router      *mux.Router
	Port        int
	ServiceName string
	provider    reporthdl.Provider
	logger      primary.Logger

	srv *http.Server
}

func NewServer(port int, serviceName string, provider reporthdl.Provider, logger primary.Logger) *Server {
	return &Server{
		Port:        port,
		ServiceName: serviceName,
		provider:    provider,
		logger:      logger,
	}
}

func (s *Server) Init() error {
	r := mux.NewRouter()
	reporthdl.NewReportHandler(s.provider, s.logger).RegisterRoutes(r)
	s.router = r
	return nil
}

func (s *Server) Start(ctx context.Context) {
	// Set up server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	s.srv = srv

	// Start the server in a goroutine
	go func() {
		s.logger.Info("Report server listening", "addr", srv.Addr, "service", s.ServiceName)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Report server error", "error", err)
			os.Exit(1)
		}
	}()
}

func (s *Server) Stop(ctx context.Context) {
	s.logger.Info("Shutting down report server...")
	if s.srv != nil {
		if err := s.srv.Shutdown(ctx); err != nil {
			s.logger.Error("Report server forced to shutdown", "error", err)
		}
	}
}
