// Package web serves the salary dashboard over HTTP: the HTML page, its JSON model,
// exports of the filtered rows, a health check and Prometheus metrics.
package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/fr4nk3nst1ner/salarydash/internal/dashboard"
	"github.com/fr4nk3nst1ner/salarydash/internal/dataset"
)

const shutdownTimeout = 30 * time.Second

// Options configures a Server
type Options struct {
	Addr        string
	CORSOrigins []string
	// Username and Password guard the API and export routes when both are set
	Username string
	Password string
	Render   dashboard.Options
}

// Server is the dashboard HTTP server
type Server struct {
	source dataset.Source
	opts   Options
	logger *slog.Logger
}

// NewServer creates a Server rendering the dataset handed out by source
func NewServer(source dataset.Source, opts Options, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{source: source, opts: opts, logger: logger}
}

// Handler returns the routes of the dashboard wrapped in request logging
func (s *Server) Handler() http.Handler {
	origins := s.opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	})
	guard := func(h http.HandlerFunc) http.Handler {
		return basicAuth(s.opts.Username, s.opts.Password, h)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.Handle("/api/dashboard", corsHandler.Handler(guard(s.handleAPIDashboard)))
	mux.Handle("/api/options", corsHandler.Handler(guard(s.handleAPIOptions)))
	mux.Handle("GET /export.xlsx", guard(s.handleExportXLSX))
	mux.Handle("GET /export.csv", guard(s.handleExportCSV))
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	return LoggingMiddleware(s.logger, mux)
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:         s.opts.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting dashboard server", "addr", s.opts.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen on %s: %w", s.opts.Addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down dashboard server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	s.logger.Info("server exited")
	return nil
}
