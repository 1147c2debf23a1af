// Package sse serves the MCP server over HTTP with Server-Sent Events.
//
// Routes:
//
//	GET  /sse      event stream, one MCP session per connection
//	POST /message  JSON-RPC messages for a session (?sessionId=...)
//	GET  /healthz  catalogue status
//	GET  /metrics  Prometheus metrics
package sse

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/dshills/cloudscape-mcp/internal/logger"
	"github.com/dshills/cloudscape-mcp/internal/metrics"
	"github.com/dshills/cloudscape-mcp/internal/storage"
)

// Route paths.
const (
	SSEPath     = "/sse"
	MessagePath = "/message"
	HealthPath  = "/healthz"
	MetricsPath = "/metrics"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 10 * time.Second
)

// Backend is the MCP server exposed over HTTP.
type Backend interface {
	MCPServer() *server.MCPServer
	Status(ctx context.Context) (*storage.CatalogStatus, error)
}

// Server is the HTTP transport.
type Server struct {
	backend  Backend
	sse      *server.SSEServer
	router   chi.Router
	gatherer prometheus.Gatherer
	logger   *zap.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithGatherer sets the metrics source served at /metrics.
// Defaults to prometheus.DefaultGatherer.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// NewServer builds the router. baseURL is the externally visible address
// announced to clients in the endpoint event, e.g. http://localhost:3001.
func NewServer(backend Backend, baseURL string, opts ...Option) *Server {
	s := &Server{
		backend:  backend,
		gatherer: prometheus.DefaultGatherer,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.sse = server.NewSSEServer(backend.MCPServer(),
		server.WithBaseURL(baseURL),
		server.WithSSEEndpoint(SSEPath),
		server.WithMessageEndpoint(MessagePath),
	)

	r := chi.NewRouter()
	r.Use(recoverer(s.logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(requestLogger(s.logger))
	r.Use(metrics.Middleware())

	r.Get(SSEPath, s.sse.SSEHandler().ServeHTTP)
	r.Post(MessagePath, s.sse.MessageHandler().ServeHTTP)
	r.Get(HealthPath, s.handleHealth)
	r.Handle(MetricsPath, promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))

	s.router = r
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	// No WriteTimeout: event streams stay open for the session lifetime.
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", zap.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.sse.Shutdown(shutdownCtx); err != nil {
		s.logger.Warn("error closing SSE sessions", zap.Error(err))
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down HTTP server: %w", err)
	}
	<-errCh

	s.logger.Info("HTTP server stopped")
	return nil
}

type healthResponse struct {
	Status        string `json:"status"`
	SchemaVersion string `json:"schemaVersion,omitempty"`
	Components    int    `json:"components"`
	Categories    int    `json:"categories"`
	Patterns      int    `json:"patterns"`
	Examples      int    `json:"examples"`
	Driver        string `json:"driver,omitempty"`
	BuildMode     string `json:"buildMode,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status, err := s.backend.Status(r.Context())
	if err != nil {
		logger.FromContext(r.Context()).Error("health check failed", zap.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unavailable"})
		return
	}

	writeJSON(w, http.StatusOK, healthResponse{
		Status:        "ok",
		SchemaVersion: status.SchemaVersion,
		Components:    status.ComponentsCount,
		Categories:    status.CategoriesCount,
		Patterns:      status.PatternsCount,
		Examples:      status.ExamplesCount,
		Driver:        status.DriverName,
		BuildMode:     status.BuildMode,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
