// Package server serves the starfield over HTTP: a browser page plus JSON
// and SVG endpoints.
package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"time"

	"github.com/litescript/ls-starfield/internal/config"
	"github.com/litescript/ls-starfield/internal/logging"
)

//go:embed templates/page.html.tmpl
var templateFS embed.FS

const (
	defaultShutdownTimeout = 5 * time.Second
	defaultCellSize        = 60
	cleanupInterval        = time.Minute
)

// Server is the starfield HTTP server.
type Server struct {
	cfg             config.ServerConfig
	logger          *logging.Logger
	limiter         *RateLimiter
	page            *template.Template
	cellSize        int
	now             func() time.Time
	shutdownTimeout time.Duration
	httpServer      *http.Server
}

// Option configures a Server.
type Option func(*Server)

// WithClock sets the time source stamped on exports.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

// WithShutdownTimeout bounds how long ListenAndServe drains requests.
func WithShutdownTimeout(d time.Duration) Option {
	return func(s *Server) {
		s.shutdownTimeout = d
	}
}

// WithCellSize sets the SVG cell size for the page and /field.svg.
func WithCellSize(px int) Option {
	return func(s *Server) {
		if px > 0 {
			s.cellSize = px
		}
	}
}

// New creates a server.
func New(cfg config.ServerConfig, logger *logging.Logger, opts ...Option) (*Server, error) {
	page, err := template.ParseFS(templateFS, "templates/page.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse page template: %w", err)
	}

	s := &Server{
		cfg:             cfg,
		logger:          logger,
		limiter:         NewRateLimiter(cfg.RateLimit, logger),
		page:            page,
		cellSize:        defaultCellSize,
		now:             time.Now,
		shutdownTimeout: defaultShutdownTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.httpServer = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s, nil
}

// Handler returns the routed handler with all middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", getOnly(s.logger, s.handlePage))
	mux.HandleFunc("/api/star", getOnly(s.logger, s.handleStar))
	mux.HandleFunc("/api/region", getOnly(s.logger, s.handleRegion))
	mux.HandleFunc("/field.svg", getOnly(s.logger, s.handleSVG))
	mux.HandleFunc("/healthz", getOnly(s.logger, s.handleHealth))

	var h http.Handler = mux
	h = s.limiter.Middleware(h)
	h = newCORS(s.cfg.AllowedOrigins, s.logger).Handler(h)
	h = requestLogger(s.logger, h)
	return h
}

// Serve runs the server on l until ctx ends, then shuts down within the
// shutdown timeout.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go s.limiter.Run(ctx, cleanupInterval)

	serveErr := make(chan error, 1)
	s.logger.Info("listening on %s", l.Addr())
	go func() {
		serveErr <- s.httpServer.Serve(l)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancelShutdown()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		s.logger.Info("server stopped")
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

// ListenAndServe listens on the configured address and serves until ctx
// ends.
func (s *Server) ListenAndServe(ctx context.Context) error {
	var lc net.ListenConfig
	l, err := lc.Listen(ctx, "tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, l)
}
