// Package server exposes a Source of host metrics over the HTTP contract the
// dashboard polls: GET /stats, GET /processes and GET /health.
package server

import (
	"context"
	stderrors "errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rileyhilliard/sysmon/internal/errors"
	"github.com/rileyhilliard/sysmon/internal/logger"
	"github.com/rileyhilliard/sysmon/internal/metrics"
)

// shutdownTimeout bounds graceful shutdown once the serving context ends.
const shutdownTimeout = 5 * time.Second

// Source produces the data served by the API. *collector.Collector is the
// production implementation.
type Source interface {
	Stats(ctx context.Context) (metrics.SystemStats, error)
	Processes(ctx context.Context, sortBy metrics.Column, limit int) ([]metrics.ProcessInfo, error)
}

// Options configures a Server.
type Options struct {
	// DefaultLimit applies when /processes is called without ?limit.
	DefaultLimit int
	// Version is reported by /health.
	Version string
	// Logger receives one line per request. Nil uses logger.Default().
	Logger logger.Logger
}

// Server is the metrics HTTP API.
type Server struct {
	source Source
	opts   Options
	log    logger.Logger
	engine *gin.Engine
}

// New builds the gin engine and registers routes.
func New(source Source, opts Options) *Server {
	if opts.DefaultLimit < 1 {
		opts.DefaultLimit = 10
	}
	if opts.Version == "" {
		opts.Version = "dev"
	}
	log := opts.Logger
	if log == nil {
		log = logger.Default()
	}

	if gin.Mode() == gin.DebugMode && !logger.DebugEnabled() {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		source: source,
		opts:   opts,
		log:    log,
		engine: gin.New(),
	}
	s.engine.Use(gin.Recovery(), requestLogger(log))
	s.setupRoutes()
	return s
}

// setupRoutes registers every endpoint.
func (s *Server) setupRoutes() {
	h := &handlers{source: s.source, defaultLimit: s.opts.DefaultLimit, version: s.opts.Version, started: time.Now()}

	s.engine.GET("/stats", h.stats)
	s.engine.GET("/processes", h.processes)
	s.engine.GET("/health", h.health)
}

// Handler returns the server as an http.Handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Listen binds addr without serving yet, so callers can report bind errors
// before starting anything else.
func Listen(addr string) (net.Listener, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrServer,
			"Can't listen on "+addr,
			"Another process may hold the port. Pick a different one with --addr.")
	}
	return ln, nil
}

// Serve handles requests on ln until ctx is canceled, then shuts down
// gracefully. It returns nil after a clean shutdown.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	s.log.Info("serving metrics on http://%s", ln.Addr())

	select {
	case err := <-errCh:
		if err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			return errors.WrapWithCode(err, errors.ErrServer, "Metrics server stopped unexpectedly", "")
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.WrapWithCode(err, errors.ErrServer, "Metrics server didn't shut down cleanly", "")
	}
	s.log.Debug("metrics server stopped")
	return nil
}
