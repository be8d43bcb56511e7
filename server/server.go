package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/crlsmrls/greetbox/config"
	"github.com/crlsmrls/greetbox/logger"
	"github.com/crlsmrls/greetbox/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 30 * time.Second

// Server holds the HTTP server and its configuration.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	config     *config.Config
}

// New creates a new HTTP server.
func New(cfg *config.Config, logWriter io.Writer, reg *prometheus.Registry) *Server {
	r := chi.NewRouter()

	l := logger.New(logWriter)

	r.Use(
		// Inject zerolog logger into the request context
		hlog.NewHandler(l),

		// Derive a logger carrying the X-Correlation-ID for everything downstream,
		// the access log included
		CorrelationIDMiddleware,

		metrics.HTTPMetricsMiddleware,

		hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
			hlog.FromRequest(r).Info().
				Str("method", r.Method).
				Str("url", r.URL.String()).
				Int("status", status).
				Int("size", size).
				Dur("duration", duration).
				Msg("request")
		}),

		hlog.RemoteAddrHandler("ip"),
		hlog.UserAgentHandler("user_agent"),
		middleware.RequestID,
		middleware.Recoverer,
	)

	setupRoutes(r, cfg, reg)

	return &Server{
		router: r,
		config: cfg,
		httpServer: &http.Server{
			Addr:         cfg.Addr(),
			Handler:      r,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  15 * time.Second,
		},
	}
}

// Start binds the configured address and serves until ctx is cancelled or the
// process receives SIGINT or SIGTERM. A bind failure is returned immediately.
func (s *Server) Start(ctx context.Context) error {
	addr := s.config.Addr()
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln and shuts down gracefully on cancellation
// or signal. It takes ownership of ln.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", ln.Addr().String()).Msg("Starting server")
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		log.Info().Msg("Server gracefully stopped.")
		return nil
	})

	return g.Wait()
}
