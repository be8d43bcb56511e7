package server

import (
	"net/http"

	"github.com/crlsmrls/greetbox/cmd/greeting"
	"github.com/crlsmrls/greetbox/config"
	"github.com/crlsmrls/greetbox/logger"
	"github.com/crlsmrls/greetbox/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
)

// setupRoutes configures the application's routes.
func setupRoutes(router *chi.Mux, cfg *config.Config, reg *prometheus.Registry) {
	router.Method(http.MethodGet, "/", greeting.NewHandler())

	router.Get("/healthz", okHandler)
	router.Get("/readyz", okHandler)

	router.Method(http.MethodGet, cfg.MetricsPath, metrics.MetricsHandler(reg))
}

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		logger.FromContext(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("failed to write probe response")
	}
}
