package server

import (
	"io"
	"net/http"
	"net/http/httptest"

	"github.com/crlsmrls/greetbox/config"
	"github.com/crlsmrls/greetbox/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// Helpers for integration tests in other packages:
// - NewTestServer starts a real listener through httptest.
// - NewTestServerWithRecorder returns a Server to drive with httptest.ResponseRecorder.

// TestServer wraps a Server for testing purposes.
type TestServer struct {
	*Server
	HTTPServer *httptest.Server
}

// NewTestServer creates a new test server with the given configuration.
// Callers must Close it.
func NewTestServer(cfg *config.Config, logWriter io.Writer, reg *prometheus.Registry) *TestServer {
	srv := NewTestServerWithRecorder(cfg, logWriter, reg)
	return &TestServer{
		Server:     srv,
		HTTPServer: httptest.NewServer(srv.router),
	}
}

// Close shuts down the underlying httptest server.
func (ts *TestServer) Close() {
	ts.HTTPServer.Close()
}

// NewTestServerWithRecorder creates a Server without a listener.
func NewTestServerWithRecorder(cfg *config.Config, logWriter io.Writer, reg *prometheus.Registry) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if reg == nil {
		reg = metrics.InitMetrics()
	}
	return New(cfg, logWriter, reg)
}

// ServeHTTP dispatches a request through the router and middleware chain.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
