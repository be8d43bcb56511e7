package greeting

import (
	"net/http"
	"os"

	"github.com/crlsmrls/greetbox/logger"
	"github.com/crlsmrls/greetbox/metrics"
)

// Version is a resolved version selector.
type Version string

const (
	V1      Version = "v1"
	V2      Version = "v2"
	Unknown Version = "unknown"
)

// EnvVar names the environment variable holding the version selector.
const EnvVar = "VERSION"

// DefaultVersion applies when EnvVar is not set at all. An empty value is
// still a value and resolves to Unknown.
const DefaultVersion = V1

var texts = map[Version]string{
	V1:      "Hello everyone! This is version 1.",
	V2:      "Hello everyone! This is the updated version 2.",
	Unknown: "Hello everyone! Version unknown.",
}

// Resolve maps a raw selector, as returned by os.LookupEnv, to a Version.
// Matching is exact and case-sensitive.
func Resolve(value string, ok bool) Version {
	if !ok {
		return DefaultVersion
	}
	switch Version(value) {
	case V1:
		return V1
	case V2:
		return V2
	default:
		return Unknown
	}
}

// Text returns the greeting body for v.
func Text(v Version) string {
	if s, ok := texts[v]; ok {
		return s
	}
	return texts[Unknown]
}

// LookupFunc reads an environment variable, reporting whether it was set.
type LookupFunc func(key string) (string, bool)

// Handler serves the greeting for the current version selector. The selector
// is looked up on every request.
type Handler struct {
	Lookup LookupFunc
}

// NewHandler returns a Handler reading the process environment.
func NewHandler() *Handler {
	return &Handler{Lookup: os.LookupEnv}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	lookup := h.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}

	v := Resolve(lookup(EnvVar))
	metrics.RecordGreeting(string(v))

	l := logger.FromContext(r.Context())

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(Text(v))); err != nil {
		l.Error().Err(err).Msg("failed to write greeting")
		return
	}

	l.Debug().Str("version", string(v)).Msg("greeting served")
}
