package server

import (
	"net/http"

	"github.com/crlsmrls/greetbox/logger"
	"github.com/google/uuid"
)

const correlationIDHeader = "X-Correlation-ID"

// CorrelationIDMiddleware attaches a correlation ID to the request logger and response headers.
// An incoming X-Correlation-ID is propagated; otherwise a new UUID is generated.
func CorrelationIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		correlationID := r.Header.Get(correlationIDHeader)
		if correlationID == "" {
			correlationID = uuid.New().String()
		}

		w.Header().Set(correlationIDHeader, correlationID)

		ctx, _ := logger.WithCorrelationID(r.Context(), correlationID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
