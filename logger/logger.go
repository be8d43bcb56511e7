package logger

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// New builds a JSON logger writing to w, or to stdout when w is nil.
func New(w io.Writer) zerolog.Logger {
	if w == nil {
		w = os.Stdout
	}
	return zerolog.New(w).With().Timestamp().Caller().Logger()
}

// InitLogger initializes the global logger
func InitLogger(level string, writer io.Writer) zerolog.Logger {
	logLevel, err := zerolog.ParseLevel(level)
	if err != nil || logLevel == zerolog.NoLevel {
		logLevel = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(logLevel)
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.CallerFieldName = "source"

	l := New(writer)
	log.Logger = l
	zerolog.DefaultContextLogger = &l
	return l
}

// FromContext returns a logger from the context, or the default logger if none is found
func FromContext(ctx context.Context) *zerolog.Logger {
	logger := zerolog.Ctx(ctx)
	// zerolog.Ctx hands back a disabled logger when nothing is attached.
	if logger.GetLevel() == zerolog.Disabled {
		if defLogger := zerolog.DefaultContextLogger; defLogger != nil {
			return defLogger
		}
		l := New(nil)
		return &l
	}
	return logger
}

// WithCorrelationID returns a new context and a logger with the correlation ID field.
func WithCorrelationID(ctx context.Context, correlationID string) (context.Context, *zerolog.Logger) {
	logger := FromContext(ctx).With().Str("correlation_id", correlationID).Logger()
	return logger.WithContext(ctx), &logger
}
