// Package observability provides logging, metrics, and tracing.
package observability

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger to provide specialized logging methods.
type Logger struct {
	*slog.Logger
}

// GlobalLogger is the default logger instance for the application.
var GlobalLogger *Logger

func init() {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	GlobalLogger = &Logger{Logger: slog.New(handler)}
}

// LogContextKey is a type for context keys used by the logging package.
type LogContextKey string

// CorrelationID is the context key carrying the request correlation id.
const CorrelationID LogContextKey = "correlation_id"

// WithCorrelationID returns a new context with the given correlation ID.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, CorrelationID, id)
}

// ExtractCorrelationID retrieves the correlation ID from the context.
func ExtractCorrelationID(ctx context.Context) string {
	if id := ctx.Value(CorrelationID); id != nil {
		if s, ok := id.(string); ok {
			return s
		}
	}
	return ""
}

// StoreLogger provides structured logging for entity store mutations.
type StoreLogger struct {
	logger *Logger
}

// NewStoreLogger returns a StoreLogger backed by the global logger.
func NewStoreLogger() *StoreLogger {
	return &StoreLogger{logger: GlobalLogger}
}

// LogMutation logs an entity store mutation.
func (l *StoreLogger) LogMutation(ctx context.Context, op string, fields map[string]interface{}) {
	attrs := []any{
		slog.String("operation", op),
		slog.String("correlation_id", ExtractCorrelationID(ctx)),
	}
	for k, v := range fields {
		attrs = append(attrs, slog.Any(k, v))
	}
	l.logger.InfoContext(ctx, "store mutation", attrs...)
}

// LogError logs a store operation error.
func (l *StoreLogger) LogError(ctx context.Context, op string, err error) {
	l.logger.ErrorContext(ctx, "store error",
		slog.String("operation", op),
		slog.String("correlation_id", ExtractCorrelationID(ctx)),
		slog.String("error", err.Error()),
	)
}
