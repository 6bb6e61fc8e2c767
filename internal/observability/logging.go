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

// CorrelationID is the context key for the correlation ID.
const CorrelationID LogContextKey = "correlation_id"

// LoggingConfig defines which types of automated logging are enabled.
type LoggingConfig struct {
	EnableRepoLogging     bool
	EnableAnalyzerLogging bool
}

// Config holds the current logging configuration.
var Config = LoggingConfig{
	EnableRepoLogging:     true,
	EnableAnalyzerLogging: true,
}

// WithCorrelationID returns a new context with the given correlation ID.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, CorrelationID, id)
}

// ExtractCorrelationID retrieves the correlation ID from the context.
func ExtractCorrelationID(ctx context.Context) string {
	if id := ctx.Value(CorrelationID); id != nil {
		return id.(string)
	}
	return ""
}

// RepoLogger provides structured logging for repository operations.
type RepoLogger struct {
	tableName string
	logger    *Logger
}

// NewRepoLogger creates a new RepoLogger for the given table.
func NewRepoLogger(tableName string) *RepoLogger {
	return &RepoLogger{
		tableName: tableName,
		logger:    GlobalLogger,
	}
}

// LogRead logs a repository read operation.
func (l *RepoLogger) LogRead(ctx context.Context, fields map[string]interface{}) {
	if !Config.EnableRepoLogging {
		return
	}
	attrs := []any{
		slog.String("table", l.tableName),
		slog.String("operation", "read"),
		slog.String("correlation_id", ExtractCorrelationID(ctx)),
	}
	for k, v := range fields {
		attrs = append(attrs, slog.Any(k, v))
	}
	l.logger.InfoContext(ctx, "repository read", attrs...)
}

// LogWrite logs a repository create or update operation.
func (l *RepoLogger) LogWrite(ctx context.Context, operation string, fields map[string]interface{}) {
	if !Config.EnableRepoLogging {
		return
	}
	attrs := []any{
		slog.String("table", l.tableName),
		slog.String("operation", operation),
		slog.String("correlation_id", ExtractCorrelationID(ctx)),
	}
	for k, v := range fields {
		attrs = append(attrs, slog.Any(k, v))
	}
	l.logger.InfoContext(ctx, "repository write", attrs...)
}

// LogError logs a repository error.
func (l *RepoLogger) LogError(ctx context.Context, err error, operation string) {
	if !Config.EnableRepoLogging {
		return
	}
	l.logger.ErrorContext(ctx, "repository error",
		slog.String("table", l.tableName),
		slog.String("operation", operation),
		slog.String("correlation_id", ExtractCorrelationID(ctx)),
		slog.String("error", err.Error()),
	)
}

// AnalyzerLogger provides structured logging for analyzer runs.
type AnalyzerLogger struct {
	analyzer string
	logger   *Logger
}

// NewAnalyzerLogger creates a new AnalyzerLogger for the named analyzer.
func NewAnalyzerLogger(analyzer string) *AnalyzerLogger {
	return &AnalyzerLogger{
		analyzer: analyzer,
		logger:   GlobalLogger,
	}
}

// LogSkip logs an author skipped for insufficient data.
func (l *AnalyzerLogger) LogSkip(ctx context.Context, author, reason string) {
	if !Config.EnableAnalyzerLogging {
		return
	}
	l.logger.InfoContext(ctx, "analyzer skip",
		slog.String("analyzer", l.analyzer),
		slog.String("author", author),
		slog.String("reason", reason),
	)
}

// LogUnavailable logs an analyzer whose optional capability is disabled.
func (l *AnalyzerLogger) LogUnavailable(ctx context.Context, reason string) {
	l.logger.WarnContext(ctx, "analyzer unavailable",
		slog.String("analyzer", l.analyzer),
		slog.String("reason", reason),
	)
}

// LogError logs an analyzer failure for one author.
func (l *AnalyzerLogger) LogError(ctx context.Context, author string, err error) {
	l.logger.ErrorContext(ctx, "analyzer error",
		slog.String("analyzer", l.analyzer),
		slog.String("author", author),
		slog.String("error", err.Error()),
	)
}
