package refer

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with REFER-specific helpers.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000),
	}))
}

// WithDataset tags every record with the dataset name and split scheme.
func (l *Logger) WithDataset(name, splitBy string) *Logger {
	return &Logger{
		Logger: l.Logger.With("dataset", name, "split_by", splitBy),
	}
}

// LogLoad logs index construction.
func (l *Logger) LogLoad(ctx context.Context, stats Stats, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "index creation failed",
			"elapsed", elapsed,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "index created",
		"refs", stats.Refs,
		"anns", stats.Annotations,
		"imgs", stats.Images,
		"cats", stats.Categories,
		"sents", stats.Sentences,
		"elapsed", elapsed,
	)
}

// LogQuery logs a filter query.
func (l *Logger) LogQuery(ctx context.Context, op string, results int, err error) {
	if err != nil {
		l.WarnContext(ctx, "query failed",
			"op", op,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "query completed",
		"op", op,
		"results", results,
	)
}

// LogEvaluate logs one evaluation metric.
func (l *Logger) LogEvaluate(ctx context.Context, metric string, score float64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "evaluation failed",
			"metric", metric,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "evaluation completed",
		"metric", metric,
		"score", score,
	)
}
