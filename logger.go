package sinkscan

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with scan-specific helpers so every call site
// logs the same field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a Logger with the given handler. A nil handler falls
// back to a text handler on stderr at info level.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{Logger: slog.New(handler)}
}

// NewJSONLogger creates a Logger that writes JSON lines to stderr.
func NewJSONLogger(level slog.Level) *Logger {
	return &Logger{Logger: slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))}
}

// NewTextLogger creates a Logger that writes human-readable text to stderr.
func NewTextLogger(level slog.Level) *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))}
}

// NoopLogger creates a Logger that discards everything.
func NoopLogger() *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	}))}
}

// WithRegion adds a region field, useful when scanning several extracts.
func (l *Logger) WithRegion(region string) *Logger {
	return &Logger{Logger: l.Logger.With("region", region)}
}

// LogSearch logs the outcome of one seed search.
func (l *Logger) LogSearch(ctx context.Context, seed int64, island bool, flagged int) {
	if island {
		l.InfoContext(ctx, "island found",
			"seed", seed,
			"edges", flagged,
		)
	} else {
		l.DebugContext(ctx, "search aborted",
			"seed", seed,
			"flagged", flagged,
		)
	}
}

// LogScan logs the completion of a full network scan.
func (l *Logger) LogScan(ctx context.Context, summary Summary, err error) {
	if err != nil {
		l.ErrorContext(ctx, "scan failed",
			"seeds", summary.SeedsExamined,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "scan completed",
		"seeds", summary.SeedsExamined,
		"islands", summary.Islands,
		"aborted", summary.Aborted,
		"edges_flagged", summary.EdgesFlagged,
		"duration", summary.Duration.Round(time.Millisecond),
	)
}

// LogSnapshot logs a snapshot save or load.
func (l *Logger) LogSnapshot(ctx context.Context, name string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "snapshot failed",
			"name", name,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "snapshot ok",
			"name", name,
		)
	}
}
