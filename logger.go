package vtbench

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"
)

// Logger wraps slog.Logger with vtbench-specific context.
// This provides structured logging with consistent field names.
//
// Logs always go to stderr: stdout belongs to measurements.
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
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// ParseLevel maps debug, info, warn and error to a slog.Level.
// Anything else (including "") yields fallback.
func ParseLevel(s string, fallback slog.Level) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return fallback
	}
}

// ParseLogFormat reports whether s selects JSON output. "" and "text" select
// text.
func ParseLogFormat(s string) (json bool, err error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text":
		return false, nil
	case "json":
		return true, nil
	default:
		return false, fmt.Errorf("unknown log format %q", s)
	}
}

// WithBenchmark adds a benchmark name field to the logger.
func (l *Logger) WithBenchmark(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("benchmark", name),
	}
}

// WithVectorSize adds a vector_size field to the logger.
func (l *Logger) WithVectorSize(n int) *Logger {
	return &Logger{
		Logger: l.Logger.With("vector_size", n),
	}
}

// WithIterations adds an iterations field to the logger.
func (l *Logger) WithIterations(n int) *Logger {
	return &Logger{
		Logger: l.Logger.With("iterations", n),
	}
}

// LogBuild logs the construction of a collection.
func (l *Logger) LogBuild(ctx context.Context, elems int, took time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "build failed",
			"elements", elems,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "build completed",
			"elements", elems,
			"took", took,
		)
	}
}

// LogTeardown logs the release of a collection.
func (l *Logger) LogTeardown(ctx context.Context, frees uint64, live uint64) {
	if live > 0 {
		l.WarnContext(ctx, "teardown left live blocks",
			"frees", frees,
			"live", live,
		)
	} else {
		l.DebugContext(ctx, "teardown completed",
			"frees", frees,
		)
	}
}

// LogRun logs one benchmark subprocess run.
func (l *Logger) LogRun(ctx context.Context, name string, seconds float64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "benchmark run failed",
			"benchmark", name,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "benchmark run completed",
			"benchmark", name,
			"seconds", seconds,
		)
	}
}

// LogSummary logs the end of a harness session.
func (l *Logger) LogSummary(ctx context.Context, benchmarks, runs int, took time.Duration) {
	l.InfoContext(ctx, "harness completed",
		"benchmarks", benchmarks,
		"runs", runs,
		"took", took,
	)
}
