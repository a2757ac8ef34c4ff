package common

import "context"

// JobLogger provides logging functionality for job execution. Implementations
// may write to process logs, to the job's persisted log buffer, or both.
type JobLogger interface {
	Log(level, message string)
}

// Context keys for passing logger through context
type contextKey int

const (
	loggerKey contextKey = iota
)

// WithLogger adds a logger to the context
func WithLogger(ctx context.Context, logger JobLogger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// LoggerFromContext extracts the logger from context, or returns a no-op logger if not found
func LoggerFromContext(ctx context.Context) JobLogger {
	if logger, ok := ctx.Value(loggerKey).(JobLogger); ok {
		return logger
	}
	return &noOpLogger{}
}

// noOpLogger is a logger that does nothing (fallback when no logger in context)
type noOpLogger struct{}

func (l *noOpLogger) Log(level, message string) {
	// Do nothing
}
