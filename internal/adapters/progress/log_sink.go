package progress

import (
	"context"
	"log/slog"

	"github.com/trebuchet-org/treb-addresses/internal/usecase"
)

// LogSink forwards progress events to the structured logger.
// User-facing output is rendered from the use case result, so events are debug traces.
type LogSink struct {
	log *slog.Logger
}

// NewLogSink creates a progress sink backed by slog
func NewLogSink(log *slog.Logger) *LogSink {
	return &LogSink{log: log.With("component", "progress")}
}

// OnProgress logs a progress event
func (s *LogSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	attrs := []any{"stage", event.Stage}
	if event.Total > 0 {
		attrs = append(attrs, "current", event.Current, "total", event.Total)
	}
	s.log.DebugContext(ctx, event.Message, attrs...)
}

// Info logs an informational message
func (s *LogSink) Info(message string) {
	s.log.Info(message)
}

// Error logs an error message. The CLI prints artifact failures itself, so this
// stays at debug to avoid reporting them twice.
func (s *LogSink) Error(message string) {
	s.log.Debug(message, "severity", "error")
}

// Ensure LogSink implements ProgressSink
var _ usecase.ProgressSink = (*LogSink)(nil)
