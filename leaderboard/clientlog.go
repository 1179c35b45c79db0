package leaderboard

import (
	"context"
	"strings"

	"glidescore/core"

	"go.opentelemetry.io/otel/attribute"
)

// ClientLogEntry is a structured log record forwarded by the frontend.
// It is a diagnostic pass-through, never persisted as domain data.
type ClientLogEntry struct {
	Level   string         `json:"level,omitempty"`
	Message string         `json:"message,omitempty"`
	Data    map[string]any `json:"data,omitempty"`
}

// IsEmpty reports whether the record carries nothing to log.
func (e ClientLogEntry) IsEmpty() bool {
	return e.Level == "" && e.Message == "" && len(e.Data) == 0
}

// ClientLog forwards a frontend log record to the structured logger at the
// record's level.
func (s *Service) ClientLog(ctx context.Context, entry ClientLogEntry) error {
	_, span := s.tracer.Start(ctx, "frontend_event")
	defer span.End()

	if entry.IsEmpty() {
		return core.ErrInvalidRequest
	}

	level := strings.ToLower(entry.Level)
	if level == "" {
		level = "info"
	}
	span.SetAttributes(
		attribute.String("level", level),
		attribute.String("message", entry.Message),
	)

	attrs := []any{"origin", "frontend"}
	if len(entry.Data) > 0 {
		attrs = append(attrs, "data", entry.Data)
	}
	switch level {
	case "error":
		s.logger.Error(entry.Message, attrs...)
	case "warn", "warning":
		s.logger.Warn(entry.Message, attrs...)
	case "debug":
		s.logger.Debug(entry.Message, attrs...)
	default:
		s.logger.Info(entry.Message, attrs...)
	}
	return nil
}
