package leaderboard

import (
	"context"
	"fmt"

	"glidescore/core"

	"go.opentelemetry.io/otel/attribute"
)

// Health reports the outcome of the storage probe.
type Health struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Storage   string `json:"storage"`
	Timestamp string `json:"timestamp"`
}

// Healthy reports whether the probe succeeded.
func (h Health) Healthy() bool { return h.Status == "healthy" }

// CheckHealth runs a write-then-delete probe against the storage location.
// It never panics past this boundary; any probe failure, including a panic
// inside the store, reads as degraded.
func (s *Service) CheckHealth(ctx context.Context) Health {
	ctx, span := s.tracer.Start(ctx, "health_check")
	defer span.End()

	h := Health{
		Status:    "healthy",
		Service:   ServiceName,
		Storage:   "healthy",
		Timestamp: core.Now(),
	}
	if err := s.probe(ctx); err != nil {
		h.Status = "degraded"
		h.Storage = "error"
		span.RecordError(err)
		s.logger.Error("storage probe failed", "error", err)
	}
	span.SetAttributes(attribute.String("health.status", h.Status))
	s.logger.Info("health check performed", "status", h.Status)
	return h
}

func (s *Service) probe(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("storage probe panicked: %v", r)
		}
	}()
	return s.store.Probe(ctx)
}
