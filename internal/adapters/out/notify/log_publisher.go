package notify

import (
	"context"
	"log/slog"

	"printshop/internal/core/ports"
)

// LogPublisher writes status changes to the structured log. It is used when no broker is
// configured.
type LogPublisher struct {
	logger *slog.Logger
}

var _ ports.OrderEventPublisher = (*LogPublisher)(nil)

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogPublisher{logger: logger.With("component", "order-events")}
}

func (p *LogPublisher) Publish(ctx context.Context, events ...ports.StatusChangedEvent) error {
	for _, e := range events {
		m := messageFromEvent(e)
		p.logger.InfoContext(ctx, m.Type,
			"order_id", m.OrderID,
			"tracking_code", m.TrackingCode,
			"status", m.Status,
			"description", m.Description,
			"occurred_at", m.OccurredAt,
		)
	}
	return nil
}
