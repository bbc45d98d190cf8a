package commands

import (
	"context"
	"log/slog"

	"printshop/internal/core/ports"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("printshop/internal/core/application/usecases/commands")

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// publishStatusChanges runs after commit. A failed notification does not undo the change,
// so it is logged and swallowed.
func publishStatusChanges(ctx context.Context, publisher ports.OrderEventPublisher, events []ports.StatusChangedEvent) {
	if publisher == nil || len(events) == 0 {
		return
	}
	if err := publisher.Publish(ctx, events...); err != nil {
		slog.ErrorContext(ctx, "Failed to publish order status changes",
			"error", err,
			"order_id", events[0].OrderID.String(),
			"events", len(events),
		)
	}
}
