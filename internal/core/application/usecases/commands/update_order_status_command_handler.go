package commands

import (
	"context"

	"printshop/internal/core/domain/model/order"
	"printshop/internal/core/domain/services"
	"printshop/internal/core/ports"

	"go.opentelemetry.io/otel/attribute"
)

// UpdateOrderStatusCommandHandler applies back-office status changes.
//
// A change that loses an optimistic concurrency race is retried up to
// MaxTransitionAttempts times; a retry that finds the order already in the requested
// status succeeds without writing anything.
//
// Example:
//
//	handler := NewUpdateOrderStatusCommandHandler(uowFactory, lifecycle, publisher)
//	o, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrInvalidTransition) {
//	    // e.g. delivered -> pending
//	}
type UpdateOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	lifecycle  services.OrderLifecycle
	publisher  ports.OrderEventPublisher
}

func NewUpdateOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	lifecycle services.OrderLifecycle,
	publisher ports.OrderEventPublisher,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		lifecycle:  lifecycle,
		publisher:  publisher,
	}
}

func (h UpdateOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateOrderStatusCommand,
) (updated *order.Order, err error) {
	ctx, span := tracer.Start(ctx, "UpdateOrderStatus")
	defer func() { endSpan(span, err) }()

	if err = cmd.Validate(); err != nil {
		return nil, err
	}
	span.SetAttributes(
		attribute.String("order.id", cmd.OrderID().String()),
		attribute.String("order.target_status", cmd.Status().String()),
	)

	return transitionOrder(ctx, h.uowFactory, h.lifecycle, h.publisher, transitionRequest{
		load: func(ctx context.Context, repo ports.OrderRepository) (*order.Order, error) {
			return repo.Get(ctx, cmd.OrderID())
		},
		target:      cmd.Status(),
		description: cmd.Description(),
	})
}
