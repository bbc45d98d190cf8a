package commands

import (
	"context"
	"errors"
	"fmt"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/order"
	"printshop/internal/core/domain/services"
	"printshop/internal/core/ports"

	"go.opentelemetry.io/otel/attribute"
)

// AutomaticConfirmationDescription is recorded when an order is closed by the scheduler.
const AutomaticConfirmationDescription = "Delivery confirmed automatically"

var errNoLongerShipped = errors.New("order is no longer shipped")

// AutoDeliverOrdersCommandHandler marks overdue shipments as delivered.
//
// Each order is transitioned in its own unit of work. An order that left Shipped between
// the listing and its transition (the customer confirmed it, an admin cancelled it) is
// skipped. Failures for individual orders do not stop the batch; they are joined into
// the returned error.
type AutoDeliverOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	lifecycle  services.OrderLifecycle
	publisher  ports.OrderEventPublisher
}

func NewAutoDeliverOrdersCommandHandler(
	uowFactory OrderUoWFactory,
	lifecycle services.OrderLifecycle,
	publisher ports.OrderEventPublisher,
) AutoDeliverOrdersCommandHandler {
	return AutoDeliverOrdersCommandHandler{
		uowFactory: uowFactory,
		lifecycle:  lifecycle,
		publisher:  publisher,
	}
}

// Handle returns the number of orders it moved to delivered.
func (h AutoDeliverOrdersCommandHandler) Handle(ctx context.Context, cmd AutoDeliverOrdersCommand) (delivered int, err error) {
	ctx, span := tracer.Start(ctx, "AutoDeliverOrders")
	defer func() {
		span.SetAttributes(attribute.Int("orders.delivered", delivered))
		endSpan(span, err)
	}()

	if err = cmd.Validate(); err != nil {
		return 0, err
	}

	ids, err := h.overdue(ctx, cmd)
	if err != nil {
		return 0, err
	}

	var errList []error
	for _, id := range ids {
		_, transitionErr := transitionOrder(ctx, h.uowFactory, h.lifecycle, h.publisher, transitionRequest{
			load:        loadShipped(id),
			target:      order.Delivered,
			description: AutomaticConfirmationDescription,
		})
		switch {
		case errors.Is(transitionErr, errNoLongerShipped):
		case transitionErr != nil:
			errList = append(errList, fmt.Errorf("order %s: %w", id, transitionErr))
		default:
			delivered++
		}
	}
	return delivered, errors.Join(errList...)
}

func (h AutoDeliverOrdersCommandHandler) overdue(ctx context.Context, cmd AutoDeliverOrdersCommand) ([]kernel.UUID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders, err := uow.OrderRepository().ListShippedBefore(ctx, cmd.Cutoff(), cmd.BatchSize())
	if err != nil {
		return nil, err
	}
	ids := make([]kernel.UUID, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID())
	}
	return ids, nil
}

func loadShipped(id kernel.UUID) orderLoader {
	return func(ctx context.Context, repo ports.OrderRepository) (*order.Order, error) {
		o, err := repo.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if o.Status() != order.Shipped {
			return nil, errNoLongerShipped
		}
		return o, nil
	}
}
