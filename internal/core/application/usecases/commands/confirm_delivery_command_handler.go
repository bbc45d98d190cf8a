package commands

import (
	"context"

	"printshop/internal/core/domain/model/order"
	"printshop/internal/core/domain/services"
	"printshop/internal/core/ports"
	"printshop/internal/pkg/errs"
)

// CustomerConfirmationDescription is recorded when the customer confirms receipt.
const CustomerConfirmationDescription = "Delivery confirmed by customer"

// ConfirmDeliveryCommandHandler moves a shipped order to delivered on the customer's word.
// An unknown code and a code with a different email are indistinguishable to the caller:
// both are reported as not found.
type ConfirmDeliveryCommandHandler struct {
	uowFactory OrderUoWFactory
	lifecycle  services.OrderLifecycle
	publisher  ports.OrderEventPublisher
}

func NewConfirmDeliveryCommandHandler(
	uowFactory OrderUoWFactory,
	lifecycle services.OrderLifecycle,
	publisher ports.OrderEventPublisher,
) ConfirmDeliveryCommandHandler {
	return ConfirmDeliveryCommandHandler{
		uowFactory: uowFactory,
		lifecycle:  lifecycle,
		publisher:  publisher,
	}
}

func (h ConfirmDeliveryCommandHandler) Handle(
	ctx context.Context,
	cmd ConfirmDeliveryCommand,
) (delivered *order.Order, err error) {
	ctx, span := tracer.Start(ctx, "ConfirmDelivery")
	defer func() { endSpan(span, err) }()

	if err = cmd.Validate(); err != nil {
		return nil, err
	}

	return transitionOrder(ctx, h.uowFactory, h.lifecycle, h.publisher, transitionRequest{
		load: func(ctx context.Context, repo ports.OrderRepository) (*order.Order, error) {
			o, err := repo.GetByTrackingCode(ctx, cmd.TrackingCode())
			if err != nil {
				return nil, err
			}
			if !o.Customer().HasEmail(cmd.Email()) {
				return nil, errs.NewObjectNotFoundError("order", cmd.TrackingCode().String())
			}
			return o, nil
		},
		target:      order.Delivered,
		description: CustomerConfirmationDescription,
	})
}
