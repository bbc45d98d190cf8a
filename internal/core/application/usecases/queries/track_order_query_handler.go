package queries

import (
	"context"
	"errors"

	"printshop/internal/core/domain/model/order"
	"printshop/internal/core/ports"
	"printshop/internal/pkg/errs"
)

// TrackOrderQueryHandler resolves a tracking code for a customer. Codes placed with another
// email are reported as not found, the same as unknown codes.
type TrackOrderQueryHandler struct {
	orders ports.OrderRepository
}

func NewTrackOrderQueryHandler(orders ports.OrderRepository) TrackOrderQueryHandler {
	return TrackOrderQueryHandler{orders: orders}
}

func (h TrackOrderQueryHandler) Handle(ctx context.Context, query TrackOrderQuery) (TrackOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return TrackOrderQueryResponse{}, err
	}

	notFound := errs.NewObjectNotFoundError("order", query.TrackingCode().String())
	o, err := h.orders.GetByTrackingCode(ctx, query.TrackingCode())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return TrackOrderQueryResponse{}, notFound
	}
	if err != nil {
		return TrackOrderQueryResponse{}, err
	}
	if !o.Customer().HasEmail(query.Email()) {
		return TrackOrderQueryResponse{}, notFound
	}

	spec := o.Specification()
	resp := TrackOrderQueryResponse{
		ID:                o.ID(),
		TrackingCode:      o.TrackingCode(),
		Status:            o.Status(),
		ProgressPercent:   o.ProgressPercent(),
		CanConfirm:        o.Status().CanTransitionTo(order.Delivered),
		ServiceID:         spec.ServiceID(),
		MaterialID:        spec.MaterialID(),
		Quantity:          spec.Quantity(),
		CreatedAt:         o.CreatedAt(),
		EstimatedDelivery: o.EstimatedDelivery(),
		History:           o.History(),
	}
	if pricing, ok := o.Pricing(); ok {
		resp.Total = pricing.Total()
	}
	return resp, nil
}
