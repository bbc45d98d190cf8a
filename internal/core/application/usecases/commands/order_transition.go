package commands

import (
	"context"
	"errors"

	"printshop/internal/core/domain/model/order"
	"printshop/internal/core/domain/services"
	"printshop/internal/core/ports"
	"printshop/internal/pkg/errs"
)

// MaxTransitionAttempts bounds how often a status change is re-applied after losing an
// optimistic concurrency race.
const MaxTransitionAttempts = 3

type orderLoader func(ctx context.Context, repo ports.OrderRepository) (*order.Order, error)

type transitionRequest struct {
	load        orderLoader
	target      order.Status
	description string
}

// transitionOrder re-reads the order on every attempt so that a retry validates the
// transition against the state the concurrent writer left behind.
func transitionOrder(
	ctx context.Context,
	uowFactory OrderUoWFactory,
	lifecycle services.OrderLifecycle,
	publisher ports.OrderEventPublisher,
	req transitionRequest,
) (*order.Order, error) {
	var err error
	for attempt := 1; attempt <= MaxTransitionAttempts; attempt++ {
		var (
			o      *order.Order
			events []ports.StatusChangedEvent
		)
		o, events, err = transitionOnce(ctx, uowFactory, lifecycle, req)
		if err == nil {
			publishStatusChanges(ctx, publisher, events)
			return o, nil
		}
		if !errors.Is(err, errs.ErrVersionIsInvalid) {
			return nil, err
		}
	}
	return nil, err
}

func transitionOnce(
	ctx context.Context,
	uowFactory OrderUoWFactory,
	lifecycle services.OrderLifecycle,
	req transitionRequest,
) (*order.Order, []ports.StatusChangedEvent, error) {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := req.load(ctx, repo)
	if err != nil {
		return nil, nil, err
	}

	changed, err := lifecycle.Transition(o, req.target, req.description)
	if err != nil {
		return nil, nil, err
	}
	if !changed {
		return o, nil, nil
	}

	if err = repo.Update(ctx, o); err != nil {
		return nil, nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, nil, err
	}
	return o, uow.StatusChanges(), nil
}
