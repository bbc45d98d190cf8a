package commands

import (
	"context"
)

type DeleteOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewDeleteOrderCommandHandler(uowFactory OrderUoWFactory) DeleteOrderCommandHandler {
	return DeleteOrderCommandHandler{uowFactory: uowFactory}
}

// Handle deletes the order. A missing order is reported as errs.ObjectNotFoundError.
func (h DeleteOrderCommandHandler) Handle(ctx context.Context, cmd DeleteOrderCommand) (err error) {
	ctx, span := tracer.Start(ctx, "DeleteOrder")
	defer func() { endSpan(span, err) }()

	if err = cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Delete(ctx, cmd.OrderID()); err != nil {
		return err
	}
	return uow.Commit(ctx)
}
