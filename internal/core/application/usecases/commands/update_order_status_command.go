package commands

import (
	"errors"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/order"
	"printshop/internal/pkg/guard"
)

var ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
	"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
)

// UpdateOrderStatusCommand is a back-office status change. An empty description is
// replaced by the default text for the target status.
//
// Example:
//
//	cmd, err := NewUpdateOrderStatusCommand(orderID, order.Shipped, "Tracking number ES123")
type UpdateOrderStatusCommand struct {
	orderID     kernel.UUID
	status      order.Status
	description string

	guard guard.ConstructorGuard
}

func NewUpdateOrderStatusCommand(
	orderID kernel.UUID,
	status order.Status,
	description string,
) (UpdateOrderStatusCommand, error) {
	if err := errors.Join(orderID.Validate(), status.Validate()); err != nil {
		return UpdateOrderStatusCommand{}, err
	}
	return UpdateOrderStatusCommand{
		orderID:     orderID,
		status:      status,
		description: description,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

func (c UpdateOrderStatusCommand) OrderID() kernel.UUID { return c.orderID }
func (c UpdateOrderStatusCommand) Status() order.Status { return c.status }
func (c UpdateOrderStatusCommand) Description() string  { return c.description }
