package commands

import (
	"errors"

	"printshop/internal/core/domain/model/order"
	"printshop/internal/pkg/errs"
	"printshop/internal/pkg/guard"
)

var ErrSubmitOrderCommandIsNotConstructed = errors.New(
	"SubmitOrderCommand must be created via NewSubmitOrderCommand constructor",
)

// SubmitOrderCommand is a customer's order request: who orders and what to make.
//
// Example:
//
//	cmd, err := NewSubmitOrderCommand(customer, spec)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	placed, err := handler.Handle(ctx, cmd)
type SubmitOrderCommand struct {
	customer order.Customer
	spec     order.Specification

	guard guard.ConstructorGuard
}

func NewSubmitOrderCommand(customer order.Customer, spec order.Specification) (SubmitOrderCommand, error) {
	if customer.IsZero() {
		return SubmitOrderCommand{}, errs.NewValueIsRequiredError("customer")
	}
	if err := spec.Validate(); err != nil {
		return SubmitOrderCommand{}, err
	}
	return SubmitOrderCommand{
		customer: customer,
		spec:     spec,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c SubmitOrderCommand) Validate() error {
	return c.guard.Validate(ErrSubmitOrderCommandIsNotConstructed)
}

func (c SubmitOrderCommand) Customer() order.Customer {
	return c.customer
}

func (c SubmitOrderCommand) Specification() order.Specification {
	return c.spec
}
