package commands

import (
	"errors"
	"strings"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/pkg/errs"
	"printshop/internal/pkg/guard"
)

var ErrConfirmDeliveryCommandIsNotConstructed = errors.New(
	"ConfirmDeliveryCommand must be created via NewConfirmDeliveryCommand constructor",
)

// ConfirmDeliveryCommand is the customer acknowledging receipt of a shipped order.
// The email must match the one the order was placed with.
type ConfirmDeliveryCommand struct {
	trackingCode kernel.TrackingCode
	email        string

	guard guard.ConstructorGuard
}

func NewConfirmDeliveryCommand(trackingCode kernel.TrackingCode, email string) (ConfirmDeliveryCommand, error) {
	email = strings.TrimSpace(email)
	if err := trackingCode.Validate(); err != nil {
		return ConfirmDeliveryCommand{}, err
	}
	if email == "" {
		return ConfirmDeliveryCommand{}, errs.NewValueIsRequiredError("email")
	}
	return ConfirmDeliveryCommand{
		trackingCode: trackingCode,
		email:        email,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c ConfirmDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrConfirmDeliveryCommandIsNotConstructed)
}

func (c ConfirmDeliveryCommand) TrackingCode() kernel.TrackingCode { return c.trackingCode }
func (c ConfirmDeliveryCommand) Email() string                     { return c.email }
