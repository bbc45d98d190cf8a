package commands

import (
	"errors"
	"time"

	"printshop/internal/pkg/errs"
	"printshop/internal/pkg/guard"
)

var ErrAutoDeliverOrdersCommandIsNotConstructed = errors.New(
	"AutoDeliverOrdersCommand must be created via NewAutoDeliverOrdersCommand constructor",
)

// AutoDeliverOrdersCommand closes out shipped orders whose estimated delivery is older
// than cutoff. At most batchSize orders are processed per run.
type AutoDeliverOrdersCommand struct {
	cutoff    time.Time
	batchSize int

	guard guard.ConstructorGuard
}

func NewAutoDeliverOrdersCommand(cutoff time.Time, batchSize int) (AutoDeliverOrdersCommand, error) {
	if cutoff.IsZero() {
		return AutoDeliverOrdersCommand{}, errs.NewValueIsRequiredError("cutoff")
	}
	if batchSize < 1 {
		return AutoDeliverOrdersCommand{}, errs.NewValueIsOutOfRangeError("batch size", batchSize, 1, "unbounded")
	}
	return AutoDeliverOrdersCommand{
		cutoff:    cutoff,
		batchSize: batchSize,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c AutoDeliverOrdersCommand) Validate() error {
	return c.guard.Validate(ErrAutoDeliverOrdersCommandIsNotConstructed)
}

func (c AutoDeliverOrdersCommand) Cutoff() time.Time { return c.cutoff }
func (c AutoDeliverOrdersCommand) BatchSize() int    { return c.batchSize }
