// Package ports defines the contracts between the print shop core and its infrastructure:
// repositories, the unit of work and outbound notifications.
package ports

import (
	"context"
	"time"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order together with its whole history.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists the history entries appended since the order was loaded.
	// The write only succeeds when the stored version still equals aggregate.Version();
	// otherwise it returns errs.VersionIsInvalidError and stores nothing.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with its full history.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByTrackingCode retrieves an order by its customer-facing code.
	GetByTrackingCode(ctx context.Context, code kernel.TrackingCode) (*order.Order, error)

	// Delete removes an order and its history permanently.
	Delete(ctx context.Context, id kernel.UUID) error

	// ListShippedBefore returns up to limit shipped orders whose estimated delivery is
	// earlier than cutoff, oldest first.
	ListShippedBefore(ctx context.Context, cutoff time.Time, limit int) ([]*order.Order, error)
}
