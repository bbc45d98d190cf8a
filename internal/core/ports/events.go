package ports

import (
	"context"
	"time"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/order"
)

// StatusChangedEvent is emitted once per history entry written to storage.
type StatusChangedEvent struct {
	OrderID       kernel.UUID
	TrackingCode  kernel.TrackingCode
	CustomerEmail string
	Status        order.Status
	Title         string
	Description   string
	At            time.Time
}

// NewStatusChangedEvents builds one event per entry, in order.
func NewStatusChangedEvents(o *order.Order, entries []order.HistoryEntry) []StatusChangedEvent {
	events := make([]StatusChangedEvent, 0, len(entries))
	for _, e := range entries {
		events = append(events, StatusChangedEvent{
			OrderID:       o.ID(),
			TrackingCode:  o.TrackingCode(),
			CustomerEmail: o.Customer().Email(),
			Status:        e.Status(),
			Title:         e.Title(),
			Description:   e.Description(),
			At:            e.At(),
		})
	}
	return events
}

// OrderEventPublisher delivers status changes to customers and back-office systems.
// It is called after the transaction that produced the events has committed.
type OrderEventPublisher interface {
	Publish(ctx context.Context, events ...StatusChangedEvent) error
}
