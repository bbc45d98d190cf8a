package order

import (
	"errors"
	"fmt"
	"time"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewDraftOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewDraftOrder constructor")

	// ErrOrderIsNotPriced is returned when a draft is submitted before it has a quote.
	ErrOrderIsNotPriced = errs.NewValueIsRequiredError("pricing")
)

const (
	draftDescription     = "Order request started"
	submittedDescription = "Order received and waiting for confirmation"
)

// Order is the aggregate root of the shop. It owns the specification the customer asked
// for, the quote it was sold at and the status timeline.
//
// Order follows these invariants:
//   - status always equals the status of the last history entry
//   - history is never empty and strictly increasing in time
//   - history is append-only; entries are never edited or removed
//   - pricing can only change while the order is a draft
//   - a failed operation leaves the order unchanged
//
// version counts the history entries already persisted. Repositories use it as the
// optimistic concurrency token and store only the entries after it.
type Order struct {
	id                kernel.UUID
	trackingCode      kernel.TrackingCode
	customer          Customer
	spec              Specification
	pricing           *PricingBreakdown
	status            Status
	history           []HistoryEntry
	createdAt         time.Time
	estimatedDelivery time.Time
	version           int

	isConstructed bool
}

// NewDraftOrder starts an order in Draft status with a single history entry at the
// given time.
//
// Example:
//
//	o, err := order.NewDraftOrder(kernel.NewUUID(), kernel.NewTrackingCode(now), customer, spec, now)
func NewDraftOrder(
	id kernel.UUID,
	code kernel.TrackingCode,
	customer Customer,
	spec Specification,
	at time.Time,
) (*Order, error) {
	o := &Order{isConstructed: true}

	if err := errors.Join(
		o.setID(id),
		o.setTrackingCode(code),
		o.setCustomer(customer),
		o.setSpecification(spec),
	); err != nil {
		return nil, err
	}

	entry, err := NewHistoryEntry(Draft, at, Draft.Label(), draftDescription)
	if err != nil {
		return nil, err
	}
	o.status = Draft
	o.history = []HistoryEntry{entry}
	o.createdAt = entry.At()

	return o, nil
}

// RestoreOrder rebuilds an order from storage. The status is taken from the last history
// entry and every entry counts as persisted.
func RestoreOrder(
	id kernel.UUID,
	code kernel.TrackingCode,
	customer Customer,
	spec Specification,
	pricing *PricingBreakdown,
	history []HistoryEntry,
	createdAt time.Time,
	estimatedDelivery time.Time,
) (*Order, error) {
	o := &Order{isConstructed: true}

	if err := errors.Join(
		o.setID(id),
		o.setTrackingCode(code),
		o.setCustomer(customer),
		o.setSpecification(spec),
		validateHistory(history),
	); err != nil {
		return nil, err
	}
	if pricing != nil {
		if err := pricing.Validate(); err != nil {
			return nil, err
		}
		p := *pricing
		o.pricing = &p
	}

	o.history = make([]HistoryEntry, len(history))
	copy(o.history, history)
	o.status = o.history[len(o.history)-1].status
	o.createdAt = createdAt.UTC().Truncate(HistoryPrecision)
	o.estimatedDelivery = estimatedDelivery.UTC().Truncate(HistoryPrecision)
	o.version = len(o.history)

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID                   { return o.id }
func (o *Order) TrackingCode() kernel.TrackingCode { return o.trackingCode }
func (o *Order) Customer() Customer                { return o.customer }
func (o *Order) Specification() Specification      { return o.spec }
func (o *Order) Status() Status                    { return o.status }
func (o *Order) CreatedAt() time.Time              { return o.createdAt }
func (o *Order) EstimatedDelivery() time.Time      { return o.estimatedDelivery }

// Pricing returns the quote and whether the order has been priced.
func (o *Order) Pricing() (PricingBreakdown, bool) {
	if o.pricing == nil {
		return PricingBreakdown{}, false
	}
	return *o.pricing, true
}

// ProgressPercent is the display progress of the current status.
func (o *Order) ProgressPercent() int {
	return o.status.ProgressPercent()
}

// History returns a copy of the timeline, oldest first.
func (o *Order) History() []HistoryEntry {
	out := make([]HistoryEntry, len(o.history))
	copy(out, o.history)
	return out
}

// LastEntry returns the most recent history entry.
func (o *Order) LastEntry() HistoryEntry {
	return o.history[len(o.history)-1]
}

// Version is the number of history entries already persisted.
func (o *Order) Version() int { return o.version }

// PendingHistory returns the entries appended since the order was loaded or last saved.
func (o *Order) PendingHistory() []HistoryEntry {
	pending := o.history[o.version:]
	out := make([]HistoryEntry, len(pending))
	copy(out, pending)
	return out
}

// MarkPersisted is called by repositories after a successful write.
func (o *Order) MarkPersisted() {
	o.version = len(o.history)
}

// SetPricing attaches a quote and the delivery estimate derived from it.
// Pricing is frozen once the order leaves Draft.
func (o *Order) SetPricing(pricing PricingBreakdown, estimatedDelivery time.Time) error {
	if o.status != Draft {
		return errs.NewValueIsInvalidErrorWithCause(
			"pricing", fmt.Errorf("order in status %s can not be repriced", o.status))
	}
	if err := pricing.Validate(); err != nil {
		return err
	}
	if estimatedDelivery.IsZero() {
		return errs.NewValueIsRequiredError("estimated delivery")
	}
	o.pricing = &pricing
	o.estimatedDelivery = estimatedDelivery.UTC().Truncate(HistoryPrecision)
	return nil
}

// Submit moves a priced draft to Pending.
func (o *Order) Submit(at time.Time) error {
	if o.pricing == nil {
		return ErrOrderIsNotPriced
	}
	_, err := o.Transition(Pending, submittedDescription, at)
	return err
}

// Transition moves the order to target and appends a history entry.
//
// Requesting the current status is a no-op that returns (false, nil), including on a
// terminal order. Any other illegal target returns an InvalidTransitionError. The order is
// validated before it is touched, so on error nothing changes.
//
// The entry timestamp is at truncated to HistoryPrecision; when that does not advance
// past the last entry it is bumped to one tick after it, keeping history strictly
// increasing even with a coarse or skewed clock.
//
// Example:
//
//	changed, err := o.Transition(order.Shipped, "Tracking number ES123", time.Now())
func (o *Order) Transition(target Status, description string, at time.Time) (bool, error) {
	if err := o.Validate(); err != nil {
		return false, err
	}
	if err := target.Validate(); err != nil {
		return false, err
	}
	if target == o.status {
		return false, nil
	}
	if err := o.status.ValidateTransition(target); err != nil {
		return false, err
	}

	at = at.UTC().Truncate(HistoryPrecision)
	if last := o.LastEntry().At(); !at.After(last) {
		at = last.Add(HistoryPrecision)
	}
	entry, err := NewHistoryEntry(target, at, target.Label(), description)
	if err != nil {
		return false, err
	}

	o.history = append(o.history, entry)
	o.status = target
	return true, nil
}

// Total is the quoted total, zero for an unpriced draft.
func (o *Order) Total() float64 {
	if o.pricing == nil {
		return 0
	}
	return o.pricing.Total().InexactFloat64()
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setTrackingCode(code kernel.TrackingCode) error {
	if err := code.Validate(); err != nil {
		return err
	}
	o.trackingCode = code
	return nil
}

func (o *Order) setCustomer(c Customer) error {
	if c.IsZero() {
		return errs.NewValueIsRequiredError("customer")
	}
	o.customer = c
	return nil
}

func (o *Order) setSpecification(spec Specification) error {
	if err := spec.Validate(); err != nil {
		return err
	}
	o.spec = spec
	return nil
}
