package services

import (
	"time"

	"printshop/internal/core/domain/model/order"
)

// Clock supplies the current time to the lifecycle.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// OrderLifecycle applies status transitions with timestamps from an injected clock.
//
// Transition is safe to re-invoke after an optimistic concurrency failure: the caller
// re-reads the order and calls it again, and a target the order already reached is a
// no-op rather than an error.
type OrderLifecycle struct {
	clock Clock
}

func NewOrderLifecycle(clock Clock) OrderLifecycle {
	if clock == nil {
		clock = SystemClock{}
	}
	return OrderLifecycle{clock: clock}
}

// Transition moves o to target. It returns false when o already was in target.
func (l OrderLifecycle) Transition(o *order.Order, target order.Status, description string) (bool, error) {
	if err := o.Validate(); err != nil {
		return false, err
	}
	return o.Transition(target, description, l.clock.Now())
}

// Submit moves a priced draft to Pending.
func (l OrderLifecycle) Submit(o *order.Order) error {
	if err := o.Validate(); err != nil {
		return err
	}
	return o.Submit(l.clock.Now())
}

func (l OrderLifecycle) Now() time.Time {
	return l.clock.Now()
}
