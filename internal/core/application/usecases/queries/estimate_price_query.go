// Package queries contains read-only operations: quotes, customer tracking, back-office
// listings and statistics. Listings read PostgreSQL directly through GORM raw SQL; quotes
// and tracking go through the repositories so that they see fully validated aggregates.
package queries

import (
	"errors"
	"time"

	"printshop/internal/core/domain/model/order"
	"printshop/internal/pkg/guard"
)

var ErrEstimatePriceQueryIsNotConstructed = errors.New(
	"EstimatePriceQuery must be created via NewEstimatePriceQuery constructor",
)

// EstimatePriceQuery asks for a quote without placing an order.
//
// Example:
//
//	query, err := NewEstimatePriceQuery(spec)
//	quote, err := handler.Handle(ctx, query)
//	fmt.Println(quote.Breakdown.Total())
type EstimatePriceQuery struct {
	spec  order.Specification
	guard guard.ConstructorGuard
}

func NewEstimatePriceQuery(spec order.Specification) (EstimatePriceQuery, error) {
	if err := spec.Validate(); err != nil {
		return EstimatePriceQuery{}, err
	}
	return EstimatePriceQuery{spec: spec, guard: guard.NewConstructorGuard()}, nil
}

func (q EstimatePriceQuery) Validate() error {
	return q.guard.Validate(ErrEstimatePriceQueryIsNotConstructed)
}

func (q EstimatePriceQuery) Specification() order.Specification {
	return q.spec
}

// EstimatePriceQueryResponse is a quote. Quantity is the value actually priced, after
// clamping into the allowed range.
type EstimatePriceQueryResponse struct {
	Quantity          int
	Breakdown         order.PricingBreakdown
	EstimatedDelivery time.Time
}
