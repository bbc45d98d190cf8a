package queries

import (
	"errors"
	"time"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/order"
	"printshop/internal/pkg/errs"
	"printshop/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 500
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery pages through orders for the back office, newest first.
// A zero status lists every order. A zero limit means DefaultListLimit.
//
// Example:
//
//	query, err := NewListOrdersQuery(order.Shipped, 20, 0)
//	rows, err := handler.Handle(ctx, query)
type ListOrdersQuery struct {
	status order.Status
	limit  int
	offset int
	guard  guard.ConstructorGuard
}

func NewListOrdersQuery(status order.Status, limit, offset int) (ListOrdersQuery, error) {
	if status != order.Unknown {
		if err := status.Validate(); err != nil {
			return ListOrdersQuery{}, err
		}
	}
	if limit == 0 {
		limit = DefaultListLimit
	}
	if limit < 1 || limit > MaxListLimit {
		return ListOrdersQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxListLimit)
	}
	if offset < 0 {
		return ListOrdersQuery{}, errs.NewValueIsOutOfRangeError("offset", offset, 0, "unbounded")
	}
	return ListOrdersQuery{status: status, limit: limit, offset: offset, guard: guard.NewConstructorGuard()}, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Status() order.Status { return q.status }
func (q ListOrdersQuery) Limit() int           { return q.limit }
func (q ListOrdersQuery) Offset() int          { return q.offset }

// ListOrdersQueryResponse is one row of the back-office order table.
type ListOrdersQueryResponse struct {
	ID                kernel.UUID
	TrackingCode      string
	CustomerName      string
	CustomerEmail     string
	ServiceID         string
	Quantity          int
	Status            order.Status
	Total             decimal.Decimal
	CreatedAt         time.Time
	EstimatedDelivery *time.Time
}
