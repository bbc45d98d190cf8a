package queries

import (
	"errors"

	"printshop/internal/core/domain/model/order"
	"printshop/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrDashboardStatsQueryIsNotConstructed = errors.New(
	"DashboardStatsQuery must be created via NewDashboardStatsQuery constructor",
)

type DashboardStatsQuery struct {
	guard guard.ConstructorGuard
}

func NewDashboardStatsQuery() DashboardStatsQuery {
	return DashboardStatsQuery{guard: guard.NewConstructorGuard()}
}

func (q DashboardStatsQuery) Validate() error {
	return q.guard.Validate(ErrDashboardStatsQueryIsNotConstructed)
}

// DashboardStatsQueryResponse summarizes the order book.
//
// Pending counts orders waiting for the shop (pending, confirmed); Active counts orders
// being worked on or in transit (in production, quality check, shipped); Completed counts
// delivered orders. Revenue sums the totals of every order that is not cancelled.
type DashboardStatsQueryResponse struct {
	TotalOrders     int
	PendingOrders   int
	ActiveOrders    int
	CompletedOrders int
	CancelledOrders int
	Revenue         decimal.Decimal
	ByStatus        map[order.Status]int
}
