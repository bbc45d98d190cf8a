package queries

import (
	"context"

	"printshop/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DashboardStatsQueryHandler struct {
	db *gorm.DB
}

func NewDashboardStatsQueryHandler(db *gorm.DB) DashboardStatsQueryHandler {
	return DashboardStatsQueryHandler{db: db}
}

func (h DashboardStatsQueryHandler) Handle(ctx context.Context, query DashboardStatsQuery) (DashboardStatsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return DashboardStatsQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			COUNT(*),
			COALESCE(SUM(pricing_total), 0)
		FROM orders
		GROUP BY status
	`).Rows()
	if err != nil {
		return DashboardStatsQueryResponse{}, err
	}
	defer rows.Close()

	stats := DashboardStatsQueryResponse{
		Revenue:  decimal.Zero,
		ByStatus: make(map[order.Status]int),
	}
	for rows.Next() {
		var (
			key   string
			count int
			total decimal.Decimal
		)
		if err = rows.Scan(&key, &count, &total); err != nil {
			return DashboardStatsQueryResponse{}, err
		}
		status, parseErr := order.ParseStatus(key)
		if parseErr != nil {
			return DashboardStatsQueryResponse{}, parseErr
		}

		stats.ByStatus[status] = count
		stats.TotalOrders += count
		switch status {
		case order.Pending, order.Confirmed:
			stats.PendingOrders += count
		case order.InProduction, order.QualityCheck, order.Shipped:
			stats.ActiveOrders += count
		case order.Delivered:
			stats.CompletedOrders += count
		case order.Cancelled:
			stats.CancelledOrders += count
		}
		if status != order.Cancelled {
			stats.Revenue = stats.Revenue.Add(total)
		}
	}

	if err = rows.Err(); err != nil {
		return DashboardStatsQueryResponse{}, err
	}
	return stats, nil
}
