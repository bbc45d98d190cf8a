package queries

import (
	"context"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListOrdersQueryHandler reads the back-office order table straight from the orders table.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]ListOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	statusKey := ""
	if query.Status() != order.Unknown {
		statusKey = query.Status().String()
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			tracking_code,
			customer_name,
			customer_email,
			spec_service_id,
			spec_quantity,
			status,
			pricing_total,
			created_at,
			estimated_delivery
		FROM orders
		WHERE (? = '' OR status = ?)
		ORDER BY created_at DESC, id
		LIMIT ? OFFSET ?
	`, statusKey, statusKey, query.Limit(), query.Offset()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]ListOrdersQueryResponse, 0)
	for rows.Next() {
		var (
			row    ListOrdersQueryResponse
			id     uuid.UUID
			status string
		)
		if err = rows.Scan(
			&id,
			&row.TrackingCode,
			&row.CustomerName,
			&row.CustomerEmail,
			&row.ServiceID,
			&row.Quantity,
			&status,
			&row.Total,
			&row.CreatedAt,
			&row.EstimatedDelivery,
		); err != nil {
			return nil, err
		}

		if row.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if row.Status, err = order.ParseStatus(status); err != nil {
			return nil, err
		}
		row.CreatedAt = row.CreatedAt.UTC()
		if row.EstimatedDelivery != nil {
			eta := row.EstimatedDelivery.UTC()
			row.EstimatedDelivery = &eta
		}
		result = append(result, row)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
