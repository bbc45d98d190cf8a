package queries

import (
	"errors"
	"strings"
	"time"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/order"
	"printshop/internal/pkg/errs"
	"printshop/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrTrackOrderQueryIsNotConstructed = errors.New(
	"TrackOrderQuery must be created via NewTrackOrderQuery constructor",
)

// TrackOrderQuery is a customer looking up their order by tracking code and email.
type TrackOrderQuery struct {
	trackingCode kernel.TrackingCode
	email        string
	guard        guard.ConstructorGuard
}

func NewTrackOrderQuery(trackingCode kernel.TrackingCode, email string) (TrackOrderQuery, error) {
	if err := trackingCode.Validate(); err != nil {
		return TrackOrderQuery{}, err
	}
	email = strings.TrimSpace(email)
	if email == "" {
		return TrackOrderQuery{}, errs.NewValueIsRequiredError("email")
	}
	return TrackOrderQuery{trackingCode: trackingCode, email: email, guard: guard.NewConstructorGuard()}, nil
}

func (q TrackOrderQuery) Validate() error {
	return q.guard.Validate(ErrTrackOrderQueryIsNotConstructed)
}

func (q TrackOrderQuery) TrackingCode() kernel.TrackingCode { return q.trackingCode }
func (q TrackOrderQuery) Email() string                     { return q.email }

// TrackOrderQueryResponse is the customer-facing view of an order.
type TrackOrderQueryResponse struct {
	ID                kernel.UUID
	TrackingCode      kernel.TrackingCode
	Status            order.Status
	ProgressPercent   int
	CanConfirm        bool
	ServiceID         string
	MaterialID        string
	Quantity          int
	Total             decimal.Decimal
	CreatedAt         time.Time
	EstimatedDelivery time.Time
	History           []order.HistoryEntry
}
