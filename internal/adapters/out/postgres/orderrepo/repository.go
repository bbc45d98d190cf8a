package orderrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/order"
	"printshop/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker is told about every order whose history is about to be written,
// before the repository marks that history as persisted.
type aggregateTracker interface {
	TrackAggregate(aggregate *order.Order)
}

type noopTracker struct{}

func (noopTracker) TrackAggregate(*order.Order) {}

// NewGormOrderRepository creates a new GORM order repository. A nil tracker is allowed
// for read-only use.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	if tracker == nil {
		tracker = noopTracker{}
	}
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order with its full history.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}
	if err = r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewValueIsInvalidErrorWithCause("order", err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate)
	aggregate.MarkPersisted()
	return nil
}

// Update appends the history written since the order was loaded. The order row is
// only touched when its stored version still equals the loaded one.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	pending := aggregate.PendingHistory()
	if len(pending) == 0 {
		return nil
	}

	id := aggregate.ID().Bytes()
	loaded := aggregate.Version()
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND version = ?", id, loaded).
		Updates(map[string]any{
			"status":  aggregate.Status().String(),
			"version": loaded + len(pending),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.missingOrStale(ctx, aggregate)
	}

	rows := historyFromDomain(id, pending, loaded)
	if err := r.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate)
	aggregate.MarkPersisted()
	return nil
}

func (r *GormOrderRepository) missingOrStale(ctx context.Context, aggregate *order.Order) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", aggregate.ID().Bytes()).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}
	return errs.NewVersionIsInvalidErrorWithCause(
		"order",
		fmt.Errorf("order %s was modified after version %d was loaded", aggregate.ID(), aggregate.Version()),
	)
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, id.String(), "id = ?", id.Bytes())
}

// GetByTrackingCode retrieves an order by its customer-facing code.
func (r *GormOrderRepository) GetByTrackingCode(ctx context.Context, code kernel.TrackingCode) (*order.Order, error) {
	if err := code.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, code.String(), "tracking_code = ?", code.String())
}

func (r *GormOrderRepository) first(ctx context.Context, key string, query string, args ...any) (*order.Order, error) {
	var dto OrderDTO
	err := r.withHistory(ctx).First(&dto, append([]any{query}, args...)...).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", key)
		}
		return nil, err
	}
	return toDomain(dto)
}

// Delete removes the order and its history.
func (r *GormOrderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	db := r.db.WithContext(ctx)
	if err := db.Where("order_id = ?", id.Bytes()).Delete(&HistoryEntryDTO{}).Error; err != nil {
		return err
	}
	result := db.Where("id = ?", id.Bytes()).Delete(&OrderDTO{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", id.String())
	}
	return nil
}

// ListShippedBefore returns shipped orders whose estimated delivery is before cutoff.
func (r *GormOrderRepository) ListShippedBefore(ctx context.Context, cutoff time.Time, limit int) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.withHistory(ctx).
		Where("status = ? AND estimated_delivery < ?", order.Shipped.String(), cutoff).
		Order("estimated_delivery").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func (r *GormOrderRepository) withHistory(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("History", func(db *gorm.DB) *gorm.DB {
		return db.Order("seq")
	})
}
