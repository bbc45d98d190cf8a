// Package postgres provides the GORM-based Unit of Work shared by every command handler.
// A unit of work owns one database transaction and hands out repositories bound to it.
// Order repositories report every aggregate they write back to the unit of work, which turns
// the newly persisted history entries into status-change events.
//
// Usage:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
//
//	if err := uow.OrderRepository().Update(ctx, o); err != nil {
//	    return err
//	}
//	if err := uow.Commit(ctx); err != nil {
//	    return err
//	}
//	publisher.Publish(ctx, uow.StatusChanges()...)
//
// Each UnitOfWork instance is single-goroutine; concurrent operations use separate instances.
package postgres

import (
	"context"

	"printshop/internal/adapters/out/postgres/catalogrepo"
	"printshop/internal/adapters/out/postgres/orderrepo"
	"printshop/internal/core/domain/model/order"
	"printshop/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances using GORM database connections.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
//
// Example:
//
//	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
//	if err != nil {
//	    log.Fatal("failed to connect database")
//	}
//	factory := NewGormUnitOfWorkFactory(db)
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork with its own transaction state and event buffer.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:      f.db,
		changes: make([]ports.StatusChangedEvent, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and collects the status changes
// written through its order repository.
type GormUnitOfWork struct {
	db      *gorm.DB
	tx      *gorm.DB
	changes []ports.StatusChangedEvent
}

// Begin initiates a new database transaction for the unit of work.
// Multiple calls to Begin on the same instance do not create nested transactions.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit finalizes all changes made within the current transaction.
// Returns gorm.ErrInvalidTransaction if no transaction is active.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		uow.changes = uow.changes[:0]
	}
	return err
}

// Rollback discards the current transaction together with the collected status changes.
// Returns gorm.ErrInvalidTransaction if no transaction is active, which makes it safe to
// defer after a successful Commit.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.changes = uow.changes[:0]
	return err
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// OrderRepository provides order persistence bound to the current transaction if one is
// active, otherwise to the main connection.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) ServiceRepository() ports.ServiceRepository {
	return catalogrepo.NewGormServiceRepository(uow.conn())
}

func (uow *GormUnitOfWork) MaterialRepository() ports.MaterialRepository {
	return catalogrepo.NewGormMaterialRepository(uow.conn())
}

// TrackAggregate is called by the order repository right before it marks an aggregate as
// persisted; the pending history entries become status-change events.
func (uow *GormUnitOfWork) TrackAggregate(aggregate *order.Order) {
	uow.changes = append(uow.changes, ports.NewStatusChangedEvents(aggregate, aggregate.PendingHistory())...)
}

// StatusChanges returns a copy of the collected events in write order.
func (uow *GormUnitOfWork) StatusChanges() []ports.StatusChangedEvent {
	out := make([]ports.StatusChangedEvent, len(uow.changes))
	copy(out, uow.changes)
	return out
}
