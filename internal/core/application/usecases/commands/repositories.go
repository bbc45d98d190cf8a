// Package commands contains the business operations that modify system state.
// Every handler follows the same shape: validate the command, open a unit of work,
// load aggregates, apply domain logic, persist, commit, then publish status changes.
package commands

import (
	"context"

	"printshop/internal/core/ports"
)

// Unit of Work interfaces give command handlers transaction control over exactly the
// repositories they need.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// CatalogRepoFactory provides access to catalog repositories within a transaction.
	CatalogRepoFactory interface {
		ServiceRepository() ports.ServiceRepository
		MaterialRepository() ports.MaterialRepository
	}

	// StatusChangeCollector exposes the status changes written in a unit of work.
	StatusChangeCollector interface {
		StatusChanges() []ports.StatusChangedEvent
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		StatusChangeCollector
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// CatalogUoW manages transactions for catalog administration.
	CatalogUoW interface {
		TxManager
		CatalogRepoFactory
	}

	// CatalogUoWFactory creates new catalog unit of work instances.
	CatalogUoWFactory interface {
		Create() CatalogUoW
	}

	// UoW spans orders and the catalog. Order submission reads the catalog to price the
	// order it stores.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   services, err := uow.ServiceRepository().List(ctx)
	//   // ... price and build the order
	//   err = uow.OrderRepository().Add(ctx, o)
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		CatalogRepoFactory
		StatusChangeCollector
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)
