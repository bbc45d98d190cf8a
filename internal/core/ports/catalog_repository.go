package ports

import (
	"context"

	"printshop/internal/core/domain/model/catalog"
)

// ServiceRepository stores catalog services by id.
type ServiceRepository interface {
	// Add stores a new service; an existing id is reported as errs.ValueIsInvalidError.
	Add(ctx context.Context, service catalog.Service) error
	Get(ctx context.Context, id string) (catalog.Service, error)
	Delete(ctx context.Context, id string) error
	// List returns every service ordered by category and id.
	List(ctx context.Context) ([]catalog.Service, error)
}

// MaterialRepository stores catalog materials by id.
type MaterialRepository interface {
	Add(ctx context.Context, material catalog.Material) error
	Get(ctx context.Context, id string) (catalog.Material, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]catalog.Material, error)
}
