package commands

import (
	"context"
	"errors"
	"fmt"

	"printshop/internal/core/domain/model/catalog"
	"printshop/internal/pkg/errs"
)

// CreateServiceCommandHandler stores a new service after checking that every material it
// lists exists. A dangling material id is reported as errs.ConfigurationError.
type CreateServiceCommandHandler struct {
	uowFactory CatalogUoWFactory
}

func NewCreateServiceCommandHandler(uowFactory CatalogUoWFactory) CreateServiceCommandHandler {
	return CreateServiceCommandHandler{uowFactory: uowFactory}
}

func (h CreateServiceCommandHandler) Handle(ctx context.Context, cmd CreateServiceCommand) (err error) {
	ctx, span := tracer.Start(ctx, "CreateService")
	defer func() { endSpan(span, err) }()

	if err = cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	materials := uow.MaterialRepository()
	for _, id := range cmd.Service().CompatibleMaterials() {
		if _, err = materials.Get(ctx, id); err != nil {
			if errors.Is(err, errs.ErrObjectNotFound) {
				return errs.NewConfigurationErrorWithCause("material", id, err)
			}
			return err
		}
	}

	if err = uow.ServiceRepository().Add(ctx, cmd.Service()); err != nil {
		return err
	}
	return uow.Commit(ctx)
}

type DeleteServiceCommandHandler struct {
	uowFactory CatalogUoWFactory
}

func NewDeleteServiceCommandHandler(uowFactory CatalogUoWFactory) DeleteServiceCommandHandler {
	return DeleteServiceCommandHandler{uowFactory: uowFactory}
}

// Handle removes the service. Orders already priced against it keep their breakdown.
func (h DeleteServiceCommandHandler) Handle(ctx context.Context, cmd DeleteServiceCommand) (err error) {
	ctx, span := tracer.Start(ctx, "DeleteService")
	defer func() { endSpan(span, err) }()

	if err = cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ServiceRepository().Delete(ctx, cmd.ID()); err != nil {
		return err
	}
	return uow.Commit(ctx)
}

type CreateMaterialCommandHandler struct {
	uowFactory CatalogUoWFactory
}

func NewCreateMaterialCommandHandler(uowFactory CatalogUoWFactory) CreateMaterialCommandHandler {
	return CreateMaterialCommandHandler{uowFactory: uowFactory}
}

func (h CreateMaterialCommandHandler) Handle(ctx context.Context, cmd CreateMaterialCommand) (err error) {
	ctx, span := tracer.Start(ctx, "CreateMaterial")
	defer func() { endSpan(span, err) }()

	if err = cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.MaterialRepository().Add(ctx, cmd.Material()); err != nil {
		return err
	}
	return uow.Commit(ctx)
}

// DeleteMaterialCommandHandler removes a material no service refers to anymore.
type DeleteMaterialCommandHandler struct {
	uowFactory CatalogUoWFactory
}

func NewDeleteMaterialCommandHandler(uowFactory CatalogUoWFactory) DeleteMaterialCommandHandler {
	return DeleteMaterialCommandHandler{uowFactory: uowFactory}
}

func (h DeleteMaterialCommandHandler) Handle(ctx context.Context, cmd DeleteMaterialCommand) (err error) {
	ctx, span := tracer.Start(ctx, "DeleteMaterial")
	defer func() { endSpan(span, err) }()

	if err = cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	services, err := uow.ServiceRepository().List(ctx)
	if err != nil {
		return err
	}
	for _, svc := range services {
		if svc.AcceptsMaterial(cmd.ID()) {
			return errs.NewValueIsInvalidErrorWithCause("material",
				fmt.Errorf("material %q is used by service %q", cmd.ID(), svc.ID()))
		}
	}

	if err = uow.MaterialRepository().Delete(ctx, cmd.ID()); err != nil {
		return err
	}
	return uow.Commit(ctx)
}

// SeedCatalogResult counts the entries a seed run inserted.
type SeedCatalogResult struct {
	Services  int
	Materials int
}

// SeedCatalogCommandHandler inserts catalog.DefaultMaterials and catalog.DefaultServices.
// Each collection is only seeded while it is empty, so running it on every start is safe.
type SeedCatalogCommandHandler struct {
	uowFactory CatalogUoWFactory
}

func NewSeedCatalogCommandHandler(uowFactory CatalogUoWFactory) SeedCatalogCommandHandler {
	return SeedCatalogCommandHandler{uowFactory: uowFactory}
}

func (h SeedCatalogCommandHandler) Handle(ctx context.Context, cmd SeedCatalogCommand) (result SeedCatalogResult, err error) {
	ctx, span := tracer.Start(ctx, "SeedCatalog")
	defer func() { endSpan(span, err) }()

	if err = cmd.Validate(); err != nil {
		return SeedCatalogResult{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return SeedCatalogResult{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	materialRepo := uow.MaterialRepository()
	existingMaterials, err := materialRepo.List(ctx)
	if err != nil {
		return SeedCatalogResult{}, err
	}
	if len(existingMaterials) == 0 {
		for _, m := range catalog.DefaultMaterials() {
			if err = materialRepo.Add(ctx, m); err != nil {
				return SeedCatalogResult{}, err
			}
			result.Materials++
		}
	}

	serviceRepo := uow.ServiceRepository()
	existingServices, err := serviceRepo.List(ctx)
	if err != nil {
		return SeedCatalogResult{}, err
	}
	if len(existingServices) == 0 {
		for _, svc := range catalog.DefaultServices() {
			if err = serviceRepo.Add(ctx, svc); err != nil {
				return SeedCatalogResult{}, err
			}
			result.Services++
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return SeedCatalogResult{}, err
	}
	return result, nil
}
