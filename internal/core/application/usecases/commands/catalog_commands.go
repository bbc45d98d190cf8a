package commands

import (
	"errors"
	"strings"

	"printshop/internal/core/domain/model/catalog"
	"printshop/internal/pkg/errs"
	"printshop/internal/pkg/guard"
)

var (
	ErrCreateServiceCommandIsNotConstructed = errors.New(
		"CreateServiceCommand must be created via NewCreateServiceCommand constructor",
	)
	ErrDeleteServiceCommandIsNotConstructed = errors.New(
		"DeleteServiceCommand must be created via NewDeleteServiceCommand constructor",
	)
	ErrCreateMaterialCommandIsNotConstructed = errors.New(
		"CreateMaterialCommand must be created via NewCreateMaterialCommand constructor",
	)
	ErrDeleteMaterialCommandIsNotConstructed = errors.New(
		"DeleteMaterialCommand must be created via NewDeleteMaterialCommand constructor",
	)
	ErrSeedCatalogCommandIsNotConstructed = errors.New(
		"SeedCatalogCommand must be created via NewSeedCatalogCommand constructor",
	)
)

// CreateServiceCommand adds a service to the catalog.
type CreateServiceCommand struct {
	service catalog.Service
	guard   guard.ConstructorGuard
}

func NewCreateServiceCommand(service catalog.Service) (CreateServiceCommand, error) {
	if err := service.Validate(); err != nil {
		return CreateServiceCommand{}, err
	}
	return CreateServiceCommand{service: service, guard: guard.NewConstructorGuard()}, nil
}

func (c CreateServiceCommand) Validate() error {
	return c.guard.Validate(ErrCreateServiceCommandIsNotConstructed)
}

func (c CreateServiceCommand) Service() catalog.Service { return c.service }

type DeleteServiceCommand struct {
	id    string
	guard guard.ConstructorGuard
}

func NewDeleteServiceCommand(id string) (DeleteServiceCommand, error) {
	id, err := requiredID("service id", id)
	if err != nil {
		return DeleteServiceCommand{}, err
	}
	return DeleteServiceCommand{id: id, guard: guard.NewConstructorGuard()}, nil
}

func (c DeleteServiceCommand) Validate() error {
	return c.guard.Validate(ErrDeleteServiceCommandIsNotConstructed)
}

func (c DeleteServiceCommand) ID() string { return c.id }

// CreateMaterialCommand adds a material to the catalog.
type CreateMaterialCommand struct {
	material catalog.Material
	guard    guard.ConstructorGuard
}

func NewCreateMaterialCommand(material catalog.Material) (CreateMaterialCommand, error) {
	if err := material.Validate(); err != nil {
		return CreateMaterialCommand{}, err
	}
	return CreateMaterialCommand{material: material, guard: guard.NewConstructorGuard()}, nil
}

func (c CreateMaterialCommand) Validate() error {
	return c.guard.Validate(ErrCreateMaterialCommandIsNotConstructed)
}

func (c CreateMaterialCommand) Material() catalog.Material { return c.material }

type DeleteMaterialCommand struct {
	id    string
	guard guard.ConstructorGuard
}

func NewDeleteMaterialCommand(id string) (DeleteMaterialCommand, error) {
	id, err := requiredID("material id", id)
	if err != nil {
		return DeleteMaterialCommand{}, err
	}
	return DeleteMaterialCommand{id: id, guard: guard.NewConstructorGuard()}, nil
}

func (c DeleteMaterialCommand) Validate() error {
	return c.guard.Validate(ErrDeleteMaterialCommandIsNotConstructed)
}

func (c DeleteMaterialCommand) ID() string { return c.id }

// SeedCatalogCommand loads the default catalog into an empty store.
type SeedCatalogCommand struct {
	guard guard.ConstructorGuard
}

func NewSeedCatalogCommand() SeedCatalogCommand {
	return SeedCatalogCommand{guard: guard.NewConstructorGuard()}
}

func (c SeedCatalogCommand) Validate() error {
	return c.guard.Validate(ErrSeedCatalogCommandIsNotConstructed)
}

func requiredID(param, id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", errs.NewValueIsRequiredError(param)
	}
	return id, nil
}
