package catalogrepo

import (
	"context"
	"errors"
	"fmt"

	"printshop/internal/core/domain/model/catalog"
	"printshop/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormServiceRepository implements ports.ServiceRepository using GORM.
type GormServiceRepository struct {
	db *gorm.DB
}

func NewGormServiceRepository(db *gorm.DB) *GormServiceRepository {
	return &GormServiceRepository{db: db}
}

// Add inserts a service. An existing id is reported as an invalid value and left untouched.
func (r *GormServiceRepository) Add(ctx context.Context, service catalog.Service) error {
	if err := service.Validate(); err != nil {
		return err
	}
	dto := serviceFromDomain(service)
	return insertOnce(r.db.WithContext(ctx), &dto, "service", dto.ID)
}

func (r *GormServiceRepository) Get(ctx context.Context, id string) (catalog.Service, error) {
	var dto ServiceDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return catalog.Service{}, errs.NewObjectNotFoundError("service", id)
		}
		return catalog.Service{}, err
	}
	return serviceToDomain(dto)
}

func (r *GormServiceRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(r.db.WithContext(ctx), &ServiceDTO{}, "service", id)
}

func (r *GormServiceRepository) List(ctx context.Context) ([]catalog.Service, error) {
	var dtos []ServiceDTO
	if err := r.db.WithContext(ctx).Order("category, id").Find(&dtos).Error; err != nil {
		return nil, err
	}
	services := make([]catalog.Service, 0, len(dtos))
	for _, dto := range dtos {
		s, err := serviceToDomain(dto)
		if err != nil {
			return nil, err
		}
		services = append(services, s)
	}
	return services, nil
}

// GormMaterialRepository implements ports.MaterialRepository using GORM.
type GormMaterialRepository struct {
	db *gorm.DB
}

func NewGormMaterialRepository(db *gorm.DB) *GormMaterialRepository {
	return &GormMaterialRepository{db: db}
}

func (r *GormMaterialRepository) Add(ctx context.Context, material catalog.Material) error {
	if err := material.Validate(); err != nil {
		return err
	}
	dto := materialFromDomain(material)
	return insertOnce(r.db.WithContext(ctx), &dto, "material", dto.ID)
}

func (r *GormMaterialRepository) Get(ctx context.Context, id string) (catalog.Material, error) {
	var dto MaterialDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return catalog.Material{}, errs.NewObjectNotFoundError("material", id)
		}
		return catalog.Material{}, err
	}
	return materialToDomain(dto)
}

func (r *GormMaterialRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(r.db.WithContext(ctx), &MaterialDTO{}, "material", id)
}

func (r *GormMaterialRepository) List(ctx context.Context) ([]catalog.Material, error) {
	var dtos []MaterialDTO
	if err := r.db.WithContext(ctx).Order("technology, id").Find(&dtos).Error; err != nil {
		return nil, err
	}
	materials := make([]catalog.Material, 0, len(dtos))
	for _, dto := range dtos {
		m, err := materialToDomain(dto)
		if err != nil {
			return nil, err
		}
		materials = append(materials, m)
	}
	return materials, nil
}

func insertOnce(db *gorm.DB, dto any, kind, id string) error {
	result := db.Clauses(clause.OnConflict{DoNothing: true}).Create(dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewValueIsInvalidErrorWithCause(kind, fmt.Errorf("%s %q already exists", kind, id))
	}
	return nil
}

func deleteByID(db *gorm.DB, model any, kind, id string) error {
	result := db.Where("id = ?", id).Delete(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError(kind, id)
	}
	return nil
}
