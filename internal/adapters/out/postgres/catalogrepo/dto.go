// Package catalogrepo persists catalog services and materials.
package catalogrepo

import (
	"printshop/internal/core/domain/model/catalog"

	"github.com/lib/pq"
)

// ServiceDTO is the "catalog_services" row.
type ServiceDTO struct {
	ID                  string         `gorm:"type:varchar(100);primaryKey"`
	Name                string         `gorm:"type:varchar(255);not null"`
	Category            string         `gorm:"type:varchar(20);not null;index"`
	UnitPrice           float64        `gorm:"type:double precision;not null"`
	Unit                string         `gorm:"type:varchar(20);not null"`
	PricingMode         string         `gorm:"type:varchar(20);not null"`
	CompatibleMaterials pq.StringArray `gorm:"type:text[]"`
	Description         string         `gorm:"type:text"`
}

func (ServiceDTO) TableName() string {
	return "catalog_services"
}

// MaterialDTO is the "catalog_materials" row. Temperature ranges are stored as nullable
// min/max pairs.
type MaterialDTO struct {
	ID           string   `gorm:"type:varchar(100);primaryKey"`
	Name         string   `gorm:"type:varchar(255);not null"`
	Technology   string   `gorm:"type:varchar(10);not null"`
	PricePerGram float64  `gorm:"type:double precision;not null"`
	Stock        string   `gorm:"type:varchar(20);not null"`
	Density      *float64 `gorm:"type:double precision"`
	NozzleMin    *int
	NozzleMax    *int
	BedMin       *int
	BedMax       *int
}

func (MaterialDTO) TableName() string {
	return "catalog_materials"
}

func serviceFromDomain(s catalog.Service) ServiceDTO {
	return ServiceDTO{
		ID:                  s.ID(),
		Name:                s.Name(),
		Category:            string(s.Category()),
		UnitPrice:           s.UnitPrice(),
		Unit:                string(s.Unit()),
		PricingMode:         string(s.PricingMode()),
		CompatibleMaterials: pq.StringArray(s.CompatibleMaterials()),
		Description:         s.Description(),
	}
}

func serviceToDomain(dto ServiceDTO) (catalog.Service, error) {
	return catalog.NewService(
		dto.ID,
		dto.Name,
		catalog.Category(dto.Category),
		dto.UnitPrice,
		catalog.PricingUnit(dto.Unit),
		catalog.PricingMode(dto.PricingMode),
		dto.CompatibleMaterials,
		dto.Description,
	)
}

func materialFromDomain(m catalog.Material) MaterialDTO {
	dto := MaterialDTO{
		ID:           m.ID(),
		Name:         m.Name(),
		Technology:   string(m.Technology()),
		PricePerGram: m.PricePerGram(),
		Stock:        string(m.Stock()),
	}
	if d, ok := m.Density(); ok {
		dto.Density = &d
	}
	if r, ok := m.NozzleTemperature(); ok {
		dto.NozzleMin, dto.NozzleMax = &r.Min, &r.Max
	}
	if r, ok := m.BedTemperature(); ok {
		dto.BedMin, dto.BedMax = &r.Min, &r.Max
	}
	return dto
}

func materialToDomain(dto MaterialDTO) (catalog.Material, error) {
	var opts []catalog.MaterialOption
	if dto.Density != nil {
		opts = append(opts, catalog.WithDensity(*dto.Density))
	}
	if dto.NozzleMin != nil && dto.NozzleMax != nil {
		opts = append(opts, catalog.WithNozzleTemperature(*dto.NozzleMin, *dto.NozzleMax))
	}
	if dto.BedMin != nil && dto.BedMax != nil {
		opts = append(opts, catalog.WithBedTemperature(*dto.BedMin, *dto.BedMax))
	}
	return catalog.NewMaterial(
		dto.ID,
		dto.Name,
		catalog.Technology(dto.Technology),
		dto.PricePerGram,
		catalog.StockStatus(dto.Stock),
		opts...,
	)
}
