package queries

import (
	"errors"
	"strings"

	"printshop/internal/core/domain/model/catalog"
	"printshop/internal/pkg/guard"
)

var (
	ErrListServicesQueryIsNotConstructed = errors.New(
		"ListServicesQuery must be created via NewListServicesQuery constructor",
	)
	ErrListMaterialsQueryIsNotConstructed = errors.New(
		"ListMaterialsQuery must be created via NewListMaterialsQuery constructor",
	)
)

// ListServicesQuery filters the storefront catalog. Empty filters match everything.
type ListServicesQuery struct {
	category   catalog.Category
	materialID string
	priceRange catalog.PriceRange
	guard      guard.ConstructorGuard
}

func NewListServicesQuery(category catalog.Category, materialID string, priceRange catalog.PriceRange) (ListServicesQuery, error) {
	if category != "" {
		if err := category.Validate(); err != nil {
			return ListServicesQuery{}, err
		}
	}
	if err := priceRange.Validate(); err != nil {
		return ListServicesQuery{}, err
	}
	return ListServicesQuery{
		category:   category,
		materialID: strings.TrimSpace(materialID),
		priceRange: priceRange,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q ListServicesQuery) Validate() error {
	return q.guard.Validate(ErrListServicesQueryIsNotConstructed)
}

func (q ListServicesQuery) Category() catalog.Category     { return q.category }
func (q ListServicesQuery) MaterialID() string             { return q.materialID }
func (q ListServicesQuery) PriceRange() catalog.PriceRange { return q.priceRange }

type ListServicesQueryResponse struct {
	ID                  string
	Name                string
	Category            catalog.Category
	UnitPrice           float64
	Unit                catalog.PricingUnit
	PricingMode         catalog.PricingMode
	CompatibleMaterials []string
	Description         string
}

type ListMaterialsQuery struct {
	guard guard.ConstructorGuard
}

func NewListMaterialsQuery() ListMaterialsQuery {
	return ListMaterialsQuery{guard: guard.NewConstructorGuard()}
}

func (q ListMaterialsQuery) Validate() error {
	return q.guard.Validate(ErrListMaterialsQueryIsNotConstructed)
}

// ListMaterialsQueryResponse is one material card. Optional print parameters are nil when
// the catalog does not record them.
type ListMaterialsQueryResponse struct {
	ID                string
	Name              string
	Technology        catalog.Technology
	PricePerGram      float64
	PricePerKg        float64
	Stock             catalog.StockStatus
	Density           *float64
	NozzleTemperature *catalog.TemperatureRange
	BedTemperature    *catalog.TemperatureRange
}
