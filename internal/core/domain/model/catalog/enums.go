package catalog

import (
	"fmt"

	"printshop/internal/pkg/errs"
)

// Category groups services on the storefront.
type Category string

const (
	CategoryPrinting  Category = "printing"
	CategoryDesign    Category = "design"
	CategoryFinishing Category = "finishing"
)

func (c Category) Validate() error {
	switch c {
	case CategoryPrinting, CategoryDesign, CategoryFinishing:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("category", fmt.Errorf("%q is not a service category", string(c)))
}

// PricingUnit describes what a service's unit price is charged per.
type PricingUnit string

const (
	PerHour    PricingUnit = "per-hour"
	PerPiece   PricingUnit = "per-piece"
	PerProject PricingUnit = "per-project"
)

func (u PricingUnit) Validate() error {
	switch u {
	case PerHour, PerPiece, PerProject:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("pricing unit", fmt.Errorf("%q is not a pricing unit", string(u)))
}

// PricingMode selects the formula the pricing engine applies to orders for a service.
//
// ServiceRate charges unit price × quantity plus finishing, shipping and tax.
// MaterialCost charges filament mass, machine energy and maintenance, finishing and
// logistics, then applies the shop margin.
type PricingMode string

const (
	PricingModeUnset PricingMode = ""
	ServiceRate      PricingMode = "service-rate"
	MaterialCost     PricingMode = "material-cost"
)

// DefaultPricingMode is used when a service is created without an explicit mode.
// Every category defaults to ServiceRate: mass-based pricing is only used for services
// the catalog administrator declares as MaterialCost.
func DefaultPricingMode(_ Category) PricingMode {
	return ServiceRate
}

func (m PricingMode) Validate() error {
	switch m {
	case ServiceRate, MaterialCost:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("pricing mode", fmt.Errorf("%q is not a pricing mode", string(m)))
}

// Technology is the printing process family a material is made for.
type Technology string

const (
	FDM Technology = "FDM"
	SLA Technology = "SLA"
	SLS Technology = "SLS"
)

func (t Technology) Validate() error {
	switch t {
	case FDM, SLA, SLS:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("technology", fmt.Errorf("%q is not a printing technology", string(t)))
}

type StockStatus string

const (
	Available  StockStatus = "available"
	LowStock   StockStatus = "low-stock"
	OutOfStock StockStatus = "out-of-stock"
)

func (s StockStatus) Validate() error {
	switch s {
	case Available, LowStock, OutOfStock:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("stock status", fmt.Errorf("%q is not a stock status", string(s)))
}

// PriceRange is the storefront price filter.
type PriceRange string

const (
	AnyPrice    PriceRange = ""
	LowPrice    PriceRange = "low"
	MediumPrice PriceRange = "medium"
	HighPrice   PriceRange = "high"
)

// Contains reports whether a unit price falls in the range:
// low is up to 20, medium above 20 up to 40, high above 40.
func (r PriceRange) Contains(price float64) bool {
	switch r {
	case LowPrice:
		return price <= 20
	case MediumPrice:
		return price > 20 && price <= 40
	case HighPrice:
		return price > 40
	case AnyPrice:
		return true
	}
	return false
}

func (r PriceRange) Validate() error {
	switch r {
	case AnyPrice, LowPrice, MediumPrice, HighPrice:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("price range", fmt.Errorf("%q is not a price range", string(r)))
}
