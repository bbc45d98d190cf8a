package catalog

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"printshop/internal/pkg/errs"
	"printshop/internal/pkg/guard"
)

// ErrServiceIsNotConstructed is returned by Validate for a Service built outside NewService.
var ErrServiceIsNotConstructed = errors.New("Service must be created via NewService constructor")

// Service is a sellable catalog offering.
//
// Invariants:
//   - id and name are non-empty
//   - category, unit and mode are known values
//   - unit price is finite and positive for ServiceRate services; MaterialCost services
//     may carry 0 because their price comes from mass and machine time
//   - compatible materials are a sorted set without blanks
type Service struct {
	id                  string
	name                string
	category            Category
	unitPrice           float64
	unit                PricingUnit
	mode                PricingMode
	compatibleMaterials []string
	description         string

	guard guard.ConstructorGuard
}

// NewService validates and builds a catalog service. An unset mode falls back to
// DefaultPricingMode(category).
//
// Example:
//
//	pla, err := catalog.NewService("printing-pla", "PLA printing", catalog.CategoryPrinting,
//	    15, catalog.PerHour, catalog.PricingModeUnset, []string{"pla"}, "")
func NewService(
	id, name string,
	category Category,
	unitPrice float64,
	unit PricingUnit,
	mode PricingMode,
	compatibleMaterials []string,
	description string,
) (Service, error) {
	s := Service{
		description: strings.TrimSpace(description),
		guard:       guard.NewConstructorGuard(),
	}
	if mode == PricingModeUnset {
		mode = DefaultPricingMode(category)
	}

	if err := errors.Join(
		s.setID(id),
		s.setName(name),
		s.setCategory(category),
		s.setUnit(unit),
		s.setMode(mode),
		s.setCompatibleMaterials(compatibleMaterials),
	); err != nil {
		return Service{}, err
	}
	if err := s.setUnitPrice(unitPrice); err != nil {
		return Service{}, err
	}

	return s, nil
}

func (s Service) Validate() error {
	return s.guard.Validate(ErrServiceIsNotConstructed)
}

func (s Service) ID() string               { return s.id }
func (s Service) Name() string             { return s.name }
func (s Service) Category() Category       { return s.category }
func (s Service) UnitPrice() float64       { return s.unitPrice }
func (s Service) Unit() PricingUnit        { return s.unit }
func (s Service) PricingMode() PricingMode { return s.mode }
func (s Service) Description() string      { return s.description }
func (s Service) CompatibleMaterials() []string {
	return slices.Clone(s.compatibleMaterials)
}

// AcceptsMaterial reports whether the material can be used for this service.
// A service without a material list (design work, for instance) accepts none.
func (s Service) AcceptsMaterial(materialID string) bool {
	_, found := slices.BinarySearch(s.compatibleMaterials, materialID)
	return found
}

// RequiresModelFile reports whether orders for this service must reference a 3D model.
func (s Service) RequiresModelFile() bool {
	return s.category == CategoryPrinting
}

func (s *Service) setID(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return errs.NewValueIsRequiredError("service id")
	}
	s.id = id
	return nil
}

func (s *Service) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("service name")
	}
	s.name = name
	return nil
}

func (s *Service) setCategory(category Category) error {
	if err := category.Validate(); err != nil {
		return err
	}
	s.category = category
	return nil
}

func (s *Service) setUnit(unit PricingUnit) error {
	if err := unit.Validate(); err != nil {
		return err
	}
	s.unit = unit
	return nil
}

func (s *Service) setMode(mode PricingMode) error {
	if err := mode.Validate(); err != nil {
		return err
	}
	s.mode = mode
	return nil
}

// setUnitPrice runs after setMode because the lower bound depends on the mode.
func (s *Service) setUnitPrice(price float64) error {
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return errs.NewValueIsInvalidErrorWithCause("unit price", fmt.Errorf("%v is not a finite number", price))
	}
	if price < 0 || (price == 0 && s.mode == ServiceRate) {
		return errs.NewValueIsInvalidErrorWithCause("unit price", fmt.Errorf("%v is not greater than 0", price))
	}
	s.unitPrice = price
	return nil
}

func (s *Service) setCompatibleMaterials(ids []string) error {
	set := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			return errs.NewValueIsInvalidErrorWithCause("compatible materials", errors.New("blank material id"))
		}
		set = append(set, id)
	}
	slices.Sort(set)
	s.compatibleMaterials = slices.Compact(set)
	return nil
}
