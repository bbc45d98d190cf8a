package catalog

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"printshop/internal/pkg/errs"
	"printshop/internal/pkg/guard"
)

var ErrMaterialIsNotConstructed = errors.New("Material must be created via NewMaterial constructor")

// TemperatureRange is an inclusive range in degrees Celsius.
type TemperatureRange struct {
	Min int
	Max int
}

func (r TemperatureRange) Validate() error {
	if r.Min > r.Max {
		return errs.NewValueIsOutOfRangeError("temperature range", r.Min, math.MinInt, r.Max)
	}
	return nil
}

func (r TemperatureRange) String() string {
	return fmt.Sprintf("%d-%d°C", r.Min, r.Max)
}

// Material is a printable substance priced per gram.
type Material struct {
	id           string
	name         string
	technology   Technology
	pricePerGram float64
	stock        StockStatus
	density      *float64
	nozzle       *TemperatureRange
	bed          *TemperatureRange

	guard guard.ConstructorGuard
}

type MaterialOption func(*Material) error

// WithDensity sets the density in g/cm³.
func WithDensity(density float64) MaterialOption {
	return func(m *Material) error {
		if !(density > 0) || math.IsInf(density, 0) {
			return errs.NewValueIsInvalidErrorWithCause("density", fmt.Errorf("%v is not a positive number", density))
		}
		m.density = &density
		return nil
	}
}

func WithNozzleTemperature(minC, maxC int) MaterialOption {
	return func(m *Material) error {
		r := TemperatureRange{Min: minC, Max: maxC}
		if err := r.Validate(); err != nil {
			return err
		}
		m.nozzle = &r
		return nil
	}
}

func WithBedTemperature(minC, maxC int) MaterialOption {
	return func(m *Material) error {
		r := TemperatureRange{Min: minC, Max: maxC}
		if err := r.Validate(); err != nil {
			return err
		}
		m.bed = &r
		return nil
	}
}

func NewMaterial(
	id, name string,
	technology Technology,
	pricePerGram float64,
	stock StockStatus,
	opts ...MaterialOption,
) (Material, error) {
	m := Material{guard: guard.NewConstructorGuard()}

	setters := []error{
		m.setID(id),
		m.setName(name),
		m.setTechnology(technology),
		m.setPricePerGram(pricePerGram),
		m.setStock(stock),
	}
	for _, opt := range opts {
		setters = append(setters, opt(&m))
	}
	if err := errors.Join(setters...); err != nil {
		return Material{}, err
	}

	return m, nil
}

func (m Material) Validate() error {
	return m.guard.Validate(ErrMaterialIsNotConstructed)
}

func (m Material) ID() string             { return m.id }
func (m Material) Name() string           { return m.name }
func (m Material) Technology() Technology { return m.technology }
func (m Material) PricePerGram() float64  { return m.pricePerGram }
func (m Material) Stock() StockStatus     { return m.stock }

// PricePerKg is the price of a full kilogram spool.
func (m Material) PricePerKg() float64 { return m.pricePerGram * 1000 }

// Density returns the density in g/cm³ and whether it is known.
func (m Material) Density() (float64, bool) {
	if m.density == nil {
		return 0, false
	}
	return *m.density, true
}

func (m Material) NozzleTemperature() (TemperatureRange, bool) {
	if m.nozzle == nil {
		return TemperatureRange{}, false
	}
	return *m.nozzle, true
}

func (m Material) BedTemperature() (TemperatureRange, bool) {
	if m.bed == nil {
		return TemperatureRange{}, false
	}
	return *m.bed, true
}

func (m Material) InStock() bool {
	return m.stock != OutOfStock
}

func (m *Material) setID(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return errs.NewValueIsRequiredError("material id")
	}
	m.id = id
	return nil
}

func (m *Material) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("material name")
	}
	m.name = name
	return nil
}

func (m *Material) setTechnology(t Technology) error {
	if err := t.Validate(); err != nil {
		return err
	}
	m.technology = t
	return nil
}

func (m *Material) setPricePerGram(price float64) error {
	if !(price > 0) || math.IsInf(price, 0) {
		return errs.NewValueIsInvalidErrorWithCause("price per gram", fmt.Errorf("%v is not a positive number", price))
	}
	m.pricePerGram = price
	return nil
}

func (m *Material) setStock(s StockStatus) error {
	if err := s.Validate(); err != nil {
		return err
	}
	m.stock = s
	return nil
}
