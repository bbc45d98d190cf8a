package services

import (
	"errors"
	"fmt"

	"printshop/internal/core/domain/model/order"
	"printshop/internal/pkg/errs"
)

// ShippingRate is the price and carrier transit time of a shipping method.
type ShippingRate struct {
	Price       float64
	TransitDays int
}

// ProductionDays is the workshop lead time before an order is handed to the carrier.
type ProductionDays struct {
	Normal int
	Rush   int
}

// RateConfiguration carries every tariff the pricing engine uses. It is loaded once by
// the composition root and passed by value; the engine never reads global state.
type RateConfiguration struct {
	TariffPerKwh           float64
	AverageKwhPerHour      float64
	MaintenanceRatePerHour float64
	PackagingFee           float64
	FreightFee             float64
	TaxRate                float64
	MarginRate             float64
	RushMultiplier         float64
	MaxQuantity            int
	FinishFees             map[order.Finish]float64
	ShippingRates          map[order.ShippingMethod]ShippingRate
	ProductionDays         ProductionDays
}

// DefaultRateConfiguration returns the tariffs the shop opened with.
func DefaultRateConfiguration() RateConfiguration {
	return RateConfiguration{
		TariffPerKwh:           120,
		AverageKwhPerHour:      0.12,
		MaintenanceRatePerHour: 700,
		PackagingFee:           1500,
		FreightFee:             3000,
		TaxRate:                0.21,
		MarginRate:             0.35,
		RushMultiplier:         1.5,
		MaxQuantity:            order.DefaultMaxQuantity,
		FinishFees: map[order.Finish]float64{
			order.FinishNone:     0,
			order.FinishSanding:  2500,
			order.FinishPainting: 5000,
			order.FinishUVCure:   3000,
		},
		ShippingRates: map[order.ShippingMethod]ShippingRate{
			order.ShippingStandard:  {Price: 5, TransitDays: 5},
			order.ShippingExpress:   {Price: 15, TransitDays: 2},
			order.ShippingOvernight: {Price: 25, TransitDays: 1},
		},
		ProductionDays: ProductionDays{Normal: 3, Rush: 1},
	}
}

// Validate reports every negative or missing rate as a ConfigurationError.
func (r RateConfiguration) Validate() error {
	var errList []error
	nonNegative := func(name string, v float64) {
		if !(v >= 0) {
			errList = append(errList, errs.NewConfigurationErrorWithCause(name, v, errors.New("must not be negative")))
		}
	}

	nonNegative("tariff per kWh", r.TariffPerKwh)
	nonNegative("average kWh per hour", r.AverageKwhPerHour)
	nonNegative("maintenance rate", r.MaintenanceRatePerHour)
	nonNegative("packaging fee", r.PackagingFee)
	nonNegative("freight fee", r.FreightFee)
	nonNegative("tax rate", r.TaxRate)
	nonNegative("margin rate", r.MarginRate)
	if !(r.RushMultiplier >= 1) {
		errList = append(errList, errs.NewConfigurationErrorWithCause(
			"rush multiplier", r.RushMultiplier, errors.New("must be at least 1")))
	}
	if r.MaxQuantity < order.MinQuantity {
		errList = append(errList, errs.NewConfigurationErrorWithCause(
			"max quantity", r.MaxQuantity, fmt.Errorf("must be at least %d", order.MinQuantity)))
	}
	for _, f := range order.AllFinishes() {
		fee, ok := r.FinishFees[f]
		if !ok {
			errList = append(errList, errs.NewConfigurationError("finish fee", f))
			continue
		}
		nonNegative("finish fee "+string(f), fee)
	}
	for _, m := range order.AllShippingMethods() {
		rate, ok := r.ShippingRates[m]
		if !ok {
			errList = append(errList, errs.NewConfigurationError("shipping rate", m))
			continue
		}
		nonNegative("shipping rate "+string(m), rate.Price)
		if rate.TransitDays < 0 {
			errList = append(errList, errs.NewConfigurationErrorWithCause(
				"transit days "+string(m), rate.TransitDays, errors.New("must not be negative")))
		}
	}
	if r.ProductionDays.Normal < 0 || r.ProductionDays.Rush < 0 {
		errList = append(errList, errs.NewConfigurationErrorWithCause(
			"production days", r.ProductionDays, errors.New("must not be negative")))
	}

	return errors.Join(errList...)
}
