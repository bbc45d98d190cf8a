package services

import (
	"fmt"
	"time"

	"printshop/internal/core/domain/model/catalog"
	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/order"
	"printshop/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// CatalogReader resolves the catalog entries a specification refers to.
// catalog.Snapshot is the production implementation.
type CatalogReader interface {
	Service(id string) (catalog.Service, bool)
	Material(id string) (catalog.Material, bool)
}

// PricingEngine turns a specification into a PricingBreakdown. It holds no mutable state
// and is safe for concurrent use.
//
// Each service is priced in its own mode:
//
//	service-rate:   unitPrice×qty + finish×qty (+ rush), then shipping and tax on top
//	material-cost:  (mass×price/g + time×kWh×tariff + time×maintenance + finish)×qty
//	                + packaging + freight (+ rush), then the shop margin on top
//
// The rush multiplier applies to the whole production subtotal in both modes, so a rush
// quote's subtotal is the regular subtotal times the multiplier.
//
// Example usage:
//
//	engine := services.NewPricingEngine(rates, catalog.NewSnapshot(svcs, mats))
//	breakdown, err := engine.Compute(spec)
//	if errors.Is(err, errs.ErrConfiguration) {
//	    // unknown service/material or a missing rate
//	}
type PricingEngine struct {
	rates   RateConfiguration
	catalog CatalogReader
}

func NewPricingEngine(rates RateConfiguration, reader CatalogReader) (PricingEngine, error) {
	if err := rates.Validate(); err != nil {
		return PricingEngine{}, err
	}
	if reader == nil {
		return PricingEngine{}, errs.NewValueIsRequiredError("catalog reader")
	}
	return PricingEngine{rates: rates, catalog: reader}, nil
}

// ComputePricing is a one-shot form of PricingEngine.Compute.
func ComputePricing(spec order.Specification, rates RateConfiguration, reader CatalogReader) (order.PricingBreakdown, error) {
	engine, err := NewPricingEngine(rates, reader)
	if err != nil {
		return order.PricingBreakdown{}, err
	}
	return engine.Compute(spec)
}

func (e PricingEngine) Rates() RateConfiguration {
	return e.rates
}

// Compute prices a specification.
//
// Returns:
//   - a ConfigurationError for an unknown service or material, or a finish/shipping
//     method without a configured rate
//   - a validation error for a material the service does not accept
func (e PricingEngine) Compute(spec order.Specification) (order.PricingBreakdown, error) {
	if err := spec.Validate(); err != nil {
		return order.PricingBreakdown{}, err
	}

	svc, material, err := e.resolve(spec)
	if err != nil {
		return order.PricingBreakdown{}, err
	}
	finishFee, ok := e.rates.FinishFees[spec.Finish()]
	if !ok {
		return order.PricingBreakdown{}, errs.NewConfigurationError("finish fee", spec.Finish())
	}
	shipping, ok := e.rates.ShippingRates[spec.ShippingMethod()]
	if !ok {
		return order.PricingBreakdown{}, errs.NewConfigurationError("shipping rate", spec.ShippingMethod())
	}

	qty := float64(spec.ClampedQuantity(e.rates.MaxQuantity))
	weight, _ := spec.WeightGrams()
	hours, _ := spec.PrintHours()

	var terms order.CostTerms
	switch svc.PricingMode() {
	case catalog.ServiceRate:
		terms.Service = svc.UnitPrice() * qty
		terms.PostProcess = finishFee * qty
	case catalog.MaterialCost:
		if material != nil {
			terms.Material = weight * material.PricePerGram() * qty
		}
		terms.Energy = hours * e.rates.AverageKwhPerHour * e.rates.TariffPerKwh * qty
		terms.Maintenance = hours * e.rates.MaintenanceRatePerHour * qty
		terms.PostProcess = finishFee * qty
		terms.Logistics = e.rates.PackagingFee + e.rates.FreightFee
	default:
		return order.PricingBreakdown{}, errs.NewConfigurationError("pricing mode", svc.PricingMode())
	}

	production := kernel.RoundMoney(terms.Production())
	if spec.Rush() {
		surcharge := decimal.NewFromFloat(e.rates.RushMultiplier).Sub(decimal.NewFromInt(1))
		terms.Rush = production.Mul(surcharge).InexactFloat64()
	}
	subtotal := kernel.SumMoney(production, kernel.RoundMoney(terms.Rush)).InexactFloat64()

	if svc.PricingMode() == catalog.MaterialCost {
		// freight is already in logistics and margin-priced quotes are tax-inclusive
		terms.Markup = subtotal * e.rates.MarginRate
	} else {
		terms.Shipping = shipping.Price
		terms.Tax = subtotal * e.rates.TaxRate
	}

	return order.NewPricingBreakdown(svc.PricingMode(), terms)
}

// EstimateDelivery returns the expected delivery date of an order placed at from:
// production lead time (shorter for rush orders) plus carrier transit days.
func (e PricingEngine) EstimateDelivery(spec order.Specification, from time.Time) (time.Time, error) {
	shipping, ok := e.rates.ShippingRates[spec.ShippingMethod()]
	if !ok {
		return time.Time{}, errs.NewConfigurationError("shipping rate", spec.ShippingMethod())
	}
	days := e.rates.ProductionDays.Normal
	if spec.Rush() {
		days = e.rates.ProductionDays.Rush
	}
	return from.AddDate(0, 0, days+shipping.TransitDays), nil
}

func (e PricingEngine) resolve(spec order.Specification) (catalog.Service, *catalog.Material, error) {
	svc, ok := e.catalog.Service(spec.ServiceID())
	if !ok {
		return catalog.Service{}, nil, errs.NewConfigurationError("service", spec.ServiceID())
	}
	if spec.MaterialID() == "" {
		return svc, nil, nil
	}

	material, ok := e.catalog.Material(spec.MaterialID())
	if !ok {
		return catalog.Service{}, nil, errs.NewConfigurationError("material", spec.MaterialID())
	}
	if !svc.AcceptsMaterial(material.ID()) {
		return catalog.Service{}, nil, errs.NewValueIsInvalidErrorWithCause(
			"material",
			fmt.Errorf("%s is not available for service %s", material.ID(), svc.ID()),
		)
	}
	return svc, &material, nil
}
