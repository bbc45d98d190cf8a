package order

import (
	"errors"
	"fmt"
	"math"

	"printshop/internal/core/domain/model/catalog"
	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/pkg/errs"
	"printshop/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrPricingBreakdownIsNotConstructed = errors.New("PricingBreakdown must be created via NewPricingBreakdown constructor")

// CostTerms are the full-precision amounts the pricing engine produced. Subtotal and
// total are derived, never supplied.
type CostTerms struct {
	Service     float64
	Material    float64
	Energy      float64
	Maintenance float64
	PostProcess float64
	Logistics   float64
	Rush        float64
	Markup      float64
	Shipping    float64
	Tax         float64
}

// Production is the pre-rush sum of the production terms.
func (t CostTerms) Production() float64 {
	return t.Service + t.Material + t.Energy + t.Maintenance + t.PostProcess + t.Logistics
}

// subtotal is the rounded production plus the rounded rush surcharge. A surcharge taken
// on the rounded production keeps a rush subtotal equal to the regular one times the
// multiplier, to the cent.
func (t CostTerms) subtotal() decimal.Decimal {
	return kernel.SumMoney(kernel.RoundMoney(t.Production()), kernel.RoundMoney(t.Rush))
}

// BreakdownAmounts is the rounded, persisted form of a PricingBreakdown.
type BreakdownAmounts struct {
	Service     decimal.Decimal
	Material    decimal.Decimal
	Energy      decimal.Decimal
	Maintenance decimal.Decimal
	PostProcess decimal.Decimal
	Logistics   decimal.Decimal
	Rush        decimal.Decimal
	Subtotal    decimal.Decimal
	Markup      decimal.Decimal
	Shipping    decimal.Decimal
	Tax         decimal.Decimal
	Total       decimal.Decimal
}

// PricingBreakdown is an immutable priced quote.
//
// Every term is rounded to kernel.MoneyPlaces exactly once, from its full-precision
// value, and the subtotal is the rounded production plus the rounded surcharge. Total is
// the exact sum of the rounded subtotal, markup, shipping and tax, so the displayed
// figures always add up.
type PricingBreakdown struct {
	mode    catalog.PricingMode
	amounts BreakdownAmounts

	guard guard.ConstructorGuard
}

// NewPricingBreakdown rounds full-precision terms into a breakdown. Every term must be a
// finite non-negative number.
func NewPricingBreakdown(mode catalog.PricingMode, terms CostTerms) (PricingBreakdown, error) {
	if err := mode.Validate(); err != nil {
		return PricingBreakdown{}, err
	}

	named := []struct {
		name  string
		value float64
	}{
		{"service cost", terms.Service},
		{"material cost", terms.Material},
		{"energy cost", terms.Energy},
		{"maintenance cost", terms.Maintenance},
		{"post-process cost", terms.PostProcess},
		{"logistics cost", terms.Logistics},
		{"rush surcharge", terms.Rush},
		{"markup", terms.Markup},
		{"shipping cost", terms.Shipping},
		{"tax", terms.Tax},
	}
	var errList []error
	for _, n := range named {
		if math.IsNaN(n.value) || math.IsInf(n.value, 0) || n.value < 0 {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
				n.name, fmt.Errorf("%v is not a non-negative amount", n.value)))
		}
	}
	if err := errors.Join(errList...); err != nil {
		return PricingBreakdown{}, err
	}

	a := BreakdownAmounts{
		Service:     kernel.RoundMoney(terms.Service),
		Material:    kernel.RoundMoney(terms.Material),
		Energy:      kernel.RoundMoney(terms.Energy),
		Maintenance: kernel.RoundMoney(terms.Maintenance),
		PostProcess: kernel.RoundMoney(terms.PostProcess),
		Logistics:   kernel.RoundMoney(terms.Logistics),
		Rush:        kernel.RoundMoney(terms.Rush),
		Subtotal:    terms.subtotal(),
		Markup:      kernel.RoundMoney(terms.Markup),
		Shipping:    kernel.RoundMoney(terms.Shipping),
		Tax:         kernel.RoundMoney(terms.Tax),
	}
	a.Total = kernel.SumMoney(a.Subtotal, a.Markup, a.Shipping, a.Tax)

	return PricingBreakdown{mode: mode, amounts: a, guard: guard.NewConstructorGuard()}, nil
}

// RestorePricingBreakdown rebuilds a stored breakdown. The stored total must match the
// sum of its components.
func RestorePricingBreakdown(mode catalog.PricingMode, a BreakdownAmounts) (PricingBreakdown, error) {
	if err := mode.Validate(); err != nil {
		return PricingBreakdown{}, err
	}
	sum := kernel.SumMoney(a.Subtotal, a.Markup, a.Shipping, a.Tax)
	if !a.Total.Equal(sum) {
		return PricingBreakdown{}, errs.NewValueIsInvalidErrorWithCause(
			"total", fmt.Errorf("%s does not match the sum of its components %s", a.Total, sum))
	}
	if a.Total.IsNegative() {
		return PricingBreakdown{}, errs.NewValueIsInvalidErrorWithCause("total", fmt.Errorf("%s is negative", a.Total))
	}
	return PricingBreakdown{mode: mode, amounts: a, guard: guard.NewConstructorGuard()}, nil
}

func (b PricingBreakdown) Validate() error {
	return b.guard.Validate(ErrPricingBreakdownIsNotConstructed)
}

func (b PricingBreakdown) Mode() catalog.PricingMode        { return b.mode }
func (b PricingBreakdown) Amounts() BreakdownAmounts        { return b.amounts }
func (b PricingBreakdown) ServiceCost() decimal.Decimal     { return b.amounts.Service }
func (b PricingBreakdown) MaterialCost() decimal.Decimal    { return b.amounts.Material }
func (b PricingBreakdown) EnergyCost() decimal.Decimal      { return b.amounts.Energy }
func (b PricingBreakdown) MaintenanceCost() decimal.Decimal { return b.amounts.Maintenance }
func (b PricingBreakdown) PostProcessCost() decimal.Decimal { return b.amounts.PostProcess }
func (b PricingBreakdown) LogisticsCost() decimal.Decimal   { return b.amounts.Logistics }
func (b PricingBreakdown) RushSurcharge() decimal.Decimal   { return b.amounts.Rush }
func (b PricingBreakdown) Subtotal() decimal.Decimal        { return b.amounts.Subtotal }
func (b PricingBreakdown) MarkupAmount() decimal.Decimal    { return b.amounts.Markup }
func (b PricingBreakdown) ShippingCost() decimal.Decimal    { return b.amounts.Shipping }
func (b PricingBreakdown) TaxAmount() decimal.Decimal       { return b.amounts.Tax }
func (b PricingBreakdown) Total() decimal.Decimal           { return b.amounts.Total }
