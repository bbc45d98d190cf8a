package services_test

import (
	"testing"
	"time"

	"printshop/internal/core/domain/model/catalog"
	"printshop/internal/core/domain/model/order"
	"printshop/internal/core/domain/services"
	"printshop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(t *testing.T) services.PricingEngine {
	t.Helper()
	engine, err := services.NewPricingEngine(
		services.DefaultRateConfiguration(),
		catalog.NewSnapshot(catalog.DefaultServices(), catalog.DefaultMaterials()),
	)
	require.NoError(t, err)
	return engine
}

func newSpec(t *testing.T, serviceID, materialID string, qty int, rush bool, opts ...order.SpecificationOption) order.Specification {
	t.Helper()
	spec, err := order.NewSpecification(serviceID, materialID, qty, rush, order.ShippingStandard, order.FinishNone, opts...)
	require.NoError(t, err)
	return spec
}

func TestPricingEngine_ServiceRateScenario(t *testing.T) {
	engine := newEngine(t)

	b, err := engine.Compute(newSpec(t, "printing-pla", "pla", 2, false))

	require.NoError(t, err)
	assert.Equal(t, catalog.ServiceRate, b.Mode())
	assert.Equal(t, "30.00", b.ServiceCost().StringFixed(2))
	assert.Equal(t, "30.00", b.Subtotal().StringFixed(2))
	assert.Equal(t, "5.00", b.ShippingCost().StringFixed(2))
	assert.Equal(t, "6.30", b.TaxAmount().StringFixed(2))
	assert.Equal(t, "41.30", b.Total().StringFixed(2))
	assert.True(t, b.MarkupAmount().IsZero())
	assert.True(t, b.MaterialCost().IsZero())
	assert.True(t, b.LogisticsCost().IsZero())
}

func TestPricingEngine_MaterialCostScenario(t *testing.T) {
	engine := newEngine(t)

	b, err := engine.Compute(newSpec(t, "printing-custom", "pla", 1, false,
		order.WithWeightGrams(100), order.WithPrintHours(2)))

	require.NoError(t, err)
	assert.Equal(t, catalog.MaterialCost, b.Mode())
	assert.Equal(t, "1500.00", b.MaterialCost().StringFixed(2))
	assert.Equal(t, "28.80", b.EnergyCost().StringFixed(2))
	assert.Equal(t, "1400.00", b.MaintenanceCost().StringFixed(2))
	assert.Equal(t, "0.00", b.PostProcessCost().StringFixed(2))
	assert.Equal(t, "4500.00", b.LogisticsCost().StringFixed(2))
	assert.Equal(t, "7428.80", b.Subtotal().StringFixed(2))
	assert.Equal(t, "2600.08", b.MarkupAmount().StringFixed(2))
	assert.True(t, b.ShippingCost().IsZero())
	assert.True(t, b.TaxAmount().IsZero())
	assert.Equal(t, "10028.88", b.Total().StringFixed(2))
}

func TestPricingEngine_Rush(t *testing.T) {
	engine := newEngine(t)

	t.Run("service rate subtotal should grow by the multiplier", func(t *testing.T) {
		regular, err := engine.Compute(newSpec(t, "printing-pla", "pla", 2, false))
		require.NoError(t, err)
		rush, err := engine.Compute(newSpec(t, "printing-pla", "pla", 2, true))
		require.NoError(t, err)

		assert.Equal(t, "15.00", rush.RushSurcharge().StringFixed(2))
		assert.Equal(t, regular.Subtotal().Mul(decimalOf(1.5)).Round(2).StringFixed(2), rush.Subtotal().StringFixed(2))
		assert.Equal(t, regular.ShippingCost(), rush.ShippingCost())
	})

	t.Run("material cost subtotal should grow by the multiplier", func(t *testing.T) {
		opts := []order.SpecificationOption{order.WithWeightGrams(100), order.WithPrintHours(2)}
		regular, err := engine.Compute(newSpec(t, "printing-custom", "pla", 1, false, opts...))
		require.NoError(t, err)
		rush, err := engine.Compute(newSpec(t, "printing-custom", "pla", 1, true, opts...))
		require.NoError(t, err)

		assert.Equal(t, "11143.20", rush.Subtotal().StringFixed(2))
		assert.Equal(t, regular.Subtotal().Mul(decimalOf(1.5)).Round(2).StringFixed(2), rush.Subtotal().StringFixed(2))
	})

	t.Run("fractional cent production should still scale to the cent", func(t *testing.T) {
		opts := []order.SpecificationOption{order.WithWeightGrams(0), order.WithPrintHours(0.00001)}
		regular, err := engine.Compute(newSpec(t, "printing-custom", "pla", 1, false, opts...))
		require.NoError(t, err)
		rush, err := engine.Compute(newSpec(t, "printing-custom", "pla", 1, true, opts...))
		require.NoError(t, err)

		assert.Equal(t, "4500.01", regular.Subtotal().StringFixed(2))
		assert.Equal(t, "2250.01", rush.RushSurcharge().StringFixed(2))
		assert.Equal(t, "6750.02", rush.Subtotal().StringFixed(2))
		assert.Equal(t, regular.Subtotal().Mul(decimalOf(1.5)).Round(2).StringFixed(2), rush.Subtotal().StringFixed(2))
	})
}

func TestPricingEngine_QuantityClamping(t *testing.T) {
	engine := newEngine(t)
	compute := func(qty int) order.PricingBreakdown {
		b, err := engine.Compute(newSpec(t, "printing-abs", "abs", qty, false))
		require.NoError(t, err)
		return b
	}

	assert.Equal(t, compute(1).Amounts(), compute(0).Amounts())
	assert.Equal(t, compute(1).Amounts(), compute(-3).Amounts())
	assert.Equal(t, compute(100).Amounts(), compute(500).Amounts())
	assert.Equal(t, "2000.00", compute(500).ServiceCost().StringFixed(2))
}

func TestPricingEngine_Finishes(t *testing.T) {
	engine := newEngine(t)

	t.Run("service rate finish is charged per piece", func(t *testing.T) {
		spec, err := order.NewSpecification("printing-pla", "pla", 2, false, order.ShippingStandard, order.FinishSanding)
		require.NoError(t, err)

		b, err := engine.Compute(spec)

		require.NoError(t, err)
		assert.Equal(t, "5000.00", b.PostProcessCost().StringFixed(2))
		assert.Equal(t, "5030.00", b.Subtotal().StringFixed(2))
	})

	t.Run("missing finish fee is a configuration error", func(t *testing.T) {
		rates := services.DefaultRateConfiguration()
		delete(rates.FinishFees, order.FinishPainting)
		_, err := services.NewPricingEngine(rates, catalog.NewSnapshot(nil, nil))

		assert.ErrorIs(t, err, errs.ErrConfiguration)
	})
}

func TestPricingEngine_Errors(t *testing.T) {
	engine := newEngine(t)

	t.Run("unknown service", func(t *testing.T) {
		_, err := engine.Compute(newSpec(t, "printing-gold", "", 1, false))

		assert.ErrorIs(t, err, errs.ErrConfiguration)
		var cfgErr *errs.ConfigurationError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, "service", cfgErr.ParamName)
	})

	t.Run("unknown material", func(t *testing.T) {
		_, err := engine.Compute(newSpec(t, "printing-pla", "unobtainium", 1, false))
		assert.ErrorIs(t, err, errs.ErrConfiguration)
	})

	t.Run("incompatible material", func(t *testing.T) {
		_, err := engine.Compute(newSpec(t, "printing-pla", "abs", 1, false))

		assert.ErrorIs(t, err, errs.ErrValidation)
		assert.NotErrorIs(t, err, errs.ErrConfiguration)
	})

	t.Run("unconstructed specification", func(t *testing.T) {
		_, err := engine.Compute(order.Specification{})
		assert.ErrorIs(t, err, order.ErrSpecificationIsNotConstructed)
	})

	t.Run("shipping method missing from rate table", func(t *testing.T) {
		rates := services.DefaultRateConfiguration()
		delete(rates.ShippingRates, order.ShippingOvernight)

		err := rates.Validate()

		assert.ErrorIs(t, err, errs.ErrConfiguration)
	})
}

func TestPricingEngine_TotalProperty(t *testing.T) {
	engine := newEngine(t)
	specs := []order.Specification{
		newSpec(t, "printing-pla", "pla", 7, true),
		newSpec(t, "design-advanced", "", 3, false),
		newSpec(t, "postprocessing", "", 13, true),
		newSpec(t, "printing-custom", "petg", 3, true, order.WithWeightGrams(37.3), order.WithPrintHours(1.37)),
		newSpec(t, "printing-custom", "", 1, false),
	}

	for _, spec := range specs {
		b, err := engine.Compute(spec)
		require.NoError(t, err)

		sum := b.Subtotal().Add(b.MarkupAmount()).Add(b.ShippingCost()).Add(b.TaxAmount())
		assert.True(t, b.Total().Equal(sum), "%s: total %s != %s", spec.ServiceID(), b.Total(), sum)
		assert.False(t, b.Total().IsNegative())
	}
}

func TestComputePricing(t *testing.T) {
	reader := catalog.NewSnapshot(catalog.DefaultServices(), catalog.DefaultMaterials())

	t.Run("should price with supplied rates", func(t *testing.T) {
		rates := services.DefaultRateConfiguration()
		rates.TaxRate = 0

		b, err := services.ComputePricing(newSpec(t, "printing-pla", "pla", 2, false), rates, reader)

		require.NoError(t, err)
		assert.Equal(t, "35.00", b.Total().StringFixed(2))
	})

	t.Run("should reject invalid rates", func(t *testing.T) {
		rates := services.DefaultRateConfiguration()
		rates.RushMultiplier = 0.5

		_, err := services.ComputePricing(newSpec(t, "printing-pla", "pla", 2, false), rates, reader)

		assert.ErrorIs(t, err, errs.ErrConfiguration)
	})
}

func TestPricingEngine_EstimateDelivery(t *testing.T) {
	engine := newEngine(t)
	from := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		rush     bool
		shipping order.ShippingMethod
		days     int
	}{
		{"standard", false, order.ShippingStandard, 8},
		{"express", false, order.ShippingExpress, 5},
		{"rush overnight", true, order.ShippingOvernight, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := order.NewSpecification("printing-pla", "", 1, tt.rush, tt.shipping, "")
			require.NoError(t, err)

			eta, err := engine.EstimateDelivery(spec, from)

			require.NoError(t, err)
			assert.Equal(t, from.AddDate(0, 0, tt.days), eta)
		})
	}
}
