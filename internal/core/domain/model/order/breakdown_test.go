package order_test

import (
	"math"
	"testing"

	"printshop/internal/core/domain/model/catalog"
	"printshop/internal/core/domain/model/order"
	"printshop/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPricingBreakdown(t *testing.T) {
	t.Run("should derive subtotal and total from rounded components", func(t *testing.T) {
		b, err := order.NewPricingBreakdown(catalog.ServiceRate, order.CostTerms{
			Service:  30,
			Shipping: 5,
			Tax:      30 * 0.21,
		})

		require.NoError(t, err)
		require.NoError(t, b.Validate())
		assert.Equal(t, "30", b.Subtotal().String())
		assert.Equal(t, "6.3", b.TaxAmount().String())
		assert.Equal(t, "41.3", b.Total().String())
		assert.Equal(t, catalog.ServiceRate, b.Mode())
	})

	t.Run("should round each amount half away from zero", func(t *testing.T) {
		b, err := order.NewPricingBreakdown(catalog.MaterialCost, order.CostTerms{
			Material: 1.005,
			Energy:   0.004,
		})

		require.NoError(t, err)
		assert.Equal(t, "1.01", b.MaterialCost().StringFixed(2))
		assert.Equal(t, "0.00", b.EnergyCost().StringFixed(2))
	})

	t.Run("total should always equal the sum of its rounded parts", func(t *testing.T) {
		b, err := order.NewPricingBreakdown(catalog.MaterialCost, order.CostTerms{
			Material: 1.3333333,
			Energy:   2.6666666,
			Markup:   1.4,
			Tax:      0.125,
		})

		require.NoError(t, err)
		sum := b.Subtotal().Add(b.MarkupAmount()).Add(b.ShippingCost()).Add(b.TaxAmount())
		assert.True(t, b.Total().Equal(sum), "total %s, sum %s", b.Total(), sum)
	})

	t.Run("subtotal should add the rounded surcharge to the rounded production", func(t *testing.T) {
		b, err := order.NewPricingBreakdown(catalog.MaterialCost, order.CostTerms{
			Logistics:   4500,
			Maintenance: 0.007,
			Rush:        2250.005,
		})

		require.NoError(t, err)
		assert.Equal(t, "2250.01", b.RushSurcharge().StringFixed(2))
		assert.Equal(t, "6750.02", b.Subtotal().StringFixed(2))
		assert.Equal(t, "6750.02", b.Total().StringFixed(2))
	})

	t.Run("should reject negative and non finite terms", func(t *testing.T) {
		_, err := order.NewPricingBreakdown(catalog.ServiceRate, order.CostTerms{Service: -1, Tax: math.NaN()})

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "service cost")
		assert.Contains(t, err.Error(), "tax")
	})

	t.Run("should reject unset mode", func(t *testing.T) {
		_, err := order.NewPricingBreakdown(catalog.PricingModeUnset, order.CostTerms{})
		assert.Error(t, err)
	})
}

func TestRestorePricingBreakdown(t *testing.T) {
	t.Run("should restore consistent amounts", func(t *testing.T) {
		original, err := order.NewPricingBreakdown(catalog.ServiceRate, order.CostTerms{Service: 45, Shipping: 15, Tax: 9.45})
		require.NoError(t, err)

		restored, err := order.RestorePricingBreakdown(catalog.ServiceRate, original.Amounts())

		require.NoError(t, err)
		assert.True(t, restored.Total().Equal(original.Total()))
	})

	t.Run("should reject hand edited total", func(t *testing.T) {
		original, err := order.NewPricingBreakdown(catalog.ServiceRate, order.CostTerms{Service: 45})
		require.NoError(t, err)
		amounts := original.Amounts()
		amounts.Total = decimal.NewFromInt(1)

		_, err = order.RestorePricingBreakdown(catalog.ServiceRate, amounts)

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
