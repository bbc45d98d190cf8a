package services_test

import "github.com/shopspring/decimal"

func decimalOf(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}
