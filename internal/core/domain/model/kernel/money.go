package kernel

import "github.com/shopspring/decimal"

// MoneyPlaces is the number of decimal places every displayed amount is rounded to.
const MoneyPlaces = 2

// RoundMoney converts a full-precision amount into its displayed value. Values are rounded
// half away from zero; the float is read through its shortest decimal representation, so
// 1.005 rounds to 1.01 rather than falling victim to binary representation.
func RoundMoney(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(MoneyPlaces)
}

// SumMoney adds already rounded amounts exactly.
func SumMoney(values ...decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	for _, v := range values {
		sum = sum.Add(v)
	}
	return sum
}
