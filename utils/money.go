package utils

import "github.com/shopspring/decimal"

// LineTotal computes quantity x rate rounded to 2 places. Monetary values
// never pass through float64.
func LineTotal(quantity int, rate decimal.Decimal) decimal.Decimal {
	return rate.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
}
