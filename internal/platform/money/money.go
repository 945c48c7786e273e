// Package money does cent-exact arithmetic on euro amounts carried as float64.
package money

import "github.com/shopspring/decimal"

// Line returns quantity × unit price rounded to cents.
func Line(quantity int, unitPrice float64) float64 {
	return decimal.NewFromInt(int64(quantity)).
		Mul(decimal.NewFromFloat(unitPrice)).
		Round(2).
		InexactFloat64()
}

// Sum adds amounts and rounds the result to cents.
func Sum(amounts ...float64) float64 {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(decimal.NewFromFloat(a))
	}
	return total.Round(2).InexactFloat64()
}

// Percent returns pct% of amount rounded to cents.
func Percent(amount, pct float64) float64 {
	return decimal.NewFromFloat(amount).
		Mul(decimal.NewFromFloat(pct)).
		Div(decimal.NewFromInt(100)).
		Round(2).
		InexactFloat64()
}

// Ratio returns a/b rounded to places decimals, or 0 when b is zero.
func Ratio(a, b float64, places int32) float64 {
	if b == 0 {
		return 0
	}
	return decimal.NewFromFloat(a).
		Div(decimal.NewFromFloat(b)).
		Round(places).
		InexactFloat64()
}
