// Package money converts between the decimal amounts exchanged with
// callers and the integer minor units stored in the ledger.
package money

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// ToCents converts a decimal amount to integer minor units, rounding
// half away from zero to the nearest cent.
func ToCents(amount decimal.Decimal) int64 {
	return amount.Mul(hundred).Round(0).IntPart()
}

// FromCents renders minor units as a fixed two-decimal string.
func FromCents(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}
