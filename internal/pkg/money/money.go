// Package money normalizes monetary values to the fixed representation the
// ledger stores: two fractional digits, rounded half away from zero.
package money

import "github.com/shopspring/decimal"

// Round quantizes d to 2 decimal places, half away from zero. Every price,
// line subtotal and grand total passes through here before it is stored or
// compared.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// MulQty multiplies a unit price by an integer quantity and rounds the result.
func MulQty(unitPrice decimal.Decimal, qty int) decimal.Decimal {
	return Round(unitPrice.Mul(decimal.NewFromInt(int64(qty))))
}

// Zero is the canonical zero amount.
func Zero() decimal.Decimal {
	return decimal.Zero
}
