package payment

import "github.com/shopspring/decimal"

type AddPaymentRequest struct {
	Amount  decimal.Decimal `json:"amount" binding:"required"`
	Method  string          `json:"method" binding:"required"`
	Comment string          `json:"comment"`
}

type PayDueRequest struct {
	Method string `json:"method" binding:"required"`
}

// Totals is the derived money state of a booking.
type Totals struct {
	Total decimal.Decimal `json:"total"`
	Paid  decimal.Decimal `json:"paid"`
	Due   decimal.Decimal `json:"due"`
}
