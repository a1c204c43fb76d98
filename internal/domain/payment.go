package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentCard PaymentMethod = "card"
)

// Payment is a recorded amount against a booking. Payments only accumulate;
// paid and due are always derived, never stored.
type Payment struct {
	ID         int64           `gorm:"column:id;primaryKey" json:"id"`
	BookingID  int64           `gorm:"column:booking_id;not null;index" json:"booking_id"`
	PaidAt     time.Time       `gorm:"column:paid_at;autoCreateTime" json:"paid_at"`
	Amount     decimal.Decimal `gorm:"column:amount;type:decimal(10,2);not null" json:"amount"`
	Method     PaymentMethod   `gorm:"column:method;not null" json:"method"`
	Comment    string          `gorm:"column:comment;type:text" json:"comment,omitempty"`
	EmployeeID *int64          `gorm:"column:created_by_employee_id" json:"created_by_employee_id,omitempty"`
}

func (Payment) TableName() string { return "payment" }
