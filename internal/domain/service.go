package domain

import "github.com/shopspring/decimal"

// Service is a priced catalog add-on (socks, locker rental, instructor time)
// attachable to bookings as line items.
type Service struct {
	ID          int64           `gorm:"column:id;primaryKey" json:"id"`
	Name        string          `gorm:"column:name;not null" json:"name"`
	BasePrice   decimal.Decimal `gorm:"column:base_price;type:decimal(10,2);not null" json:"base_price"`
	Description string          `gorm:"column:description;type:text" json:"description,omitempty"`
}

func (Service) TableName() string { return "service" }
