package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingNew       BookingStatus = "new"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingDone      BookingStatus = "done"
)

// Booking is the aggregation root for its service lines, payments and visit
// record. TotalSum is derived state: it is only ever written by the total
// reconciliation in the booking service, never directly.
type Booking struct {
	ID             int64           `gorm:"column:id;primaryKey" json:"id"`
	ClientID       int64           `gorm:"column:client_id;not null;index" json:"client_id"`
	ZoneID         int64           `gorm:"column:zone_id;not null;index" json:"zone_id"`
	ScheduleSlotID *int64          `gorm:"column:schedule_slot_id;index" json:"schedule_slot_id,omitempty"`
	SubscriptionID *int64          `gorm:"column:subscription_id" json:"subscription_id,omitempty"`
	DatetimeFrom   time.Time       `gorm:"column:datetime_from;not null" json:"datetime_from"`
	DatetimeTo     time.Time       `gorm:"column:datetime_to;not null" json:"datetime_to"`
	Participants   int             `gorm:"column:participants_count;not null" json:"participants_count"`
	SessionSum     decimal.Decimal `gorm:"column:session_sum;type:decimal(10,2)" json:"session_sum"`
	TotalSum       decimal.Decimal `gorm:"column:total_sum;type:decimal(10,2)" json:"total_sum"`
	Status         BookingStatus   `gorm:"column:status;not null;index" json:"status"`
	CreatedAt      time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	Zone     *Zone            `gorm:"foreignKey:ZoneID" json:"zone,omitempty"`
	Client   *Client          `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Services []BookingService `gorm:"foreignKey:BookingID" json:"services,omitempty"`
	Payments []Payment        `gorm:"foreignKey:BookingID" json:"payments,omitempty"`
	Visit    *Visit           `gorm:"foreignKey:BookingID" json:"visit,omitempty"`
}

func (Booking) TableName() string { return "booking" }

// BookingService is one service line on a booking, keyed by (booking, service).
// Re-adding the same service accumulates qty instead of inserting a second row.
type BookingService struct {
	BookingID int64           `gorm:"column:booking_id;primaryKey" json:"booking_id"`
	ServiceID int64           `gorm:"column:service_id;primaryKey" json:"service_id"`
	Qty       int             `gorm:"column:qty;not null" json:"qty"`
	UnitPrice decimal.Decimal `gorm:"column:unit_price;type:decimal(10,2);not null" json:"unit_price"`
	LineSum   decimal.Decimal `gorm:"column:line_sum;type:decimal(10,2);not null" json:"line_sum"`

	Service *Service `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
}

func (BookingService) TableName() string { return "booking_service" }
