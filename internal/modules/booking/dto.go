package booking

import (
	"time"

	"github.com/shopspring/decimal"

	"jumparena/internal/domain"
)

// CreateZoneBookingRequest is the staff path: an explicit zone and time range.
type CreateZoneBookingRequest struct {
	ClientID     int64     `json:"client_id" binding:"required"`
	ZoneID       int64     `json:"zone_id" binding:"required"`
	DatetimeFrom time.Time `json:"datetime_from" binding:"required"`
	DatetimeTo   time.Time `json:"datetime_to" binding:"required"`
	Participants int       `json:"participants_count" binding:"required"`
}

// ServiceLineRequest is one requested add-on on a slot booking.
type ServiceLineRequest struct {
	ServiceID int64 `json:"service_id" binding:"required"`
	Qty       int   `json:"qty" binding:"required"`
}

// CreateSlotBookingRequest is the client path: a seat count on a schedule
// slot, optionally paid from a subscription, with optional service add-ons.
type CreateSlotBookingRequest struct {
	ClientID       int64                `json:"-"`
	SlotID         int64                `json:"slot_id" binding:"required"`
	Participants   int                  `json:"participants_count" binding:"required"`
	SubscriptionID *int64               `json:"subscription_id"`
	Services       []ServiceLineRequest `json:"services"`
}

type AddServiceRequest struct {
	ServiceID int64            `json:"service_id" binding:"required"`
	Qty       int              `json:"qty" binding:"required"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// Details is the booking aggregate assembled for display: the row, its lines,
// payments and visit, plus the derived money and attendance state.
type Details struct {
	Booking     *domain.Booking    `json:"booking"`
	Paid        decimal.Decimal    `json:"paid"`
	Due         decimal.Decimal    `json:"due"`
	VisitStatus domain.VisitStatus `json:"visit_status"`
}
