package domain

import "time"

// Visit is the one-to-one attendance record for a booking. CheckinAt and
// CheckoutAt are one-shot: once set they are never overwritten.
type Visit struct {
	ID                 int64      `gorm:"column:id;primaryKey" json:"id"`
	BookingID          int64      `gorm:"column:booking_id;uniqueIndex;not null" json:"booking_id"`
	CheckinAt          *time.Time `gorm:"column:checkin_at" json:"checkin_at,omitempty"`
	CheckoutAt         *time.Time `gorm:"column:checkout_at" json:"checkout_at,omitempty"`
	OpenedByID         *int64     `gorm:"column:opened_by_id" json:"opened_by_id,omitempty"`
	ClosedByID         *int64     `gorm:"column:closed_by_id" json:"closed_by_id,omitempty"`
	ActualParticipants *int       `gorm:"column:actual_participants_count" json:"actual_participants_count,omitempty"`
}

func (Visit) TableName() string { return "visit" }

// VisitStatus is the derived (not persisted) display state of a booking's
// attendance.
type VisitStatus string

const (
	VisitScheduled VisitStatus = "scheduled"
	VisitCompleted VisitStatus = "completed"
	VisitNoShow    VisitStatus = "no_show"
	VisitCancelled VisitStatus = "cancelled"
)
