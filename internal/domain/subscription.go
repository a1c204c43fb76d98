package domain

import "time"

type SubscriptionStatus string

const (
	SubscriptionActive  SubscriptionStatus = "active"
	SubscriptionExpired SubscriptionStatus = "expired"
	SubscriptionPaused  SubscriptionStatus = "paused"
)

// Subscription is a prepaid bundle of visit credits. It pays for a booking
// only while RemainingVisits > 0 and EndDate has not passed.
type Subscription struct {
	ID              int64              `gorm:"column:id;primaryKey" json:"id"`
	ClientID        int64              `gorm:"column:client_id;not null;index" json:"client_id"`
	ServiceID       *int64             `gorm:"column:service_id" json:"service_id,omitempty"`
	StartDate       time.Time          `gorm:"column:start_date;not null" json:"start_date"`
	EndDate         time.Time          `gorm:"column:end_date;not null" json:"end_date"`
	TotalVisits     int                `gorm:"column:total_visits;not null" json:"total_visits"`
	RemainingVisits int                `gorm:"column:remaining_visits;not null" json:"remaining_visits"`
	Status          SubscriptionStatus `gorm:"column:status;not null;default:active" json:"status"`

	Service *Service `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
}

func (Subscription) TableName() string { return "subscription" }
