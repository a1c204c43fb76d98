package domain

import "time"

type Notification struct {
	ID        int64     `gorm:"column:id;primaryKey" json:"id"`
	ClientID  int64     `gorm:"column:client_id;not null;index" json:"client_id"`
	Message   string    `gorm:"column:message;type:text;not null" json:"message"`
	IsRead    bool      `gorm:"column:is_read;not null;default:false" json:"is_read"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Notification) TableName() string { return "notification" }

// AllModels lists every persistent entity for AutoMigrate, parents first so
// foreign keys resolve.
func AllModels() []any {
	return []any{
		&Client{},
		&Employee{},
		&Account{},
		&Zone{},
		&Service{},
		&ScheduleSlot{},
		&Subscription{},
		&Booking{},
		&BookingService{},
		&Payment{},
		&Visit{},
		&Notification{},
	}
}
