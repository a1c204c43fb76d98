package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ZoneStatus string

const (
	ZoneAvailable   ZoneStatus = "available"
	ZoneMaintenance ZoneStatus = "maintenance"
)

type ZoneType string

const (
	ZoneTrampoline ZoneType = "trampoline"
	ZoneFoamPit    ZoneType = "foam_pit"
)

// Zone is a physical bookable area with a capacity and an hourly base price.
type Zone struct {
	ID          int64           `gorm:"column:id;primaryKey" json:"id"`
	Name        string          `gorm:"column:zone_name;uniqueIndex;not null" json:"zone_name"`
	Type        ZoneType        `gorm:"column:zone_type;not null" json:"zone_type"`
	Capacity    int             `gorm:"column:capacity;not null" json:"capacity"`
	BasePrice   decimal.Decimal `gorm:"column:base_price;type:decimal(10,2);not null" json:"base_price"`
	Status      ZoneStatus      `gorm:"column:status;not null" json:"status"`
	Description string          `gorm:"column:description;type:text" json:"description,omitempty"`
}

func (Zone) TableName() string { return "zone" }

// ScheduleSlot is a pre-scheduled window on a zone with its own capacity and
// price. Several bookings may share a slot until its capacity is exhausted.
type ScheduleSlot struct {
	ID           int64           `gorm:"column:id;primaryKey" json:"id"`
	ZoneID       int64           `gorm:"column:zone_id;not null;index" json:"zone_id"`
	EmployeeID   *int64          `gorm:"column:employee_id" json:"employee_id,omitempty"`
	DatetimeFrom time.Time       `gorm:"column:datetime_from;not null" json:"datetime_from"`
	DatetimeTo   time.Time       `gorm:"column:datetime_to;not null" json:"datetime_to"`
	Capacity     int             `gorm:"column:capacity;not null" json:"capacity"`
	Price        decimal.Decimal `gorm:"column:price;type:decimal(10,2);not null" json:"price"`
	LessonType   string          `gorm:"column:lesson_type;not null" json:"lesson_type"`
	IsActive     bool            `gorm:"column:is_active;not null;default:true" json:"is_active"`

	Zone     *Zone     `gorm:"foreignKey:ZoneID" json:"zone,omitempty"`
	Employee *Employee `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
}

func (ScheduleSlot) TableName() string { return "schedule_slot" }
