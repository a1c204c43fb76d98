package domain

import "time"

type ClientStatus string

const (
	ClientActive  ClientStatus = "active"
	ClientBlocked ClientStatus = "blocked"
)

type Client struct {
	ID       int64        `gorm:"column:id;primaryKey" json:"id"`
	FullName string       `gorm:"column:full_name;not null" json:"full_name"`
	DOB      *time.Time   `gorm:"column:dob" json:"dob,omitempty"`
	Phone    string       `gorm:"column:phone" json:"phone,omitempty"`
	Email    string       `gorm:"column:email" json:"email,omitempty"`
	Status   ClientStatus `gorm:"column:status;not null;default:active" json:"status"`
	Note     string       `gorm:"column:note;type:text" json:"note,omitempty"`
}

func (Client) TableName() string { return "client" }

type Employee struct {
	ID       int64  `gorm:"column:id;primaryKey" json:"id"`
	FullName string `gorm:"column:full_name;not null" json:"full_name"`
	Position string `gorm:"column:position;not null" json:"position"`
	Phone    string `gorm:"column:phone" json:"phone,omitempty"`
	Email    string `gorm:"column:email" json:"email,omitempty"`
	Note     string `gorm:"column:note;type:text" json:"note,omitempty"`
}

func (Employee) TableName() string { return "employee" }
