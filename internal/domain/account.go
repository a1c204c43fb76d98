package domain

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleStaff  Role = "staff"
	RoleClient Role = "client"
)

// Account is a login identity. Staff accounts reference an employee, client
// accounts reference a client. The booking engine never reads accounts; it
// receives the acting identity as explicit parameters.
type Account struct {
	ID           int64  `gorm:"column:id;primaryKey" json:"id"`
	Login        string `gorm:"column:login;uniqueIndex;not null" json:"login"`
	PasswordHash string `gorm:"column:password_hash;not null" json:"-"`
	Role         Role   `gorm:"column:role;not null;default:admin" json:"role"`
	ClientID     *int64 `gorm:"column:client_id" json:"client_id,omitempty"`
	EmployeeID   *int64 `gorm:"column:employee_id" json:"employee_id,omitempty"`
}

func (Account) TableName() string { return "account" }
