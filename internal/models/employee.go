package models

import "time"

// Employee roles recognised by the authorization layer.
const (
	EmployeeRoleAdmin      = "admin"
	EmployeeRoleTeacher    = "teacher"
	EmployeeRoleAccountant = "accountant"
)

// Employee represents a staff member. Teacher and accountant registrations
// start inactive and require admin activation before they can log in.
type Employee struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Email     string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	Phone     string    `gorm:"size:32" json:"phone"`
	Role      string    `gorm:"size:32;not null;default:teacher" json:"role"`
	Salary    float64   `json:"salary"`
	IsActive  bool      `gorm:"not null;default:false" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsValidEmployeeRole reports whether role is one of the known employee roles.
func IsValidEmployeeRole(role string) bool {
	switch role {
	case EmployeeRoleAdmin, EmployeeRoleTeacher, EmployeeRoleAccountant:
		return true
	}
	return false
}
