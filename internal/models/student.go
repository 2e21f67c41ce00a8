package models

import "time"

// Student represents a learner that can book courses and settle payments.
type Student struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	Name           string     `gorm:"size:255;not null" json:"name"`
	Email          string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password       string     `gorm:"size:255;not null" json:"-"`
	Phone          string     `gorm:"size:32" json:"phone"`
	ParentPhone    string     `gorm:"size:32" json:"parent_phone"`
	BirthDate      *time.Time `json:"birth_date,omitempty"`
	EducationLevel string     `gorm:"size:64" json:"education_level"`
	Avatar         string     `gorm:"size:512" json:"avatar"`
	IsActive       bool       `gorm:"not null;default:true" json:"is_active"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
