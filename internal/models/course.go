package models

import "time"

// Course represents a bookable monthly offering.
type Course struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Title         string    `gorm:"size:255;not null" json:"title"`
	Description   string    `gorm:"type:text" json:"description"`
	PricePerMonth float64   `gorm:"not null" json:"price_per_month"`
	DaysPerWeek   string    `gorm:"size:128" json:"days_per_week"`
	StartAt       time.Time `json:"start_at"`
	EndAt         time.Time `json:"end_at"`
	MaxStudents   int       `gorm:"not null;default:1" json:"max_students"`
	TeacherID     *uint     `json:"teacher_id,omitempty"`
	CoverImage    string    `gorm:"size:512" json:"cover_image"`
	IsActive      bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// IsBookable reports whether new bookings may reference the course.
// Existing bookings stay valid when a course is deactivated.
func (c Course) IsBookable() bool {
	return c.IsActive
}
