package models

import "time"

// Booking statuses. A booking leaves pending either through payment approval
// or a direct staff transition; cancelled is terminal.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

// Booking is a student's claim on one course for one calendar month.
// The composite unique index is the authoritative guard against a student
// double-booking the same course for the same month; application-level
// pre-checks only exist to produce a friendlier error.
type Booking struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StudentID uint      `gorm:"not null;uniqueIndex:idx_bookings_student_course_month" json:"student_id"`
	CourseID  uint      `gorm:"not null;uniqueIndex:idx_bookings_student_course_month" json:"course_id"`
	MonthYear string    `gorm:"size:7;not null;uniqueIndex:idx_bookings_student_course_month" json:"month_year"`
	Status    string    `gorm:"size:16;not null;default:pending" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Student Student `json:"-"`
	Course  Course  `json:"-"`
}
