package models

import "time"

// Attendance statuses.
const (
	AttendanceStatusPresent = "present"
	AttendanceStatusAbsent  = "absent"
	AttendanceStatusLate    = "late"
)

// Attendance records a student's presence for a course session. Read by
// linked parents; written by staff tooling outside the booking flow.
type Attendance struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StudentID uint      `gorm:"not null;index" json:"student_id"`
	CourseID  uint      `gorm:"not null;index" json:"course_id"`
	Date      time.Time `gorm:"not null" json:"date"`
	Status    string    `gorm:"size:16;not null" json:"status"`
	CreatedAt time.Time `json:"created_at"`

	Student Student `json:"-"`
	Course  Course  `json:"-"`
}
