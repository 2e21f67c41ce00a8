package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/eduly-api/internal/models"
)

// AttendanceRepository supplies the attendance read path used by parents.
type AttendanceRepository interface {
	ListByStudent(ctx context.Context, studentID uint) ([]models.Attendance, error)
}

type attendanceRepository struct {
	db *gorm.DB
}

// NewAttendanceRepository instantiates the repository.
func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) ListByStudent(ctx context.Context, studentID uint) ([]models.Attendance, error) {
	var records []models.Attendance
	err := r.db.WithContext(ctx).
		Preload("Course").
		Where("student_id = ?", studentID).
		Order("date DESC").
		Find(&records).Error
	return records, err
}
