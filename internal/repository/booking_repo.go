package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/noah-isme/eduly-api/internal/models"
)

// ErrDuplicateBooking reports a violation of the one-booking-per-student-per-
// course-per-month unique index. The index is the authoritative race guard;
// callers may pre-check for a friendlier message but must handle this error.
var ErrDuplicateBooking = errors.New("duplicate booking")

// BookingFilter narrows staff booking queries.
type BookingFilter struct {
	Status *string
}

// BookingRepository defines data operations for bookings.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id uint) (models.Booking, error)
	ListByStudent(ctx context.Context, studentID uint) ([]models.Booking, error)
	ListConfirmedByStudent(ctx context.Context, studentID uint) ([]models.Booking, error)
	ListAll(ctx context.Context, filter BookingFilter) ([]models.Booking, error)
	Exists(ctx context.Context, studentID, courseID uint, monthYear string) (bool, error)
	CountConfirmed(ctx context.Context, courseID uint, monthYear string) (int64, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
}

type bookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository instantiates the repository.
func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	if err := r.db.WithContext(ctx).Create(booking).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateBooking
		}
		return err
	}
	return nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id uint) (models.Booking, error) {
	var booking models.Booking
	if err := r.db.WithContext(ctx).Preload("Course").First(&booking, id).Error; err != nil {
		return models.Booking{}, err
	}
	return booking, nil
}

func (r *bookingRepository) ListByStudent(ctx context.Context, studentID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Preload("Course").
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&bookings).Error
	return bookings, err
}

func (r *bookingRepository) ListConfirmedByStudent(ctx context.Context, studentID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Preload("Course").
		Where("student_id = ?", studentID).
		Where("status = ?", models.BookingStatusConfirmed).
		Order("created_at DESC").
		Find(&bookings).Error
	return bookings, err
}

func (r *bookingRepository) ListAll(ctx context.Context, filter BookingFilter) ([]models.Booking, error) {
	query := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Course")

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var bookings []models.Booking
	err := query.Order("created_at DESC").Find(&bookings).Error
	return bookings, err
}

func (r *bookingRepository) Exists(ctx context.Context, studentID, courseID uint, monthYear string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("student_id = ? AND course_id = ? AND month_year = ?", studentID, courseID, monthYear).
		Count(&count).Error
	return count > 0, err
}

func (r *bookingRepository) CountConfirmed(ctx context.Context, courseID uint, monthYear string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("course_id = ? AND month_year = ?", courseID, monthYear).
		Where("status = ?", models.BookingStatusConfirmed).
		Count(&count).Error
	return count, err
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	return r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", id).
		Update("status", status).Error
}
