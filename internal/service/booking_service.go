package service

import (
	"context"
	"errors"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/eduly-api/internal/dto"
	"github.com/noah-isme/eduly-api/internal/models"
	"github.com/noah-isme/eduly-api/internal/repository"
)

// Booking workflow failures.
var (
	ErrInvalidMonthYear = errors.New("month year must match YYYY-MM")
	ErrCourseNotFound   = errors.New("course not found")
	ErrCourseInactive   = errors.New("course is not open for booking")
	ErrCourseFull       = errors.New("course is fully booked for this month")
	ErrDuplicateBooking = errors.New("student already booked this course for this month")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrBookingCancelled = errors.New("booking is cancelled")
)

var monthYearPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// BookingService orchestrates the booking state machine.
type BookingService interface {
	Create(ctx context.Context, studentID uint, payload dto.BookingCreateRequest) (dto.BookingResponse, error)
	ListMine(ctx context.Context, studentID uint) ([]dto.BookingResponse, error)
	ListAll(ctx context.Context, filter dto.BookingFilter) ([]dto.BookingResponse, error)
	Confirm(ctx context.Context, bookingID uint) error
	Cancel(ctx context.Context, bookingID uint) error
}

type bookingService struct {
	bookings  repository.BookingRepository
	courses   repository.CourseRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewBookingService constructs a BookingService instance.
func NewBookingService(bookingRepo repository.BookingRepository, courseRepo repository.CourseRepository, validate *validator.Validate, logger zerolog.Logger) BookingService {
	return &bookingService{
		bookings:  bookingRepo,
		courses:   courseRepo,
		validator: validate,
		logger:    logger.With().Str("component", "booking_service").Logger(),
	}
}

func (s *bookingService) Create(ctx context.Context, studentID uint, payload dto.BookingCreateRequest) (dto.BookingResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.BookingResponse{}, err
	}

	if !monthYearPattern.MatchString(payload.MonthYear) {
		return dto.BookingResponse{}, ErrInvalidMonthYear
	}

	course, err := s.courses.GetByID(ctx, payload.CourseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.BookingResponse{}, ErrCourseNotFound
		}
		return dto.BookingResponse{}, err
	}

	if !course.IsBookable() {
		return dto.BookingResponse{}, ErrCourseInactive
	}

	confirmed, err := s.bookings.CountConfirmed(ctx, course.ID, payload.MonthYear)
	if err != nil {
		return dto.BookingResponse{}, err
	}
	if confirmed >= int64(course.MaxStudents) {
		return dto.BookingResponse{}, ErrCourseFull
	}

	// Advisory pre-check for a friendly error; the unique index on
	// (student_id, course_id, month_year) remains the race-safe guard.
	exists, err := s.bookings.Exists(ctx, studentID, course.ID, payload.MonthYear)
	if err != nil {
		return dto.BookingResponse{}, err
	}
	if exists {
		return dto.BookingResponse{}, ErrDuplicateBooking
	}

	booking := models.Booking{
		StudentID: studentID,
		CourseID:  course.ID,
		MonthYear: payload.MonthYear,
		Status:    models.BookingStatusPending,
	}

	if err := s.bookings.Create(ctx, &booking); err != nil {
		if errors.Is(err, repository.ErrDuplicateBooking) {
			return dto.BookingResponse{}, ErrDuplicateBooking
		}
		return dto.BookingResponse{}, err
	}

	s.logger.Info().
		Uint("booking_id", booking.ID).
		Uint("student_id", studentID).
		Uint("course_id", course.ID).
		Str("month_year", payload.MonthYear).
		Msg("booking created")

	booking.Course = course
	return dto.NewBookingResponse(booking), nil
}

func (s *bookingService) ListMine(ctx context.Context, studentID uint) ([]dto.BookingResponse, error) {
	bookings, err := s.bookings.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return dto.NewBookingResponseSlice(bookings), nil
}

func (s *bookingService) ListAll(ctx context.Context, filter dto.BookingFilter) ([]dto.BookingResponse, error) {
	if err := s.validator.Struct(filter); err != nil {
		return nil, err
	}

	bookings, err := s.bookings.ListAll(ctx, repository.BookingFilter{Status: filter.Status})
	if err != nil {
		return nil, err
	}
	return dto.NewBookingResponseSlice(bookings), nil
}

// Confirm is the staff path for payments settled outside the wallet flow
// (cash at the desk). Confirming an already-confirmed booking is a no-op
// success; a cancelled booking stays cancelled.
func (s *bookingService) Confirm(ctx context.Context, bookingID uint) error {
	booking, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return err
	}

	switch booking.Status {
	case models.BookingStatusConfirmed:
		return nil
	case models.BookingStatusCancelled:
		return ErrBookingCancelled
	}

	if err := s.bookings.UpdateStatus(ctx, bookingID, models.BookingStatusConfirmed); err != nil {
		return err
	}

	s.logger.Info().Uint("booking_id", bookingID).Msg("booking confirmed by staff")
	return nil
}

// Cancel rejects a booking from pending or confirmed. Cancelling an
// already-cancelled booking is a no-op success.
func (s *bookingService) Cancel(ctx context.Context, bookingID uint) error {
	booking, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return err
	}

	if booking.Status == models.BookingStatusCancelled {
		return nil
	}

	if err := s.bookings.UpdateStatus(ctx, bookingID, models.BookingStatusCancelled); err != nil {
		return err
	}

	s.logger.Info().Uint("booking_id", bookingID).Msg("booking cancelled by staff")
	return nil
}

func (s *bookingService) loadBooking(ctx context.Context, bookingID uint) (models.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Booking{}, ErrBookingNotFound
		}
		return models.Booking{}, err
	}
	return booking, nil
}
