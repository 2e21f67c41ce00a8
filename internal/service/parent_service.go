package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/eduly-api/internal/dto"
	"github.com/noah-isme/eduly-api/internal/models"
	"github.com/noah-isme/eduly-api/internal/repository"
)

// Parent linkage failures.
var (
	ErrStudentNotFound = errors.New("student not found")
	ErrAlreadyLinked   = errors.New("student already linked")
	ErrLinkNotFound    = errors.New("link not found")
	ErrNotLinked       = errors.New("student is not linked to this parent")
)

// ParentService manages parent-student links and the read-only child views.
// Every child read verifies the link first; an unlinked student id fails
// with ErrNotLinked regardless of whether the student exists.
type ParentService interface {
	Link(ctx context.Context, parentID uint, payload dto.ParentLinkRequest) (dto.ChildResponse, error)
	Unlink(ctx context.Context, parentID, studentID uint) error
	Children(ctx context.Context, parentID uint) ([]dto.ChildResponse, error)
	ChildPayments(ctx context.Context, parentID, studentID uint) ([]dto.PaymentResponse, error)
	ChildCourses(ctx context.Context, parentID, studentID uint) ([]dto.BookingResponse, error)
	ChildAttendance(ctx context.Context, parentID, studentID uint) ([]dto.AttendanceResponse, error)
}

type parentService struct {
	links      repository.ParentLinkRepository
	students   repository.StudentRepository
	payments   repository.PaymentRepository
	bookings   repository.BookingRepository
	attendance repository.AttendanceRepository
	validator  *validator.Validate
	logger     zerolog.Logger
}

// NewParentService constructs a ParentService instance.
func NewParentService(linkRepo repository.ParentLinkRepository, studentRepo repository.StudentRepository, paymentRepo repository.PaymentRepository, bookingRepo repository.BookingRepository, attendanceRepo repository.AttendanceRepository, validate *validator.Validate, logger zerolog.Logger) ParentService {
	return &parentService{
		links:      linkRepo,
		students:   studentRepo,
		payments:   paymentRepo,
		bookings:   bookingRepo,
		attendance: attendanceRepo,
		validator:  validate,
		logger:     logger.With().Str("component", "parent_service").Logger(),
	}
}

func (s *parentService) Link(ctx context.Context, parentID uint, payload dto.ParentLinkRequest) (dto.ChildResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ChildResponse{}, err
	}

	student, err := s.students.GetByEmail(ctx, payload.StudentEmail)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ChildResponse{}, ErrStudentNotFound
		}
		return dto.ChildResponse{}, err
	}

	link := models.ParentLink{ParentID: parentID, StudentID: student.ID}
	if err := s.links.Create(ctx, &link); err != nil {
		if errors.Is(err, repository.ErrDuplicateLink) {
			return dto.ChildResponse{}, ErrAlreadyLinked
		}
		return dto.ChildResponse{}, err
	}

	s.logger.Info().Uint("parent_id", parentID).Uint("student_id", student.ID).Msg("parent linked to student")
	return dto.NewChildResponse(student), nil
}

func (s *parentService) Unlink(ctx context.Context, parentID, studentID uint) error {
	affected, err := s.links.Delete(ctx, parentID, studentID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrLinkNotFound
	}

	s.logger.Info().Uint("parent_id", parentID).Uint("student_id", studentID).Msg("parent unlinked from student")
	return nil
}

func (s *parentService) Children(ctx context.Context, parentID uint) ([]dto.ChildResponse, error) {
	children, err := s.links.ListChildren(ctx, parentID)
	if err != nil {
		return nil, err
	}
	return dto.NewChildResponseSlice(children), nil
}

func (s *parentService) ChildPayments(ctx context.Context, parentID, studentID uint) ([]dto.PaymentResponse, error) {
	if err := s.requireLink(ctx, parentID, studentID); err != nil {
		return nil, err
	}

	payments, err := s.payments.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return dto.NewPaymentResponseSlice(payments), nil
}

func (s *parentService) ChildCourses(ctx context.Context, parentID, studentID uint) ([]dto.BookingResponse, error) {
	if err := s.requireLink(ctx, parentID, studentID); err != nil {
		return nil, err
	}

	bookings, err := s.bookings.ListConfirmedByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return dto.NewBookingResponseSlice(bookings), nil
}

func (s *parentService) ChildAttendance(ctx context.Context, parentID, studentID uint) ([]dto.AttendanceResponse, error) {
	if err := s.requireLink(ctx, parentID, studentID); err != nil {
		return nil, err
	}

	records, err := s.attendance.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return dto.NewAttendanceResponseSlice(records), nil
}

func (s *parentService) requireLink(ctx context.Context, parentID, studentID uint) error {
	linked, err := s.links.Exists(ctx, parentID, studentID)
	if err != nil {
		return err
	}
	if !linked {
		return ErrNotLinked
	}
	return nil
}
