package service

import (
	"context"
	"io"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/noah-isme/eduly-api/internal/dto"
	"github.com/noah-isme/eduly-api/internal/models"
	"github.com/noah-isme/eduly-api/internal/repository"
)

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func testValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

type fakeCourseRepo struct {
	courses map[uint]models.Course
}

func (f *fakeCourseRepo) GetByID(_ context.Context, id uint) (models.Course, error) {
	course, ok := f.courses[id]
	if !ok {
		return models.Course{}, gorm.ErrRecordNotFound
	}
	return course, nil
}

func (f *fakeCourseRepo) List(context.Context, repository.CourseFilter) ([]models.Course, error) {
	return nil, nil
}

func (f *fakeCourseRepo) Create(_ context.Context, course *models.Course) error {
	course.ID = uint(len(f.courses) + 1)
	f.courses[course.ID] = *course
	return nil
}

func (f *fakeCourseRepo) Update(_ context.Context, course *models.Course) error {
	f.courses[course.ID] = *course
	return nil
}

func (f *fakeCourseRepo) Delete(_ context.Context, id uint) error {
	delete(f.courses, id)
	return nil
}

type fakeBookingRepo struct {
	bookings       map[uint]models.Booking
	nextID         uint
	confirmedCount int64
	createErr      error
	statusUpdates  []string
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *models.Booking) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	booking.ID = f.nextID
	f.bookings[booking.ID] = *booking
	return nil
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id uint) (models.Booking, error) {
	booking, ok := f.bookings[id]
	if !ok {
		return models.Booking{}, gorm.ErrRecordNotFound
	}
	return booking, nil
}

func (f *fakeBookingRepo) ListByStudent(_ context.Context, studentID uint) ([]models.Booking, error) {
	var result []models.Booking
	for _, booking := range f.bookings {
		if booking.StudentID == studentID {
			result = append(result, booking)
		}
	}
	return result, nil
}

func (f *fakeBookingRepo) ListConfirmedByStudent(_ context.Context, studentID uint) ([]models.Booking, error) {
	var result []models.Booking
	for _, booking := range f.bookings {
		if booking.StudentID == studentID && booking.Status == models.BookingStatusConfirmed {
			result = append(result, booking)
		}
	}
	return result, nil
}

func (f *fakeBookingRepo) ListAll(context.Context, repository.BookingFilter) ([]models.Booking, error) {
	var result []models.Booking
	for _, booking := range f.bookings {
		result = append(result, booking)
	}
	return result, nil
}

func (f *fakeBookingRepo) Exists(_ context.Context, studentID, courseID uint, monthYear string) (bool, error) {
	for _, booking := range f.bookings {
		if booking.StudentID == studentID && booking.CourseID == courseID && booking.MonthYear == monthYear {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeBookingRepo) CountConfirmed(context.Context, uint, string) (int64, error) {
	return f.confirmedCount, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id uint, status string) error {
	booking := f.bookings[id]
	booking.Status = status
	f.bookings[id] = booking
	f.statusUpdates = append(f.statusUpdates, status)
	return nil
}

func newBookingFixture() (*fakeBookingRepo, *fakeCourseRepo, BookingService) {
	bookingRepo := &fakeBookingRepo{bookings: map[uint]models.Booking{}}
	courseRepo := &fakeCourseRepo{courses: map[uint]models.Course{
		1: {ID: 1, Title: "Algebra", PricePerMonth: 250, MaxStudents: 2, IsActive: true},
		2: {ID: 2, Title: "Retired", PricePerMonth: 100, MaxStudents: 10, IsActive: false},
	}}
	svc := NewBookingService(bookingRepo, courseRepo, testValidator(), testLogger())
	return bookingRepo, courseRepo, svc
}

func TestBookingServiceCreate(t *testing.T) {
	repo, _, svc := newBookingFixture()

	booking, err := svc.Create(context.Background(), 10, dto.BookingCreateRequest{CourseID: 1, MonthYear: "2026-03"})
	require.NoError(t, err)
	require.Equal(t, models.BookingStatusPending, booking.Status)
	require.Equal(t, "2026-03", booking.MonthYear)
	require.Equal(t, "Algebra", booking.Course.Title)
	require.Len(t, repo.bookings, 1)
}

func TestBookingServiceCreateInvalidMonth(t *testing.T) {
	_, _, svc := newBookingFixture()

	for _, monthYear := range []string{"2026-13", "2026-00", "26-03", "2026/03", "march"} {
		_, err := svc.Create(context.Background(), 10, dto.BookingCreateRequest{CourseID: 1, MonthYear: monthYear})
		require.ErrorIs(t, err, ErrInvalidMonthYear, "monthYear %q", monthYear)
	}
}

func TestBookingServiceCreateCourseChecks(t *testing.T) {
	_, _, svc := newBookingFixture()

	_, err := svc.Create(context.Background(), 10, dto.BookingCreateRequest{CourseID: 99, MonthYear: "2026-03"})
	require.ErrorIs(t, err, ErrCourseNotFound)

	_, err = svc.Create(context.Background(), 10, dto.BookingCreateRequest{CourseID: 2, MonthYear: "2026-03"})
	require.ErrorIs(t, err, ErrCourseInactive)
}

func TestBookingServiceCreateCourseFull(t *testing.T) {
	repo, _, svc := newBookingFixture()
	repo.confirmedCount = 2 // course 1 allows two students

	_, err := svc.Create(context.Background(), 10, dto.BookingCreateRequest{CourseID: 1, MonthYear: "2026-03"})
	require.ErrorIs(t, err, ErrCourseFull)
	require.Empty(t, repo.bookings)
}

func TestBookingServiceCreateDuplicate(t *testing.T) {
	repo, _, svc := newBookingFixture()

	_, err := svc.Create(context.Background(), 10, dto.BookingCreateRequest{CourseID: 1, MonthYear: "2026-03"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), 10, dto.BookingCreateRequest{CourseID: 1, MonthYear: "2026-03"})
	require.ErrorIs(t, err, ErrDuplicateBooking)
	require.Len(t, repo.bookings, 1)
}

func TestBookingServiceCreateDuplicateRace(t *testing.T) {
	// The pre-check passes but the insert hits the unique index: the
	// constraint violation must still surface as a duplicate.
	repo, _, svc := newBookingFixture()
	repo.createErr = repository.ErrDuplicateBooking

	_, err := svc.Create(context.Background(), 10, dto.BookingCreateRequest{CourseID: 1, MonthYear: "2026-03"})
	require.ErrorIs(t, err, ErrDuplicateBooking)
}

func TestBookingServiceConfirmTransitions(t *testing.T) {
	repo, _, svc := newBookingFixture()
	repo.bookings[1] = models.Booking{ID: 1, Status: models.BookingStatusPending}
	repo.bookings[2] = models.Booking{ID: 2, Status: models.BookingStatusConfirmed}
	repo.bookings[3] = models.Booking{ID: 3, Status: models.BookingStatusCancelled}

	require.NoError(t, svc.Confirm(context.Background(), 1))
	require.Equal(t, models.BookingStatusConfirmed, repo.bookings[1].Status)

	// Confirming a confirmed booking is a no-op success.
	require.NoError(t, svc.Confirm(context.Background(), 2))
	require.Len(t, repo.statusUpdates, 1)

	require.ErrorIs(t, svc.Confirm(context.Background(), 3), ErrBookingCancelled)
	require.ErrorIs(t, svc.Confirm(context.Background(), 99), ErrBookingNotFound)
}

func TestBookingServiceCancelTransitions(t *testing.T) {
	repo, _, svc := newBookingFixture()
	repo.bookings[1] = models.Booking{ID: 1, Status: models.BookingStatusConfirmed}
	repo.bookings[2] = models.Booking{ID: 2, Status: models.BookingStatusCancelled}

	require.NoError(t, svc.Cancel(context.Background(), 1))
	require.Equal(t, models.BookingStatusCancelled, repo.bookings[1].Status)

	require.NoError(t, svc.Cancel(context.Background(), 2))
	require.Len(t, repo.statusUpdates, 1)
}
