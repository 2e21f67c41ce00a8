package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/noah-isme/eduly-api/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Student{},
		&models.Employee{},
		&models.Parent{},
		&models.ParentLink{},
		&models.Course{},
		&models.Booking{},
		&models.Payment{},
		&models.Attendance{},
	))
	return db
}

func seedStudent(t *testing.T, db *gorm.DB, email string) models.Student {
	t.Helper()
	student := models.Student{Name: "Student " + email, Email: email, Password: "x", IsActive: true}
	require.NoError(t, db.Create(&student).Error)
	return student
}

func seedCourse(t *testing.T, db *gorm.DB, title string, price float64) models.Course {
	t.Helper()
	course := models.Course{Title: title, PricePerMonth: price, MaxStudents: 10, IsActive: true}
	require.NoError(t, db.Create(&course).Error)
	return course
}

func TestBookingRepositoryDuplicateTriple(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBookingRepository(db)
	ctx := context.Background()

	student := seedStudent(t, db, "dup@example.com")
	course := seedCourse(t, db, "Algebra", 250)

	first := models.Booking{StudentID: student.ID, CourseID: course.ID, MonthYear: "2026-03", Status: models.BookingStatusPending}
	require.NoError(t, repo.Create(ctx, &first))

	second := models.Booking{StudentID: student.ID, CourseID: course.ID, MonthYear: "2026-03", Status: models.BookingStatusPending}
	err := repo.Create(ctx, &second)
	require.ErrorIs(t, err, ErrDuplicateBooking)

	var count int64
	require.NoError(t, db.Model(&models.Booking{}).Count(&count).Error)
	require.Equal(t, int64(1), count)

	// Same course, different month is a separate claim.
	third := models.Booking{StudentID: student.ID, CourseID: course.ID, MonthYear: "2026-04", Status: models.BookingStatusPending}
	require.NoError(t, repo.Create(ctx, &third))
}

func TestBookingRepositoryListByStudentNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBookingRepository(db)
	ctx := context.Background()

	student := seedStudent(t, db, "list@example.com")
	course := seedCourse(t, db, "Physics", 300)

	older := models.Booking{StudentID: student.ID, CourseID: course.ID, MonthYear: "2026-01", Status: models.BookingStatusPending, CreatedAt: time.Now().Add(-2 * time.Hour)}
	newer := models.Booking{StudentID: student.ID, CourseID: course.ID, MonthYear: "2026-02", Status: models.BookingStatusConfirmed, CreatedAt: time.Now().Add(-time.Hour)}
	require.NoError(t, db.Create(&older).Error)
	require.NoError(t, db.Create(&newer).Error)

	bookings, err := repo.ListByStudent(ctx, student.ID)
	require.NoError(t, err)
	require.Len(t, bookings, 2)
	require.Equal(t, "2026-02", bookings[0].MonthYear)
	require.Equal(t, "Physics", bookings[0].Course.Title)
}

func TestBookingRepositoryListAllStatusFilter(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBookingRepository(db)
	ctx := context.Background()

	student := seedStudent(t, db, "filter@example.com")
	course := seedCourse(t, db, "Chemistry", 200)

	pending := models.Booking{StudentID: student.ID, CourseID: course.ID, MonthYear: "2026-05", Status: models.BookingStatusPending}
	confirmed := models.Booking{StudentID: student.ID, CourseID: course.ID, MonthYear: "2026-06", Status: models.BookingStatusConfirmed}
	require.NoError(t, db.Create(&pending).Error)
	require.NoError(t, db.Create(&confirmed).Error)

	all, err := repo.ListAll(ctx, BookingFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, student.Name, all[0].Student.Name)

	status := models.BookingStatusConfirmed
	filtered, err := repo.ListAll(ctx, BookingFilter{Status: &status})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	require.Equal(t, "2026-06", filtered[0].MonthYear)
}

func TestBookingRepositoryCountConfirmed(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBookingRepository(db)
	ctx := context.Background()

	course := seedCourse(t, db, "Biology", 150)
	for i, status := range []string{models.BookingStatusConfirmed, models.BookingStatusConfirmed, models.BookingStatusPending, models.BookingStatusCancelled} {
		student := seedStudent(t, db, fmt.Sprintf("count%d@example.com", i))
		booking := models.Booking{StudentID: student.ID, CourseID: course.ID, MonthYear: "2026-03", Status: status}
		require.NoError(t, db.Create(&booking).Error)
	}

	count, err := repo.CountConfirmed(ctx, course.ID, "2026-03")
	require.NoError(t, err)
	require.Equal(t, int64(2), count)

	count, err = repo.CountConfirmed(ctx, course.ID, "2026-04")
	require.NoError(t, err)
	require.Zero(t, count)
}
