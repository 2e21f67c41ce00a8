package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/eduly-api/internal/models"
)

// DashboardRepository supplies the aggregate counts behind the staff
// dashboard. Read-only; correctness is inherited from the booking and
// payment write paths.
type DashboardRepository interface {
	CountStudents(ctx context.Context) (int64, error)
	CountEmployees(ctx context.Context) (int64, error)
	CountCourses(ctx context.Context) (int64, error)
	CountBookingsByStatus(ctx context.Context) (map[string]int64, error)
	SumPaidAmount(ctx context.Context) (float64, error)
	SumPaidAmountByMethod(ctx context.Context) (map[string]float64, error)
	RecentBookings(ctx context.Context, limit int) ([]models.Booking, error)
}

type dashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository instantiates the repository.
func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepository{db: db}
}

func (r *dashboardRepository) CountStudents(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Student{}).Count(&count).Error
	return count, err
}

func (r *dashboardRepository) CountEmployees(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Employee{}).Count(&count).Error
	return count, err
}

func (r *dashboardRepository) CountCourses(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Course{}).Count(&count).Error
	return count, err
}

func (r *dashboardRepository) CountBookingsByStatus(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		Status string
		Total  int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Select("status, COUNT(*) as total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}

func (r *dashboardRepository) SumPaidAmount(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Where("status = ?", models.PaymentStatusPaid).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}

func (r *dashboardRepository) SumPaidAmountByMethod(ctx context.Context) (map[string]float64, error) {
	var rows []struct {
		Method string
		Total  float64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Where("status = ?", models.PaymentStatusPaid).
		Select("method, COALESCE(SUM(amount), 0) as total").
		Group("method").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	totals := make(map[string]float64, len(rows))
	for _, row := range rows {
		totals[row.Method] = row.Total
	}
	return totals, nil
}

func (r *dashboardRepository) RecentBookings(ctx context.Context, limit int) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Course").
		Order("created_at DESC").
		Limit(limit).
		Find(&bookings).Error
	return bookings, err
}
