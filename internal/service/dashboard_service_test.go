package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/eduly-api/internal/models"
)

type fakeDashboardRepo struct {
	students  int64
	employees int64
	courses   int64
	byStatus  map[string]int64
	revenue   float64
	byMethod  map[string]float64
	recent    []models.Booking
	calls     int
}

func (f *fakeDashboardRepo) CountStudents(context.Context) (int64, error) {
	f.calls++
	return f.students, nil
}

func (f *fakeDashboardRepo) CountEmployees(context.Context) (int64, error)  { return f.employees, nil }
func (f *fakeDashboardRepo) CountCourses(context.Context) (int64, error)    { return f.courses, nil }
func (f *fakeDashboardRepo) SumPaidAmount(context.Context) (float64, error) { return f.revenue, nil }

func (f *fakeDashboardRepo) CountBookingsByStatus(context.Context) (map[string]int64, error) {
	return f.byStatus, nil
}

func (f *fakeDashboardRepo) SumPaidAmountByMethod(context.Context) (map[string]float64, error) {
	return f.byMethod, nil
}

func (f *fakeDashboardRepo) RecentBookings(context.Context, int) ([]models.Booking, error) {
	return f.recent, nil
}

func newDashboardFixture(t *testing.T) (*fakeDashboardRepo, *miniredis.Miniredis, DashboardService) {
	t.Helper()

	server := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: server.Addr()})

	repo := &fakeDashboardRepo{
		students:  120,
		employees: 8,
		courses:   15,
		byStatus: map[string]int64{
			models.BookingStatusPending:   5,
			models.BookingStatusConfirmed: 40,
			models.BookingStatusCancelled: 3,
		},
		revenue:  10250,
		byMethod: map[string]float64{models.PaymentMethodVodafoneCash: 8000, models.PaymentMethodCash: 2250},
	}
	svc := NewDashboardService(repo, cache, 2*time.Minute, 10, testLogger())
	return repo, server, svc
}

func TestDashboardServiceStats(t *testing.T) {
	_, _, svc := newDashboardFixture(t)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	require.False(t, stats.CacheHit)
	require.Equal(t, int64(120), stats.Students)
	require.Equal(t, int64(40), stats.ConfirmedBookings)
	require.Equal(t, 10250.0, stats.Revenue)
	require.Equal(t, 8000.0, stats.RevenueByMethod[models.PaymentMethodVodafoneCash])
}

func TestDashboardServiceStatsCached(t *testing.T) {
	repo, server, svc := newDashboardFixture(t)

	first, err := svc.Stats(context.Background())
	require.NoError(t, err)
	require.False(t, first.CacheHit)
	buildCalls := repo.calls

	second, err := svc.Stats(context.Background())
	require.NoError(t, err)
	require.True(t, second.CacheHit)
	require.Equal(t, first.Students, second.Students)
	require.Equal(t, buildCalls, repo.calls, "cached response must not rebuild")

	// Past the TTL the rollup is recomputed.
	server.FastForward(3 * time.Minute)
	third, err := svc.Stats(context.Background())
	require.NoError(t, err)
	require.False(t, third.CacheHit)
	require.Greater(t, repo.calls, buildCalls)
}

func TestDashboardServiceStatsWithoutCache(t *testing.T) {
	repo := &fakeDashboardRepo{students: 1, byStatus: map[string]int64{}, byMethod: map[string]float64{}}
	svc := NewDashboardService(repo, nil, time.Minute, 10, testLogger())

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	require.False(t, stats.CacheHit)
	require.Equal(t, int64(1), stats.Students)
}
