package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/eduly-api/internal/dto"
	"github.com/noah-isme/eduly-api/internal/models"
	"github.com/noah-isme/eduly-api/internal/repository"
)

const dashboardCacheKey = "dashboard:stats"

// DashboardService aggregates counts and revenue for the staff dashboard.
// Results may be cached under a short TTL; booking and payment status is
// never served stale anywhere else in the system.
type DashboardService interface {
	Stats(ctx context.Context) (dto.DashboardStatsResponse, error)
}

type dashboardService struct {
	repo        repository.DashboardRepository
	cache       *redis.Client
	cacheTTL    time.Duration
	recentLimit int
	logger      zerolog.Logger
}

// NewDashboardService constructs a DashboardService instance. A nil cache
// client disables caching.
func NewDashboardService(repo repository.DashboardRepository, cache *redis.Client, ttl time.Duration, recentLimit int, logger zerolog.Logger) DashboardService {
	return &dashboardService{
		repo:        repo,
		cache:       cache,
		cacheTTL:    ttl,
		recentLimit: recentLimit,
		logger:      logger.With().Str("component", "dashboard_service").Logger(),
	}
}

func (s *dashboardService) Stats(ctx context.Context) (dto.DashboardStatsResponse, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, dashboardCacheKey).Result()
		if err == nil {
			var response dto.DashboardStatsResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				response.CacheHit = true
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read dashboard cache")
		}
	}

	response, err := s.build(ctx)
	if err != nil {
		return dto.DashboardStatsResponse{}, err
	}

	if s.cache != nil {
		if payload, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, dashboardCacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to write dashboard cache")
			}
		}
	}

	return response, nil
}

func (s *dashboardService) build(ctx context.Context) (dto.DashboardStatsResponse, error) {
	students, err := s.repo.CountStudents(ctx)
	if err != nil {
		return dto.DashboardStatsResponse{}, err
	}

	employees, err := s.repo.CountEmployees(ctx)
	if err != nil {
		return dto.DashboardStatsResponse{}, err
	}

	courses, err := s.repo.CountCourses(ctx)
	if err != nil {
		return dto.DashboardStatsResponse{}, err
	}

	byStatus, err := s.repo.CountBookingsByStatus(ctx)
	if err != nil {
		return dto.DashboardStatsResponse{}, err
	}

	revenue, err := s.repo.SumPaidAmount(ctx)
	if err != nil {
		return dto.DashboardStatsResponse{}, err
	}

	byMethod, err := s.repo.SumPaidAmountByMethod(ctx)
	if err != nil {
		return dto.DashboardStatsResponse{}, err
	}

	recent, err := s.repo.RecentBookings(ctx, s.recentLimit)
	if err != nil {
		return dto.DashboardStatsResponse{}, err
	}

	return dto.DashboardStatsResponse{
		Students:          students,
		Employees:         employees,
		Courses:           courses,
		PendingBookings:   byStatus[models.BookingStatusPending],
		ConfirmedBookings: byStatus[models.BookingStatusConfirmed],
		CancelledBookings: byStatus[models.BookingStatusCancelled],
		Revenue:           revenue,
		RevenueByMethod:   byMethod,
		RecentBookings:    dto.NewBookingResponseSlice(recent),
	}, nil
}
