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

// CatalogService exposes the course catalog: public reads plus admin CRUD.
type CatalogService interface {
	Get(ctx context.Context, id uint) (dto.CourseResponse, error)
	List(ctx context.Context, isActive *bool) ([]dto.CourseResponse, error)
	Create(ctx context.Context, payload dto.CourseCreateRequest) (dto.CourseResponse, error)
	Update(ctx context.Context, id uint, payload dto.CourseUpdateRequest) (dto.CourseResponse, error)
	Delete(ctx context.Context, id uint) error
}

type catalogService struct {
	courses   repository.CourseRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewCatalogService constructs a CatalogService instance.
func NewCatalogService(courseRepo repository.CourseRepository, validate *validator.Validate, logger zerolog.Logger) CatalogService {
	return &catalogService{
		courses:   courseRepo,
		validator: validate,
		logger:    logger.With().Str("component", "catalog_service").Logger(),
	}
}

func (s *catalogService) Get(ctx context.Context, id uint) (dto.CourseResponse, error) {
	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CourseResponse{}, ErrCourseNotFound
		}
		return dto.CourseResponse{}, err
	}
	return dto.NewCourseResponse(course), nil
}

func (s *catalogService) List(ctx context.Context, isActive *bool) ([]dto.CourseResponse, error) {
	courses, err := s.courses.List(ctx, repository.CourseFilter{IsActive: isActive})
	if err != nil {
		return nil, err
	}
	return dto.NewCourseResponseSlice(courses), nil
}

func (s *catalogService) Create(ctx context.Context, payload dto.CourseCreateRequest) (dto.CourseResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.CourseResponse{}, err
	}

	course := models.Course{
		Title:         payload.Title,
		Description:   payload.Description,
		PricePerMonth: payload.PricePerMonth,
		DaysPerWeek:   payload.DaysPerWeek,
		StartAt:       payload.StartAt,
		EndAt:         payload.EndAt,
		MaxStudents:   payload.MaxStudents,
		TeacherID:     payload.TeacherID,
		CoverImage:    payload.CoverImage,
		IsActive:      true,
	}

	if err := s.courses.Create(ctx, &course); err != nil {
		return dto.CourseResponse{}, err
	}

	s.logger.Info().Uint("course_id", course.ID).Str("title", course.Title).Msg("course created")
	return dto.NewCourseResponse(course), nil
}

func (s *catalogService) Update(ctx context.Context, id uint, payload dto.CourseUpdateRequest) (dto.CourseResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.CourseResponse{}, err
	}

	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CourseResponse{}, ErrCourseNotFound
		}
		return dto.CourseResponse{}, err
	}

	if payload.Title != nil {
		course.Title = *payload.Title
	}
	if payload.Description != nil {
		course.Description = *payload.Description
	}
	if payload.PricePerMonth != nil {
		course.PricePerMonth = *payload.PricePerMonth
	}
	if payload.DaysPerWeek != nil {
		course.DaysPerWeek = *payload.DaysPerWeek
	}
	if payload.StartAt != nil {
		course.StartAt = *payload.StartAt
	}
	if payload.EndAt != nil {
		course.EndAt = *payload.EndAt
	}
	if payload.MaxStudents != nil {
		course.MaxStudents = *payload.MaxStudents
	}
	if payload.TeacherID != nil {
		course.TeacherID = payload.TeacherID
	}
	if payload.CoverImage != nil {
		course.CoverImage = *payload.CoverImage
	}
	if payload.IsActive != nil {
		course.IsActive = *payload.IsActive
	}

	if err := s.courses.Update(ctx, &course); err != nil {
		return dto.CourseResponse{}, err
	}

	s.logger.Info().Uint("course_id", course.ID).Msg("course updated")
	return dto.NewCourseResponse(course), nil
}

func (s *catalogService) Delete(ctx context.Context, id uint) error {
	if _, err := s.courses.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCourseNotFound
		}
		return err
	}
	return s.courses.Delete(ctx, id)
}
