package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/eduly-api/internal/models"
)

// CourseFilter narrows catalog queries. A nil IsActive defaults to active
// courses only, matching the public catalog view.
type CourseFilter struct {
	IsActive *bool
}

// CourseRepository defines data operations for the course catalog.
type CourseRepository interface {
	GetByID(ctx context.Context, id uint) (models.Course, error)
	List(ctx context.Context, filter CourseFilter) ([]models.Course, error)
	Create(ctx context.Context, course *models.Course) error
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id uint) error
}

type courseRepository struct {
	db *gorm.DB
}

// NewCourseRepository instantiates the repository.
func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) GetByID(ctx context.Context, id uint) (models.Course, error) {
	var course models.Course
	if err := r.db.WithContext(ctx).First(&course, id).Error; err != nil {
		return models.Course{}, err
	}
	return course, nil
}

func (r *courseRepository) List(ctx context.Context, filter CourseFilter) ([]models.Course, error) {
	query := r.db.WithContext(ctx).Model(&models.Course{})

	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	} else {
		query = query.Where("is_active = ?", true)
	}

	var courses []models.Course
	err := query.Order("created_at DESC").Find(&courses).Error
	return courses, err
}

func (r *courseRepository) Create(ctx context.Context, course *models.Course) error {
	return r.db.WithContext(ctx).Create(course).Error
}

func (r *courseRepository) Update(ctx context.Context, course *models.Course) error {
	return r.db.WithContext(ctx).Save(course).Error
}

func (r *courseRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Course{}, id).Error
}
