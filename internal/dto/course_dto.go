package dto

import (
	"time"

	"github.com/noah-isme/eduly-api/internal/models"
)

// CourseCreateRequest is the admin payload for creating a course.
type CourseCreateRequest struct {
	Title         string    `json:"title" validate:"required,min=3,max=255"`
	Description   string    `json:"description"`
	PricePerMonth float64   `json:"price_per_month" validate:"gte=0"`
	DaysPerWeek   string    `json:"days_per_week"`
	StartAt       time.Time `json:"start_at"`
	EndAt         time.Time `json:"end_at"`
	MaxStudents   int       `json:"max_students" validate:"required,gte=1"`
	TeacherID     *uint     `json:"teacher_id"`
	CoverImage    string    `json:"cover_image"`
}

// CourseUpdateRequest mutates an existing course; nil fields are untouched.
type CourseUpdateRequest struct {
	Title         *string    `json:"title" validate:"omitempty,min=3,max=255"`
	Description   *string    `json:"description"`
	PricePerMonth *float64   `json:"price_per_month" validate:"omitempty,gte=0"`
	DaysPerWeek   *string    `json:"days_per_week"`
	StartAt       *time.Time `json:"start_at"`
	EndAt         *time.Time `json:"end_at"`
	MaxStudents   *int       `json:"max_students" validate:"omitempty,gte=1"`
	TeacherID     *uint      `json:"teacher_id"`
	CoverImage    *string    `json:"cover_image"`
	IsActive      *bool      `json:"is_active"`
}

// CourseResponse is the public catalog view of a course.
type CourseResponse struct {
	ID            uint      `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	PricePerMonth float64   `json:"price_per_month"`
	DaysPerWeek   string    `json:"days_per_week"`
	StartAt       time.Time `json:"start_at"`
	EndAt         time.Time `json:"end_at"`
	MaxStudents   int       `json:"max_students"`
	TeacherID     *uint     `json:"teacher_id,omitempty"`
	CoverImage    string    `json:"cover_image,omitempty"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewCourseResponse converts a Course model into a DTO.
func NewCourseResponse(model models.Course) CourseResponse {
	return CourseResponse{
		ID:            model.ID,
		Title:         model.Title,
		Description:   model.Description,
		PricePerMonth: model.PricePerMonth,
		DaysPerWeek:   model.DaysPerWeek,
		StartAt:       model.StartAt,
		EndAt:         model.EndAt,
		MaxStudents:   model.MaxStudents,
		TeacherID:     model.TeacherID,
		CoverImage:    model.CoverImage,
		IsActive:      model.IsActive,
		CreatedAt:     model.CreatedAt,
	}
}

// NewCourseResponseSlice converts a slice of courses.
func NewCourseResponseSlice(courses []models.Course) []CourseResponse {
	responses := make([]CourseResponse, 0, len(courses))
	for _, course := range courses {
		responses = append(responses, NewCourseResponse(course))
	}
	return responses
}
