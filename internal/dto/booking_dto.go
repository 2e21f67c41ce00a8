package dto

import (
	"time"

	"github.com/noah-isme/eduly-api/internal/models"
)

// BookingCreateRequest is the student payload for claiming a course month.
type BookingCreateRequest struct {
	CourseID  uint   `json:"courseId" validate:"required,gt=0"`
	MonthYear string `json:"monthYear" validate:"required"`
}

// BookingFilter describes the staff query string for listing bookings.
type BookingFilter struct {
	Status *string `query:"status" validate:"omitempty,oneof=pending confirmed cancelled"`
}

// CourseLite summarizes a course inside booking responses.
type CourseLite struct {
	ID            uint    `json:"id"`
	Title         string  `json:"title"`
	Description   string  `json:"description,omitempty"`
	PricePerMonth float64 `json:"price_per_month"`
	CoverImage    string  `json:"cover_image,omitempty"`
}

// StudentLite summarizes a student without exposing full profile data.
type StudentLite struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// BookingResponse is returned to API clients when viewing bookings.
type BookingResponse struct {
	ID        uint         `json:"id"`
	MonthYear string       `json:"month_year"`
	Status    string       `json:"status"`
	CreatedAt time.Time    `json:"created_at"`
	Course    CourseLite   `json:"course"`
	Student   *StudentLite `json:"student,omitempty"`
}

// NewBookingResponse converts a Booking model into a DTO.
func NewBookingResponse(model models.Booking) BookingResponse {
	response := BookingResponse{
		ID:        model.ID,
		MonthYear: model.MonthYear,
		Status:    model.Status,
		CreatedAt: model.CreatedAt,
	}

	if model.Course.ID != 0 {
		response.Course = CourseLite{
			ID:            model.Course.ID,
			Title:         model.Course.Title,
			Description:   model.Course.Description,
			PricePerMonth: model.Course.PricePerMonth,
			CoverImage:    model.Course.CoverImage,
		}
	}

	if model.Student.ID != 0 {
		response.Student = &StudentLite{
			ID:    model.Student.ID,
			Name:  model.Student.Name,
			Email: model.Student.Email,
			Phone: model.Student.Phone,
		}
	}

	return response
}

// NewBookingResponseSlice converts a slice of bookings.
func NewBookingResponseSlice(bookings []models.Booking) []BookingResponse {
	responses := make([]BookingResponse, 0, len(bookings))
	for _, booking := range bookings {
		responses = append(responses, NewBookingResponse(booking))
	}
	return responses
}
