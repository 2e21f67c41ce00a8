package dto

import (
	"time"

	"github.com/noah-isme/eduly-api/internal/models"
)

// ParentLinkRequest links the requesting parent to a student by email.
type ParentLinkRequest struct {
	StudentEmail string `json:"studentEmail" validate:"required,email"`
}

// ChildResponse is the parent-facing view of a linked student.
type ChildResponse struct {
	ID             uint   `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone,omitempty"`
	EducationLevel string `json:"education_level,omitempty"`
	Avatar         string `json:"avatar,omitempty"`
}

// NewChildResponse converts a Student model into the parent-facing DTO.
func NewChildResponse(model models.Student) ChildResponse {
	return ChildResponse{
		ID:             model.ID,
		Name:           model.Name,
		Email:          model.Email,
		Phone:          model.Phone,
		EducationLevel: model.EducationLevel,
		Avatar:         model.Avatar,
	}
}

// NewChildResponseSlice converts a slice of students.
func NewChildResponseSlice(students []models.Student) []ChildResponse {
	responses := make([]ChildResponse, 0, len(students))
	for _, student := range students {
		responses = append(responses, NewChildResponse(student))
	}
	return responses
}

// AttendanceResponse is the parent-facing view of an attendance record.
type AttendanceResponse struct {
	ID          uint      `json:"id"`
	Date        time.Time `json:"date"`
	Status      string    `json:"status"`
	CourseTitle string    `json:"course_title,omitempty"`
}

// NewAttendanceResponse converts an Attendance model into a DTO.
func NewAttendanceResponse(model models.Attendance) AttendanceResponse {
	response := AttendanceResponse{
		ID:     model.ID,
		Date:   model.Date,
		Status: model.Status,
	}
	if model.Course.ID != 0 {
		response.CourseTitle = model.Course.Title
	}
	return response
}

// NewAttendanceResponseSlice converts a slice of attendance records.
func NewAttendanceResponseSlice(records []models.Attendance) []AttendanceResponse {
	responses := make([]AttendanceResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, NewAttendanceResponse(record))
	}
	return responses
}
