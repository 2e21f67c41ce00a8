package dto

import (
	"time"

	"github.com/noah-isme/eduly-api/internal/models"
)

// StudentProfileUpdateRequest lets a student edit their own profile.
type StudentProfileUpdateRequest struct {
	Name           *string    `json:"name" validate:"omitempty,min=2,max=255"`
	Phone          *string    `json:"phone" validate:"omitempty,min=7,max=32"`
	ParentPhone    *string    `json:"parentPhone" validate:"omitempty,min=7,max=32"`
	BirthDate      *time.Time `json:"birthDate"`
	EducationLevel *string    `json:"educationLevel" validate:"omitempty,max=64"`
}

// StudentToggleStatusRequest flips a student account's active flag.
type StudentToggleStatusRequest struct {
	IsActive bool `json:"isActive"`
}

// StudentResponse is the staff/self view of a student account.
type StudentResponse struct {
	ID             uint       `json:"id"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	Phone          string     `json:"phone,omitempty"`
	ParentPhone    string     `json:"parent_phone,omitempty"`
	BirthDate      *time.Time `json:"birth_date,omitempty"`
	EducationLevel string     `json:"education_level,omitempty"`
	Avatar         string     `json:"avatar,omitempty"`
	IsActive       bool       `json:"is_active"`
	CreatedAt      time.Time  `json:"created_at"`
}

// NewStudentResponse converts a Student model into a DTO.
func NewStudentResponse(model models.Student) StudentResponse {
	return StudentResponse{
		ID:             model.ID,
		Name:           model.Name,
		Email:          model.Email,
		Phone:          model.Phone,
		ParentPhone:    model.ParentPhone,
		BirthDate:      model.BirthDate,
		EducationLevel: model.EducationLevel,
		Avatar:         model.Avatar,
		IsActive:       model.IsActive,
		CreatedAt:      model.CreatedAt,
	}
}

// NewStudentResponseSlice converts a slice of students.
func NewStudentResponseSlice(students []models.Student) []StudentResponse {
	responses := make([]StudentResponse, 0, len(students))
	for _, student := range students {
		responses = append(responses, NewStudentResponse(student))
	}
	return responses
}

// EmployeeCreateRequest is the admin payload for creating a staff account.
type EmployeeCreateRequest struct {
	Name     string  `json:"name" validate:"required,min=2,max=255"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8"`
	Role     string  `json:"role" validate:"required,oneof=admin teacher accountant"`
	Salary   float64 `json:"salary" validate:"gte=0"`
}

// EmployeeUpdateRequest mutates a staff account; nil fields are untouched.
// Setting IsActive true is the activation path for pending registrations.
type EmployeeUpdateRequest struct {
	Name     *string  `json:"name" validate:"omitempty,min=2,max=255"`
	Role     *string  `json:"role" validate:"omitempty,oneof=admin teacher accountant"`
	Salary   *float64 `json:"salary" validate:"omitempty,gte=0"`
	IsActive *bool    `json:"isActive"`
}

// EmployeeResponse is the admin view of a staff account.
type EmployeeResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Role      string    `json:"role"`
	Salary    float64   `json:"salary"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// NewEmployeeResponse converts an Employee model into a DTO.
func NewEmployeeResponse(model models.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:        model.ID,
		Name:      model.Name,
		Email:     model.Email,
		Phone:     model.Phone,
		Role:      model.Role,
		Salary:    model.Salary,
		IsActive:  model.IsActive,
		CreatedAt: model.CreatedAt,
	}
}

// NewEmployeeResponseSlice converts a slice of employees.
func NewEmployeeResponseSlice(employees []models.Employee) []EmployeeResponse {
	responses := make([]EmployeeResponse, 0, len(employees))
	for _, employee := range employees {
		responses = append(responses, NewEmployeeResponse(employee))
	}
	return responses
}
