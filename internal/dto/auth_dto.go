package dto

import "github.com/noah-isme/eduly-api/internal/auth"

// RegisterStudentRequest creates a student account.
type RegisterStudentRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=255"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	Phone       string `json:"phone" validate:"omitempty,min=7,max=32"`
	ParentPhone string `json:"parentPhone" validate:"omitempty,min=7,max=32"`
}

// RegisterParentRequest creates a parent account.
type RegisterParentRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Phone    string `json:"phone" validate:"omitempty,min=7,max=32"`
}

// RegisterEmployeeRequest creates a teacher or accountant account pending
// admin activation.
type RegisterEmployeeRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Phone    string `json:"phone" validate:"omitempty,min=7,max=32"`
	Role     string `json:"role" validate:"omitempty,oneof=teacher accountant"`
}

// LoginRequest authenticates any principal kind by email.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse carries the issued token and the resolved principal.
type AuthResponse struct {
	Token string         `json:"token,omitempty"`
	User  auth.Principal `json:"user"`
}
