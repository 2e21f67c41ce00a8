package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/eduly-api/internal/auth"
	"github.com/noah-isme/eduly-api/internal/dto"
	"github.com/noah-isme/eduly-api/internal/models"
	"github.com/noah-isme/eduly-api/internal/repository"
)

// ErrEmployeeNotFound reports a missing staff account.
var ErrEmployeeNotFound = errors.New("employee not found")

// StudentAccountService covers the student profile surface and the admin
// account administration around it.
type StudentAccountService interface {
	Profile(ctx context.Context, studentID uint) (dto.StudentResponse, error)
	UpdateProfile(ctx context.Context, studentID uint, payload dto.StudentProfileUpdateRequest) (dto.StudentResponse, error)
	List(ctx context.Context) ([]dto.StudentResponse, error)
	ToggleStatus(ctx context.Context, studentID uint, active bool) error
	Delete(ctx context.Context, studentID uint) error
}

type studentAccountService struct {
	students  repository.StudentRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewStudentAccountService constructs a StudentAccountService instance.
func NewStudentAccountService(studentRepo repository.StudentRepository, validate *validator.Validate, logger zerolog.Logger) StudentAccountService {
	return &studentAccountService{
		students:  studentRepo,
		validator: validate,
		logger:    logger.With().Str("component", "student_account_service").Logger(),
	}
}

func (s *studentAccountService) Profile(ctx context.Context, studentID uint) (dto.StudentResponse, error) {
	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.StudentResponse{}, ErrStudentNotFound
		}
		return dto.StudentResponse{}, err
	}
	return dto.NewStudentResponse(student), nil
}

func (s *studentAccountService) UpdateProfile(ctx context.Context, studentID uint, payload dto.StudentProfileUpdateRequest) (dto.StudentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.StudentResponse{}, err
	}

	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.StudentResponse{}, ErrStudentNotFound
		}
		return dto.StudentResponse{}, err
	}

	if payload.Name != nil {
		student.Name = *payload.Name
	}
	if payload.Phone != nil {
		student.Phone = *payload.Phone
	}
	if payload.ParentPhone != nil {
		student.ParentPhone = *payload.ParentPhone
	}
	if payload.BirthDate != nil {
		student.BirthDate = payload.BirthDate
	}
	if payload.EducationLevel != nil {
		student.EducationLevel = *payload.EducationLevel
	}

	if err := s.students.Update(ctx, &student); err != nil {
		return dto.StudentResponse{}, err
	}

	s.logger.Info().Uint("student_id", studentID).Msg("student profile updated")
	return dto.NewStudentResponse(student), nil
}

func (s *studentAccountService) List(ctx context.Context) ([]dto.StudentResponse, error) {
	students, err := s.students.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewStudentResponseSlice(students), nil
}

func (s *studentAccountService) ToggleStatus(ctx context.Context, studentID uint, active bool) error {
	if _, err := s.students.GetByID(ctx, studentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStudentNotFound
		}
		return err
	}

	if err := s.students.SetActive(ctx, studentID, active); err != nil {
		return err
	}

	s.logger.Info().Uint("student_id", studentID).Bool("active", active).Msg("student status toggled")
	return nil
}

func (s *studentAccountService) Delete(ctx context.Context, studentID uint) error {
	if _, err := s.students.GetByID(ctx, studentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStudentNotFound
		}
		return err
	}
	return s.students.Delete(ctx, studentID)
}

// EmployeeAccountService covers admin management of staff accounts,
// including the activation path for pending teacher and accountant
// registrations.
type EmployeeAccountService interface {
	Create(ctx context.Context, payload dto.EmployeeCreateRequest) (dto.EmployeeResponse, error)
	List(ctx context.Context) ([]dto.EmployeeResponse, error)
	Update(ctx context.Context, employeeID uint, payload dto.EmployeeUpdateRequest) (dto.EmployeeResponse, error)
	Delete(ctx context.Context, employeeID uint) error
}

type employeeAccountService struct {
	employees repository.EmployeeRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewEmployeeAccountService constructs an EmployeeAccountService instance.
func NewEmployeeAccountService(employeeRepo repository.EmployeeRepository, validate *validator.Validate, logger zerolog.Logger) EmployeeAccountService {
	return &employeeAccountService{
		employees: employeeRepo,
		validator: validate,
		logger:    logger.With().Str("component", "employee_account_service").Logger(),
	}
}

// Create is the admin path; unlike self-registration the account starts active.
func (s *employeeAccountService) Create(ctx context.Context, payload dto.EmployeeCreateRequest) (dto.EmployeeResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.EmployeeResponse{}, err
	}

	if _, err := s.employees.GetByEmail(ctx, payload.Email); err == nil {
		return dto.EmployeeResponse{}, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.EmployeeResponse{}, err
	}

	hash, err := auth.HashPassword(payload.Password)
	if err != nil {
		return dto.EmployeeResponse{}, err
	}

	employee := models.Employee{
		Name:     payload.Name,
		Email:    payload.Email,
		Password: hash,
		Role:     payload.Role,
		Salary:   payload.Salary,
		IsActive: true,
	}
	if err := s.employees.Create(ctx, &employee); err != nil {
		return dto.EmployeeResponse{}, err
	}

	s.logger.Info().Uint("employee_id", employee.ID).Str("role", employee.Role).Msg("employee created")
	return dto.NewEmployeeResponse(employee), nil
}

func (s *employeeAccountService) List(ctx context.Context) ([]dto.EmployeeResponse, error) {
	employees, err := s.employees.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewEmployeeResponseSlice(employees), nil
}

func (s *employeeAccountService) Update(ctx context.Context, employeeID uint, payload dto.EmployeeUpdateRequest) (dto.EmployeeResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.EmployeeResponse{}, err
	}

	employee, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.EmployeeResponse{}, ErrEmployeeNotFound
		}
		return dto.EmployeeResponse{}, err
	}

	if payload.Name != nil {
		employee.Name = *payload.Name
	}
	if payload.Role != nil {
		employee.Role = *payload.Role
	}
	if payload.Salary != nil {
		employee.Salary = *payload.Salary
	}
	if payload.IsActive != nil {
		employee.IsActive = *payload.IsActive
	}

	if err := s.employees.Update(ctx, &employee); err != nil {
		return dto.EmployeeResponse{}, err
	}

	s.logger.Info().Uint("employee_id", employeeID).Msg("employee updated")
	return dto.NewEmployeeResponse(employee), nil
}

func (s *employeeAccountService) Delete(ctx context.Context, employeeID uint) error {
	if _, err := s.employees.GetByID(ctx, employeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEmployeeNotFound
		}
		return err
	}
	return s.employees.Delete(ctx, employeeID)
}
