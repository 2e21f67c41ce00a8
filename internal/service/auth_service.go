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

// Registration and login failures.
var (
	ErrEmailTaken   = errors.New("email already registered")
	ErrInvalidLogin = errors.New("invalid email or password")
)

// AuthService handles registration, login, and per-request principal
// resolution. Resolution reads only the store named by the token's kind
// claim; login probes the stores by email, employees first.
type AuthService interface {
	RegisterStudent(ctx context.Context, payload dto.RegisterStudentRequest) (dto.AuthResponse, error)
	RegisterParent(ctx context.Context, payload dto.RegisterParentRequest) (dto.AuthResponse, error)
	RegisterEmployee(ctx context.Context, payload dto.RegisterEmployeeRequest) (dto.AuthResponse, error)
	Login(ctx context.Context, payload dto.LoginRequest) (dto.AuthResponse, error)
	Resolve(ctx context.Context, principalID uint, kind string) (auth.Principal, error)
}

type authService struct {
	students  repository.StudentRepository
	employees repository.EmployeeRepository
	parents   repository.ParentRepository
	tokens    *auth.TokenManager
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(studentRepo repository.StudentRepository, employeeRepo repository.EmployeeRepository, parentRepo repository.ParentRepository, tokens *auth.TokenManager, validate *validator.Validate, logger zerolog.Logger) AuthService {
	return &authService{
		students:  studentRepo,
		employees: employeeRepo,
		parents:   parentRepo,
		tokens:    tokens,
		validator: validate,
		logger:    logger.With().Str("component", "auth_service").Logger(),
	}
}

func (s *authService) RegisterStudent(ctx context.Context, payload dto.RegisterStudentRequest) (dto.AuthResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AuthResponse{}, err
	}

	if _, err := s.students.GetByEmail(ctx, payload.Email); err == nil {
		return dto.AuthResponse{}, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.AuthResponse{}, err
	}

	hash, err := auth.HashPassword(payload.Password)
	if err != nil {
		return dto.AuthResponse{}, err
	}

	student := models.Student{
		Name:        payload.Name,
		Email:       payload.Email,
		Password:    hash,
		Phone:       payload.Phone,
		ParentPhone: payload.ParentPhone,
		IsActive:    true,
	}
	if err := s.students.Create(ctx, &student); err != nil {
		return dto.AuthResponse{}, err
	}

	principal := auth.Principal{ID: student.ID, Kind: auth.KindStudent, Name: student.Name, Email: student.Email}
	token, err := s.tokens.Issue(principal)
	if err != nil {
		return dto.AuthResponse{}, err
	}

	s.logger.Info().Uint("student_id", student.ID).Msg("student registered")
	return dto.AuthResponse{Token: token, User: principal}, nil
}

func (s *authService) RegisterParent(ctx context.Context, payload dto.RegisterParentRequest) (dto.AuthResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AuthResponse{}, err
	}

	if _, err := s.parents.GetByEmail(ctx, payload.Email); err == nil {
		return dto.AuthResponse{}, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.AuthResponse{}, err
	}

	hash, err := auth.HashPassword(payload.Password)
	if err != nil {
		return dto.AuthResponse{}, err
	}

	parent := models.Parent{
		Name:     payload.Name,
		Email:    payload.Email,
		Password: hash,
		Phone:    payload.Phone,
		IsActive: true,
	}
	if err := s.parents.Create(ctx, &parent); err != nil {
		return dto.AuthResponse{}, err
	}

	principal := auth.Principal{ID: parent.ID, Kind: auth.KindParent, Name: parent.Name, Email: parent.Email}
	token, err := s.tokens.Issue(principal)
	if err != nil {
		return dto.AuthResponse{}, err
	}

	s.logger.Info().Uint("parent_id", parent.ID).Msg("parent registered")
	return dto.AuthResponse{Token: token, User: principal}, nil
}

// RegisterEmployee creates an inactive teacher or accountant account. No
// token is issued; the account cannot log in until an admin activates it.
func (s *authService) RegisterEmployee(ctx context.Context, payload dto.RegisterEmployeeRequest) (dto.AuthResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AuthResponse{}, err
	}

	if _, err := s.employees.GetByEmail(ctx, payload.Email); err == nil {
		return dto.AuthResponse{}, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.AuthResponse{}, err
	}

	role := payload.Role
	if role == "" {
		role = models.EmployeeRoleTeacher
	}

	hash, err := auth.HashPassword(payload.Password)
	if err != nil {
		return dto.AuthResponse{}, err
	}

	employee := models.Employee{
		Name:     payload.Name,
		Email:    payload.Email,
		Password: hash,
		Phone:    payload.Phone,
		Role:     role,
		IsActive: false,
	}
	if err := s.employees.Create(ctx, &employee); err != nil {
		return dto.AuthResponse{}, err
	}

	s.logger.Info().Uint("employee_id", employee.ID).Str("role", role).Msg("employee registered, pending activation")
	return dto.AuthResponse{
		User: auth.Principal{ID: employee.ID, Kind: auth.KindEmployee, Role: role, Name: employee.Name, Email: employee.Email},
	}, nil
}

// Login probes the principal stores by email in the same fixed order used
// for resolution. Unknown email and wrong password are indistinguishable.
func (s *authService) Login(ctx context.Context, payload dto.LoginRequest) (dto.AuthResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AuthResponse{}, err
	}

	principal, hash, err := s.findByEmail(ctx, payload.Email)
	if err != nil {
		return dto.AuthResponse{}, err
	}

	if !auth.CheckPassword(hash, payload.Password) {
		return dto.AuthResponse{}, ErrInvalidLogin
	}

	token, err := s.tokens.Issue(principal)
	if err != nil {
		return dto.AuthResponse{}, err
	}

	s.logger.Info().Uint("principal_id", principal.ID).Str("kind", principal.Kind).Msg("login")
	return dto.AuthResponse{Token: token, User: principal}, nil
}

func (s *authService) findByEmail(ctx context.Context, email string) (auth.Principal, string, error) {
	if employee, err := s.employees.GetByEmail(ctx, email); err == nil {
		if !employee.IsActive {
			return auth.Principal{}, "", auth.ErrAccountInactive
		}
		return auth.Principal{ID: employee.ID, Kind: auth.KindEmployee, Role: employee.Role, Name: employee.Name, Email: employee.Email}, employee.Password, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return auth.Principal{}, "", err
	}

	if student, err := s.students.GetByEmail(ctx, email); err == nil {
		if !student.IsActive {
			return auth.Principal{}, "", auth.ErrAccountInactive
		}
		return auth.Principal{ID: student.ID, Kind: auth.KindStudent, Name: student.Name, Email: student.Email}, student.Password, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return auth.Principal{}, "", err
	}

	if parent, err := s.parents.GetByEmail(ctx, email); err == nil {
		if !parent.IsActive {
			return auth.Principal{}, "", auth.ErrAccountInactive
		}
		return auth.Principal{ID: parent.ID, Kind: auth.KindParent, Name: parent.Name, Email: parent.Email}, parent.Password, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return auth.Principal{}, "", err
	}

	return auth.Principal{}, "", ErrInvalidLogin
}

// Resolve maps verified token claims to a Principal. The kind claim names
// the store to read, so colliding auto-increment ids across stores never
// cross-resolve. Inactive accounts resolve to auth.ErrAccountInactive so
// the boundary can answer 403 instead of 401.
func (s *authService) Resolve(ctx context.Context, principalID uint, kind string) (auth.Principal, error) {
	switch kind {
	case auth.KindEmployee:
		employee, err := s.employees.GetByID(ctx, principalID)
		if err != nil {
			return auth.Principal{}, resolveErr(err)
		}
		if !employee.IsActive {
			return auth.Principal{}, auth.ErrAccountInactive
		}
		return auth.Principal{ID: employee.ID, Kind: auth.KindEmployee, Role: employee.Role, Name: employee.Name, Email: employee.Email}, nil

	case auth.KindStudent:
		student, err := s.students.GetByID(ctx, principalID)
		if err != nil {
			return auth.Principal{}, resolveErr(err)
		}
		if !student.IsActive {
			return auth.Principal{}, auth.ErrAccountInactive
		}
		return auth.Principal{ID: student.ID, Kind: auth.KindStudent, Name: student.Name, Email: student.Email}, nil

	case auth.KindParent:
		parent, err := s.parents.GetByID(ctx, principalID)
		if err != nil {
			return auth.Principal{}, resolveErr(err)
		}
		if !parent.IsActive {
			return auth.Principal{}, auth.ErrAccountInactive
		}
		return auth.Principal{ID: parent.ID, Kind: auth.KindParent, Name: parent.Name, Email: parent.Email}, nil

	default:
		return auth.Principal{}, auth.ErrPrincipalNotFound
	}
}

func resolveErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return auth.ErrPrincipalNotFound
	}
	return err
}
