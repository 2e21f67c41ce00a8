package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/noah-isme/eduly-api/internal/auth"
	"github.com/noah-isme/eduly-api/internal/dto"
	"github.com/noah-isme/eduly-api/internal/models"
)

type fakeEmployeeRepo struct {
	employees map[uint]models.Employee
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id uint) (models.Employee, error) {
	employee, ok := f.employees[id]
	if !ok {
		return models.Employee{}, gorm.ErrRecordNotFound
	}
	return employee, nil
}

func (f *fakeEmployeeRepo) GetByEmail(_ context.Context, email string) (models.Employee, error) {
	for _, employee := range f.employees {
		if employee.Email == email {
			return employee, nil
		}
	}
	return models.Employee{}, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepo) List(context.Context) ([]models.Employee, error) {
	var result []models.Employee
	for _, employee := range f.employees {
		result = append(result, employee)
	}
	return result, nil
}

func (f *fakeEmployeeRepo) Create(_ context.Context, employee *models.Employee) error {
	employee.ID = uint(len(f.employees) + 1)
	f.employees[employee.ID] = *employee
	return nil
}

func (f *fakeEmployeeRepo) Update(_ context.Context, employee *models.Employee) error {
	f.employees[employee.ID] = *employee
	return nil
}

func (f *fakeEmployeeRepo) Delete(_ context.Context, id uint) error {
	delete(f.employees, id)
	return nil
}

type fakeParentRepo struct {
	parents map[uint]models.Parent
}

func (f *fakeParentRepo) GetByID(_ context.Context, id uint) (models.Parent, error) {
	parent, ok := f.parents[id]
	if !ok {
		return models.Parent{}, gorm.ErrRecordNotFound
	}
	return parent, nil
}

func (f *fakeParentRepo) GetByEmail(_ context.Context, email string) (models.Parent, error) {
	for _, parent := range f.parents {
		if parent.Email == email {
			return parent, nil
		}
	}
	return models.Parent{}, gorm.ErrRecordNotFound
}

func (f *fakeParentRepo) Create(_ context.Context, parent *models.Parent) error {
	parent.ID = uint(len(f.parents) + 1)
	f.parents[parent.ID] = *parent
	return nil
}

func newAuthFixture() (*fakeStudentRepo, *fakeEmployeeRepo, *fakeParentRepo, AuthService) {
	studentRepo := &fakeStudentRepo{students: map[uint]models.Student{}}
	employeeRepo := &fakeEmployeeRepo{employees: map[uint]models.Employee{}}
	parentRepo := &fakeParentRepo{parents: map[uint]models.Parent{}}
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	svc := NewAuthService(studentRepo, employeeRepo, parentRepo, tokens, testValidator(), testLogger())
	return studentRepo, employeeRepo, parentRepo, svc
}

func TestAuthServiceRegisterStudent(t *testing.T) {
	repo, _, _, svc := newAuthFixture()

	resp, err := svc.RegisterStudent(context.Background(), dto.RegisterStudentRequest{
		Name: "Sara Ahmed", Email: "sara@example.com", Password: "sekret123", Phone: "01011112222",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	require.Equal(t, auth.KindStudent, resp.User.Kind)

	created := repo.students[resp.User.ID]
	require.True(t, created.IsActive)
	require.NotEqual(t, "sekret123", created.Password, "password must be stored hashed")

	_, err = svc.RegisterStudent(context.Background(), dto.RegisterStudentRequest{
		Name: "Other", Email: "sara@example.com", Password: "sekret123", Phone: "01000000000",
	})
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthServiceRegisterEmployeeStartsInactive(t *testing.T) {
	_, repo, _, svc := newAuthFixture()

	resp, err := svc.RegisterEmployee(context.Background(), dto.RegisterEmployeeRequest{
		Name: "Mona Said", Email: "mona@example.com", Password: "sekret123",
	})
	require.NoError(t, err)
	require.Empty(t, resp.Token, "pending accounts get no token")
	require.Equal(t, models.EmployeeRoleTeacher, resp.User.Role)
	require.False(t, repo.employees[resp.User.ID].IsActive)

	_, err = svc.Login(context.Background(), dto.LoginRequest{Email: "mona@example.com", Password: "sekret123"})
	require.ErrorIs(t, err, auth.ErrAccountInactive)
}

func TestAuthServiceLogin(t *testing.T) {
	_, _, _, svc := newAuthFixture()

	_, err := svc.RegisterStudent(context.Background(), dto.RegisterStudentRequest{
		Name: "Sara Ahmed", Email: "sara@example.com", Password: "sekret123", Phone: "01011112222",
	})
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Email: "sara@example.com", Password: "sekret123"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	require.Equal(t, auth.KindStudent, resp.User.Kind)

	// Wrong password and unknown email produce the same error.
	_, err = svc.Login(context.Background(), dto.LoginRequest{Email: "sara@example.com", Password: "wrong1234"})
	require.ErrorIs(t, err, ErrInvalidLogin)
	_, err = svc.Login(context.Background(), dto.LoginRequest{Email: "ghost@example.com", Password: "sekret123"})
	require.ErrorIs(t, err, ErrInvalidLogin)
}

func TestAuthServiceResolve(t *testing.T) {
	studentRepo, employeeRepo, _, svc := newAuthFixture()
	studentRepo.students[1] = models.Student{ID: 1, Name: "Sara", Email: "sara@example.com", IsActive: true}
	employeeRepo.employees[1] = models.Employee{ID: 1, Name: "Adel", Email: "adel@example.com", Role: models.EmployeeRoleAdmin, IsActive: true}
	studentRepo.students[2] = models.Student{ID: 2, Name: "Suspended", Email: "off@example.com", IsActive: false}

	// Colliding ids across stores resolve through the kind claim.
	principal, err := svc.Resolve(context.Background(), 1, auth.KindEmployee)
	require.NoError(t, err)
	require.Equal(t, auth.KindEmployee, principal.Kind)
	require.Equal(t, models.EmployeeRoleAdmin, principal.Role)

	principal, err = svc.Resolve(context.Background(), 1, auth.KindStudent)
	require.NoError(t, err)
	require.Equal(t, auth.KindStudent, principal.Kind)
	require.Equal(t, "Sara", principal.Name)

	principal, err = svc.Resolve(context.Background(), 2, auth.KindStudent)
	require.ErrorIs(t, err, auth.ErrAccountInactive)
	require.Empty(t, principal.Kind)

	_, err = svc.Resolve(context.Background(), 99, auth.KindStudent)
	require.ErrorIs(t, err, auth.ErrPrincipalNotFound)

	// An unknown kind never probes any store.
	_, err = svc.Resolve(context.Background(), 1, "service-account")
	require.ErrorIs(t, err, auth.ErrPrincipalNotFound)
}
