package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/AntonZhikin/OfficeDepartment/internal/dto"
	"github.com/AntonZhikin/OfficeDepartment/internal/entities"
	apperrors "github.com/AntonZhikin/OfficeDepartment/pkg/errors"
	"github.com/AntonZhikin/OfficeDepartment/pkg/service"
)

type employeeFixture struct {
	svc         EmployeeServiceInterface
	employees   *memEmployees
	branches    *memBranchOffices
	departments *memDepartments
	users       *memUsers
	audit       *fakeAudit
}

func newEmployeeFixture() employeeFixture {
	employees := newMemEmployees()
	branches := newMemBranchOffices()
	departments := newMemDepartments()
	users := newMemUsers()
	audit := &fakeAudit{}
	svc := NewEmployeeService(nil, employees, branches, departments, users, service.NewPasswordHasher(), fakeTxManager{}, audit, zap.NewNop())
	return employeeFixture{
		svc:         svc,
		employees:   employees,
		branches:    branches,
		departments: departments,
		users:       users,
		audit:       audit,
	}
}

func validCreateEmployeeDTO() dto.CreateEmployeeDTO {
	return dto.CreateEmployeeDTO{
		FirstName: "Алишер",
		LastName:  "Рахимов",
		Email:     "a.rahimov@office.com",
		Position:  "Инженер",
	}
}

func TestEmployeeCreateWithoutCredentials(t *testing.T) {
	f := newEmployeeFixture()

	employee, err := f.svc.Create(context.Background(), validCreateEmployeeDTO(), MutationContext{})
	require.NoError(t, err)

	assert.Nil(t, employee.UserID)
	assert.Empty(t, f.users.items)
	assert.False(t, employee.HireDate.IsZero())
	require.Len(t, f.audit.entries, 1)
	assert.Equal(t, "Employee", f.audit.entries[0].EntityType)
}

func TestEmployeeCreateWithCredentialsCreatesLinkedUser(t *testing.T) {
	f := newEmployeeFixture()

	createDTO := validCreateEmployeeDTO()
	createDTO.Username = "a.rahimov"
	createDTO.Password = "secret123"

	employee, err := f.svc.Create(context.Background(), createDTO, MutationContext{})
	require.NoError(t, err)

	require.NotNil(t, employee.UserID)
	user, ok := f.users.items[*employee.UserID]
	require.True(t, ok)
	assert.Equal(t, "a.rahimov", user.Username)
	assert.Equal(t, entities.RoleUser, user.Role)
	assert.NotEqual(t, "secret123", user.PasswordHash)

	// Одна запись аудита на мутацию, и только про сотрудника.
	require.Len(t, f.audit.entries, 1)
	assert.Equal(t, "Employee", f.audit.entries[0].EntityType)
}

func TestEmployeeCreateDuplicateUsernameConflicts(t *testing.T) {
	f := newEmployeeFixture()
	f.users.items[uuid.New()] = entities.User{ID: uuid.New(), Username: "taken"}

	createDTO := validCreateEmployeeDTO()
	createDTO.Username = "taken"
	createDTO.Password = "secret123"

	_, err := f.svc.Create(context.Background(), createDTO, MutationContext{})
	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusConflict, httpErr.Code)
	assert.Empty(t, f.employees.items)
	assert.Empty(t, f.audit.entries)
}

func TestEmployeeCreateUnknownBranchRejected(t *testing.T) {
	f := newEmployeeFixture()

	missing := uuid.New()
	createDTO := validCreateEmployeeDTO()
	createDTO.BranchOfficeID = &missing

	_, err := f.svc.Create(context.Background(), createDTO, MutationContext{})
	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestEmployeeCreateUsesProvidedHireDate(t *testing.T) {
	f := newEmployeeFixture()

	createDTO := validCreateEmployeeDTO()
	createDTO.HireDate = null.TimeFrom(mustParseTime(t, "2024-03-01T09:00:00+05:00"))

	employee, err := f.svc.Create(context.Background(), createDTO, MutationContext{})
	require.NoError(t, err)

	// Дата приёма приводится к UTC.
	assert.Equal(t, "2024-03-01T04:00:00Z", employee.HireDate.Format("2006-01-02T15:04:05Z07:00"))
}

func TestEmployeeDeleteCascadesLinkedUser(t *testing.T) {
	f := newEmployeeFixture()

	createDTO := validCreateEmployeeDTO()
	createDTO.Username = "a.rahimov"
	createDTO.Password = "secret123"

	employee, err := f.svc.Create(context.Background(), createDTO, MutationContext{})
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(context.Background(), employee.ID, MutationContext{}))
	assert.Empty(t, f.employees.items)
	assert.Empty(t, f.users.items)

	// Создание и удаление — ровно две записи, обе про Employee.
	require.Len(t, f.audit.entries, 2)
	assert.Equal(t, entities.AuditActionDelete, f.audit.entries[1].Action)
	assert.Equal(t, "Employee", f.audit.entries[1].EntityType)
}

func TestEmployeeUpdateKeepsUserLink(t *testing.T) {
	f := newEmployeeFixture()

	createDTO := validCreateEmployeeDTO()
	createDTO.Username = "a.rahimov"
	createDTO.Password = "secret123"

	employee, err := f.svc.Create(context.Background(), createDTO, MutationContext{})
	require.NoError(t, err)

	updated, err := f.svc.Update(context.Background(), employee.ID, dto.UpdateEmployeeDTO{
		FirstName: "Алишер",
		LastName:  "Рахимов",
		Email:     "a.rahimov@office.com",
		Position:  "Старший инженер",
	}, MutationContext{})
	require.NoError(t, err)

	assert.Equal(t, "Старший инженер", updated.Position)
	require.NotNil(t, updated.UserID)
	assert.Equal(t, *employee.UserID, *updated.UserID)
}
