package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/AntonZhikin/OfficeDepartment/internal/dto"
	"github.com/AntonZhikin/OfficeDepartment/internal/entities"
	"github.com/AntonZhikin/OfficeDepartment/pkg/config"
	apperrors "github.com/AntonZhikin/OfficeDepartment/pkg/errors"
	"github.com/AntonZhikin/OfficeDepartment/pkg/service"
)

type authFixture struct {
	svc       AuthServiceInterface
	users     *memUsers
	employees *memEmployees
	cache     *memCache
	audit     *fakeAudit
}

func newAuthFixture(t *testing.T) authFixture {
	t.Helper()

	users := newMemUsers()
	employees := newMemEmployees()
	cache := newMemCache()
	audit := &fakeAudit{}

	jwtService := service.NewJWTService(
		"test-secret-key-that-is-long-enough!", "OfficeDepartment", "OfficeDepartment",
		config.New().JWT.AccessTokenTTL, zap.NewNop(),
	)

	svc := NewAuthService(
		nil, users, employees, cache, fakeTxManager{}, audit,
		service.NewPasswordHasher(), jwtService,
		config.AuthConfig{MaxLoginAttempts: 3, LockoutDuration: 0},
		config.SeedConfig{AdminUsername: "admin", AdminEmail: "admin@office.com", AdminPassword: "admin123"},
		zap.NewNop(),
	)
	return authFixture{svc: svc, users: users, employees: employees, cache: cache, audit: audit}
}

func (f authFixture) register(t *testing.T, username, email, password string) dto.UserDTO {
	t.Helper()
	user, err := f.svc.Register(context.Background(), dto.RegisterDTO{
		Username: username,
		Email:    email,
		Password: password,
	}, MutationContext{})
	require.NoError(t, err)
	return *user
}

func TestRegisterHashesPasswordAndWritesAudit(t *testing.T) {
	f := newAuthFixture(t)

	user := f.register(t, "ivan", "ivan@office.com", "secret123")
	assert.Equal(t, entities.RoleUser, user.Role)

	stored := f.users.items[user.ID]
	assert.NotEqual(t, "secret123", stored.PasswordHash)
	assert.NotEmpty(t, stored.PasswordHash)

	require.Len(t, f.audit.entries, 1)
	assert.Equal(t, entities.AuditActionCreate, f.audit.entries[0].Action)
	assert.Equal(t, "User", f.audit.entries[0].EntityType)
}

func TestRegisterDuplicateUsernameAndEmailConflict(t *testing.T) {
	f := newAuthFixture(t)
	f.register(t, "ivan", "ivan@office.com", "secret123")

	var httpErr *apperrors.HttpError

	_, err := f.svc.Register(context.Background(), dto.RegisterDTO{
		Username: "ivan", Email: "other@office.com", Password: "secret123",
	}, MutationContext{})
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusConflict, httpErr.Code)

	_, err = f.svc.Register(context.Background(), dto.RegisterDTO{
		Username: "petr", Email: "ivan@office.com", Password: "secret123",
	}, MutationContext{})
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusConflict, httpErr.Code)
}

func TestLoginSuccessIssuesTokenAndResetsAttempts(t *testing.T) {
	f := newAuthFixture(t)
	f.register(t, "ivan", "ivan@office.com", "secret123")
	f.cache.attempts["ivan"] = 2

	response, err := f.svc.Login(context.Background(), dto.LoginDTO{Username: "ivan", Password: "secret123"})
	require.NoError(t, err)

	assert.NotEmpty(t, response.Token)
	assert.Equal(t, "ivan", response.User.Username)
	assert.Zero(t, f.cache.attempts["ivan"])

	stored, err := f.users.FindByUsername(context.Background(), nil, "ivan")
	require.NoError(t, err)
	assert.NotNil(t, stored.LastLoginAt)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	f := newAuthFixture(t)
	f.register(t, "ivan", "ivan@office.com", "secret123")

	_, errUnknown := f.svc.Login(context.Background(), dto.LoginDTO{Username: "nobody", Password: "secret123"})
	_, errWrongPass := f.svc.Login(context.Background(), dto.LoginDTO{Username: "ivan", Password: "wrong"})

	assert.ErrorIs(t, errUnknown, apperrors.ErrInvalidCredentials)
	assert.ErrorIs(t, errWrongPass, apperrors.ErrInvalidCredentials)
	assert.Equal(t, errUnknown.Error(), errWrongPass.Error())
}

func TestLoginLockoutAfterMaxAttempts(t *testing.T) {
	f := newAuthFixture(t)
	f.register(t, "ivan", "ivan@office.com", "secret123")

	for i := 0; i < 3; i++ {
		_, err := f.svc.Login(context.Background(), dto.LoginDTO{Username: "ivan", Password: "wrong"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	}

	// Четвёртая попытка блокируется даже с верным паролем.
	_, err := f.svc.Login(context.Background(), dto.LoginDTO{Username: "ivan", Password: "secret123"})
	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusTooManyRequests, httpErr.Code)
}

func TestLoginResolvesLinkedEmployee(t *testing.T) {
	f := newAuthFixture(t)
	user := f.register(t, "ivan", "ivan@office.com", "secret123")

	f.employees.items[uuid.New()] = entities.Employee{
		ID:        uuid.New(),
		FirstName: "Иван",
		LastName:  "Иванов",
		Position:  "Инженер",
		UserID:    &user.ID,
	}

	response, err := f.svc.Login(context.Background(), dto.LoginDTO{Username: "ivan", Password: "secret123"})
	require.NoError(t, err)
	require.NotNil(t, response.User.Employee)
	assert.Equal(t, "Иванов", response.User.Employee.LastName)
}

func TestEnsureDefaultAdminIsIdempotent(t *testing.T) {
	f := newAuthFixture(t)

	require.NoError(t, f.svc.EnsureDefaultAdmin(context.Background()))
	require.Len(t, f.users.items, 1)

	require.NoError(t, f.svc.EnsureDefaultAdmin(context.Background()))
	require.Len(t, f.users.items, 1)

	admin, err := f.users.FindByUsername(context.Background(), nil, "admin")
	require.NoError(t, err)
	assert.Equal(t, entities.RoleAdmin, admin.Role)
	// Сид — системное действие, аудит не пишется.
	assert.Empty(t, f.audit.entries)

	response, err := f.svc.Login(context.Background(), dto.LoginDTO{Username: "admin", Password: "admin123"})
	require.NoError(t, err)
	assert.Equal(t, entities.RoleAdmin, response.User.Role)
}
