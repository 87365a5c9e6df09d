package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/AntonZhikin/OfficeDepartment/internal/dto"
	"github.com/AntonZhikin/OfficeDepartment/internal/entities"
	"github.com/AntonZhikin/OfficeDepartment/internal/repositories"
	apperrors "github.com/AntonZhikin/OfficeDepartment/pkg/errors"
	"github.com/AntonZhikin/OfficeDepartment/pkg/types"
)

// Фейки для тестов сервисов: всё в памяти, Querier игнорируется.

type fakeTxManager struct{}

func (fakeTxManager) RunInTransaction(_ context.Context, fn func(q repositories.Querier) error) error {
	return fn(nil)
}

type auditEntry struct {
	Action     string
	EntityType string
	EntityID   *uuid.UUID
	ActorID    *uuid.UUID
	Old        interface{}
	New        interface{}
	IP         *string
}

type fakeAudit struct {
	entries []auditEntry
}

func (f *fakeAudit) Record(_ context.Context, _ repositories.Querier, action, entityType string, entityID, actorID *uuid.UUID, oldValue, newValue interface{}, ip *string) error {
	f.entries = append(f.entries, auditEntry{
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		ActorID:    actorID,
		Old:        oldValue,
		New:        newValue,
		IP:         ip,
	})
	return nil
}

type memHeadOffices struct {
	items      map[uuid.UUID]entities.HeadOffice
	dependents map[uuid.UUID]bool
}

func newMemHeadOffices() *memHeadOffices {
	return &memHeadOffices{
		items:      make(map[uuid.UUID]entities.HeadOffice),
		dependents: make(map[uuid.UUID]bool),
	}
}

func (m *memHeadOffices) FindByID(_ context.Context, _ repositories.Querier, id uuid.UUID) (*entities.HeadOffice, error) {
	o, ok := m.items[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &o, nil
}

func (m *memHeadOffices) List(_ context.Context, _ repositories.Querier, _ types.Filter) ([]entities.HeadOffice, error) {
	out := make([]entities.HeadOffice, 0, len(m.items))
	for _, o := range m.items {
		out = append(out, o)
	}
	return out, nil
}

func (m *memHeadOffices) Insert(_ context.Context, _ repositories.Querier, o *entities.HeadOffice) error {
	m.items[o.ID] = *o
	return nil
}

func (m *memHeadOffices) Update(_ context.Context, _ repositories.Querier, o *entities.HeadOffice) error {
	if _, ok := m.items[o.ID]; !ok {
		return apperrors.ErrNotFound
	}
	m.items[o.ID] = *o
	return nil
}

func (m *memHeadOffices) Delete(_ context.Context, _ repositories.Querier, id uuid.UUID) error {
	if _, ok := m.items[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *memHeadOffices) Exists(_ context.Context, _ repositories.Querier, id uuid.UUID) (bool, error) {
	_, ok := m.items[id]
	return ok, nil
}

func (m *memHeadOffices) HasDependents(_ context.Context, _ repositories.Querier, id uuid.UUID) (bool, error) {
	return m.dependents[id], nil
}

type memBranchOffices struct {
	items map[uuid.UUID]entities.BranchOffice
}

func newMemBranchOffices() *memBranchOffices {
	return &memBranchOffices{items: make(map[uuid.UUID]entities.BranchOffice)}
}

func (m *memBranchOffices) FindByID(_ context.Context, _ repositories.Querier, id uuid.UUID) (*entities.BranchOffice, error) {
	o, ok := m.items[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &o, nil
}

func (m *memBranchOffices) List(_ context.Context, _ repositories.Querier, _ types.Filter) ([]entities.BranchOffice, error) {
	out := make([]entities.BranchOffice, 0, len(m.items))
	for _, o := range m.items {
		out = append(out, o)
	}
	return out, nil
}

func (m *memBranchOffices) ListShortByHeadOffice(_ context.Context, _ repositories.Querier, headOfficeID uuid.UUID) ([]dto.ShortBranchOfficeDTO, error) {
	var out []dto.ShortBranchOfficeDTO
	for _, o := range m.items {
		if o.HeadOfficeID == headOfficeID {
			out = append(out, dto.ShortBranchOfficeDTO{ID: o.ID, Name: o.Name, City: o.City})
		}
	}
	return out, nil
}

func (m *memBranchOffices) Insert(_ context.Context, _ repositories.Querier, o *entities.BranchOffice) error {
	m.items[o.ID] = *o
	return nil
}

func (m *memBranchOffices) Update(_ context.Context, _ repositories.Querier, o *entities.BranchOffice) error {
	if _, ok := m.items[o.ID]; !ok {
		return apperrors.ErrNotFound
	}
	m.items[o.ID] = *o
	return nil
}

func (m *memBranchOffices) Delete(_ context.Context, _ repositories.Querier, id uuid.UUID) error {
	if _, ok := m.items[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *memBranchOffices) Exists(_ context.Context, _ repositories.Querier, id uuid.UUID) (bool, error) {
	_, ok := m.items[id]
	return ok, nil
}

type memDepartments struct {
	items map[uuid.UUID]entities.Department
}

func newMemDepartments() *memDepartments {
	return &memDepartments{items: make(map[uuid.UUID]entities.Department)}
}

func (m *memDepartments) FindByID(_ context.Context, _ repositories.Querier, id uuid.UUID) (*entities.Department, error) {
	d, ok := m.items[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &d, nil
}

func (m *memDepartments) List(_ context.Context, _ repositories.Querier, _ types.Filter) ([]entities.Department, error) {
	out := make([]entities.Department, 0, len(m.items))
	for _, d := range m.items {
		out = append(out, d)
	}
	return out, nil
}

func (m *memDepartments) ListShortByHeadOffice(_ context.Context, _ repositories.Querier, headOfficeID uuid.UUID) ([]dto.ShortDepartmentDTO, error) {
	var out []dto.ShortDepartmentDTO
	for _, d := range m.items {
		if d.HeadOfficeID == headOfficeID {
			out = append(out, dto.ShortDepartmentDTO{ID: d.ID, Name: d.Name})
		}
	}
	return out, nil
}

func (m *memDepartments) Insert(_ context.Context, _ repositories.Querier, d *entities.Department) error {
	m.items[d.ID] = *d
	return nil
}

func (m *memDepartments) Update(_ context.Context, _ repositories.Querier, d *entities.Department) error {
	if _, ok := m.items[d.ID]; !ok {
		return apperrors.ErrNotFound
	}
	m.items[d.ID] = *d
	return nil
}

func (m *memDepartments) Delete(_ context.Context, _ repositories.Querier, id uuid.UUID) error {
	if _, ok := m.items[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *memDepartments) Exists(_ context.Context, _ repositories.Querier, id uuid.UUID) (bool, error) {
	_, ok := m.items[id]
	return ok, nil
}

type memEmployees struct {
	items map[uuid.UUID]entities.Employee
}

func newMemEmployees() *memEmployees {
	return &memEmployees{items: make(map[uuid.UUID]entities.Employee)}
}

func (m *memEmployees) FindByID(_ context.Context, _ repositories.Querier, id uuid.UUID) (*entities.Employee, error) {
	e, ok := m.items[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &e, nil
}

func (m *memEmployees) FindByUserID(_ context.Context, _ repositories.Querier, userID uuid.UUID) (*entities.Employee, error) {
	for _, e := range m.items {
		if e.UserID != nil && *e.UserID == userID {
			out := e
			return &out, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (m *memEmployees) List(_ context.Context, _ repositories.Querier, _ types.Filter) ([]entities.Employee, error) {
	out := make([]entities.Employee, 0, len(m.items))
	for _, e := range m.items {
		out = append(out, e)
	}
	return out, nil
}

func (m *memEmployees) Insert(_ context.Context, _ repositories.Querier, e *entities.Employee) error {
	m.items[e.ID] = *e
	return nil
}

func (m *memEmployees) Update(_ context.Context, _ repositories.Querier, e *entities.Employee) error {
	if _, ok := m.items[e.ID]; !ok {
		return apperrors.ErrNotFound
	}
	m.items[e.ID] = *e
	return nil
}

func (m *memEmployees) Delete(_ context.Context, _ repositories.Querier, id uuid.UUID) error {
	if _, ok := m.items[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *memEmployees) Exists(_ context.Context, _ repositories.Querier, id uuid.UUID) (bool, error) {
	_, ok := m.items[id]
	return ok, nil
}

type memOfficeTasks struct {
	items map[uuid.UUID]entities.OfficeTask
}

func newMemOfficeTasks() *memOfficeTasks {
	return &memOfficeTasks{items: make(map[uuid.UUID]entities.OfficeTask)}
}

func (m *memOfficeTasks) FindByID(_ context.Context, _ repositories.Querier, id uuid.UUID) (*entities.OfficeTask, error) {
	t, ok := m.items[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &t, nil
}

func (m *memOfficeTasks) List(_ context.Context, _ repositories.Querier, _ types.Filter) ([]entities.OfficeTask, error) {
	out := make([]entities.OfficeTask, 0, len(m.items))
	for _, t := range m.items {
		out = append(out, t)
	}
	return out, nil
}

func (m *memOfficeTasks) Insert(_ context.Context, _ repositories.Querier, t *entities.OfficeTask) error {
	m.items[t.ID] = *t
	return nil
}

func (m *memOfficeTasks) Update(_ context.Context, _ repositories.Querier, t *entities.OfficeTask) error {
	if _, ok := m.items[t.ID]; !ok {
		return apperrors.ErrNotFound
	}
	m.items[t.ID] = *t
	return nil
}

func (m *memOfficeTasks) Delete(_ context.Context, _ repositories.Querier, id uuid.UUID) error {
	if _, ok := m.items[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

type memUsers struct {
	items map[uuid.UUID]entities.User
}

func newMemUsers() *memUsers {
	return &memUsers{items: make(map[uuid.UUID]entities.User)}
}

func (m *memUsers) FindByID(_ context.Context, _ repositories.Querier, id uuid.UUID) (*entities.User, error) {
	u, ok := m.items[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &u, nil
}

func (m *memUsers) FindByUsername(_ context.Context, _ repositories.Querier, username string) (*entities.User, error) {
	for _, u := range m.items {
		if u.Username == username {
			out := u
			return &out, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (m *memUsers) ExistsByUsername(_ context.Context, _ repositories.Querier, username string) (bool, error) {
	for _, u := range m.items {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (m *memUsers) ExistsByEmail(_ context.Context, _ repositories.Querier, email string) (bool, error) {
	for _, u := range m.items {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *memUsers) Insert(_ context.Context, _ repositories.Querier, u *entities.User) error {
	m.items[u.ID] = *u
	return nil
}

func (m *memUsers) Delete(_ context.Context, _ repositories.Querier, id uuid.UUID) error {
	if _, ok := m.items[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *memUsers) UpdateLastLogin(_ context.Context, _ repositories.Querier, id uuid.UUID, at time.Time) error {
	u, ok := m.items[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	u.LastLoginAt = &at
	m.items[id] = u
	return nil
}

type memCache struct {
	attempts map[string]int
}

func newMemCache() *memCache {
	return &memCache{attempts: make(map[string]int)}
}

func (m *memCache) GetLoginAttempts(_ context.Context, username string) (int, error) {
	return m.attempts[username], nil
}

func (m *memCache) IncrementLoginAttempts(_ context.Context, username string, _ time.Duration) (int, error) {
	m.attempts[username]++
	return m.attempts[username], nil
}

func (m *memCache) ResetLoginAttempts(_ context.Context, username string) error {
	delete(m.attempts, username)
	return nil
}
