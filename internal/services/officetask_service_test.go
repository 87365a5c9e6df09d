package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/AntonZhikin/OfficeDepartment/internal/dto"
	"github.com/AntonZhikin/OfficeDepartment/internal/entities"
	apperrors "github.com/AntonZhikin/OfficeDepartment/pkg/errors"
)

func mustParseTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return parsed
}

type taskFixture struct {
	svc       OfficeTaskServiceInterface
	tasks     *memOfficeTasks
	employees *memEmployees
	audit     *fakeAudit
}

func newTaskFixture() taskFixture {
	tasks := newMemOfficeTasks()
	branches := newMemBranchOffices()
	departments := newMemDepartments()
	employees := newMemEmployees()
	audit := &fakeAudit{}
	svc := NewOfficeTaskService(nil, tasks, branches, departments, employees, fakeTxManager{}, audit, zap.NewNop())
	return taskFixture{svc: svc, tasks: tasks, employees: employees, audit: audit}
}

func updateDTOFromTask(task *entities.OfficeTask, status entities.TaskStatus) dto.UpdateOfficeTaskDTO {
	updateDTO := dto.UpdateOfficeTaskDTO{
		Title:              task.Title,
		Description:        task.Description,
		Status:             int16(status),
		Priority:           int16(task.Priority),
		BranchOfficeID:     task.BranchOfficeID,
		DepartmentID:       task.DepartmentID,
		AssignedEmployeeID: task.AssignedEmployeeID,
	}
	if task.DueDate != nil {
		updateDTO.DueDate = null.TimeFrom(*task.DueDate)
	}
	return updateDTO
}

func TestOfficeTaskCreateStartsPending(t *testing.T) {
	f := newTaskFixture()

	task, err := f.svc.Create(context.Background(), dto.CreateOfficeTaskDTO{
		Title:    "Настроить сеть",
		Priority: int16(entities.TaskPriorityHigh),
		DueDate:  null.TimeFrom(mustParseTime(t, "2026-09-15T12:00:00+05:00")),
	}, MutationContext{})
	require.NoError(t, err)

	assert.Equal(t, entities.TaskStatusPending, task.Status)
	assert.Nil(t, task.CompletedAt)
	require.NotNil(t, task.DueDate)
	assert.Equal(t, time.UTC, task.DueDate.Location())
}

func TestOfficeTaskCompletedAtSetOnceOnFirstCompletion(t *testing.T) {
	f := newTaskFixture()

	task, err := f.svc.Create(context.Background(), dto.CreateOfficeTaskDTO{Title: "Задача"}, MutationContext{})
	require.NoError(t, err)

	completed, err := f.svc.Update(context.Background(), task.ID, updateDTOFromTask(task, entities.TaskStatusCompleted), MutationContext{})
	require.NoError(t, err)
	require.NotNil(t, completed.CompletedAt)
	firstCompletion := *completed.CompletedAt

	// Уход из Completed и возврат не переписывают completed_at.
	reopened, err := f.svc.Update(context.Background(), task.ID, updateDTOFromTask(completed, entities.TaskStatusInProgress), MutationContext{})
	require.NoError(t, err)
	require.NotNil(t, reopened.CompletedAt)
	assert.Equal(t, firstCompletion, *reopened.CompletedAt)

	recompleted, err := f.svc.Update(context.Background(), task.ID, updateDTOFromTask(reopened, entities.TaskStatusCompleted), MutationContext{})
	require.NoError(t, err)
	assert.Equal(t, firstCompletion, *recompleted.CompletedAt)
}

func TestOfficeTaskUpdateRejectsInvalidStatus(t *testing.T) {
	f := newTaskFixture()

	task, err := f.svc.Create(context.Background(), dto.CreateOfficeTaskDTO{Title: "Задача"}, MutationContext{})
	require.NoError(t, err)

	updateDTO := updateDTOFromTask(task, entities.TaskStatusPending)
	updateDTO.Status = 42

	_, err = f.svc.Update(context.Background(), task.ID, updateDTO, MutationContext{})
	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	assert.Len(t, f.audit.entries, 1)
}

func TestOfficeTaskCreateUnknownAssigneeRejected(t *testing.T) {
	f := newTaskFixture()

	missing := uuid.New()
	_, err := f.svc.Create(context.Background(), dto.CreateOfficeTaskDTO{
		Title:              "Задача",
		AssignedEmployeeID: &missing,
	}, MutationContext{})

	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	assert.Empty(t, f.tasks.items)
}

func TestOfficeTaskUpdateClearsDueDate(t *testing.T) {
	f := newTaskFixture()

	task, err := f.svc.Create(context.Background(), dto.CreateOfficeTaskDTO{
		Title:   "Задача",
		DueDate: null.TimeFrom(time.Now()),
	}, MutationContext{})
	require.NoError(t, err)
	require.NotNil(t, task.DueDate)

	updateDTO := updateDTOFromTask(task, entities.TaskStatusPending)
	updateDTO.DueDate = null.Time{}

	updated, err := f.svc.Update(context.Background(), task.ID, updateDTO, MutationContext{})
	require.NoError(t, err)
	assert.Nil(t, updated.DueDate)
}
