package repositories

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/AntonZhikin/OfficeDepartment/internal/entities"
	apperrors "github.com/AntonZhikin/OfficeDepartment/pkg/errors"
	"github.com/AntonZhikin/OfficeDepartment/pkg/types"
)

var officeTaskColumns = []string{
	"id", "title", "description", "status", "priority",
	"branch_office_id", "department_id", "assigned_employee_id",
	"due_date", "completed_at", "created_at", "updated_at",
}

var officeTaskListSpec = ListSpec{
	Table:         "office_tasks",
	Columns:       officeTaskColumns,
	SearchColumns: []string{"title", "description"},
	FilterMap: map[string]string{
		"status":             "status",
		"priority":           "priority",
		"branchOfficeId":     "branch_office_id",
		"assignedEmployeeId": "assigned_employee_id",
	},
	SortBy: "created_at ASC",
}

type OfficeTaskRepositoryInterface interface {
	FindByID(ctx context.Context, q Querier, id uuid.UUID) (*entities.OfficeTask, error)
	List(ctx context.Context, q Querier, filter types.Filter) ([]entities.OfficeTask, error)
	Insert(ctx context.Context, q Querier, task *entities.OfficeTask) error
	Update(ctx context.Context, q Querier, task *entities.OfficeTask) error
	Delete(ctx context.Context, q Querier, id uuid.UUID) error
}

type OfficeTaskRepository struct{}

func NewOfficeTaskRepository() OfficeTaskRepositoryInterface {
	return &OfficeTaskRepository{}
}

func scanOfficeTask(row pgx.Row) (*entities.OfficeTask, error) {
	var t entities.OfficeTask
	err := row.Scan(
		&t.ID, &t.Title, &t.Description, &t.Status, &t.Priority,
		&t.BranchOfficeID, &t.DepartmentID, &t.AssignedEmployeeID,
		&t.DueDate, &t.CompletedAt, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *OfficeTaskRepository) FindByID(ctx context.Context, q Querier, id uuid.UUID) (*entities.OfficeTask, error) {
	query, args, err := psql.Select(officeTaskColumns...).
		From("office_tasks").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка при сборке запроса office_tasks: %w", err)
	}

	task, err := scanOfficeTask(q.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка при поиске задачи: %w", err)
	}
	return task, nil
}

func (r *OfficeTaskRepository) List(ctx context.Context, q Querier, filter types.Filter) ([]entities.OfficeTask, error) {
	return queryList(ctx, q, officeTaskListSpec, filter, func(row pgx.CollectableRow) (entities.OfficeTask, error) {
		t, err := scanOfficeTask(row)
		if err != nil {
			return entities.OfficeTask{}, err
		}
		return *t, nil
	})
}

func (r *OfficeTaskRepository) Insert(ctx context.Context, q Querier, task *entities.OfficeTask) error {
	query, args, err := psql.Insert("office_tasks").
		Columns(officeTaskColumns...).
		Values(
			task.ID, task.Title, task.Description, task.Status, task.Priority,
			task.BranchOfficeID, task.DepartmentID, task.AssignedEmployeeID,
			task.DueDate, task.CompletedAt, task.CreatedAt, task.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("ошибка при сборке insert office_tasks: %w", err)
	}

	if _, err := q.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("ошибка при создании задачи: %w", err)
	}
	return nil
}

func (r *OfficeTaskRepository) Update(ctx context.Context, q Querier, task *entities.OfficeTask) error {
	query, args, err := psql.Update("office_tasks").
		Set("title", task.Title).
		Set("description", task.Description).
		Set("status", task.Status).
		Set("priority", task.Priority).
		Set("branch_office_id", task.BranchOfficeID).
		Set("department_id", task.DepartmentID).
		Set("assigned_employee_id", task.AssignedEmployeeID).
		Set("due_date", task.DueDate).
		Set("completed_at", task.CompletedAt).
		Set("updated_at", task.UpdatedAt).
		Where(sq.Eq{"id": task.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("ошибка при сборке update office_tasks: %w", err)
	}

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении задачи: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *OfficeTaskRepository) Delete(ctx context.Context, q Querier, id uuid.UUID) error {
	query, args, err := psql.Delete("office_tasks").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("ошибка при сборке delete office_tasks: %w", err)
	}

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("ошибка при удалении задачи: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
