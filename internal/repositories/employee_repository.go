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

var employeeColumns = []string{
	"id", "first_name", "last_name", "email", "phone_number", "position",
	"branch_office_id", "department_id", "user_id", "hire_date",
	"created_at", "updated_at",
}

var employeeListSpec = ListSpec{
	Table:         "employees",
	Columns:       employeeColumns,
	SearchColumns: []string{"first_name", "last_name", "email"},
	FilterMap: map[string]string{
		"branchOfficeId": "branch_office_id",
		"departmentId":   "department_id",
		"position":       "position",
	},
	SortBy: "last_name ASC, first_name ASC",
}

type EmployeeRepositoryInterface interface {
	FindByID(ctx context.Context, q Querier, id uuid.UUID) (*entities.Employee, error)
	FindByUserID(ctx context.Context, q Querier, userID uuid.UUID) (*entities.Employee, error)
	List(ctx context.Context, q Querier, filter types.Filter) ([]entities.Employee, error)
	Insert(ctx context.Context, q Querier, employee *entities.Employee) error
	Update(ctx context.Context, q Querier, employee *entities.Employee) error
	Delete(ctx context.Context, q Querier, id uuid.UUID) error
	Exists(ctx context.Context, q Querier, id uuid.UUID) (bool, error)
}

type EmployeeRepository struct{}

func NewEmployeeRepository() EmployeeRepositoryInterface {
	return &EmployeeRepository{}
}

func scanEmployee(row pgx.Row) (*entities.Employee, error) {
	var e entities.Employee
	err := row.Scan(
		&e.ID, &e.FirstName, &e.LastName, &e.Email, &e.PhoneNumber, &e.Position,
		&e.BranchOfficeID, &e.DepartmentID, &e.UserID, &e.HireDate,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EmployeeRepository) findOne(ctx context.Context, q Querier, pred sq.Eq) (*entities.Employee, error) {
	query, args, err := psql.Select(employeeColumns...).
		From("employees").
		Where(pred).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка при сборке запроса employees: %w", err)
	}

	employee, err := scanEmployee(q.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка при поиске сотрудника: %w", err)
	}
	return employee, nil
}

func (r *EmployeeRepository) FindByID(ctx context.Context, q Querier, id uuid.UUID) (*entities.Employee, error) {
	return r.findOne(ctx, q, sq.Eq{"id": id})
}

func (r *EmployeeRepository) FindByUserID(ctx context.Context, q Querier, userID uuid.UUID) (*entities.Employee, error) {
	return r.findOne(ctx, q, sq.Eq{"user_id": userID})
}

func (r *EmployeeRepository) List(ctx context.Context, q Querier, filter types.Filter) ([]entities.Employee, error) {
	return queryList(ctx, q, employeeListSpec, filter, func(row pgx.CollectableRow) (entities.Employee, error) {
		e, err := scanEmployee(row)
		if err != nil {
			return entities.Employee{}, err
		}
		return *e, nil
	})
}

func (r *EmployeeRepository) Insert(ctx context.Context, q Querier, employee *entities.Employee) error {
	query, args, err := psql.Insert("employees").
		Columns(employeeColumns...).
		Values(
			employee.ID, employee.FirstName, employee.LastName, employee.Email,
			employee.PhoneNumber, employee.Position,
			employee.BranchOfficeID, employee.DepartmentID, employee.UserID,
			employee.HireDate, employee.CreatedAt, employee.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("ошибка при сборке insert employees: %w", err)
	}

	if _, err := q.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("ошибка при создании сотрудника: %w", err)
	}
	return nil
}

func (r *EmployeeRepository) Update(ctx context.Context, q Querier, employee *entities.Employee) error {
	query, args, err := psql.Update("employees").
		Set("first_name", employee.FirstName).
		Set("last_name", employee.LastName).
		Set("email", employee.Email).
		Set("phone_number", employee.PhoneNumber).
		Set("position", employee.Position).
		Set("branch_office_id", employee.BranchOfficeID).
		Set("department_id", employee.DepartmentID).
		Set("updated_at", employee.UpdatedAt).
		Where(sq.Eq{"id": employee.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("ошибка при сборке update employees: %w", err)
	}

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении сотрудника: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *EmployeeRepository) Delete(ctx context.Context, q Querier, id uuid.UUID) error {
	query, args, err := psql.Delete("employees").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("ошибка при сборке delete employees: %w", err)
	}

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("ошибка при удалении сотрудника: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *EmployeeRepository) Exists(ctx context.Context, q Querier, id uuid.UUID) (bool, error) {
	var exists bool
	err := q.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM employees WHERE id = $1)", id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("ошибка при проверке сотрудника: %w", err)
	}
	return exists, nil
}
