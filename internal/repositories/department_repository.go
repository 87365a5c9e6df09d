package repositories

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/AntonZhikin/OfficeDepartment/internal/dto"
	"github.com/AntonZhikin/OfficeDepartment/internal/entities"
	apperrors "github.com/AntonZhikin/OfficeDepartment/pkg/errors"
	"github.com/AntonZhikin/OfficeDepartment/pkg/types"
)

var departmentColumns = []string{
	"id", "name", "description", "head_office_id", "manager_id",
	"created_at", "updated_at",
}

var departmentListSpec = ListSpec{
	Table:         "departments",
	Columns:       departmentColumns,
	SearchColumns: []string{"name", "description"},
	FilterMap: map[string]string{
		"headOfficeId": "head_office_id",
	},
	SortBy: "name ASC",
}

type DepartmentRepositoryInterface interface {
	FindByID(ctx context.Context, q Querier, id uuid.UUID) (*entities.Department, error)
	List(ctx context.Context, q Querier, filter types.Filter) ([]entities.Department, error)
	ListShortByHeadOffice(ctx context.Context, q Querier, headOfficeID uuid.UUID) ([]dto.ShortDepartmentDTO, error)
	Insert(ctx context.Context, q Querier, department *entities.Department) error
	Update(ctx context.Context, q Querier, department *entities.Department) error
	Delete(ctx context.Context, q Querier, id uuid.UUID) error
	Exists(ctx context.Context, q Querier, id uuid.UUID) (bool, error)
}

type DepartmentRepository struct{}

func NewDepartmentRepository() DepartmentRepositoryInterface {
	return &DepartmentRepository{}
}

func scanDepartment(row pgx.Row) (*entities.Department, error) {
	var d entities.Department
	err := row.Scan(
		&d.ID, &d.Name, &d.Description, &d.HeadOfficeID, &d.ManagerID,
		&d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DepartmentRepository) FindByID(ctx context.Context, q Querier, id uuid.UUID) (*entities.Department, error) {
	query, args, err := psql.Select(departmentColumns...).
		From("departments").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка при сборке запроса departments: %w", err)
	}

	department, err := scanDepartment(q.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка при поиске отдела: %w", err)
	}
	return department, nil
}

func (r *DepartmentRepository) List(ctx context.Context, q Querier, filter types.Filter) ([]entities.Department, error) {
	return queryList(ctx, q, departmentListSpec, filter, func(row pgx.CollectableRow) (entities.Department, error) {
		d, err := scanDepartment(row)
		if err != nil {
			return entities.Department{}, err
		}
		return *d, nil
	})
}

func (r *DepartmentRepository) ListShortByHeadOffice(ctx context.Context, q Querier, headOfficeID uuid.UUID) ([]dto.ShortDepartmentDTO, error) {
	rows, err := q.Query(ctx,
		"SELECT id, name FROM departments WHERE head_office_id = $1 ORDER BY name",
		headOfficeID,
	)
	if err != nil {
		return nil, fmt.Errorf("ошибка при выборке отделов офиса: %w", err)
	}
	defer rows.Close()

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (dto.ShortDepartmentDTO, error) {
		var d dto.ShortDepartmentDTO
		err := row.Scan(&d.ID, &d.Name)
		return d, err
	})
}

func (r *DepartmentRepository) Insert(ctx context.Context, q Querier, department *entities.Department) error {
	query, args, err := psql.Insert("departments").
		Columns(departmentColumns...).
		Values(
			department.ID, department.Name, department.Description,
			department.HeadOfficeID, department.ManagerID,
			department.CreatedAt, department.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("ошибка при сборке insert departments: %w", err)
	}

	if _, err := q.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("ошибка при создании отдела: %w", err)
	}
	return nil
}

func (r *DepartmentRepository) Update(ctx context.Context, q Querier, department *entities.Department) error {
	query, args, err := psql.Update("departments").
		Set("name", department.Name).
		Set("description", department.Description).
		Set("head_office_id", department.HeadOfficeID).
		Set("manager_id", department.ManagerID).
		Set("updated_at", department.UpdatedAt).
		Where(sq.Eq{"id": department.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("ошибка при сборке update departments: %w", err)
	}

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении отдела: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *DepartmentRepository) Delete(ctx context.Context, q Querier, id uuid.UUID) error {
	query, args, err := psql.Delete("departments").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("ошибка при сборке delete departments: %w", err)
	}

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("ошибка при удалении отдела: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *DepartmentRepository) Exists(ctx context.Context, q Querier, id uuid.UUID) (bool, error) {
	var exists bool
	err := q.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM departments WHERE id = $1)", id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("ошибка при проверке отдела: %w", err)
	}
	return exists, nil
}
