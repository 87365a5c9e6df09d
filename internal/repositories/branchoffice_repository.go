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

var branchOfficeColumns = []string{
	"id", "name", "address", "city", "country",
	"phone_number", "email", "head_office_id", "created_at", "updated_at",
}

var branchOfficeListSpec = ListSpec{
	Table:         "branch_offices",
	Columns:       branchOfficeColumns,
	SearchColumns: []string{"name", "city"},
	FilterMap: map[string]string{
		"headOfficeId": "head_office_id",
		"city":         "city",
	},
	SortBy: "name ASC",
}

type BranchOfficeRepositoryInterface interface {
	FindByID(ctx context.Context, q Querier, id uuid.UUID) (*entities.BranchOffice, error)
	List(ctx context.Context, q Querier, filter types.Filter) ([]entities.BranchOffice, error)
	ListShortByHeadOffice(ctx context.Context, q Querier, headOfficeID uuid.UUID) ([]dto.ShortBranchOfficeDTO, error)
	Insert(ctx context.Context, q Querier, office *entities.BranchOffice) error
	Update(ctx context.Context, q Querier, office *entities.BranchOffice) error
	Delete(ctx context.Context, q Querier, id uuid.UUID) error
	Exists(ctx context.Context, q Querier, id uuid.UUID) (bool, error)
}

type BranchOfficeRepository struct{}

func NewBranchOfficeRepository() BranchOfficeRepositoryInterface {
	return &BranchOfficeRepository{}
}

func scanBranchOffice(row pgx.Row) (*entities.BranchOffice, error) {
	var o entities.BranchOffice
	err := row.Scan(
		&o.ID, &o.Name, &o.Address, &o.City, &o.Country,
		&o.PhoneNumber, &o.Email, &o.HeadOfficeID, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *BranchOfficeRepository) FindByID(ctx context.Context, q Querier, id uuid.UUID) (*entities.BranchOffice, error) {
	query, args, err := psql.Select(branchOfficeColumns...).
		From("branch_offices").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка при сборке запроса branch_offices: %w", err)
	}

	office, err := scanBranchOffice(q.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка при поиске филиала: %w", err)
	}
	return office, nil
}

func (r *BranchOfficeRepository) List(ctx context.Context, q Querier, filter types.Filter) ([]entities.BranchOffice, error) {
	return queryList(ctx, q, branchOfficeListSpec, filter, func(row pgx.CollectableRow) (entities.BranchOffice, error) {
		o, err := scanBranchOffice(row)
		if err != nil {
			return entities.BranchOffice{}, err
		}
		return *o, nil
	})
}

func (r *BranchOfficeRepository) ListShortByHeadOffice(ctx context.Context, q Querier, headOfficeID uuid.UUID) ([]dto.ShortBranchOfficeDTO, error) {
	rows, err := q.Query(ctx,
		"SELECT id, name, city FROM branch_offices WHERE head_office_id = $1 ORDER BY name",
		headOfficeID,
	)
	if err != nil {
		return nil, fmt.Errorf("ошибка при выборке филиалов офиса: %w", err)
	}
	defer rows.Close()

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (dto.ShortBranchOfficeDTO, error) {
		var b dto.ShortBranchOfficeDTO
		err := row.Scan(&b.ID, &b.Name, &b.City)
		return b, err
	})
}

func (r *BranchOfficeRepository) Insert(ctx context.Context, q Querier, office *entities.BranchOffice) error {
	query, args, err := psql.Insert("branch_offices").
		Columns(branchOfficeColumns...).
		Values(
			office.ID, office.Name, office.Address, office.City, office.Country,
			office.PhoneNumber, office.Email, office.HeadOfficeID, office.CreatedAt, office.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("ошибка при сборке insert branch_offices: %w", err)
	}

	if _, err := q.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("ошибка при создании филиала: %w", err)
	}
	return nil
}

func (r *BranchOfficeRepository) Update(ctx context.Context, q Querier, office *entities.BranchOffice) error {
	query, args, err := psql.Update("branch_offices").
		Set("name", office.Name).
		Set("address", office.Address).
		Set("city", office.City).
		Set("country", office.Country).
		Set("phone_number", office.PhoneNumber).
		Set("email", office.Email).
		Set("head_office_id", office.HeadOfficeID).
		Set("updated_at", office.UpdatedAt).
		Where(sq.Eq{"id": office.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("ошибка при сборке update branch_offices: %w", err)
	}

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении филиала: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *BranchOfficeRepository) Delete(ctx context.Context, q Querier, id uuid.UUID) error {
	query, args, err := psql.Delete("branch_offices").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("ошибка при сборке delete branch_offices: %w", err)
	}

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("ошибка при удалении филиала: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *BranchOfficeRepository) Exists(ctx context.Context, q Querier, id uuid.UUID) (bool, error) {
	var exists bool
	err := q.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM branch_offices WHERE id = $1)", id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("ошибка при проверке филиала: %w", err)
	}
	return exists, nil
}
