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

var headOfficeColumns = []string{
	"id", "name", "address", "city", "country",
	"phone_number", "email", "created_at", "updated_at",
}

var headOfficeListSpec = ListSpec{
	Table:         "head_offices",
	Columns:       headOfficeColumns,
	SearchColumns: []string{"name", "city", "country"},
	FilterMap: map[string]string{
		"city":    "city",
		"country": "country",
	},
	SortBy: "name ASC",
}

type HeadOfficeRepositoryInterface interface {
	FindByID(ctx context.Context, q Querier, id uuid.UUID) (*entities.HeadOffice, error)
	List(ctx context.Context, q Querier, filter types.Filter) ([]entities.HeadOffice, error)
	Insert(ctx context.Context, q Querier, office *entities.HeadOffice) error
	Update(ctx context.Context, q Querier, office *entities.HeadOffice) error
	Delete(ctx context.Context, q Querier, id uuid.UUID) error
	Exists(ctx context.Context, q Querier, id uuid.UUID) (bool, error)
	HasDependents(ctx context.Context, q Querier, id uuid.UUID) (bool, error)
}

type HeadOfficeRepository struct{}

func NewHeadOfficeRepository() HeadOfficeRepositoryInterface {
	return &HeadOfficeRepository{}
}

func scanHeadOffice(row pgx.Row) (*entities.HeadOffice, error) {
	var o entities.HeadOffice
	err := row.Scan(
		&o.ID, &o.Name, &o.Address, &o.City, &o.Country,
		&o.PhoneNumber, &o.Email, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *HeadOfficeRepository) FindByID(ctx context.Context, q Querier, id uuid.UUID) (*entities.HeadOffice, error) {
	query, args, err := psql.Select(headOfficeColumns...).
		From("head_offices").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка при сборке запроса head_offices: %w", err)
	}

	office, err := scanHeadOffice(q.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка при поиске головного офиса: %w", err)
	}
	return office, nil
}

func (r *HeadOfficeRepository) List(ctx context.Context, q Querier, filter types.Filter) ([]entities.HeadOffice, error) {
	return queryList(ctx, q, headOfficeListSpec, filter, func(row pgx.CollectableRow) (entities.HeadOffice, error) {
		o, err := scanHeadOffice(row)
		if err != nil {
			return entities.HeadOffice{}, err
		}
		return *o, nil
	})
}

func (r *HeadOfficeRepository) Insert(ctx context.Context, q Querier, office *entities.HeadOffice) error {
	query, args, err := psql.Insert("head_offices").
		Columns(headOfficeColumns...).
		Values(
			office.ID, office.Name, office.Address, office.City, office.Country,
			office.PhoneNumber, office.Email, office.CreatedAt, office.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("ошибка при сборке insert head_offices: %w", err)
	}

	if _, err := q.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("ошибка при создании головного офиса: %w", err)
	}
	return nil
}

func (r *HeadOfficeRepository) Update(ctx context.Context, q Querier, office *entities.HeadOffice) error {
	query, args, err := psql.Update("head_offices").
		Set("name", office.Name).
		Set("address", office.Address).
		Set("city", office.City).
		Set("country", office.Country).
		Set("phone_number", office.PhoneNumber).
		Set("email", office.Email).
		Set("updated_at", office.UpdatedAt).
		Where(sq.Eq{"id": office.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("ошибка при сборке update head_offices: %w", err)
	}

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении головного офиса: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *HeadOfficeRepository) Delete(ctx context.Context, q Querier, id uuid.UUID) error {
	query, args, err := psql.Delete("head_offices").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("ошибка при сборке delete head_offices: %w", err)
	}

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("ошибка при удалении головного офиса: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *HeadOfficeRepository) Exists(ctx context.Context, q Querier, id uuid.UUID) (bool, error) {
	var exists bool
	err := q.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM head_offices WHERE id = $1)", id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("ошибка при проверке головного офиса: %w", err)
	}
	return exists, nil
}

// HasDependents — есть ли у офиса филиалы или отделы. Пока они есть,
// удаление запрещено.
func (r *HeadOfficeRepository) HasDependents(ctx context.Context, q Querier, id uuid.UUID) (bool, error) {
	var has bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM branch_offices WHERE head_office_id = $1)
		     OR EXISTS(SELECT 1 FROM departments WHERE head_office_id = $1)`,
		id,
	).Scan(&has)
	if err != nil {
		return false, fmt.Errorf("ошибка при проверке зависимостей головного офиса: %w", err)
	}
	return has, nil
}
