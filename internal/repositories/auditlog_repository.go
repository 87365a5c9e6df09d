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

var auditLogColumns = []string{
	"id", "action", "entity_type", "entity_id", "user_id",
	"old_values", "new_values", "timestamp", "ip_address",
}

type AuditLogRepositoryInterface interface {
	Insert(ctx context.Context, q Querier, log *entities.AuditLog) error
	FindByID(ctx context.Context, q Querier, id uuid.UUID) (*entities.AuditLog, error)
	List(ctx context.Context, q Querier, filter types.Filter) ([]entities.AuditLog, error)
	ListAll(ctx context.Context, q Querier) ([]entities.AuditLog, error)
}

type AuditLogRepository struct{}

func NewAuditLogRepository() AuditLogRepositoryInterface {
	return &AuditLogRepository{}
}

func scanAuditLog(row pgx.Row) (*entities.AuditLog, error) {
	var l entities.AuditLog
	err := row.Scan(
		&l.ID, &l.Action, &l.EntityType, &l.EntityID, &l.UserID,
		&l.OldValues, &l.NewValues, &l.Timestamp, &l.IPAddress,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *AuditLogRepository) Insert(ctx context.Context, q Querier, log *entities.AuditLog) error {
	query, args, err := psql.Insert("audit_logs").
		Columns(auditLogColumns...).
		Values(
			log.ID, log.Action, log.EntityType, log.EntityID, log.UserID,
			log.OldValues, log.NewValues, log.Timestamp, log.IPAddress,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("ошибка при сборке insert audit_logs: %w", err)
	}

	if _, err := q.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("ошибка при записи журнала аудита: %w", err)
	}
	return nil
}

func (r *AuditLogRepository) FindByID(ctx context.Context, q Querier, id uuid.UUID) (*entities.AuditLog, error) {
	query, args, err := psql.Select(auditLogColumns...).
		From("audit_logs").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка при сборке запроса audit_logs: %w", err)
	}

	log, err := scanAuditLog(q.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка при поиске записи аудита: %w", err)
	}
	return log, nil
}

// List — страница журнала, новые записи первыми.
func (r *AuditLogRepository) List(ctx context.Context, q Querier, filter types.Filter) ([]entities.AuditLog, error) {
	filter.Normalize()

	query, args, err := psql.Select(auditLogColumns...).
		From("audit_logs").
		OrderBy("timestamp DESC").
		Limit(uint64(filter.PageSize)).
		Offset(uint64(filter.Offset())).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка при сборке запроса audit_logs: %w", err)
	}

	return r.collect(ctx, q, query, args)
}

// ListAll возвращает весь журнал для выгрузки в отчёт.
func (r *AuditLogRepository) ListAll(ctx context.Context, q Querier) ([]entities.AuditLog, error) {
	query, args, err := psql.Select(auditLogColumns...).
		From("audit_logs").
		OrderBy("timestamp DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка при сборке запроса audit_logs: %w", err)
	}

	return r.collect(ctx, q, query, args)
}

func (r *AuditLogRepository) collect(ctx context.Context, q Querier, query string, args []any) ([]entities.AuditLog, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка при выборке журнала аудита: %w", err)
	}
	defer rows.Close()

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (entities.AuditLog, error) {
		l, err := scanAuditLog(row)
		if err != nil {
			return entities.AuditLog{}, err
		}
		return *l, nil
	})
}
