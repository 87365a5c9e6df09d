package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/AntonZhikin/OfficeDepartment/internal/entities"
	apperrors "github.com/AntonZhikin/OfficeDepartment/pkg/errors"
)

var userColumns = []string{
	"id", "username", "email", "password_hash", "role", "last_login_at",
	"created_at", "updated_at",
}

type UserRepositoryInterface interface {
	FindByID(ctx context.Context, q Querier, id uuid.UUID) (*entities.User, error)
	FindByUsername(ctx context.Context, q Querier, username string) (*entities.User, error)
	ExistsByUsername(ctx context.Context, q Querier, username string) (bool, error)
	ExistsByEmail(ctx context.Context, q Querier, email string) (bool, error)
	Insert(ctx context.Context, q Querier, user *entities.User) error
	Delete(ctx context.Context, q Querier, id uuid.UUID) error
	UpdateLastLogin(ctx context.Context, q Querier, id uuid.UUID, at time.Time) error
}

type UserRepository struct{}

func NewUserRepository() UserRepositoryInterface {
	return &UserRepository{}
}

func scanUser(row pgx.Row) (*entities.User, error) {
	var u entities.User
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.LastLoginAt,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) findOne(ctx context.Context, q Querier, pred sq.Eq) (*entities.User, error) {
	query, args, err := psql.Select(userColumns...).
		From("users").
		Where(pred).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка при сборке запроса users: %w", err)
	}

	user, err := scanUser(q.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка при поиске пользователя: %w", err)
	}
	return user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, q Querier, id uuid.UUID) (*entities.User, error) {
	return r.findOne(ctx, q, sq.Eq{"id": id})
}

// FindByUsername — точное, регистрозависимое совпадение.
func (r *UserRepository) FindByUsername(ctx context.Context, q Querier, username string) (*entities.User, error) {
	return r.findOne(ctx, q, sq.Eq{"username": username})
}

func (r *UserRepository) ExistsByUsername(ctx context.Context, q Querier, username string) (bool, error) {
	var exists bool
	err := q.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)", username).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("ошибка при проверке имени пользователя: %w", err)
	}
	return exists, nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, q Querier, email string) (bool, error) {
	var exists bool
	err := q.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)", email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("ошибка при проверке email пользователя: %w", err)
	}
	return exists, nil
}

func (r *UserRepository) Insert(ctx context.Context, q Querier, user *entities.User) error {
	query, args, err := psql.Insert("users").
		Columns(userColumns...).
		Values(
			user.ID, user.Username, user.Email, user.PasswordHash, user.Role,
			user.LastLoginAt, user.CreatedAt, user.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("ошибка при сборке insert users: %w", err)
	}

	if _, err := q.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("ошибка при создании пользователя: %w", err)
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, q Querier, id uuid.UUID) error {
	query, args, err := psql.Delete("users").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("ошибка при сборке delete users: %w", err)
	}

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("ошибка при удалении пользователя: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, q Querier, id uuid.UUID, at time.Time) error {
	_, err := q.Exec(ctx, "UPDATE users SET last_login_at = $1 WHERE id = $2", at, id)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении времени входа: %w", err)
	}
	return nil
}
