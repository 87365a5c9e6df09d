package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// CacheRepository хранит счётчики неудачных входов в Redis.
// Ключ живёт ровно срок блокировки и сбрасывается при успешном входе.
type CacheRepositoryInterface interface {
	GetLoginAttempts(ctx context.Context, username string) (int, error)
	IncrementLoginAttempts(ctx context.Context, username string, ttl time.Duration) (int, error)
	ResetLoginAttempts(ctx context.Context, username string) error
}

type CacheRepository struct {
	client *redis.Client
}

func NewCacheRepository(client *redis.Client) CacheRepositoryInterface {
	return &CacheRepository{client: client}
}

func loginAttemptsKey(username string) string {
	return "login_attempts:" + username
}

func (r *CacheRepository) GetLoginAttempts(ctx context.Context, username string) (int, error) {
	attempts, err := r.client.Get(ctx, loginAttemptsKey(username)).Int()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("ошибка при чтении счётчика входов: %w", err)
	}
	return attempts, nil
}

func (r *CacheRepository) IncrementLoginAttempts(ctx context.Context, username string, ttl time.Duration) (int, error) {
	key := loginAttemptsKey(username)

	attempts, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("ошибка при инкременте счётчика входов: %w", err)
	}
	// TTL выставляется при первой неудаче, дальше окно не продлеваем.
	if attempts == 1 {
		if err := r.client.Expire(ctx, key, ttl).Err(); err != nil {
			return 0, fmt.Errorf("ошибка при установке TTL счётчика входов: %w", err)
		}
	}
	return int(attempts), nil
}

func (r *CacheRepository) ResetLoginAttempts(ctx context.Context, username string) error {
	if err := r.client.Del(ctx, loginAttemptsKey(username)).Err(); err != nil {
		return fmt.Errorf("ошибка при сбросе счётчика входов: %w", err)
	}
	return nil
}
