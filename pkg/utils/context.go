package utils

import (
	"context"

	"github.com/google/uuid"

	"github.com/AntonZhikin/OfficeDepartment/pkg/contextkeys"
)

// UserIDFromContext возвращает идентификатор аутентифицированного
// пользователя или nil для анонимного запроса.
func UserIDFromContext(ctx context.Context) *uuid.UUID {
	id, ok := ctx.Value(contextkeys.UserIDKey).(uuid.UUID)
	if !ok {
		return nil
	}
	return &id
}

func UserRoleFromContext(ctx context.Context) string {
	role, _ := ctx.Value(contextkeys.UserRoleKey).(string)
	return role
}
