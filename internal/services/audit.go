package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/AntonZhikin/OfficeDepartment/internal/entities"
	"github.com/AntonZhikin/OfficeDepartment/internal/repositories"
)

// AuditRecorder пишет снимки "до" и "после" каждой мутации.
// Запись идёт тем же Querier, что и сама мутация: либо фиксируются
// обе, либо ни одной.
type AuditRecorderInterface interface {
	Record(ctx context.Context, q repositories.Querier, action, entityType string, entityID *uuid.UUID, actorID *uuid.UUID, oldValue, newValue interface{}, ip *string) error
}

type AuditRecorder struct {
	auditLogRepo repositories.AuditLogRepositoryInterface
}

func NewAuditRecorder(auditLogRepo repositories.AuditLogRepositoryInterface) AuditRecorderInterface {
	return &AuditRecorder{auditLogRepo: auditLogRepo}
}

func (r *AuditRecorder) Record(ctx context.Context, q repositories.Querier, action, entityType string, entityID *uuid.UUID, actorID *uuid.UUID, oldValue, newValue interface{}, ip *string) error {
	oldJSON, err := marshalSnapshot(oldValue)
	if err != nil {
		return fmt.Errorf("ошибка при сериализации старого состояния: %w", err)
	}
	newJSON, err := marshalSnapshot(newValue)
	if err != nil {
		return fmt.Errorf("ошибка при сериализации нового состояния: %w", err)
	}

	log := &entities.AuditLog{
		ID:         uuid.New(),
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		UserID:     actorID,
		OldValues:  oldJSON,
		NewValues:  newJSON,
		Timestamp:  time.Now().UTC(),
		IPAddress:  ip,
	}

	return r.auditLogRepo.Insert(ctx, q, log)
}

func marshalSnapshot(value interface{}) (json.RawMessage, error) {
	if value == nil {
		return nil, nil
	}
	return json.Marshal(value)
}
