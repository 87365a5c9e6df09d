package entities

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Действия, фиксируемые в журнале аудита.
const (
	AuditActionCreate = "Create"
	AuditActionUpdate = "Update"
	AuditActionDelete = "Delete"
)

// AuditLog — неизменяемая запись "кто, что, откуда и как поменял".
// OldValues/NewValues — JSON-снимки состояния до и после мутации.
type AuditLog struct {
	ID         uuid.UUID       `json:"id"`
	Action     string          `json:"action"`
	EntityType string          `json:"entity_type"`
	EntityID   *uuid.UUID      `json:"entity_id"`
	UserID     *uuid.UUID      `json:"user_id"`
	OldValues  json.RawMessage `json:"old_values,omitempty"`
	NewValues  json.RawMessage `json:"new_values,omitempty"`
	Timestamp  time.Time       `json:"timestamp"`
	IPAddress  *string         `json:"ip_address"`
}
