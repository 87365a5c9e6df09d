package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonZhikin/OfficeDepartment/internal/entities"
	"github.com/AntonZhikin/OfficeDepartment/internal/repositories"
	"github.com/AntonZhikin/OfficeDepartment/pkg/types"
)

type capturingAuditLogRepo struct {
	inserted []entities.AuditLog
}

func (r *capturingAuditLogRepo) Insert(_ context.Context, _ repositories.Querier, log *entities.AuditLog) error {
	r.inserted = append(r.inserted, *log)
	return nil
}

func (r *capturingAuditLogRepo) FindByID(context.Context, repositories.Querier, uuid.UUID) (*entities.AuditLog, error) {
	panic("не используется")
}

func (r *capturingAuditLogRepo) List(context.Context, repositories.Querier, types.Filter) ([]entities.AuditLog, error) {
	panic("не используется")
}

func (r *capturingAuditLogRepo) ListAll(context.Context, repositories.Querier) ([]entities.AuditLog, error) {
	panic("не используется")
}

func TestAuditRecorderSnapshots(t *testing.T) {
	repo := &capturingAuditLogRepo{}
	recorder := NewAuditRecorder(repo)

	entityID := uuid.New()
	actorID := uuid.New()
	ip := "192.168.1.10"

	office := &entities.HeadOffice{ID: entityID, Name: "Офис"}
	err := recorder.Record(context.Background(), nil, entities.AuditActionCreate, "HeadOffice",
		&entityID, &actorID, nil, office, &ip)
	require.NoError(t, err)

	require.Len(t, repo.inserted, 1)
	log := repo.inserted[0]

	assert.NotEqual(t, uuid.Nil, log.ID)
	assert.Equal(t, entities.AuditActionCreate, log.Action)
	assert.Equal(t, "HeadOffice", log.EntityType)
	assert.Equal(t, entityID, *log.EntityID)
	assert.Equal(t, actorID, *log.UserID)
	assert.Nil(t, log.OldValues)
	assert.Contains(t, string(log.NewValues), "Офис")
	assert.False(t, log.Timestamp.IsZero())
	assert.Equal(t, ip, *log.IPAddress)
}

func TestAuditRecorderHidesPasswordHash(t *testing.T) {
	repo := &capturingAuditLogRepo{}
	recorder := NewAuditRecorder(repo)

	userID := uuid.New()
	user := &entities.User{
		ID:           userID,
		Username:     "ivan",
		PasswordHash: "$2a$10$supersecrethash",
		Role:         entities.RoleUser,
	}

	err := recorder.Record(context.Background(), nil, entities.AuditActionCreate, "User",
		&userID, nil, nil, user, nil)
	require.NoError(t, err)

	require.Len(t, repo.inserted, 1)
	snapshot := string(repo.inserted[0].NewValues)
	assert.NotContains(t, snapshot, "supersecrethash")
	assert.Contains(t, snapshot, "ivan")
}
