package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"greencycle-server/models"
)

func TestResolveActor_ReturnsExistingUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewActorService(db)
	existing := createTestUser(t, db, "admin@example.com", models.RoleAdmin)

	actorID, err := svc.ResolveActor("admin@example.com", "Someone Else")
	require.NoError(t, err)
	assert.Equal(t, existing.ID, actorID)

	// No duplicate was created.
	var count int64
	db.Model(&models.User{}).Where("email = ?", "admin@example.com").Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestResolveActor_CreatesCollectorOnFirstEncounter(t *testing.T) {
	db := newTestDB(t)
	svc := NewActorService(db)

	actorID, err := svc.ResolveActor("new-admin@example.com", "Ops Admin")
	require.NoError(t, err)

	var created models.User
	require.NoError(t, db.First(&created, actorID).Error)
	assert.Equal(t, "new-admin@example.com", created.Email)
	assert.Equal(t, "Ops Admin", created.FullName)
	assert.Equal(t, models.RoleCollector, created.Role)
	assert.True(t, created.IsActive)
}

func TestResolveActor_IsIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewActorService(db)

	first, err := svc.ResolveActor("repeat@example.com", "Ops Admin")
	require.NoError(t, err)
	second, err := svc.ResolveActor("repeat@example.com", "Ops Admin")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestResolveActor_EmptyEmailFails(t *testing.T) {
	db := newTestDB(t)
	svc := NewActorService(db)

	_, err := svc.ResolveActor("", "Ops Admin")
	assert.ErrorIs(t, err, ErrActorResolutionFailed)
}
