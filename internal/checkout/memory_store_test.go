package checkout

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_CreateAndGet(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()

	session := store.Create()
	require.NotEmpty(t, session.ID)
	assert.Equal(t, StatusOpen, session.Status)

	got, err := store.Get(session.ID)
	require.NoError(t, err)
	assert.Same(t, session, got)
}

func TestMemoryStore_GetMissing(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()

	_, err := store.Get("nope")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemoryStore_Delete(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()

	session := store.Create()
	require.NoError(t, store.Delete(session.ID))

	_, err := store.Get(session.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	assert.ErrorIs(t, store.Delete(session.ID), ErrSessionNotFound)
}

func TestMemoryStore_ExpireSkipsSubmitting(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()

	stale := store.Create()
	stale.UpdatedAt = time.Now().Add(-SessionTTL - time.Minute)

	busy := store.Create()
	busy.Status = StatusSubmitting
	busy.UpdatedAt = time.Now().Add(-SessionTTL - time.Minute)

	store.expireSessions()

	_, err := store.Get(stale.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = store.Get(busy.ID)
	assert.NoError(t, err)
}
