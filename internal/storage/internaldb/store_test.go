package internaldb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/horizon/internal/common"
	"github.com/bobmcallan/horizon/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(common.NewSilentLogger(), t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestUserRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := &models.User{
		UserID:       "u-1",
		Email:        "Alice@Example.COM",
		DisplayName:  "Alice",
		PasswordHash: "hash",
	}
	require.NoError(t, store.SaveUser(ctx, user))

	got, err := store.GetUser(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", got.Email) // normalized on save
	assert.Equal(t, "Alice", got.DisplayName)
	assert.False(t, got.CreatedAt.IsZero())

	byEmail, err := store.GetUserByEmail(ctx, "ALICE@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u-1", byEmail.UserID)
}

func TestSaveUserPreservesCreatedAt(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := &models.User{UserID: "u-1", Email: "a@b.c"}
	require.NoError(t, store.SaveUser(ctx, user))
	created := user.CreatedAt

	user.DisplayName = "Updated"
	require.NoError(t, store.SaveUser(ctx, user))

	got, err := store.GetUser(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, created.Unix(), got.CreatedAt.Unix())
	assert.Equal(t, "Updated", got.DisplayName)
}

func TestGetUserNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetUser(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestDeleteUser(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveUser(ctx, &models.User{UserID: "u-1", Email: "a@b.c"}))
	require.NoError(t, store.DeleteUser(ctx, "u-1"))

	_, err := store.GetUser(ctx, "u-1")
	assert.Error(t, err)

	// Deleting a non-existent user is not an error.
	assert.NoError(t, store.DeleteUser(ctx, "u-1"))
}

func TestListUsers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveUser(ctx, &models.User{UserID: "u-1", Email: "a@b.c"}))
	require.NoError(t, store.SaveUser(ctx, &models.User{UserID: "u-2", Email: "d@e.f"}))

	ids, err := store.ListUsers(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"u-1", "u-2"}, ids)
}

func TestSystemKV(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.GetSystemKV(ctx, "gemini_api_key")
	assert.Error(t, err)

	require.NoError(t, store.SetSystemKV(ctx, "gemini_api_key", "secret"))

	val, err := store.GetSystemKV(ctx, "gemini_api_key")
	require.NoError(t, err)
	assert.Equal(t, "secret", val)

	// Overwrite
	require.NoError(t, store.SetSystemKV(ctx, "gemini_api_key", "rotated"))
	val, err = store.GetSystemKV(ctx, "gemini_api_key")
	require.NoError(t, err)
	assert.Equal(t, "rotated", val)
}
