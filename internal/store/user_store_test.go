package store

import (
	"context"
	"testing"

	users "github.com/andrwlab/Season2App/internal/user"
	"github.com/andrwlab/Season2App/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndGetUser(t *testing.T) {
	database := setupTestDB(t)
	defer database.Close()

	store := NewUserStore(database)
	ctx := context.Background()

	user := &users.User{
		ID:         uuid.New(),
		Email:      "coach@example.com",
		Username:   "Coach",
		Role:       users.RoleViewer,
		Provider:   utils.Ptr("google"),
		ProviderID: utils.Ptr("g-123"),
	}
	require.NoError(t, store.CreateUser(ctx, user))

	got, err := store.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "coach@example.com", got.Email)
	assert.Equal(t, users.RoleViewer, got.Role)

	byEmail, err := store.GetUserByEmail(ctx, "coach@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	byProvider, err := store.GetUserByProvider(ctx, "google", "g-123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byProvider.ID)
}

func TestUpdateUserRole(t *testing.T) {
	database := setupTestDB(t)
	defer database.Close()

	store := NewUserStore(database)
	ctx := context.Background()

	user := &users.User{ID: uuid.New(), Email: "ref@example.com", Username: "Ref", Role: users.RoleViewer}
	require.NoError(t, store.CreateUser(ctx, user))

	require.NoError(t, store.UpdateUserRole(ctx, user.ID, users.RoleScorekeeper))

	got, err := store.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, users.RoleScorekeeper, got.Role)
}
