package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exusiai.dev/activity-backend/internal/constant"
	"exusiai.dev/activity-backend/internal/model"
	"exusiai.dev/activity-backend/internal/pkg/crypto"
	"exusiai.dev/activity-backend/internal/pkg/pgerr"
	"exusiai.dev/activity-backend/internal/pkg/testentry"
	"exusiai.dev/activity-backend/internal/service"
)

func TestGetUserByAPIKey(t *testing.T) {
	var svc *service.User
	env := testentry.Populate(t, &svc)
	ctx := context.Background()

	u, err := svc.GetUserByAPIKey(ctx, testentry.APIKey)
	require.NoError(t, err)
	assert.Equal(t, "admin", u.Username)

	// cached under the fingerprint, never the key itself
	assert.True(t, env.Miniredis.Exists("activity:user#apiKey:"+crypto.Fingerprint(testentry.APIKey)))
	assert.False(t, env.Miniredis.Exists("activity:user#apiKey:"+testentry.APIKey))

	_, err = svc.GetUserByAPIKey(ctx, "unknown")
	assert.ErrorIs(t, err, pgerr.ErrNotFound)
}

func TestCreateUser(t *testing.T) {
	var svc *service.User
	testentry.Populate(t, &svc)
	ctx := context.Background()

	u, err := svc.CreateUser(ctx, "operator", "")
	require.NoError(t, err)
	assert.NotZero(t, u.ID)
	assert.Equal(t, "en", u.Locale)
	assert.Len(t, u.APIKey, constant.APIKeyLength)

	got, err := svc.GetUserByAPIKey(ctx, u.APIKey)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = svc.CreateUser(ctx, "operator", "ja")
	assert.Error(t, err, "usernames are unique")
}

func TestNewActor(t *testing.T) {
	user := &model.User{ID: 3, Locale: "ja"}

	assert.Equal(t, "fr", service.NewActor(user, "fr").Locale)
	assert.Equal(t, "ja", service.NewActor(user, "").Locale)
	assert.Equal(t, "en", service.NewActor(nil, "").Locale)

	assert.EqualValues(t, 3, *service.NewActor(user, "").UserID())
	assert.Nil(t, service.NewActor(nil, "").UserID())
}
