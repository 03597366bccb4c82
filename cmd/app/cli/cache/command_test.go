package cache

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exusiai.dev/activity-backend/internal/model"
	"exusiai.dev/activity-backend/internal/model/cache"
)

func TestFlush(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	cache.Initialize(client)

	require.NoError(t, cache.UserByAPIKey.Set("a", model.User{ID: 1}, time.Minute))
	require.NoError(t, cache.ActivityTypeByID.Set("1", model.ActivityType{ID: 1}, time.Minute))

	require.NoError(t, flush("user#apiKey"))
	assert.False(t, mr.Exists("activity:user#apiKey:a"))
	assert.True(t, mr.Exists("activity:activityType#id:1"))

	require.NoError(t, flush("no-such-cache"))

	require.NoError(t, flush(""))
	assert.False(t, mr.Exists("activity:activityType#id:1"))
}
