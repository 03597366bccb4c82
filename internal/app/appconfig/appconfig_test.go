package appconfig

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exusiai.dev/activity-backend/internal/app/appcontext"
)

func TestParseDefaults(t *testing.T) {
	conf, err := Parse(appcontext.Declare(appcontext.EnvTest))
	require.NoError(t, err)

	assert.Equal(t, 10, conf.ListDefaultLimit)
	assert.Equal(t, 1000, conf.ListMaxLimit)
	assert.Equal(t, 24*time.Hour, conf.IdempotencyLifetime)
	assert.Equal(t, []string{"otlp"}, conf.TracingExporters)
	assert.Equal(t, appcontext.EnvTest, conf.AppContext.Env)
}

func TestParseEnvironment(t *testing.T) {
	t.Setenv("ACTIVITY_LIST_MAX_LIMIT", "50")
	t.Setenv("ACTIVITY_TRUSTED_PROXIES", "10.1.0.1,10.1.0.2")
	t.Setenv("ACTIVITY_USER_CACHE_TTL", "30s")

	conf, err := Parse(appcontext.Declare(appcontext.EnvTest))
	require.NoError(t, err)

	assert.Equal(t, 50, conf.ListMaxLimit)
	assert.Equal(t, []string{"10.1.0.1", "10.1.0.2"}, conf.TrustedProxies)
	assert.Equal(t, 30*time.Second, conf.UserCacheTTL)
}

func TestParseInvalid(t *testing.T) {
	t.Setenv("ACTIVITY_LIST_MAX_LIMIT", "many")

	_, err := Parse(appcontext.Declare(appcontext.EnvTest))
	assert.Error(t, err)
}
