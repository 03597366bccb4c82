package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exusiai.dev/activity-backend/internal/pkg/testentry"
	"exusiai.dev/activity-backend/internal/repo"
	"exusiai.dev/activity-backend/internal/service"
)

func TestRun(t *testing.T) {
	ctx := context.Background()
	db := testentry.DB(t)
	userRepo := repo.NewUser(db)
	deps := CommandDeps{
		UserService:  service.NewUser(testentry.Config(), userRepo),
		UserRepo:     userRepo,
		StatusRepo:   repo.NewActivityStatus(db),
		PriorityRepo: repo.NewActivityPriority(db),
		TypeRepo:     repo.NewActivityType(db),
	}

	require.NoError(t, run(ctx, deps, "admin", "ja"))

	statuses, err := deps.StatusRepo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, statuses, len(defaultStatuses))
	assert.Equal(t, "Ouvert", statuses[0].Name["fr"])

	types, err := deps.TypeRepo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, types, len(defaultTypes))

	admin, err := userRepo.GetUserByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, "ja", admin.Locale)
	assert.NotEmpty(t, admin.APIKey)

	// running again changes nothing
	require.NoError(t, run(ctx, deps, "admin", "en"))

	priorities, err := deps.PriorityRepo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, priorities, len(defaultPriorities))

	again, err := userRepo.GetUserByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, admin.APIKey, again.APIKey)
}
