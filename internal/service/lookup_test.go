package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exusiai.dev/activity-backend/internal/model"
	"exusiai.dev/activity-backend/internal/pkg/testentry"
	"exusiai.dev/activity-backend/internal/service"
)

func TestListLookups(t *testing.T) {
	var svc *service.Lookup
	env := testentry.Populate(t, &svc)
	ctx := context.Background()

	statuses, err := svc.ListActivityStatuses(ctx, service.NewActor(env.Fixtures.User, "fr"))
	require.NoError(t, err)
	require.Len(t, statuses, 2)
	assert.Equal(t, "Ouvert", statuses[0].Name)
	assert.Equal(t, env.Fixtures.Statuses[0].ID, statuses[0].ID)

	priorities, err := svc.ListActivityPriorities(ctx, service.NewActor(env.Fixtures.User, ""))
	require.NoError(t, err)
	assert.Equal(t, "Low", priorities[0].Name)

	// the other user's own locale is fr
	types, err := svc.ListActivityTypes(ctx, service.NewActor(env.Fixtures.OtherUser, ""))
	require.NoError(t, err)
	require.Len(t, types, 2)
	assert.Equal(t, "Appel", types[0].Name)
	assert.Equal(t, "会議", types[1].Name)

	// lists are cached, names are resolved per call
	_, err = env.DB.NewInsert().Model(&model.ActivityStatus{Name: model.I18nString{"en": "Blocked"}}).Exec(ctx)
	require.NoError(t, err)
	statuses, err = svc.ListActivityStatuses(ctx, service.NewActor(env.Fixtures.User, "en"))
	require.NoError(t, err)
	require.Len(t, statuses, 2)
	assert.Equal(t, "Open", statuses[0].Name)
}

func TestGetLookupCached(t *testing.T) {
	var svc *service.Lookup
	env := testentry.Populate(t, &svc)
	ctx := context.Background()
	id := env.Fixtures.Priorities[1].ID

	p, err := svc.GetActivityPriority(ctx, env.DB, id)
	require.NoError(t, err)
	assert.Equal(t, "High", p.Name["en"])
	assert.True(t, env.Miniredis.Exists("activity:activityPriority#id:2"))

	_, err = env.DB.NewDelete().Model((*model.ActivityPriority)(nil)).Where("id = ?", id).Exec(ctx)
	require.NoError(t, err)

	p, err = svc.GetActivityPriority(ctx, env.DB, id)
	require.NoError(t, err)
	assert.Equal(t, "Haute", p.Name["fr"])

	_, err = svc.GetActivityStatus(ctx, env.DB, 31)
	requireNotFound(t, err, model.EntityActivityStatus, 31)
	assert.False(t, env.Miniredis.Exists("activity:activityStatus#id:31"))
}
