package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/guregu/null.v3"

	"exusiai.dev/activity-backend/internal/model"
	"exusiai.dev/activity-backend/internal/model/types"
	"exusiai.dev/activity-backend/internal/pkg/listbuilder"
	"exusiai.dev/activity-backend/internal/pkg/pgerr"
	"exusiai.dev/activity-backend/internal/pkg/testentry"
	"exusiai.dev/activity-backend/internal/service"
)

func newActivityService(t *testing.T) (*service.Activity, *testentry.Env) {
	var svc *service.Activity
	env := testentry.Populate(t, &svc)
	return svc, env
}

func validRequest(f *testentry.Fixtures) *types.ActivityRequest {
	return &types.ActivityRequest{
		Subject:         "Call back",
		DueDate:         "2024-05-01T10:00:00Z",
		AssignedContact: &types.Ref{ID: f.Contacts[0].ID},
		Account:         &types.Ref{ID: f.Accounts[4].ID},
	}
}

func requireError(t *testing.T, err error, code, message string) *pgerr.APIError {
	t.Helper()

	e, ok := pgerr.As(err)
	require.True(t, ok, "expected a APIError, got %v", err)
	assert.Equal(t, code, e.ErrorCode)
	if message != "" {
		assert.Equal(t, message, e.Message)
	}
	return e
}

func requireNotFound(t *testing.T, err error, entity string, id int64) {
	t.Helper()

	e := requireError(t, err, pgerr.CodeNotFound, "")
	require.NotNil(t, e.Extras)
	assert.Equal(t, entity, (*e.Extras)["entity"])
	assert.Equal(t, id, (*e.Extras)["id"])
}

func countActivities(t *testing.T, env *testentry.Env) int {
	n, err := env.DB.NewSelect().Model((*model.Activity)(nil)).Count(context.Background())
	require.NoError(t, err)
	return n
}

func TestCreateMissingRequired(t *testing.T) {
	svc, env := newActivityService(t)
	actor := service.NewActor(env.Fixtures.User, "")

	for name, strip := range map[string]func(*types.ActivityRequest){
		"subject":         func(r *types.ActivityRequest) { r.Subject = "" },
		"dueDate":         func(r *types.ActivityRequest) { r.DueDate = "" },
		"assignedContact": func(r *types.ActivityRequest) { r.AssignedContact = nil },
		"assignedContact.id": func(r *types.ActivityRequest) {
			r.AssignedContact = &types.Ref{}
		},
	} {
		t.Run(name, func(t *testing.T) {
			req := validRequest(env.Fixtures)
			strip(req)

			_, err := svc.Create(context.Background(), actor, req)
			requireError(t, err, pgerr.CodeInvalidRequest, "missing subject, dueDate, or assignedContact")
		})
	}

	assert.Zero(t, countActivities(t, env))
}

func TestCreateWithoutOwner(t *testing.T) {
	svc, env := newActivityService(t)
	req := validRequest(env.Fixtures)
	req.Account = nil

	_, err := svc.Create(context.Background(), service.NewActor(env.Fixtures.User, ""), req)
	requireError(t, err, pgerr.CodeInvalidRequest, "no account or contact set")
	assert.Zero(t, countActivities(t, env))
}

func TestCreateInvalidDates(t *testing.T) {
	svc, env := newActivityService(t)
	actor := service.NewActor(env.Fixtures.User, "")

	req := validRequest(env.Fixtures)
	req.DueDate = "next tuesday"
	_, err := svc.Create(context.Background(), actor, req)
	requireError(t, err, pgerr.CodeInvalidRequest, "invalid dueDate: next tuesday")

	req = validRequest(env.Fixtures)
	req.StartDate = "31/12/2024"
	_, err = svc.Create(context.Background(), actor, req)
	requireError(t, err, pgerr.CodeInvalidRequest, "invalid startDate: 31/12/2024")
}

func TestCreateUnknownReferences(t *testing.T) {
	svc, env := newActivityService(t)
	actor := service.NewActor(env.Fixtures.User, "")
	ctx := context.Background()

	req := validRequest(env.Fixtures)
	req.AssignedContact = &types.Ref{ID: 999}
	_, err := svc.Create(ctx, actor, req)
	requireNotFound(t, err, model.EntityContact, 999)

	req = validRequest(env.Fixtures)
	req.ActivityStatus = &types.Ref{ID: 40}
	_, err = svc.Create(ctx, actor, req)
	requireNotFound(t, err, model.EntityActivityStatus, 40)

	req = validRequest(env.Fixtures)
	req.ActivityPriority = &types.Ref{ID: 41}
	_, err = svc.Create(ctx, actor, req)
	requireNotFound(t, err, model.EntityActivityPriority, 41)

	req = validRequest(env.Fixtures)
	req.ActivityType = &types.Ref{ID: 42}
	_, err = svc.Create(ctx, actor, req)
	requireNotFound(t, err, model.EntityActivityType, 42)

	req = validRequest(env.Fixtures)
	req.Account = &types.Ref{ID: 43}
	_, err = svc.Create(ctx, actor, req)
	requireNotFound(t, err, model.EntityAccount, 43)

	req = validRequest(env.Fixtures)
	req.Account = nil
	req.Contact = &types.Ref{ID: 44}
	_, err = svc.Create(ctx, actor, req)
	requireNotFound(t, err, model.EntityContact, 44)

	// a sent reference is resolved even without an id
	req = validRequest(env.Fixtures)
	req.Account = &types.Ref{}
	req.Contact = &types.Ref{ID: env.Fixtures.Contacts[1].ID}
	_, err = svc.Create(ctx, actor, req)
	requireNotFound(t, err, model.EntityAccount, 0)

	req = validRequest(env.Fixtures)
	req.ActivityType = &types.Ref{}
	_, err = svc.Create(ctx, actor, req)
	requireNotFound(t, err, model.EntityActivityType, 0)

	assert.Zero(t, countActivities(t, env))
}

func TestCreateOwner(t *testing.T) {
	svc, env := newActivityService(t)
	f := env.Fixtures
	actor := service.NewActor(f.User, "")
	ctx := context.Background()

	t.Run("account only", func(t *testing.T) {
		a, err := svc.Create(ctx, actor, validRequest(f))
		require.NoError(t, err)
		assert.Equal(t, model.AccountOwner{ID: f.Accounts[4].ID}, a.Owner())
		assert.Nil(t, a.ContactID)
		assert.Nil(t, a.Contact)
		require.NotNil(t, a.Account)
		assert.Equal(t, "Hooli", a.Account.Name)
	})

	t.Run("contact only", func(t *testing.T) {
		req := validRequest(f)
		req.Account = nil
		req.Contact = &types.Ref{ID: f.Contacts[1].ID}

		a, err := svc.Create(ctx, actor, req)
		require.NoError(t, err)
		assert.Equal(t, model.ContactOwner{ID: f.Contacts[1].ID}, a.Owner())
		assert.Nil(t, a.AccountID)
		assert.Nil(t, a.Account)
	})

	t.Run("account wins over contact", func(t *testing.T) {
		req := validRequest(f)
		req.Contact = &types.Ref{ID: f.Contacts[1].ID}

		a, err := svc.Create(ctx, actor, req)
		require.NoError(t, err)
		assert.Equal(t, model.AccountOwner{ID: f.Accounts[4].ID}, a.Owner())
		assert.Nil(t, a.ContactID)
	})
}

func TestCreate(t *testing.T) {
	svc, env := newActivityService(t)
	f := env.Fixtures

	req := validRequest(f)
	req.Note = null.StringFrom("call before noon")
	req.StartDate = "2024-04-30"
	req.ActivityStatus = &types.Ref{ID: f.Statuses[0].ID}
	req.ActivityPriority = &types.Ref{ID: f.Priorities[1].ID}
	req.ActivityType = &types.Ref{ID: f.Types[0].ID}

	before := time.Now().Add(-time.Second)
	a, err := svc.Create(context.Background(), service.NewActor(f.User, ""), req)
	require.NoError(t, err)

	assert.NotZero(t, a.ID)
	assert.Equal(t, "Call back", a.Subject)
	assert.Equal(t, "call before noon", a.Note.String)
	assert.True(t, a.DueDate.Equal(time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)))
	if assert.NotNil(t, a.StartDate) {
		assert.True(t, a.StartDate.Equal(time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC)))
	}
	assert.True(t, a.Created.After(before))
	assert.True(t, a.Created.Equal(a.Changed))
	assert.EqualValues(t, f.User.ID, *a.CreatorID)
	assert.EqualValues(t, f.User.ID, *a.ChangerID)

	require.NotNil(t, a.ActivityStatus)
	assert.Equal(t, "Open", a.ActivityStatus.Name["en"])
	require.NotNil(t, a.ActivityPriority)
	assert.Equal(t, "High", a.ActivityPriority.Name["en"])
	require.NotNil(t, a.ActivityType)
	require.NotNil(t, a.AssignedContact)
	assert.Equal(t, "Max Mustermann", a.AssignedContact.FullName())
	require.NotNil(t, a.Creator)
	assert.Equal(t, "admin", a.Creator.Username)

	assert.Equal(t, 1, countActivities(t, env))
}

func TestGet(t *testing.T) {
	svc, env := newActivityService(t)
	actor := service.NewActor(env.Fixtures.User, "")

	_, err := svc.Get(context.Background(), actor, 12345)
	requireNotFound(t, err, model.EntityActivity, 12345)

	existing := env.Fixtures.Activity(t, env.DB, "Existing")
	a, err := svc.Get(context.Background(), actor, existing.ID)
	require.NoError(t, err)
	assert.Equal(t, "Existing", a.Subject)
	assert.NotNil(t, a.Account)
}

func TestUpdate(t *testing.T) {
	svc, env := newActivityService(t)
	f := env.Fixtures
	ctx := context.Background()

	req := validRequest(f)
	req.Note = null.StringFrom("keep me")
	req.StartDate = "2024-04-01"
	req.ActivityStatus = &types.Ref{ID: f.Statuses[0].ID}

	created, err := svc.Create(ctx, service.NewActor(f.User, ""), req)
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	update := &types.ActivityRequest{
		Subject:         "Call back again",
		DueDate:         "2024-06-01",
		AssignedContact: &types.Ref{ID: f.Contacts[1].ID},
		Contact:         &types.Ref{ID: f.Contacts[0].ID},
	}
	updated, err := svc.Update(ctx, service.NewActor(f.OtherUser, ""), created.ID, update)
	require.NoError(t, err)

	assert.Equal(t, "Call back again", updated.Subject)
	assert.True(t, updated.DueDate.Equal(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, f.Contacts[1].ID, updated.AssignedContactID)

	// absent optional fields are left untouched
	assert.Equal(t, "keep me", updated.Note.String)
	require.NotNil(t, updated.StartDate)
	require.NotNil(t, updated.ActivityStatus)
	assert.Equal(t, f.Statuses[0].ID, updated.ActivityStatus.ID)

	// the owner moved from the account to the contact
	assert.Equal(t, model.ContactOwner{ID: f.Contacts[0].ID}, updated.Owner())
	assert.Nil(t, updated.AccountID)

	// created/creator stay, changed/changer are restamped
	assert.WithinDuration(t, created.Created, updated.Created, time.Millisecond)
	assert.EqualValues(t, f.User.ID, *updated.CreatorID)
	assert.EqualValues(t, f.OtherUser.ID, *updated.ChangerID)
	assert.False(t, updated.Changed.Before(updated.Created))
	require.NotNil(t, updated.Changer)
	assert.Equal(t, "editor", updated.Changer.Username)
}

func TestUpdateErrors(t *testing.T) {
	svc, env := newActivityService(t)
	f := env.Fixtures
	ctx := context.Background()
	actor := service.NewActor(f.User, "")

	_, err := svc.Update(ctx, actor, 777, validRequest(f))
	requireNotFound(t, err, model.EntityActivity, 777)

	existing := f.Activity(t, env.DB, "Unchanged")

	req := validRequest(f)
	req.Subject = ""
	_, err = svc.Update(ctx, actor, existing.ID, req)
	requireError(t, err, pgerr.CodeInvalidRequest, "missing subject, dueDate, or assignedContact")

	req = validRequest(f)
	req.ActivityPriority = &types.Ref{ID: 99}
	_, err = svc.Update(ctx, actor, existing.ID, req)
	requireNotFound(t, err, model.EntityActivityPriority, 99)

	got, err := svc.Get(ctx, actor, existing.ID)
	require.NoError(t, err)
	assert.Equal(t, "Unchanged", got.Subject)
	assert.Equal(t, model.AccountOwner{ID: f.Accounts[0].ID}, got.Owner())
}

func TestDelete(t *testing.T) {
	svc, env := newActivityService(t)
	ctx := context.Background()
	actor := service.NewActor(env.Fixtures.User, "")

	a := env.Fixtures.Activity(t, env.DB, "Short-lived")
	require.NoError(t, svc.Delete(ctx, actor, a.ID))

	_, err := svc.Get(ctx, actor, a.ID)
	requireNotFound(t, err, model.EntityActivity, a.ID)

	err = svc.Delete(ctx, actor, a.ID)
	requireNotFound(t, err, model.EntityActivity, a.ID)
}

func TestList(t *testing.T) {
	svc, env := newActivityService(t)
	f := env.Fixtures
	ctx := context.Background()

	onFive := func(a *model.Activity) {
		a.SetOwner(model.AccountOwner{ID: 5})
	}
	f.Activity(t, env.DB, "one", onFive)
	f.Activity(t, env.DB, "two")
	f.Activity(t, env.DB, "three", onFive)
	f.Activity(t, env.DB, "four", onFive)
	f.Activity(t, env.DB, "five", func(a *model.Activity) {
		a.SetOwner(model.ContactOwner{ID: f.Contacts[1].ID})
	})

	actor := service.NewActor(f.User, "")

	t.Run("full list ignores filters", func(t *testing.T) {
		all, err := svc.List(ctx, actor)
		require.NoError(t, err)
		assert.Len(t, all, 5)
	})

	t.Run("flat account filter with pagination", func(t *testing.T) {
		query := &types.ActivityListQuery{
			Flat:    true,
			Account: 5,
			Params:  listbuilder.Params{Fields: "subject", Limit: 2, Page: 2},
		}
		list, err := svc.ListFlat(ctx, actor, query)
		require.NoError(t, err)

		assert.Equal(t, 3, list.Total)
		assert.Equal(t, 2, list.Page)
		assert.Equal(t, 2, list.Limit)
		require.Len(t, list.Rows, 1)
		assert.Equal(t, "four", list.Rows[0]["subject"])
	})

	t.Run("flat contact filter", func(t *testing.T) {
		query := &types.ActivityListQuery{
			Flat:    true,
			Contact: f.Contacts[1].ID,
			Params:  listbuilder.Params{Fields: "subject"},
		}
		list, err := svc.ListFlat(ctx, actor, query)
		require.NoError(t, err)
		require.Len(t, list.Rows, 1)
		assert.Equal(t, "five", list.Rows[0]["subject"])
		assert.Equal(t, 10, list.Limit)
	})

	t.Run("type filter is ignored", func(t *testing.T) {
		query := &types.ActivityListQuery{Flat: true, Type: "call"}
		list, err := svc.ListFlat(ctx, actor, query)
		require.NoError(t, err)
		assert.Equal(t, 5, list.Total)
	})

	t.Run("sorted and searched", func(t *testing.T) {
		query := &types.ActivityListQuery{
			Flat: true,
			Params: listbuilder.Params{
				Fields:       "subject",
				Search:       "O",
				SearchFields: "subject",
				SortBy:       "subject",
				SortOrder:    "desc",
			},
		}
		list, err := svc.ListFlat(ctx, actor, query)
		require.NoError(t, err)

		subjects := make([]any, 0, len(list.Rows))
		for _, row := range list.Rows {
			subjects = append(subjects, row["subject"])
		}
		assert.Equal(t, []any{"two", "one", "four"}, subjects)
	})

	t.Run("unknown field", func(t *testing.T) {
		query := &types.ActivityListQuery{Flat: true, Params: listbuilder.Params{SearchFields: "secret", Search: "x"}}
		_, err := svc.ListFlat(ctx, actor, query)
		requireError(t, err, pgerr.CodeInvalidRequest, "unknown list field: secret")
	})
}

func TestListFlatTranslations(t *testing.T) {
	svc, env := newActivityService(t)
	f := env.Fixtures

	f.Activity(t, env.DB, "translated", func(a *model.Activity) {
		a.ActivityStatusID = &f.Statuses[1].ID
		a.ActivityTypeID = &f.Types[1].ID
	})

	query := &types.ActivityListQuery{
		Flat:   true,
		Params: listbuilder.Params{Fields: "activityStatus,activityType,activityPriority"},
	}

	list, err := svc.ListFlat(context.Background(), service.NewActor(f.User, "fr"), query)
	require.NoError(t, err)
	require.Len(t, list.Rows, 1)
	assert.Equal(t, "Terminé", list.Rows[0]["activityStatus"])
	// only available in japanese
	assert.Equal(t, "会議", list.Rows[0]["activityType"])
	assert.Nil(t, list.Rows[0]["activityPriority"])

	list, err = svc.ListFlat(context.Background(), service.NewActor(f.User, "de"), query)
	require.NoError(t, err)
	assert.Equal(t, "Done", list.Rows[0]["activityStatus"])
}

func TestFields(t *testing.T) {
	svc, _ := newActivityService(t)
	fields := svc.Fields()

	require.Len(t, fields, 11)
	assert.Equal(t, "id", fields[0].Name)
	assert.Equal(t, "assignedContact", fields[10].Name)
}
