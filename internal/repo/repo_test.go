package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"gopkg.in/guregu/null.v3"

	"exusiai.dev/activity-backend/internal/model"
	"exusiai.dev/activity-backend/internal/pkg/pgerr"
	"exusiai.dev/activity-backend/internal/pkg/testentry"
	"exusiai.dev/activity-backend/internal/repo"
)

func assertNotFound(t *testing.T, err error, entity string, id int64) {
	t.Helper()

	e, ok := pgerr.As(err)
	require.True(t, ok, "expected a not found error, got %v", err)
	assert.Equal(t, pgerr.CodeNotFound, e.ErrorCode)
	if assert.NotNil(t, e.Extras) {
		assert.Equal(t, entity, (*e.Extras)["entity"])
		assert.Equal(t, id, (*e.Extras)["id"])
	}
}

func TestCreateSchemaIsIdempotent(t *testing.T) {
	db := testentry.DB(t)
	assert.NoError(t, repo.CreateSchema(context.Background(), db))
}

func TestActivityRepo(t *testing.T) {
	ctx := context.Background()
	db := testentry.DB(t)
	f := testentry.Seed(t, db)
	r := repo.NewActivity(db)

	due := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	a := &model.Activity{
		Subject:           "Quarterly review",
		Note:              null.StringFrom("bring numbers"),
		DueDate:           due,
		AssignedContactID: f.Contacts[1].ID,
		ActivityStatusID:  &f.Statuses[1].ID,
	}
	a.SetOwner(model.ContactOwner{ID: f.Contacts[0].ID})
	a.Stamp(due.Add(-time.Hour), f.User)

	require.NoError(t, r.CreateActivity(ctx, a))
	require.NotZero(t, a.ID)

	t.Run("bare", func(t *testing.T) {
		got, err := r.GetActivityByID(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, "Quarterly review", got.Subject)
		assert.True(t, got.DueDate.Equal(due))
		assert.Nil(t, got.ActivityStatus)
		assert.Equal(t, model.ContactOwner{ID: f.Contacts[0].ID}, got.Owner())
	})

	t.Run("full", func(t *testing.T) {
		got, err := r.GetFullActivityByID(ctx, a.ID)
		require.NoError(t, err)
		if assert.NotNil(t, got.ActivityStatus) {
			assert.Equal(t, "Done", got.ActivityStatus.Name["en"])
		}
		assert.Nil(t, got.ActivityPriority)
		assert.Nil(t, got.Account)
		if assert.NotNil(t, got.Contact) {
			assert.Equal(t, "Mustermann", got.Contact.LastName)
		}
		if assert.NotNil(t, got.AssignedContact) {
			assert.Equal(t, "Musterfrau", got.AssignedContact.LastName)
		}
		if assert.NotNil(t, got.Creator) {
			assert.Equal(t, "admin", got.Creator.Username)
		}
	})

	t.Run("update", func(t *testing.T) {
		got, err := r.GetActivityByID(ctx, a.ID)
		require.NoError(t, err)
		got.Subject = "Yearly review"
		got.SetOwner(model.AccountOwner{ID: f.Accounts[2].ID})
		require.NoError(t, r.UpdateActivity(ctx, got))

		got, err = r.GetFullActivityByID(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, "Yearly review", got.Subject)
		assert.Nil(t, got.ContactID)
		assert.Nil(t, got.Contact)
		if assert.NotNil(t, got.Account) {
			assert.Equal(t, "Initech", got.Account.Name)
		}
	})

	t.Run("list", func(t *testing.T) {
		second := f.Activity(t, db, "Follow-up")

		all, err := r.GetActivities(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, a.ID, all[0].ID)
		assert.Equal(t, second.ID, all[1].ID)
		assert.NotNil(t, all[1].Account)
	})

	t.Run("delete", func(t *testing.T) {
		got, err := r.GetActivityByID(ctx, a.ID)
		require.NoError(t, err)
		require.NoError(t, r.DeleteActivity(ctx, got))

		_, err = r.GetActivityByID(ctx, a.ID)
		assertNotFound(t, err, model.EntityActivity, a.ID)
		_, err = r.GetFullActivityByID(ctx, a.ID)
		assertNotFound(t, err, model.EntityActivity, a.ID)
	})
}

func TestActivityRepoWithTx(t *testing.T) {
	ctx := context.Background()
	db := testentry.DB(t)
	f := testentry.Seed(t, db)
	r := repo.NewActivity(db)

	var id int64
	err := db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		a := &model.Activity{Subject: "rolled back", DueDate: time.Now(), AssignedContactID: f.Contacts[0].ID}
		a.SetOwner(model.AccountOwner{ID: f.Accounts[0].ID})
		if err := r.WithTx(tx).CreateActivity(ctx, a); err != nil {
			return err
		}
		id = a.ID
		return pgerr.ErrInvalidReq
	})
	require.ErrorIs(t, err, pgerr.ErrInvalidReq)

	_, err = r.GetActivityByID(ctx, id)
	assertNotFound(t, err, model.EntityActivity, id)
}

func TestLookupRepo(t *testing.T) {
	ctx := context.Background()
	db := testentry.DB(t)

	statuses := repo.NewActivityStatus(db)
	assert.Equal(t, model.EntityActivityStatus, statuses.Entity())

	seeded, err := statuses.Any(ctx)
	require.NoError(t, err)
	assert.False(t, seeded)

	f := testentry.Seed(t, db)

	seeded, err = statuses.Any(ctx)
	require.NoError(t, err)
	assert.True(t, seeded)

	all, err := statuses.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Ouvert", all[0].Name["fr"])

	types, err := repo.NewActivityType(db).GetByID(ctx, f.Types[1].ID)
	require.NoError(t, err)
	assert.Equal(t, "会議", types.Name["ja"])

	_, err = repo.NewActivityPriority(db).GetByID(ctx, 99)
	assertNotFound(t, err, model.EntityActivityPriority, 99)
}

func TestContactAccountUserRepo(t *testing.T) {
	ctx := context.Background()
	db := testentry.DB(t)
	f := testentry.Seed(t, db)

	c, err := repo.NewContact(db).GetContactByID(ctx, f.Contacts[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Max Mustermann", c.FullName())
	_, err = repo.NewContact(db).GetContactByID(ctx, 404)
	assertNotFound(t, err, model.EntityContact, 404)

	a, err := repo.NewAccount(db).GetAccountByID(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, "Hooli", a.Name)
	_, err = repo.NewAccount(db).GetAccountByID(ctx, 6)
	assertNotFound(t, err, model.EntityAccount, 6)

	users := repo.NewUser(db)
	u, err := users.GetUserByAPIKey(ctx, testentry.APIKey)
	require.NoError(t, err)
	assert.Equal(t, f.User.ID, u.ID)

	_, err = users.GetUserByAPIKey(ctx, "nope")
	assert.ErrorIs(t, err, pgerr.ErrNotFound)

	u, err = users.GetUserByUsername(ctx, "editor")
	require.NoError(t, err)
	assert.Equal(t, "fr", u.Locale)

	_, err = users.GetUserByID(ctx, 77)
	assertNotFound(t, err, model.EntityUser, 77)
}
