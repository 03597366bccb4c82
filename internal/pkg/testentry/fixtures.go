package testentry

import (
	"context"
	"testing"
	"time"

	"github.com/uptrace/bun"

	"exusiai.dev/activity-backend/internal/model"
	"exusiai.dev/activity-backend/internal/repo"
)

const (
	APIKey      = "test-api-key-0123456789"
	OtherAPIKey = "other-api-key-0123456789"
)

type Fixtures struct {
	User      *model.User
	OtherUser *model.User

	// Contacts[0] is the usual assignee.
	Contacts []*model.Contact
	// Accounts are created with ids 1 to 5.
	Accounts []*model.Account

	Statuses   []*model.ActivityStatus
	Priorities []*model.ActivityPriority
	Types      []*model.ActivityType
}

func must(t testing.TB, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}

// Seed creates two users, contacts, accounts and lookups through the repositories.
func Seed(t testing.TB, db *bun.DB) *Fixtures {
	t.Helper()
	ctx := context.Background()

	f := &Fixtures{
		User:      &model.User{Username: "admin", Locale: "en", APIKey: APIKey},
		OtherUser: &model.User{Username: "editor", Locale: "fr", APIKey: OtherAPIKey},
		Contacts: []*model.Contact{
			{FirstName: "Max", LastName: "Mustermann"},
			{FirstName: "Erika", LastName: "Musterfrau"},
		},
		Statuses: []*model.ActivityStatus{
			{Name: model.I18nString{"en": "Open", "fr": "Ouvert"}},
			{Name: model.I18nString{"en": "Done", "fr": "Terminé"}},
		},
		Priorities: []*model.ActivityPriority{
			{Name: model.I18nString{"en": "Low", "fr": "Basse"}},
			{Name: model.I18nString{"en": "High", "fr": "Haute"}},
		},
		Types: []*model.ActivityType{
			{Name: model.I18nString{"en": "Call", "fr": "Appel"}},
			{Name: model.I18nString{"ja": "会議"}},
		},
	}
	for _, name := range []string{"Acme", "Globex", "Initech", "Umbrella", "Hooli"} {
		f.Accounts = append(f.Accounts, &model.Account{Name: name})
	}

	users := repo.NewUser(db)
	must(t, users.CreateUser(ctx, f.User))
	must(t, users.CreateUser(ctx, f.OtherUser))

	contacts := repo.NewContact(db)
	for _, c := range f.Contacts {
		must(t, contacts.CreateContact(ctx, c))
	}
	accounts := repo.NewAccount(db)
	for _, a := range f.Accounts {
		must(t, accounts.CreateAccount(ctx, a))
	}

	statuses := repo.NewActivityStatus(db)
	for _, l := range f.Statuses {
		must(t, statuses.Create(ctx, l))
	}
	priorities := repo.NewActivityPriority(db)
	for _, l := range f.Priorities {
		must(t, priorities.Create(ctx, l))
	}
	types := repo.NewActivityType(db)
	for _, l := range f.Types {
		must(t, types.Create(ctx, l))
	}

	return f
}

// Activity inserts an activity due tomorrow, owned by the first account and
// assigned to the first contact, then applies opts before the insert.
func (f *Fixtures) Activity(t testing.TB, db bun.IDB, subject string, opts ...func(*model.Activity)) *model.Activity {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Second)
	a := &model.Activity{
		Subject:           subject,
		DueDate:           now.Add(24 * time.Hour),
		AssignedContactID: f.Contacts[0].ID,
	}
	a.SetOwner(model.AccountOwner{ID: f.Accounts[0].ID})
	a.Stamp(now, f.User)
	for _, opt := range opts {
		opt(a)
	}

	_, err := db.NewInsert().Model(a).Exec(context.Background())
	must(t, err)
	return a
}
