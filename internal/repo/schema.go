package repo

import (
	"context"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	"exusiai.dev/activity-backend/internal/model"
)

// Models are listed in dependency order.
var Models = []any{
	(*model.User)(nil),
	(*model.Contact)(nil),
	(*model.Account)(nil),
	(*model.ActivityStatus)(nil),
	(*model.ActivityPriority)(nil),
	(*model.ActivityType)(nil),
	(*model.Activity)(nil),
}

var activityIndexes = map[string]string{
	"idx_activities_account_id":          "account_id",
	"idx_activities_contact_id":          "contact_id",
	"idx_activities_assigned_contact_id": "assigned_contact_id",
}

// CreateSchema creates every table and index that does not exist yet.
func CreateSchema(ctx context.Context, db bun.IDB) error {
	for _, m := range Models {
		_, err := db.NewCreateTable().
			Model(m).
			IfNotExists().
			WithForeignKeys().
			Exec(ctx)
		if err != nil {
			return errors.Wrapf(err, "failed to create table for %T", m)
		}
	}

	for name, column := range activityIndexes {
		_, err := db.NewCreateIndex().
			Model((*model.Activity)(nil)).
			Index(name).
			IfNotExists().
			Column(column).
			Exec(ctx)
		if err != nil {
			return errors.Wrapf(err, "failed to create index %s", name)
		}
	}

	return nil
}
