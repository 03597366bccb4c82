package repo

import (
	"context"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	"exusiai.dev/activity-backend/internal/model"
	"exusiai.dev/activity-backend/internal/pkg/listbuilder"
	"exusiai.dev/activity-backend/internal/pkg/pgerr"
	"exusiai.dev/activity-backend/internal/repo/selector"
)

type Activity struct {
	db  bun.IDB
	sel selector.S[model.Activity]
}

func NewActivity(db *bun.DB) *Activity {
	return newActivity(db)
}

func newActivity(db bun.IDB) *Activity {
	return &Activity{db: db, sel: selector.New[model.Activity](db)}
}

// WithTx returns a copy of the repository running its queries on tx.
func (r *Activity) WithTx(tx bun.IDB) *Activity {
	return newActivity(tx)
}

func withRelations(q *bun.SelectQuery) *bun.SelectQuery {
	for _, rel := range model.ActivityRelations {
		q = q.Relation(rel)
	}
	return q
}

func (r *Activity) GetActivities(ctx context.Context) ([]*model.Activity, error) {
	return r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return withRelations(q).Order("a.id ASC")
	})
}

// GetActivityByID returns the bare activity row, without relations.
func (r *Activity) GetActivityByID(ctx context.Context, id int64) (*model.Activity, error) {
	activity, err := r.sel.SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("a.id = ?", id)
	})
	if errors.Is(err, pgerr.ErrNotFound) {
		return nil, pgerr.NewEntityNotFound(model.EntityActivity, id)
	}
	return activity, err
}

// GetFullActivityByID returns the activity with every relation loaded.
func (r *Activity) GetFullActivityByID(ctx context.Context, id int64) (*model.Activity, error) {
	activity, err := r.sel.SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return withRelations(q).Where("a.id = ?", id)
	})
	if errors.Is(err, pgerr.ErrNotFound) {
		return nil, pgerr.NewEntityNotFound(model.EntityActivity, id)
	}
	return activity, err
}

func (r *Activity) CreateActivity(ctx context.Context, activity *model.Activity) error {
	_, err := r.db.NewInsert().
		Model(activity).
		Returning("id").
		Exec(ctx)
	return errors.Wrap(err, "failed to insert activity")
}

func (r *Activity) UpdateActivity(ctx context.Context, activity *model.Activity) error {
	_, err := r.db.NewUpdate().
		Model(activity).
		WherePK().
		Exec(ctx)
	return errors.Wrap(err, "failed to update activity")
}

func (r *Activity) DeleteActivity(ctx context.Context, activity *model.Activity) error {
	_, err := r.db.NewDelete().
		Model(activity).
		WherePK().
		Exec(ctx)
	return errors.Wrap(err, "failed to delete activity")
}

// NewListBuilder starts a flat list over the activities table.
func (r *Activity) NewListBuilder() *listbuilder.Builder {
	return listbuilder.New(r.db, "activities", model.ActivityListAlias)
}
