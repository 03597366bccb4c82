package repo

import (
	"context"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	"exusiai.dev/activity-backend/internal/model"
	"exusiai.dev/activity-backend/internal/pkg/pgerr"
	"exusiai.dev/activity-backend/internal/repo/selector"
)

// Lookup reads one of the activity reference tables.
type Lookup[T any] struct {
	entity string
	sel    selector.S[T]
}

func newLookup[T any](db bun.IDB, entity string) *Lookup[T] {
	return &Lookup[T]{entity: entity, sel: selector.New[T](db)}
}

func NewActivityStatus(db *bun.DB) *Lookup[model.ActivityStatus] {
	return newLookup[model.ActivityStatus](db, model.EntityActivityStatus)
}

func NewActivityPriority(db *bun.DB) *Lookup[model.ActivityPriority] {
	return newLookup[model.ActivityPriority](db, model.EntityActivityPriority)
}

func NewActivityType(db *bun.DB) *Lookup[model.ActivityType] {
	return newLookup[model.ActivityType](db, model.EntityActivityType)
}

func (r *Lookup[T]) WithTx(tx bun.IDB) *Lookup[T] {
	return newLookup[T](tx, r.entity)
}

func (r *Lookup[T]) Entity() string {
	return r.entity
}

func (r *Lookup[T]) GetAll(ctx context.Context) ([]*T, error) {
	return r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.OrderExpr("?TableAlias.id ASC")
	})
}

// Any reports whether the table holds at least one row.
func (r *Lookup[T]) Any(ctx context.Context) (bool, error) {
	return r.sel.Exists(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q
	})
}

func (r *Lookup[T]) GetByID(ctx context.Context, id int64) (*T, error) {
	l, err := r.sel.SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("?TableAlias.id = ?", id)
	})
	if errors.Is(err, pgerr.ErrNotFound) {
		return nil, pgerr.NewEntityNotFound(r.entity, id)
	}
	return l, err
}

func (r *Lookup[T]) Create(ctx context.Context, l *T) error {
	_, err := r.sel.DB.NewInsert().Model(l).Returning("id").Exec(ctx)
	return errors.Wrapf(err, "failed to insert %s", r.entity)
}
