package repo

import (
	"context"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	"exusiai.dev/activity-backend/internal/model"
	"exusiai.dev/activity-backend/internal/pkg/pgerr"
	"exusiai.dev/activity-backend/internal/repo/selector"
)

type User struct {
	db  bun.IDB
	sel selector.S[model.User]
}

func NewUser(db *bun.DB) *User {
	return &User{db: db, sel: selector.New[model.User](db)}
}

func (r *User) GetUserByAPIKey(ctx context.Context, apiKey string) (*model.User, error) {
	return r.sel.SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("?TableAlias.api_key = ?", apiKey)
	})
}

func (r *User) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	u, err := r.sel.SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("?TableAlias.id = ?", id)
	})
	if errors.Is(err, pgerr.ErrNotFound) {
		return nil, pgerr.NewEntityNotFound(model.EntityUser, id)
	}
	return u, err
}

func (r *User) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.sel.SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("?TableAlias.username = ?", username)
	})
}

func (r *User) CreateUser(ctx context.Context, u *model.User) error {
	_, err := r.db.NewInsert().Model(u).Returning("id").Exec(ctx)
	return errors.Wrap(err, "failed to insert user")
}
