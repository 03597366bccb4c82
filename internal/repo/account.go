package repo

import (
	"context"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	"exusiai.dev/activity-backend/internal/model"
	"exusiai.dev/activity-backend/internal/pkg/pgerr"
	"exusiai.dev/activity-backend/internal/repo/selector"
)

type Account struct {
	db  bun.IDB
	sel selector.S[model.Account]
}

func NewAccount(db *bun.DB) *Account {
	return newAccount(db)
}

func newAccount(db bun.IDB) *Account {
	return &Account{db: db, sel: selector.New[model.Account](db)}
}

func (r *Account) WithTx(tx bun.IDB) *Account {
	return newAccount(tx)
}

func (r *Account) GetAccountByID(ctx context.Context, id int64) (*model.Account, error) {
	a, err := r.sel.SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("account.id = ?", id)
	})
	if errors.Is(err, pgerr.ErrNotFound) {
		return nil, pgerr.NewEntityNotFound(model.EntityAccount, id)
	}
	return a, err
}

func (r *Account) CreateAccount(ctx context.Context, a *model.Account) error {
	_, err := r.db.NewInsert().Model(a).Returning("id").Exec(ctx)
	return errors.Wrap(err, "failed to insert account")
}
