package repo

import (
	"context"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	"exusiai.dev/activity-backend/internal/model"
	"exusiai.dev/activity-backend/internal/pkg/pgerr"
	"exusiai.dev/activity-backend/internal/repo/selector"
)

type Contact struct {
	db  bun.IDB
	sel selector.S[model.Contact]
}

func NewContact(db *bun.DB) *Contact {
	return newContact(db)
}

func newContact(db bun.IDB) *Contact {
	return &Contact{db: db, sel: selector.New[model.Contact](db)}
}

func (r *Contact) WithTx(tx bun.IDB) *Contact {
	return newContact(tx)
}

func (r *Contact) GetContactByID(ctx context.Context, id int64) (*model.Contact, error) {
	c, err := r.sel.SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("contact.id = ?", id)
	})
	if errors.Is(err, pgerr.ErrNotFound) {
		return nil, pgerr.NewEntityNotFound(model.EntityContact, id)
	}
	return c, err
}

func (r *Contact) CreateContact(ctx context.Context, c *model.Contact) error {
	_, err := r.db.NewInsert().Model(c).Returning("id").Exec(ctx)
	return errors.Wrap(err, "failed to insert contact")
}
