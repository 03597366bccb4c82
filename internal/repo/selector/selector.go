package selector

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"

	"exusiai.dev/activity-backend/internal/pkg/pgerr"
)

type S[T any] struct {
	DB bun.IDB
}

func New[T any](db bun.IDB) S[T] {
	return S[T]{
		DB: db,
	}
}

// SelectOne returns pgerr.ErrNotFound when no row matches.
func (r S[T]) SelectOne(ctx context.Context, fn func(q *bun.SelectQuery) *bun.SelectQuery) (*T, error) {
	var model T
	err := fn(r.DB.NewSelect().Model(&model)).Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pgerr.ErrNotFound
	} else if err != nil {
		return nil, err
	}

	return &model, nil
}

func (r S[T]) SelectMany(ctx context.Context, fn func(q *bun.SelectQuery) *bun.SelectQuery) ([]*T, error) {
	model := make([]*T, 0)
	err := fn(r.DB.NewSelect().Model(&model)).Scan(ctx)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	return model, nil
}

// Exists reports whether any row matches.
func (r S[T]) Exists(ctx context.Context, fn func(q *bun.SelectQuery) *bun.SelectQuery) (bool, error) {
	return fn(r.DB.NewSelect().Model((*T)(nil))).Exists(ctx)
}
