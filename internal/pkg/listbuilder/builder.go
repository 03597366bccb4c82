package listbuilder

import (
	"context"
	"math"
	"strings"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

type condition struct {
	field *Field
	value any
}

type Builder struct {
	db    bun.IDB
	table string
	alias string

	fields       []*Field
	where        []condition
	search       string
	searchFields []*Field
	sortField    *Field
	sortOrder    string
	limit        int
	page         int
}

// New starts a list over table, which every Field.Expr and Join.On refers to as alias.
func New(db bun.IDB, table, alias string) *Builder {
	return &Builder{
		db:    db,
		table: table,
		alias: alias,
		page:  1,
	}
}

// Select sets the projected fields.
func (b *Builder) Select(fields ...*Field) *Builder {
	b.fields = fields
	return b
}

// Where restricts rows to those whose field equals value.
func (b *Builder) Where(field *Field, value any) *Builder {
	b.where = append(b.where, condition{field: field, value: value})
	return b
}

// Search restricts rows to those where any of fields contains term, case-insensitively.
func (b *Builder) Search(term string, fields ...*Field) *Builder {
	b.search = term
	b.searchFields = fields
	return b
}

func (b *Builder) Sort(field *Field, order string) *Builder {
	b.sortField = field
	if strings.EqualFold(order, SortDesc) {
		b.sortOrder = SortDesc
	} else {
		b.sortOrder = SortAsc
	}
	return b
}

// Limit sets the page size; zero or less disables pagination.
func (b *Builder) Limit(limit int) *Builder {
	b.limit = limit
	b.clampPage()
	return b
}

// SetCurrentPage sets the 1-based page. Pages whose offset would not fit an
// int are clamped to the last representable page, which is always empty.
func (b *Builder) SetCurrentPage(page int) *Builder {
	b.page = page
	b.clampPage()
	return b
}

func (b *Builder) clampPage() {
	if b.page < 1 {
		b.page = 1
	}
	if b.limit > 0 {
		if maxPage := math.MaxInt/b.limit - 1; b.page > maxPage {
			b.page = maxPage
		}
	}
}

func (b *Builder) CurrentPage() int {
	return b.page
}

func (b *Builder) GetLimit() int {
	return b.limit
}

// Fields returns the projected fields.
func (b *Builder) Fields() []*Field {
	return b.fields
}

// joins returns the joins needed by every field that takes part in the query,
// in first-use order.
func (b *Builder) joins() []Join {
	seen := make(map[string]struct{})
	var joins []Join
	collect := func(f *Field) {
		if f == nil {
			return
		}
		for _, j := range f.Joins {
			if _, ok := seen[j.Alias]; ok {
				continue
			}
			seen[j.Alias] = struct{}{}
			joins = append(joins, j)
		}
	}
	for _, f := range b.fields {
		collect(f)
	}
	for _, c := range b.where {
		collect(c.field)
	}
	if b.search != "" {
		for _, f := range b.searchFields {
			collect(f)
		}
	}
	collect(b.sortField)
	return joins
}

// base builds the FROM/JOIN/WHERE part shared by Execute and Count.
func (b *Builder) base() *bun.SelectQuery {
	q := b.db.NewSelect().TableExpr("? AS ?", bun.Ident(b.table), bun.Ident(b.alias))

	for _, j := range b.joins() {
		q = q.Join("LEFT JOIN ? AS ?", bun.Ident(j.Table), bun.Ident(j.Alias)).
			JoinOn(j.On)
	}

	for _, c := range b.where {
		q = q.Where("? = ?", bun.Safe(c.field.Expr), c.value)
	}

	if b.search != "" && len(b.searchFields) > 0 {
		term := "%" + strings.ToLower(b.search) + "%"
		q = q.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			for _, f := range b.searchFields {
				q = q.WhereOr("LOWER(CAST(? AS TEXT)) LIKE ?", bun.Safe(f.Expr), term)
			}
			return q
		})
	}

	return q
}

// Query returns the select query Execute runs, for inspection.
func (b *Builder) Query() *bun.SelectQuery {
	q := b.base()

	for _, f := range b.fields {
		q = q.ColumnExpr("? AS ?", bun.Safe(f.Expr), bun.Ident(f.Name))
	}

	if b.sortField != nil {
		q = q.OrderExpr("? "+strings.ToUpper(b.sortOrder), bun.Safe(b.sortField.Expr))
	}
	// pages must not overlap
	q = q.OrderExpr("?.? ASC", bun.Ident(b.alias), bun.Ident("id"))

	if b.limit > 0 {
		q = q.Limit(b.limit).Offset((b.page - 1) * b.limit)
	}

	return q
}

// Execute returns the rows of the current page keyed by field name.
func (b *Builder) Execute(ctx context.Context) ([]map[string]any, error) {
	if len(b.fields) == 0 {
		return nil, errors.New("listbuilder: no fields selected")
	}

	rows := make([]map[string]any, 0)
	if err := b.Query().Scan(ctx, &rows); err != nil {
		return nil, errors.Wrap(err, "listbuilder: failed to execute list query")
	}
	return rows, nil
}

// Count returns the number of rows matching the conditions, ignoring pagination.
func (b *Builder) Count(ctx context.Context) (int, error) {
	var count int
	err := b.base().ColumnExpr("COUNT(*)").Scan(ctx, &count)
	if err != nil {
		return 0, errors.Wrap(err, "listbuilder: failed to count list rows")
	}
	return count, nil
}
