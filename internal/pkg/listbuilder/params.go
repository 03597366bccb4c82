package listbuilder

import (
	"strings"

	"github.com/samber/lo"

	"exusiai.dev/activity-backend/internal/pkg/pgerr"
)

// Params are the generic list query parameters understood by every flat list.
type Params struct {
	Fields       string `query:"fields"`
	Search       string `query:"search"`
	SearchFields string `query:"searchFields"`
	SortBy       string `query:"sortBy"`
	SortOrder    string `query:"sortOrder" validate:"omitempty,caseinsensitiveoneof=asc desc"`
	Limit        int    `query:"limit" validate:"gte=0"`
	Page         int    `query:"page" validate:"gte=0"`
}

// Initialize applies params to b using schema. Field names that are not part
// of schema are rejected. limit falls back to defaultLimit and is capped at maxLimit.
func Initialize(b *Builder, schema Schema, params Params, defaultLimit, maxLimit int) error {
	fields, err := resolve(schema, params.Fields)
	if err != nil {
		return err
	}
	if len(fields) == 0 {
		fields = schema.Defaults()
	}
	b.Select(fields...)

	if params.Search != "" {
		searchFields, err := resolve(schema, params.SearchFields)
		if err != nil {
			return err
		}
		if len(searchFields) > 0 {
			b.Search(params.Search, searchFields...)
		}
	}

	if params.SortBy != "" {
		f, ok := schema.Get(params.SortBy)
		if !ok {
			return pgerr.NewValidation("unknown sortBy field: " + params.SortBy)
		}
		b.Sort(f, params.SortOrder)
	}

	limit := params.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if maxLimit > 0 && limit > maxLimit {
		limit = maxLimit
	}
	b.Limit(limit)
	b.SetCurrentPage(params.Page)

	return nil
}

func resolve(schema Schema, csv string) ([]*Field, error) {
	names := lo.Uniq(lo.Compact(lo.Map(strings.Split(csv, ","), func(s string, _ int) string {
		return strings.TrimSpace(s)
	})))

	fields := make([]*Field, 0, len(names))
	for _, name := range names {
		f, ok := schema.Get(name)
		if !ok {
			return nil, pgerr.NewValidation("unknown list field: " + name)
		}
		fields = append(fields, f)
	}
	return fields, nil
}
