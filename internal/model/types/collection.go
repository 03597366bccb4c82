package types

import (
	"net/url"
	"strconv"
)

type Link struct {
	Href string `json:"href"`
}

// Collection is a list response. Page, Pages and Limit are only set for
// paginated lists.
type Collection struct {
	Embedded map[string]any  `json:"_embedded"`
	Links    map[string]Link `json:"_links,omitempty"`
	Total    int             `json:"total"`
	Page     int             `json:"page,omitempty"`
	Pages    int             `json:"pages,omitempty"`
	Limit    int             `json:"limit,omitempty"`
}

func NewCollection(rel string, items any, total int) *Collection {
	return &Collection{
		Embedded: map[string]any{rel: items},
		Total:    total,
	}
}

// NewPaginatedCollection builds a page of a list served at path. query holds
// the request's query parameters; its page parameter is rewritten per link.
func NewPaginatedCollection(rel string, items any, total, page, limit int, path string, query url.Values) *Collection {
	pages := 1
	if limit > 0 && total > 0 {
		pages = (total + limit - 1) / limit
	}

	href := func(p int) Link {
		q := url.Values{}
		for k, v := range query {
			q[k] = v
		}
		q.Set("page", strconv.Itoa(p))
		q.Set("limit", strconv.Itoa(limit))
		return Link{Href: path + "?" + q.Encode()}
	}

	links := map[string]Link{
		"self":  href(page),
		"first": href(1),
		"last":  href(pages),
	}
	if page < pages {
		links["next"] = href(page + 1)
	}
	if page > 1 {
		links["prev"] = href(page - 1)
	}

	return &Collection{
		Embedded: map[string]any{rel: items},
		Links:    links,
		Total:    total,
		Page:     page,
		Pages:    pages,
		Limit:    limit,
	}
}
