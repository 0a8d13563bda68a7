package domain

import (
	"net/url"
	"strconv"
)

type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// ListParams carries the optional filter and paging arguments of a getAll call.
// Zero values are left out of the query string.
type ListParams struct {
	Page    int
	Limit   int
	Search  string
	Status  string
	Sort    string
	Filters map[string]string
}

func (p ListParams) Values() url.Values {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	if p.Status != "" {
		q.Set("status", p.Status)
	}
	if p.Sort != "" {
		q.Set("sort", p.Sort)
	}
	for k, v := range p.Filters {
		if v != "" {
			q.Set(k, v)
		}
	}
	return q
}

// FieldError is a single field-level validation failure, either reported by
// the server or produced by a local form schema.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
