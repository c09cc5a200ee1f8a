package pagination

import "strings"

const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 200
)

// Query holds paging and sorting input shared by list endpoints
type Query struct {
	Page     int    `json:"page"`
	PageSize int    `json:"pageSize"`
	SortBy   string `json:"sortBy"`
	SortDir  string `json:"sortDir"`
	Keyword  string `json:"keyword,omitempty"`
}

// Normalize applies defaults and clamps. sortable maps public sort keys to
// SQL columns; an unknown SortBy falls back to defaultSort. It returns the
// column and direction to use in ORDER BY.
func (q *Query) Normalize(sortable map[string]string, defaultSort string) (string, string) {
	if q.Page <= 0 {
		q.Page = DefaultPage
	}
	if q.PageSize <= 0 {
		q.PageSize = DefaultPageSize
	}
	if q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}

	column, ok := sortable[q.SortBy]
	if !ok {
		q.SortBy = defaultSort
		column = sortable[defaultSort]
	}

	q.SortDir = strings.ToLower(q.SortDir)
	if q.SortDir != "asc" {
		q.SortDir = "desc"
	}
	return column, strings.ToUpper(q.SortDir)
}

func (q Query) Offset() int {
	return (q.Page - 1) * q.PageSize
}

// Meta describes the page returned to the caller
type Meta struct {
	Page     int    `json:"page"`
	PageSize int    `json:"pageSize"`
	Total    int64  `json:"total"`
	SortBy   string `json:"sortBy"`
	SortDir  string `json:"sortDir"`
}

type Page[T any] struct {
	Items []T  `json:"items"`
	Meta  Meta `json:"meta"`
}

// NewPage builds a page from a normalized query
func NewPage[T any](items []T, total int64, q Query) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items: items,
		Meta: Meta{
			Page:     q.Page,
			PageSize: q.PageSize,
			Total:    total,
			SortBy:   q.SortBy,
			SortDir:  q.SortDir,
		},
	}
}

// Map converts the items of a page, keeping its meta
func Map[T, U any](p Page[T], fn func(T) U) Page[U] {
	out := make([]U, 0, len(p.Items))
	for _, item := range p.Items {
		out = append(out, fn(item))
	}
	return Page[U]{Items: out, Meta: p.Meta}
}
