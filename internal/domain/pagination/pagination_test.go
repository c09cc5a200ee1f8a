package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var sortable = map[string]string{
	"created_at": "p.created_at",
	"month":      "p.month",
}

func TestQuery_NormalizeDefaults(t *testing.T) {
	q := Query{}
	column, dir := q.Normalize(sortable, "created_at")

	assert.Equal(t, "p.created_at", column)
	assert.Equal(t, "DESC", dir)
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 20, q.PageSize)
	assert.Equal(t, "created_at", q.SortBy)
	assert.Equal(t, "desc", q.SortDir)
	assert.Equal(t, 0, q.Offset())
}

func TestQuery_NormalizeCustom(t *testing.T) {
	q := Query{Page: 3, PageSize: 500, SortBy: "month", SortDir: "ASC"}
	column, dir := q.Normalize(sortable, "created_at")

	assert.Equal(t, "p.month", column)
	assert.Equal(t, "ASC", dir)
	assert.Equal(t, MaxPageSize, q.PageSize)
	assert.Equal(t, 400, q.Offset())
}

func TestQuery_NormalizeRejectsUnknownSort(t *testing.T) {
	q := Query{SortBy: "1; DROP TABLE payrolls"}
	column, _ := q.Normalize(sortable, "created_at")

	assert.Equal(t, "p.created_at", column)
	assert.Equal(t, "created_at", q.SortBy)
}

func TestNewPageAndMap(t *testing.T) {
	q := Query{Page: 2, PageSize: 10, SortBy: "month", SortDir: "asc"}
	p := NewPage([]int{1, 2}, 12, q)

	mapped := Map(p, func(i int) string { return string(rune('a' + i)) })

	assert.Equal(t, []string{"b", "c"}, mapped.Items)
	assert.Equal(t, Meta{Page: 2, PageSize: 10, Total: 12, SortBy: "month", SortDir: "asc"}, mapped.Meta)

	empty := NewPage[int](nil, 0, q)
	assert.NotNil(t, empty.Items)
}
