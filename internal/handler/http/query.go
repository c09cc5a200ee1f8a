package http

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/pagination"
	"github.com/cmlabs-hris/payroll-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

// queryParser reads typed query parameters and collects every malformed one
type queryParser struct {
	values url.Values
	errs   validator.ValidationErrors
}

func newQueryParser(r *http.Request) *queryParser {
	return &queryParser{values: r.URL.Query()}
}

func (p *queryParser) String(key string) *string {
	v := p.values.Get(key)
	if v == "" {
		return nil
	}
	return &v
}

func (p *queryParser) Int64(key string) *int64 {
	v := p.values.Get(key)
	if v == "" {
		return nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		p.errs.Add(key, "must be an integer")
		return nil
	}
	return &n
}

func (p *queryParser) Int(key string) *int {
	n := p.Int64(key)
	if n == nil {
		return nil
	}
	i := int(*n)
	return &i
}

func (p *queryParser) Bool(key string) *bool {
	v := p.values.Get(key)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		p.errs.Add(key, "must be true or false")
		return nil
	}
	return &b
}

// Page reads page, pageSize, sortBy, sortDir and keyword
func (p *queryParser) Page() pagination.Query {
	q := pagination.Query{
		SortBy:  p.values.Get("sortBy"),
		SortDir: p.values.Get("sortDir"),
		Keyword: p.values.Get("keyword"),
	}
	if page := p.Int("page"); page != nil {
		q.Page = *page
	}
	if size := p.Int("pageSize"); size != nil {
		q.PageSize = *size
	}
	return q
}

func (p *queryParser) Err() error {
	return p.errs.OrNil()
}

// pathID parses a positive int64 URL parameter, writing a 422 when it is not one
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		response.ValidationError(w, map[string]string{name: "must be a positive integer"})
		return 0, false
	}
	return id, true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return false
	}
	return true
}
