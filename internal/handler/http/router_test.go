package http

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePayrolls(t *testing.T) {
	s := newTestServer(t, nil)
	body := `{"month":"2024-05"}`

	tests := []struct {
		name   string
		token  string
		status int
	}{
		{"anonymous", "", http.StatusUnauthorized},
		{"user role", s.token(t, user.RoleUser), http.StatusForbidden},
		{"hr role", s.token(t, user.RoleHR), http.StatusOK},
		{"admin role", s.token(t, user.RoleAdmin), http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, http.MethodPost, "/api/v1/payrolls/generate", tt.token, body)
			assert.Equal(t, tt.status, rec.Code)
		})
	}

	rec := s.do(t, http.MethodPost, "/api/v1/payrolls/generate", s.token(t, user.RoleHR), body)
	env := decodeEnvelope(t, rec.Body.Bytes())
	assert.Equal(t, "Generated 1 payroll(s), skipped 1, failed 0", env.Message)

	var result payroll.GenerateResult
	require.NoError(t, json.Unmarshal(env.Data, &result))
	require.Len(t, result.Payrolls, 1)
	assert.Equal(t, "5862.07", result.Payrolls[0].NetAmount.String())
	assert.Equal(t, []int64{2}, result.Skipped)
	assert.NotNil(t, result.Failures)

	rec = s.do(t, http.MethodPost, "/api/v1/payrolls/generate", s.token(t, user.RoleHR), `{"month":"2024/05"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestPayrollLifecycleErrors(t *testing.T) {
	s := newTestServer(t, nil)
	hr := s.token(t, user.RoleHR)

	rec := s.do(t, http.MethodPost, "/api/v1/payrolls/1/confirm", hr, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/v1/payrolls/2/confirm", hr, "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "only Draft can be confirmed", decodeEnvelope(t, rec.Body.Bytes()).Message)

	rec = s.do(t, http.MethodPost, "/api/v1/payrolls/3/items", hr, `{"itemType":"Other","itemName":"Tools","amount":"10"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/v1/payrolls/1/items", hr, `{"itemType":"Other","itemName":"Tools","amount":"10"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/payrolls/99", hr, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/payrolls/abc", hr, "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestDeletePayrollRequiresAdmin(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodDelete, "/api/v1/payrolls/1", s.token(t, user.RoleHR), "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, s.payrolls.deleted)

	rec = s.do(t, http.MethodDelete, "/api/v1/payrolls/1", s.token(t, user.RoleAdmin), "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []int64{1}, s.payrolls.deleted)
}

func TestDeletePayrollItemRequiresAdmin(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodDelete, "/api/v1/payrolls/1/items/5", s.token(t, user.RoleHR), "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, s.items.deleted)

	rec = s.do(t, http.MethodDelete, "/api/v1/payrolls/1/items/5", s.token(t, user.RoleAdmin), "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []int64{5}, s.items.deleted)
}

func TestSalaryChangeEditAndDeleteRoles(t *testing.T) {
	s := newTestServer(t, nil)
	hr := s.token(t, user.RoleHR)

	rec := s.do(t, http.MethodPut, "/api/v1/salary-changes/4", s.token(t, user.RoleUser), `{"reason":"Typo"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodPut, "/api/v1/salary-changes/4", hr, `{"reason":"Typo"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, s.employees.updatedChanges, 1)
	assert.Equal(t, int64(4), s.employees.updatedChanges[0].ID)

	rec = s.do(t, http.MethodDelete, "/api/v1/salary-changes/4", hr, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, s.employees.deletedChanges)

	rec = s.do(t, http.MethodDelete, "/api/v1/salary-changes/4", s.token(t, user.RoleAdmin), "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []int64{4}, s.employees.deletedChanges)
}

func TestListSalaryChangesDateRange(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodGet, "/api/v1/salary-changes?employeeId=2&dateFrom=2024-01-01&dateTo=2024-06-30", s.token(t, user.RoleUser), "")
	require.Equal(t, http.StatusOK, rec.Code)

	filter := s.employees.lastChangeFilter
	require.NotNil(t, filter.DateFrom)
	assert.Equal(t, "2024-01-01", *filter.DateFrom)
	require.NotNil(t, filter.DateTo)
	assert.Equal(t, "2024-06-30", *filter.DateTo)
}

func TestListPayrollsQuery(t *testing.T) {
	s := newTestServer(t, nil)
	token := s.token(t, user.RoleUser)

	rec := s.do(t, http.MethodGet, "/api/v1/payrolls?month=2024-05&departmentId=3&status=Draft&page=2&pageSize=5&sortBy=month&sortDir=asc", token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	filter := s.payrolls.lastFilter
	require.NotNil(t, filter.Month)
	assert.Equal(t, "2024-05", *filter.Month)
	require.NotNil(t, filter.DepartmentID)
	assert.Equal(t, int64(3), *filter.DepartmentID)
	require.NotNil(t, filter.Status)
	assert.Equal(t, payroll.StatusDraft, *filter.Status)

	env := decodeEnvelope(t, rec.Body.Bytes())
	require.NotNil(t, env.Meta)
	assert.Equal(t, 2, env.Meta.Page)
	assert.Equal(t, 5, env.Meta.PageSize)
	assert.Equal(t, "month", env.Meta.SortBy)
	assert.Equal(t, "asc", env.Meta.SortDir)

	rec = s.do(t, http.MethodGet, "/api/v1/payrolls?pageSize=many", token, "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "must be an integer", decodeEnvelope(t, rec.Body.Bytes()).Error.Details["pageSize"])
}

func TestExportPayrollsDownload(t *testing.T) {
	s := newTestServer(t, nil)
	token := s.token(t, user.RoleUser)

	rec := s.do(t, http.MethodGet, "/api/v1/reports/payrolls/export?month=2024-05", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, report.WorkbookContentType, rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="payroll-2024-05.xlsx"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "PK-fake", rec.Body.String())

	rec = s.do(t, http.MethodGet, "/api/v1/reports/payrolls/export", token, "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, nil)
	rec := s.do(t, http.MethodGet, "/", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"postgres":"up"`)

	down := newTestServer(t, errDatabaseDown)
	rec = down.do(t, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "connection refused")
}
