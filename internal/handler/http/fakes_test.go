package http

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/bonus"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/logistics"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/pagination"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/socialsecurity"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/payroll-backend-go/internal/service/master"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const handlerTestSecret = "test-secret-key-for-jwt"

type fakeAuthService struct {
	auth.AuthService
	jwt jwt.Service
}

func (f *fakeAuthService) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}
	if req.Username != "admin" || req.Password != "secret" {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	token, exp, err := f.jwt.GenerateAccessToken(1, "admin", user.RoleAdmin)
	if err != nil {
		return auth.TokenResponse{}, err
	}
	return auth.TokenResponse{AccessToken: token, ExpiresAt: exp, Username: "admin", Role: string(user.RoleAdmin)}, nil
}

func (f *fakeAuthService) CreateUser(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}
	if req.Username == "taken" {
		return user.UserResponse{}, user.ErrUsernameExists
	}
	return user.UserResponse{ID: 2, Username: req.Username, Role: req.Role}, nil
}

type fakePayrollService struct {
	payroll.PayrollService
	lastFilter payroll.PayrollFilter
	deleted    []int64
}

func (f *fakePayrollService) ListPayrolls(ctx context.Context, filter payroll.PayrollFilter) (pagination.Page[payroll.PayrollResponse], error) {
	filter.Normalize(payroll.SortFields, payroll.DefaultSort)
	f.lastFilter = filter
	return pagination.NewPage([]payroll.PayrollResponse{{ID: 1, Month: "2024-05"}}, 1, filter.Query), nil
}

func (f *fakePayrollService) GetPayroll(ctx context.Context, id int64) (payroll.PayrollResponse, error) {
	if id != 1 {
		return payroll.PayrollResponse{}, payroll.ErrPayrollNotFound
	}
	return payroll.PayrollResponse{ID: 1, Month: "2024-05", Status: payroll.StatusDraft}, nil
}

func (f *fakePayrollService) DeletePayroll(ctx context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakePayrollService) ConfirmPayroll(ctx context.Context, id int64) (payroll.PayrollResponse, error) {
	if id == 2 {
		return payroll.PayrollResponse{}, payroll.ErrOnlyDraftConfirmable
	}
	return payroll.PayrollResponse{ID: id, Status: payroll.StatusConfirmed}, nil
}

func (f *fakePayrollService) GenerateDrafts(ctx context.Context, req payroll.GenerateRequest) (payroll.GenerateResult, error) {
	if err := req.Validate(); err != nil {
		return payroll.GenerateResult{}, err
	}
	return payroll.GenerateResult{
		Payrolls: []payroll.PayrollResponse{{ID: 10, EmployeeID: 1, Month: req.Month, NetAmount: decimal.RequireFromString("5862.07")}},
		Skipped:  []int64{2},
		Failures: []payroll.GenerateFailure{},
	}, nil
}

type fakeItemService struct {
	payroll.PayrollItemService
	deleted []int64
}

func (f *fakeItemService) DeleteItem(ctx context.Context, payrollID, itemID int64) error {
	f.deleted = append(f.deleted, itemID)
	return nil
}

func (f *fakeItemService) CreateItem(ctx context.Context, req payroll.CreateItemRequest) (payroll.PayrollItemResponse, error) {
	if req.PayrollID == 3 {
		return payroll.PayrollItemResponse{}, payroll.ErrItemsLocked
	}
	return payroll.PayrollItemResponse{ID: 5, PayrollID: req.PayrollID, ItemType: req.ItemType, ItemName: req.ItemName, Amount: req.Amount}, nil
}

type fakeReportService struct {
	report.ReportService
}

func (f *fakeReportService) ExportPayrolls(ctx context.Context, req report.ExportRequest) (report.Workbook, error) {
	if err := req.Validate(); err != nil {
		return report.Workbook{}, err
	}
	return report.Workbook{Filename: "payroll-" + req.Month + ".xlsx", Content: []byte("PK-fake")}, nil
}

type fakeMasterService struct{ master.MasterService }
type fakeAttendanceService struct{ attendance.AttendanceService }
type fakeLogisticsService struct{ logistics.LogisticsService }
type fakeSocialSecurityService struct{ socialsecurity.SocialSecurityService }
type fakeBonusService struct{ bonus.BonusService }

type fakeEmployeeService struct {
	employee.EmployeeService
	lastChangeFilter employee.SalaryChangeFilter
	updatedChanges   []employee.UpdateSalaryChangeRequest
	deletedChanges   []int64
}

func (f *fakeEmployeeService) ListSalaryChanges(ctx context.Context, filter employee.SalaryChangeFilter) (pagination.Page[employee.SalaryChangeResponse], error) {
	f.lastChangeFilter = filter
	return pagination.NewPage([]employee.SalaryChangeResponse{}, 0, filter.Query), nil
}

func (f *fakeEmployeeService) UpdateSalaryChange(ctx context.Context, req employee.UpdateSalaryChangeRequest) (employee.SalaryChangeResponse, error) {
	f.updatedChanges = append(f.updatedChanges, req)
	return employee.SalaryChangeResponse{ID: req.ID}, nil
}

func (f *fakeEmployeeService) DeleteSalaryChange(ctx context.Context, id int64) error {
	f.deletedChanges = append(f.deletedChanges, id)
	return nil
}

type testServer struct {
	handler   http.Handler
	jwt       jwt.Service
	payrolls  *fakePayrollService
	items     *fakeItemService
	employees *fakeEmployeeService
}

func newTestServer(t *testing.T, healthErr error) *testServer {
	t.Helper()
	jwtService, err := jwt.NewJWTService(handlerTestSecret, "1h")
	require.NoError(t, err)

	payrolls := &fakePayrollService{}
	items := &fakeItemService{}
	employees := &fakeEmployeeService{}
	handlers := Handlers{
		Auth:           NewAuthHandler(&fakeAuthService{jwt: jwtService}),
		Master:         NewMasterHandler(&fakeMasterService{}),
		Employee:       NewEmployeeHandler(employees),
		Attendance:     NewAttendanceHandler(&fakeAttendanceService{}),
		Logistics:      NewLogisticsHandler(&fakeLogisticsService{}),
		SocialSecurity: NewSocialSecurityHandler(&fakeSocialSecurityService{}),
		Bonus:          NewBonusHandler(&fakeBonusService{}),
		Payroll:        NewPayrollHandler(payrolls, items),
		Report:         NewReportHandler(&fakeReportService{}),
		Health: NewHealthHandler(map[string]HealthCheck{
			"postgres": func(ctx context.Context) error { return healthErr },
		}),
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &testServer{
		handler:   NewRouter(logger, jwtService, []string{"http://localhost:5173"}, handlers),
		jwt:       jwtService,
		payrolls:  payrolls,
		items:     items,
		employees: employees,
	}
}

func (s *testServer) token(t *testing.T, role user.Role) string {
	t.Helper()
	token, _, err := s.jwt.GenerateAccessToken(7, strings.ToLower(string(role)), role)
	require.NoError(t, err)
	return token
}

func (s *testServer) do(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

var errDatabaseDown = errors.New("connection refused")
