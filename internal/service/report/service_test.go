package report

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/bonus"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/cache"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/storage"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type fakeReportRepo struct {
	calls int
	rows  []report.SummaryRow
}

func (r *fakeReportRepo) PayrollSummary(ctx context.Context, filter report.SummaryFilter) ([]report.SummaryRow, error) {
	r.calls++
	return r.rows, nil
}

type fakePayrollRepo struct {
	payroll.PayrollRepository
	byMonth map[string][]payroll.Payroll
	byEmp   map[int64][]payroll.Payroll
}

func (r *fakePayrollRepo) ListByMonth(ctx context.Context, month string) ([]payroll.Payroll, error) {
	return r.byMonth[month], nil
}

func (r *fakePayrollRepo) ListByEmployee(ctx context.Context, employeeID int64) ([]payroll.Payroll, error) {
	return r.byEmp[employeeID], nil
}

type fakeEmployeeRepo struct {
	employee.EmployeeRepository
	rows map[int64]employee.Employee
}

func (r *fakeEmployeeRepo) GetByID(ctx context.Context, id int64) (employee.Employee, error) {
	e, ok := r.rows[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

type fakeBonusRepo struct {
	bonus.BonusRepository
	rows map[int64][]bonus.YearEndBonus
}

func (r *fakeBonusRepo) ListByEmployee(ctx context.Context, employeeID int64) ([]bonus.YearEndBonus, error) {
	return r.rows[employeeID], nil
}

func strPtr(s string) *string { return &s }

func samplePayrolls() []payroll.Payroll {
	return []payroll.Payroll{
		{
			ID: 1, EmployeeID: 1, Month: "2024-05", Status: payroll.StatusDraft,
			GrossAmount: decimal.RequireFromString("9400"), Deductions: decimal.RequireFromString("600"), NetAmount: decimal.RequireFromString("8800"),
			EmployeeNo: strPtr("E001"), EmployeeName: strPtr("Alice"), DepartmentName: strPtr("Assembly"),
		},
		{
			ID: 2, EmployeeID: 2, Month: "2024-05", Status: payroll.StatusPaid,
			GrossAmount: decimal.RequireFromString("6000"), Deductions: decimal.RequireFromString("137.93"), NetAmount: decimal.RequireFromString("5862.07"),
			EmployeeNo: strPtr("E002"), EmployeeName: strPtr("Bob"), DepartmentName: strPtr("Paint"),
		},
	}
}

type fixture struct {
	svc        *ReportServiceImpl
	reports    *fakeReportRepo
	cache      *cache.Cache
	storageDir string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	dir := t.TempDir()
	local, err := storage.NewLocalStorage(dir, "http://localhost:8080/files")
	require.NoError(t, err)

	reports := &fakeReportRepo{rows: []report.SummaryRow{{Month: "2024-05", DepartmentID: 1, DepartmentName: "Assembly", Count: 1}}}
	payrolls := &fakePayrollRepo{
		byMonth: map[string][]payroll.Payroll{"2024-05": samplePayrolls()},
		byEmp:   map[int64][]payroll.Payroll{1: samplePayrolls()[:1]},
	}
	employees := &fakeEmployeeRepo{rows: map[int64]employee.Employee{
		1: {ID: 1, EmployeeNo: "E001", FullName: "Alice", DepartmentID: 1, BaseSalary: decimal.NewFromInt(8700), IsActive: true},
	}}
	bonuses := &fakeBonusRepo{rows: map[int64][]bonus.YearEndBonus{
		1: {{ID: 1, EmployeeID: 1, Year: 2023, Amount: decimal.NewFromInt(1000)}},
	}}

	c := cache.New(cache.NewMemoryStore(), cache.NewMemoryVersions())
	svc := NewReportService(reports, payrolls, employees, bonuses, local, c, time.Minute, time.Hour).(*ReportServiceImpl)
	svc.now = func() time.Time { return time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC) }

	return fixture{svc: svc, reports: reports, cache: c, storageDir: dir}
}

func TestPayrollSummary_CachedUntilPayrollScopeBumps(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	month := "2024-05"

	rows, err := f.svc.PayrollSummary(ctx, report.SummaryFilter{Month: &month})
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	_, err = f.svc.PayrollSummary(ctx, report.SummaryFilter{Month: &month})
	require.NoError(t, err)
	assert.Equal(t, 1, f.reports.calls)

	f.cache.Bump(ctx, cache.ScopePayroll)
	_, err = f.svc.PayrollSummary(ctx, report.SummaryFilter{Month: &month})
	require.NoError(t, err)
	assert.Equal(t, 2, f.reports.calls)
}

func TestPayrollSummary_InvalidMonth(t *testing.T) {
	f := newFixture(t)
	bad := "2024-13"

	_, err := f.svc.PayrollSummary(context.Background(), report.SummaryFilter{Month: &bad})
	assert.Error(t, err)
	assert.Equal(t, 0, f.reports.calls)
}

func TestEmployeeHistory(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	history, err := f.svc.EmployeeHistory(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Alice", history.Employee.FullName)
	assert.Len(t, history.Payrolls, 1)
	assert.Len(t, history.Bonuses, 1)

	_, err = f.svc.EmployeeHistory(ctx, 99)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestExportPayrolls_Workbook(t *testing.T) {
	f := newFixture(t)

	wb, err := f.svc.ExportPayrolls(context.Background(), report.ExportRequest{Month: "2024-05"})
	require.NoError(t, err)
	assert.Equal(t, "payroll-2024-05.xlsx", wb.Filename)

	x, err := excelize.OpenReader(bytes.NewReader(wb.Content))
	require.NoError(t, err)
	defer x.Close()

	assert.Equal(t, []string{"Payroll 2024-05"}, x.GetSheetList())

	rows, err := x.GetRows("Payroll 2024-05", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, workbookHeaders, rows[0])
	assert.Equal(t, []string{"E001", "Alice", "Assembly", "2024-05", "9400", "600", "8800", "Draft"}, rows[1])
	assert.Equal(t, "Bob", rows[2][1])
	assert.Equal(t, "Paid", rows[2][7])
	assert.Equal(t, "Total", rows[3][0])
	assert.Equal(t, "15400", rows[3][4])
	assert.Equal(t, "14662.07", rows[3][6])
}

func TestExportPayrolls_EmptyMonthHasHeaderAndTotals(t *testing.T) {
	f := newFixture(t)

	wb, err := f.svc.ExportPayrolls(context.Background(), report.ExportRequest{Month: "2023-01"})
	require.NoError(t, err)

	x, err := excelize.OpenReader(bytes.NewReader(wb.Content))
	require.NoError(t, err)
	defer x.Close()

	rows, err := x.GetRows("Payroll 2023-01", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Total", rows[1][0])
	assert.Equal(t, "0", rows[1][4])
}

func TestExportPayrolls_Validation(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.ExportPayrolls(context.Background(), report.ExportRequest{Month: "May"})
	assert.Error(t, err)
}

func TestArchivePayrolls_StoresWorkbook(t *testing.T) {
	f := newFixture(t)

	res, err := f.svc.ArchivePayrolls(context.Background(), report.ExportRequest{Month: "2024-05"})
	require.NoError(t, err)
	assert.Equal(t, "payrolls/2024-05/20240601T093000Z-payroll-2024-05.xlsx", res.Path)
	assert.Equal(t, "http://localhost:8080/files/"+res.Path, res.URL)

	content, err := os.ReadFile(filepath.Join(f.storageDir, filepath.FromSlash(res.Path)))
	require.NoError(t, err)
	x, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer x.Close()
	assert.Equal(t, []string{"Payroll 2024-05"}, x.GetSheetList())
}
