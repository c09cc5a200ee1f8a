package report

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/bonus"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/cache"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/storage"
)

var reportScopes = []string{cache.ScopePayroll, cache.ScopeEmployee, cache.ScopeDepartment, cache.ScopeWorkshop}

type ReportServiceImpl struct {
	reportRepo   report.ReportRepository
	payrollRepo  payroll.PayrollRepository
	employeeRepo employee.EmployeeRepository
	bonusRepo    bonus.BonusRepository
	storage      storage.FileStorage
	cache        *cache.Cache
	ttl          time.Duration
	urlExpiry    time.Duration
	now          func() time.Time
}

func NewReportService(
	reportRepo report.ReportRepository,
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
	bonusRepo bonus.BonusRepository,
	fileStorage storage.FileStorage,
	c *cache.Cache,
	ttl time.Duration,
	urlExpiry time.Duration,
) report.ReportService {
	return &ReportServiceImpl{
		reportRepo:   reportRepo,
		payrollRepo:  payrollRepo,
		employeeRepo: employeeRepo,
		bonusRepo:    bonusRepo,
		storage:      fileStorage,
		cache:        c,
		ttl:          ttl,
		urlExpiry:    urlExpiry,
		now:          time.Now,
	}
}

// PayrollSummary implements report.ReportService.
func (s *ReportServiceImpl) PayrollSummary(ctx context.Context, filter report.SummaryFilter) ([]report.SummaryRow, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	entry := cache.Entry{Method: "report.PayrollSummary", Args: filter, Scopes: reportScopes, TTL: s.ttl}
	return cache.Remember(ctx, s.cache, entry, func(ctx context.Context) ([]report.SummaryRow, error) {
		rows, err := s.reportRepo.PayrollSummary(ctx, filter)
		if err != nil {
			return nil, fmt.Errorf("failed to build payroll summary: %w", err)
		}
		if rows == nil {
			rows = []report.SummaryRow{}
		}
		return rows, nil
	})
}

// EmployeeHistory implements report.ReportService.
func (s *ReportServiceImpl) EmployeeHistory(ctx context.Context, employeeID int64) (report.EmployeeHistory, error) {
	entry := cache.Entry{
		Method: "report.EmployeeHistory",
		Args:   employeeID,
		Scopes: append([]string{cache.ScopeBonus}, reportScopes...),
		TTL:    s.ttl,
	}
	return cache.Remember(ctx, s.cache, entry, func(ctx context.Context) (report.EmployeeHistory, error) {
		e, err := s.employeeRepo.GetByID(ctx, employeeID)
		if err != nil {
			return report.EmployeeHistory{}, err
		}

		payrolls, err := s.payrollRepo.ListByEmployee(ctx, employeeID)
		if err != nil {
			return report.EmployeeHistory{}, fmt.Errorf("failed to list payrolls: %w", err)
		}

		bonuses, err := s.bonusRepo.ListByEmployee(ctx, employeeID)
		if err != nil {
			return report.EmployeeHistory{}, fmt.Errorf("failed to list bonuses: %w", err)
		}

		history := report.EmployeeHistory{
			Employee: employee.NewEmployeeResponse(e),
			Payrolls: make([]payroll.PayrollResponse, 0, len(payrolls)),
			Bonuses:  make([]bonus.BonusResponse, 0, len(bonuses)),
		}
		for _, p := range payrolls {
			history.Payrolls = append(history.Payrolls, payroll.NewPayrollResponse(p))
		}
		for _, b := range bonuses {
			history.Bonuses = append(history.Bonuses, bonus.NewBonusResponse(b))
		}
		return history, nil
	})
}

// ExportPayrolls implements report.ReportService.
func (s *ReportServiceImpl) ExportPayrolls(ctx context.Context, req report.ExportRequest) (report.Workbook, error) {
	if err := req.Validate(); err != nil {
		return report.Workbook{}, err
	}

	payrolls, err := s.payrollRepo.ListByMonth(ctx, req.Month)
	if err != nil {
		return report.Workbook{}, fmt.Errorf("failed to list payrolls: %w", err)
	}

	content, err := renderPayrollWorkbook(req.Month, payrolls)
	if err != nil {
		return report.Workbook{}, fmt.Errorf("%w: %v", report.ErrExportFailed, err)
	}

	return report.Workbook{
		Filename: fmt.Sprintf("payroll-%s.xlsx", req.Month),
		Content:  content,
	}, nil
}

// ArchivePayrolls implements report.ReportService.
func (s *ReportServiceImpl) ArchivePayrolls(ctx context.Context, req report.ExportRequest) (report.ArchiveResponse, error) {
	workbook, err := s.ExportPayrolls(ctx, req)
	if err != nil {
		return report.ArchiveResponse{}, err
	}

	key := fmt.Sprintf("payrolls/%s/%s-%s", req.Month, s.now().UTC().Format("20060102T150405Z"), workbook.Filename)
	path, err := s.storage.Upload(ctx, bytes.NewReader(workbook.Content), key, report.WorkbookContentType)
	if err != nil {
		return report.ArchiveResponse{}, fmt.Errorf("failed to upload workbook: %w", err)
	}

	url, err := s.storage.GetURL(ctx, path, s.urlExpiry)
	if err != nil {
		return report.ArchiveResponse{}, fmt.Errorf("failed to resolve workbook url: %w", err)
	}

	return report.ArchiveResponse{Path: path, URL: url}, nil
}
