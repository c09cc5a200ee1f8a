package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/config"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/logistics"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/pagination"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/socialsecurity"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const errGenerationFailed = "An unexpected error occurred"

type PayrollServiceImpl struct {
	tx                 database.Transactor
	payrollRepo        payroll.PayrollRepository
	itemRepo           payroll.PayrollItemRepository
	employeeRepo       employee.EmployeeRepository
	attendanceRepo     attendance.AttendanceRepository
	logisticsRepo      logistics.LogisticsRepository
	socialSecurityRepo socialsecurity.SocialSecurityRepository
	overtimeFactor     decimal.Decimal
	workers            int
}

func NewPayrollService(
	tx database.Transactor,
	payrollRepo payroll.PayrollRepository,
	itemRepo payroll.PayrollItemRepository,
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	logisticsRepo logistics.LogisticsRepository,
	socialSecurityRepo socialsecurity.SocialSecurityRepository,
	cfg config.PayrollConfig,
) payroll.PayrollService {
	factor := cfg.OvertimeFactor
	if !factor.IsPositive() {
		factor = payroll.DefaultOvertimeFactor
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	return &PayrollServiceImpl{
		tx:                 tx,
		payrollRepo:        payrollRepo,
		itemRepo:           itemRepo,
		employeeRepo:       employeeRepo,
		attendanceRepo:     attendanceRepo,
		logisticsRepo:      logisticsRepo,
		socialSecurityRepo: socialSecurityRepo,
		overtimeFactor:     factor,
		workers:            workers,
	}
}

// ========== PAYROLL GENERATION ==========

// monthWindow is the target month of one generation run
type monthWindow struct {
	month    string
	from, to time.Time
	factor   decimal.Decimal
}

// GenerateDrafts implements payroll.PayrollService.
func (s *PayrollServiceImpl) GenerateDrafts(ctx context.Context, req payroll.GenerateRequest) (payroll.GenerateResult, error) {
	if err := req.Validate(); err != nil {
		return payroll.GenerateResult{}, err
	}

	from, to, err := validator.MonthRange(req.Month)
	if err != nil {
		return payroll.GenerateResult{}, err
	}
	window := monthWindow{month: req.Month, from: from, to: to, factor: s.overtimeFactor}
	if req.OvertimeFactor != nil {
		window.factor = *req.OvertimeFactor
	}

	candidates, err := s.employeeRepo.ListActive(ctx, req.EmployeeIDs)
	if err != nil {
		return payroll.GenerateResult{}, fmt.Errorf("failed to list active employees: %w", err)
	}

	var result payroll.GenerateResult
	if req.Atomic {
		result, err = s.generateAtomic(ctx, candidates, window)
	} else {
		result, err = s.generateIsolated(ctx, candidates, window)
	}
	if err != nil {
		return payroll.GenerateResult{}, err
	}

	sort.Slice(result.Payrolls, func(i, j int) bool { return result.Payrolls[i].EmployeeID < result.Payrolls[j].EmployeeID })
	sort.Slice(result.Skipped, func(i, j int) bool { return result.Skipped[i] < result.Skipped[j] })
	sort.Slice(result.Failures, func(i, j int) bool { return result.Failures[i].EmployeeID < result.Failures[j].EmployeeID })
	if result.Payrolls == nil {
		result.Payrolls = []payroll.PayrollResponse{}
	}
	if result.Skipped == nil {
		result.Skipped = []int64{}
	}
	if result.Failures == nil {
		result.Failures = []payroll.GenerateFailure{}
	}

	return result, nil
}

// generateIsolated gives every employee its own transaction and runs them
// on a bounded pool. One employee's failure is reported, not propagated.
func (s *PayrollServiceImpl) generateIsolated(ctx context.Context, candidates []employee.Employee, window monthWindow) (payroll.GenerateResult, error) {
	var (
		mu     sync.Mutex
		result payroll.GenerateResult
		g      errgroup.Group
	)
	g.SetLimit(s.workers)

	for _, emp := range candidates {
		emp := emp
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			var created payroll.Payroll
			err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
				var err error
				created, err = s.generateForEmployee(ctx, emp, window)
				return err
			})

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				result.Payrolls = append(result.Payrolls, payroll.NewPayrollResponse(created))
			case errors.Is(err, payroll.ErrPayrollAlreadyExists):
				result.Skipped = append(result.Skipped, emp.ID)
			case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
				return err
			default:
				result.Failures = append(result.Failures, payroll.GenerateFailure{EmployeeID: emp.ID, Error: failureMessage(ctx, emp.ID, err)})
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return payroll.GenerateResult{}, err
	}
	return result, nil
}

// failureMessage returns the text reported for one employee's failed unit.
// Infrastructure errors are logged and replaced by a generic message.
func failureMessage(ctx context.Context, employeeID int64, err error) string {
	if payroll.IsBusinessFault(err) {
		return err.Error()
	}
	slog.ErrorContext(ctx, "Payroll generation failed for employee", "employee_id", employeeID, "error", err)
	return errGenerationFailed
}

// generateAtomic runs the whole batch in one transaction with a savepoint
// per employee. Any failure other than an existing payroll aborts the batch.
func (s *PayrollServiceImpl) generateAtomic(ctx context.Context, candidates []employee.Employee, window monthWindow) (payroll.GenerateResult, error) {
	var result payroll.GenerateResult

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		for _, emp := range candidates {
			if err := ctx.Err(); err != nil {
				return err
			}

			var created payroll.Payroll
			err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
				var err error
				created, err = s.generateForEmployee(ctx, emp, window)
				return err
			})
			if errors.Is(err, payroll.ErrPayrollAlreadyExists) {
				result.Skipped = append(result.Skipped, emp.ID)
				continue
			}
			if err != nil {
				return fmt.Errorf("employee %d: %w", emp.ID, err)
			}
			result.Payrolls = append(result.Payrolls, payroll.NewPayrollResponse(created))
		}
		return nil
	})
	if err != nil {
		return payroll.GenerateResult{}, err
	}

	return result, nil
}

// generateForEmployee computes and stores one Draft with its items. It
// returns ErrPayrollAlreadyExists when the employee already has a payroll
// for the month, whether seen by the pre-check or by the unique index.
func (s *PayrollServiceImpl) generateForEmployee(ctx context.Context, emp employee.Employee, window monthWindow) (payroll.Payroll, error) {
	exists, err := s.payrollRepo.ExistsForEmployeeMonth(ctx, emp.ID, window.month)
	if err != nil {
		return payroll.Payroll{}, err
	}
	if exists {
		return payroll.Payroll{}, payroll.ErrPayrollAlreadyExists
	}

	attendances, err := s.attendanceRepo.ListByEmployeeBetween(ctx, emp.ID, window.from, window.to)
	if err != nil {
		return payroll.Payroll{}, fmt.Errorf("failed to load attendance: %w", err)
	}

	inputs := payroll.Inputs{
		BaseSalary:     emp.BaseSalary,
		Attendances:    attendances,
		OvertimeFactor: window.factor,
	}

	l, err := s.logisticsRepo.GetByEmployeeMonth(ctx, emp.ID, window.month)
	switch {
	case err == nil:
		inputs.Logistics = &l
	case !errors.Is(err, logistics.ErrLogisticsNotFound):
		return payroll.Payroll{}, fmt.Errorf("failed to load logistics data: %w", err)
	}

	ss, err := s.socialSecurityRepo.GetByEmployeeMonth(ctx, emp.ID, window.month)
	switch {
	case err == nil:
		inputs.SocialSecurity = &ss
	case !errors.Is(err, socialsecurity.ErrSocialSecurityNotFound):
		return payroll.Payroll{}, fmt.Errorf("failed to load social security: %w", err)
	}

	draft := payroll.Calculate(inputs)

	p := payroll.Payroll{
		EmployeeID: emp.ID,
		Month:      window.month,
		Status:     payroll.StatusDraft,
	}
	p.SetTotals(draft.GrossAmount, draft.Deductions)

	created, err := s.payrollRepo.Create(ctx, p)
	if err != nil {
		return payroll.Payroll{}, err
	}

	created.Items, err = s.itemRepo.CreateBatch(ctx, created.ID, draft.Items)
	if err != nil {
		return payroll.Payroll{}, err
	}

	created.EmployeeNo = &emp.EmployeeNo
	created.EmployeeName = &emp.FullName
	created.DepartmentID = &emp.DepartmentID
	created.DepartmentName = emp.DepartmentName
	created.WorkshopID = emp.WorkshopID

	return created, nil
}

// ========== PAYROLL RECORDS ==========

// ListPayrolls implements payroll.PayrollService.
func (s *PayrollServiceImpl) ListPayrolls(ctx context.Context, filter payroll.PayrollFilter) (pagination.Page[payroll.PayrollResponse], error) {
	if err := filter.Validate(); err != nil {
		return pagination.Page[payroll.PayrollResponse]{}, err
	}
	filter.Normalize(payroll.SortFields, payroll.DefaultSort)

	payrolls, total, err := s.payrollRepo.List(ctx, filter)
	if err != nil {
		return pagination.Page[payroll.PayrollResponse]{}, fmt.Errorf("failed to list payrolls: %w", err)
	}

	return pagination.Map(pagination.NewPage(payrolls, total, filter.Query), payroll.NewPayrollResponse), nil
}

// GetPayroll implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetPayroll(ctx context.Context, id int64) (payroll.PayrollResponse, error) {
	p, err := s.loadWithItems(ctx, id)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}
	return payroll.NewPayrollResponse(p), nil
}

func (s *PayrollServiceImpl) loadWithItems(ctx context.Context, id int64) (payroll.Payroll, error) {
	p, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return payroll.Payroll{}, err
	}

	p.Items, err = s.itemRepo.ListByPayroll(ctx, id)
	if err != nil {
		return payroll.Payroll{}, fmt.Errorf("failed to load payroll items: %w", err)
	}
	return p, nil
}

// CreatePayroll implements payroll.PayrollService.
func (s *PayrollServiceImpl) CreatePayroll(ctx context.Context, req payroll.CreatePayrollRequest) (payroll.PayrollResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return payroll.PayrollResponse{}, err
	}

	exists, err := s.payrollRepo.ExistsForEmployeeMonth(ctx, req.EmployeeID, req.Month)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}
	if exists {
		return payroll.PayrollResponse{}, payroll.ErrPayrollAlreadyExists
	}

	p := payroll.Payroll{
		EmployeeID: req.EmployeeID,
		Month:      req.Month,
		Status:     payroll.StatusDraft,
	}
	p.SetTotals(req.GrossAmount, req.Deductions)

	created, err := s.payrollRepo.Create(ctx, p)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	return s.GetPayroll(ctx, created.ID)
}

// UpdatePayroll implements payroll.PayrollService.
func (s *PayrollServiceImpl) UpdatePayroll(ctx context.Context, req payroll.UpdatePayrollRequest) (payroll.PayrollResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollResponse{}, err
	}

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		p, err := s.payrollRepo.GetByIDForUpdate(ctx, req.ID)
		if err != nil {
			return err
		}
		if err := p.EnsureEditable(); err != nil {
			return err
		}

		gross, deductions := p.GrossAmount, p.Deductions
		if req.GrossAmount != nil {
			gross = *req.GrossAmount
		}
		if req.Deductions != nil {
			deductions = *req.Deductions
		}
		p.SetTotals(gross, deductions)

		return s.payrollRepo.UpdateTotals(ctx, p.ID, p.GrossAmount, p.Deductions, p.NetAmount)
	})
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	return s.GetPayroll(ctx, req.ID)
}

// DeletePayroll implements payroll.PayrollService.
func (s *PayrollServiceImpl) DeletePayroll(ctx context.Context, id int64) error {
	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		p, err := s.payrollRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := p.EnsureDeletable(); err != nil {
			return err
		}

		if err := s.itemRepo.SoftDeleteByPayroll(ctx, id); err != nil {
			return err
		}
		return s.payrollRepo.SoftDelete(ctx, id)
	})
}

// ========== LIFECYCLE ==========

// ConfirmPayroll implements payroll.PayrollService.
func (s *PayrollServiceImpl) ConfirmPayroll(ctx context.Context, id int64) (payroll.PayrollResponse, error) {
	return s.transition(ctx, id, (*payroll.Payroll).Confirm)
}

// PayPayroll implements payroll.PayrollService.
func (s *PayrollServiceImpl) PayPayroll(ctx context.Context, id int64) (payroll.PayrollResponse, error) {
	return s.transition(ctx, id, (*payroll.Payroll).Pay)
}

// transition locks the payroll, applies step and stores the new status
func (s *PayrollServiceImpl) transition(ctx context.Context, id int64, step func(*payroll.Payroll) error) (payroll.PayrollResponse, error) {
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		p, err := s.payrollRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := step(&p); err != nil {
			return err
		}
		return s.payrollRepo.UpdateStatus(ctx, p.ID, p.Status)
	})
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	return s.GetPayroll(ctx, id)
}
