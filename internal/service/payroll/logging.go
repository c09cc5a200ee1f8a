package payroll

import (
	"context"
	"log/slog"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/pagination"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/logging"
)

type loggingPayrollService struct {
	next   payroll.PayrollService
	logger *slog.Logger
}

// NewLoggingPayrollService writes one OK/ERR line per call to next
func NewLoggingPayrollService(next payroll.PayrollService, logger *slog.Logger) payroll.PayrollService {
	return &loggingPayrollService{next: next, logger: logger.With(slog.String("service", "payroll"))}
}

type idArgs struct {
	ID int64 `json:"id"`
}

func (s *loggingPayrollService) ListPayrolls(ctx context.Context, filter payroll.PayrollFilter) (pagination.Page[payroll.PayrollResponse], error) {
	return logging.Trace(ctx, s.logger, payroll.IsBusinessFault, "payroll.ListPayrolls", filter, func(ctx context.Context) (pagination.Page[payroll.PayrollResponse], error) {
		return s.next.ListPayrolls(ctx, filter)
	})
}

func (s *loggingPayrollService) GetPayroll(ctx context.Context, id int64) (payroll.PayrollResponse, error) {
	return logging.Trace(ctx, s.logger, payroll.IsBusinessFault, "payroll.GetPayroll", idArgs{ID: id}, func(ctx context.Context) (payroll.PayrollResponse, error) {
		return s.next.GetPayroll(ctx, id)
	})
}

func (s *loggingPayrollService) CreatePayroll(ctx context.Context, req payroll.CreatePayrollRequest) (payroll.PayrollResponse, error) {
	return logging.Trace(ctx, s.logger, payroll.IsBusinessFault, "payroll.CreatePayroll", req, func(ctx context.Context) (payroll.PayrollResponse, error) {
		return s.next.CreatePayroll(ctx, req)
	})
}

func (s *loggingPayrollService) UpdatePayroll(ctx context.Context, req payroll.UpdatePayrollRequest) (payroll.PayrollResponse, error) {
	return logging.Trace(ctx, s.logger, payroll.IsBusinessFault, "payroll.UpdatePayroll", req, func(ctx context.Context) (payroll.PayrollResponse, error) {
		return s.next.UpdatePayroll(ctx, req)
	})
}

func (s *loggingPayrollService) DeletePayroll(ctx context.Context, id int64) error {
	_, err := logging.Trace(ctx, s.logger, payroll.IsBusinessFault, "payroll.DeletePayroll", idArgs{ID: id}, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.next.DeletePayroll(ctx, id)
	})
	return err
}

func (s *loggingPayrollService) ConfirmPayroll(ctx context.Context, id int64) (payroll.PayrollResponse, error) {
	return logging.Trace(ctx, s.logger, payroll.IsBusinessFault, "payroll.ConfirmPayroll", idArgs{ID: id}, func(ctx context.Context) (payroll.PayrollResponse, error) {
		return s.next.ConfirmPayroll(ctx, id)
	})
}

func (s *loggingPayrollService) PayPayroll(ctx context.Context, id int64) (payroll.PayrollResponse, error) {
	return logging.Trace(ctx, s.logger, payroll.IsBusinessFault, "payroll.PayPayroll", idArgs{ID: id}, func(ctx context.Context) (payroll.PayrollResponse, error) {
		return s.next.PayPayroll(ctx, id)
	})
}

func (s *loggingPayrollService) GenerateDrafts(ctx context.Context, req payroll.GenerateRequest) (payroll.GenerateResult, error) {
	return logging.Trace(ctx, s.logger, payroll.IsBusinessFault, "payroll.GenerateDrafts", req, func(ctx context.Context) (payroll.GenerateResult, error) {
		return s.next.GenerateDrafts(ctx, req)
	})
}

type loggingPayrollItemService struct {
	next   payroll.PayrollItemService
	logger *slog.Logger
}

func NewLoggingPayrollItemService(next payroll.PayrollItemService, logger *slog.Logger) payroll.PayrollItemService {
	return &loggingPayrollItemService{next: next, logger: logger.With(slog.String("service", "payroll_item"))}
}

type itemArgs struct {
	PayrollID int64 `json:"payrollId"`
	ItemID    int64 `json:"itemId,omitempty"`
}

func (s *loggingPayrollItemService) ListItems(ctx context.Context, payrollID int64) ([]payroll.PayrollItemResponse, error) {
	return logging.Trace(ctx, s.logger, payroll.IsBusinessFault, "payrollItem.ListItems", itemArgs{PayrollID: payrollID}, func(ctx context.Context) ([]payroll.PayrollItemResponse, error) {
		return s.next.ListItems(ctx, payrollID)
	})
}

func (s *loggingPayrollItemService) CreateItem(ctx context.Context, req payroll.CreateItemRequest) (payroll.PayrollItemResponse, error) {
	return logging.Trace(ctx, s.logger, payroll.IsBusinessFault, "payrollItem.CreateItem", req, func(ctx context.Context) (payroll.PayrollItemResponse, error) {
		return s.next.CreateItem(ctx, req)
	})
}

func (s *loggingPayrollItemService) UpdateItem(ctx context.Context, req payroll.UpdateItemRequest) (payroll.PayrollItemResponse, error) {
	return logging.Trace(ctx, s.logger, payroll.IsBusinessFault, "payrollItem.UpdateItem", req, func(ctx context.Context) (payroll.PayrollItemResponse, error) {
		return s.next.UpdateItem(ctx, req)
	})
}

func (s *loggingPayrollItemService) DeleteItem(ctx context.Context, payrollID, itemID int64) error {
	_, err := logging.Trace(ctx, s.logger, payroll.IsBusinessFault, "payrollItem.DeleteItem", itemArgs{PayrollID: payrollID, ItemID: itemID}, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.next.DeleteItem(ctx, payrollID, itemID)
	})
	return err
}
