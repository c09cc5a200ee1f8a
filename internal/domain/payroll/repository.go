package payroll

import (
	"context"

	"github.com/shopspring/decimal"
)

type PayrollRepository interface {
	// Create inserts a Draft payroll; a live duplicate for the employee-month yields ErrPayrollAlreadyExists
	Create(ctx context.Context, payroll Payroll) (Payroll, error)
	GetByID(ctx context.Context, id int64) (Payroll, error)
	// GetByIDForUpdate locks the row until the surrounding transaction ends
	GetByIDForUpdate(ctx context.Context, id int64) (Payroll, error)
	ExistsForEmployeeMonth(ctx context.Context, employeeID int64, month string) (bool, error)
	List(ctx context.Context, filter PayrollFilter) ([]Payroll, int64, error)
	ListByMonth(ctx context.Context, month string) ([]Payroll, error)
	ListByEmployee(ctx context.Context, employeeID int64) ([]Payroll, error)
	UpdateTotals(ctx context.Context, id int64, gross, deductions, net decimal.Decimal) error
	UpdateStatus(ctx context.Context, id int64, status Status) error
	SoftDelete(ctx context.Context, id int64) error
}

type PayrollItemRepository interface {
	CreateBatch(ctx context.Context, payrollID int64, items []PayrollItem) ([]PayrollItem, error)
	// Create appends the item; a zero SortOrder places it after the existing items
	Create(ctx context.Context, item PayrollItem) (PayrollItem, error)
	GetByID(ctx context.Context, id int64) (PayrollItem, error)
	ListByPayroll(ctx context.Context, payrollID int64) ([]PayrollItem, error)
	Update(ctx context.Context, req UpdateItemRequest) error
	SoftDelete(ctx context.Context, id int64) error
	SoftDeleteByPayroll(ctx context.Context, payrollID int64) error
}
