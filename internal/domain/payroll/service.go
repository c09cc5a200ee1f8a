package payroll

import (
	"context"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/pagination"
)

// PayrollService covers draft generation and the Draft -> Confirmed -> Paid lifecycle
type PayrollService interface {
	ListPayrolls(ctx context.Context, filter PayrollFilter) (pagination.Page[PayrollResponse], error)
	GetPayroll(ctx context.Context, id int64) (PayrollResponse, error)

	// CreatePayroll creates a Draft payroll by hand
	CreatePayroll(ctx context.Context, req CreatePayrollRequest) (PayrollResponse, error)
	UpdatePayroll(ctx context.Context, req UpdatePayrollRequest) (PayrollResponse, error)
	DeletePayroll(ctx context.Context, id int64) error

	ConfirmPayroll(ctx context.Context, id int64) (PayrollResponse, error)
	PayPayroll(ctx context.Context, id int64) (PayrollResponse, error)

	// GenerateDrafts creates one Draft per eligible employee that has no payroll for the month yet
	GenerateDrafts(ctx context.Context, req GenerateRequest) (GenerateResult, error)
}

// PayrollItemService edits the line items of a Draft payroll
type PayrollItemService interface {
	ListItems(ctx context.Context, payrollID int64) ([]PayrollItemResponse, error)
	CreateItem(ctx context.Context, req CreateItemRequest) (PayrollItemResponse, error)
	UpdateItem(ctx context.Context, req UpdateItemRequest) (PayrollItemResponse, error)
	DeleteItem(ctx context.Context, payrollID, itemID int64) error
}
