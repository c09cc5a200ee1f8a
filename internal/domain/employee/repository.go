package employee

import (
	"context"

	"github.com/shopspring/decimal"
)

type EmployeeRepository interface {
	Create(ctx context.Context, employee Employee) (Employee, error)
	GetByID(ctx context.Context, id int64) (Employee, error)
	// GetByIDForUpdate locks the row until the surrounding transaction ends
	GetByIDForUpdate(ctx context.Context, id int64) (Employee, error)
	List(ctx context.Context, filter EmployeeFilter) ([]Employee, int64, error)
	// ListActive returns active, non-deleted employees; ids narrows the set when non-empty
	ListActive(ctx context.Context, ids []int64) ([]Employee, error)
	Update(ctx context.Context, req UpdateEmployeeRequest) error
	UpdateBaseSalary(ctx context.Context, id int64, baseSalary decimal.Decimal) error
	SoftDelete(ctx context.Context, id int64) error
}

type SalaryChangeRepository interface {
	Create(ctx context.Context, change SalaryChange) (SalaryChange, error)
	GetByID(ctx context.Context, id int64) (SalaryChange, error)
	List(ctx context.Context, filter SalaryChangeFilter) ([]SalaryChange, int64, error)
	Update(ctx context.Context, req UpdateSalaryChangeRequest) error
	SoftDelete(ctx context.Context, id int64) error
}
