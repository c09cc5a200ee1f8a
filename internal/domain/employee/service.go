package employee

import (
	"context"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/pagination"
)

// EmployeeService defines business logic for employees and their salary history
type EmployeeService interface {
	ListEmployees(ctx context.Context, filter EmployeeFilter) (pagination.Page[EmployeeResponse], error)
	GetEmployee(ctx context.Context, id int64) (EmployeeResponse, error)
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	UpdateEmployee(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)

	// DeleteEmployee soft deletes the employee and marks it inactive
	DeleteEmployee(ctx context.Context, id int64) error

	ListSalaryChanges(ctx context.Context, filter SalaryChangeFilter) (pagination.Page[SalaryChangeResponse], error)

	// CreateSalaryChange records the adjustment and applies the new base salary in one transaction
	CreateSalaryChange(ctx context.Context, req CreateSalaryChangeRequest) (SalaryChangeResponse, error)

	// UpdateSalaryChange edits the history record only
	UpdateSalaryChange(ctx context.Context, req UpdateSalaryChangeRequest) (SalaryChangeResponse, error)
	DeleteSalaryChange(ctx context.Context, id int64) error
}
