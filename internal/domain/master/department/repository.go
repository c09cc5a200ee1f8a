package department

import "context"

type DepartmentRepository interface {
	Create(ctx context.Context, department Department) (Department, error)
	GetByID(ctx context.Context, id int64) (Department, error)
	List(ctx context.Context, filter DepartmentFilter) ([]Department, int64, error)
	Update(ctx context.Context, req UpdateDepartmentRequest) error
	// SoftDelete marks the department deleted
	SoftDelete(ctx context.Context, id int64) error
	// HasDependents reports whether non-deleted workshops or employees reference the department
	HasDependents(ctx context.Context, id int64) (bool, error)
}
