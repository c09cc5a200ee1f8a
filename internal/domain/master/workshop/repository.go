package workshop

import "context"

type WorkshopRepository interface {
	Create(ctx context.Context, workshop Workshop) (Workshop, error)
	GetByID(ctx context.Context, id int64) (Workshop, error)
	List(ctx context.Context, filter WorkshopFilter) ([]Workshop, int64, error)
	Update(ctx context.Context, req UpdateWorkshopRequest) error
	SoftDelete(ctx context.Context, id int64) error
	// HasEmployees reports whether non-deleted employees are assigned to the workshop
	HasEmployees(ctx context.Context, id int64) (bool, error)
}
