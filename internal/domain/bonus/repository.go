package bonus

import "context"

type BonusRepository interface {
	Create(ctx context.Context, bonus YearEndBonus) (YearEndBonus, error)
	GetByID(ctx context.Context, id int64) (YearEndBonus, error)
	List(ctx context.Context, filter BonusFilter) ([]YearEndBonus, int64, error)
	// ListByEmployee returns every non-deleted bonus of the employee ordered by year
	ListByEmployee(ctx context.Context, employeeID int64) ([]YearEndBonus, error)
	Update(ctx context.Context, req UpdateBonusRequest) error
	SoftDelete(ctx context.Context, id int64) error
}
