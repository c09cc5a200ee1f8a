package logistics

import "context"

type LogisticsRepository interface {
	Create(ctx context.Context, data LogisticsData) (LogisticsData, error)
	GetByID(ctx context.Context, id int64) (LogisticsData, error)
	// GetByEmployeeMonth returns ErrLogisticsNotFound when the employee has no row for month
	GetByEmployeeMonth(ctx context.Context, employeeID int64, month string) (LogisticsData, error)
	List(ctx context.Context, filter LogisticsFilter) ([]LogisticsData, int64, error)
	Update(ctx context.Context, req UpdateLogisticsRequest) error
	SoftDelete(ctx context.Context, id int64) error
}
