package logistics

import (
	"context"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/pagination"
)

type LogisticsService interface {
	ListLogistics(ctx context.Context, filter LogisticsFilter) (pagination.Page[LogisticsResponse], error)
	GetLogistics(ctx context.Context, id int64) (LogisticsResponse, error)
	CreateLogistics(ctx context.Context, req CreateLogisticsRequest) (LogisticsResponse, error)
	UpdateLogistics(ctx context.Context, req UpdateLogisticsRequest) (LogisticsResponse, error)
	DeleteLogistics(ctx context.Context, id int64) error
}
