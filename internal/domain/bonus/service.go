package bonus

import (
	"context"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/pagination"
)

type BonusService interface {
	ListBonuses(ctx context.Context, filter BonusFilter) (pagination.Page[BonusResponse], error)
	GetBonus(ctx context.Context, id int64) (BonusResponse, error)
	CreateBonus(ctx context.Context, req CreateBonusRequest) (BonusResponse, error)
	UpdateBonus(ctx context.Context, req UpdateBonusRequest) (BonusResponse, error)
	DeleteBonus(ctx context.Context, id int64) error
}
