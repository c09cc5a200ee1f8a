package bonus

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/bonus"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/pagination"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/cache"
)

type BonusServiceImpl struct {
	bonusRepo    bonus.BonusRepository
	employeeRepo employee.EmployeeRepository
	cache        *cache.Cache
	ttl          time.Duration
}

func NewBonusService(bonusRepo bonus.BonusRepository, employeeRepo employee.EmployeeRepository, c *cache.Cache, ttl time.Duration) bonus.BonusService {
	return &BonusServiceImpl{
		bonusRepo:    bonusRepo,
		employeeRepo: employeeRepo,
		cache:        c,
		ttl:          ttl,
	}
}

// ListBonuses implements bonus.BonusService.
func (s *BonusServiceImpl) ListBonuses(ctx context.Context, filter bonus.BonusFilter) (pagination.Page[bonus.BonusResponse], error) {
	filter.Normalize(bonus.SortFields, bonus.DefaultSort)

	entry := cache.Entry{Method: "bonus.List", Args: filter, Scopes: []string{cache.ScopeBonus, cache.ScopeEmployee}, TTL: s.ttl}
	return cache.Remember(ctx, s.cache, entry, func(ctx context.Context) (pagination.Page[bonus.BonusResponse], error) {
		rows, total, err := s.bonusRepo.List(ctx, filter)
		if err != nil {
			return pagination.Page[bonus.BonusResponse]{}, fmt.Errorf("failed to list bonuses: %w", err)
		}
		return pagination.Map(pagination.NewPage(rows, total, filter.Query), bonus.NewBonusResponse), nil
	})
}

// GetBonus implements bonus.BonusService.
func (s *BonusServiceImpl) GetBonus(ctx context.Context, id int64) (bonus.BonusResponse, error) {
	entry := cache.Entry{Method: "bonus.Get", Args: id, Scopes: []string{cache.ScopeBonus, cache.ScopeEmployee}, TTL: s.ttl}
	return cache.Remember(ctx, s.cache, entry, func(ctx context.Context) (bonus.BonusResponse, error) {
		b, err := s.bonusRepo.GetByID(ctx, id)
		if err != nil {
			return bonus.BonusResponse{}, err
		}
		return bonus.NewBonusResponse(b), nil
	})
}

// CreateBonus implements bonus.BonusService.
func (s *BonusServiceImpl) CreateBonus(ctx context.Context, req bonus.CreateBonusRequest) (bonus.BonusResponse, error) {
	if err := req.Validate(); err != nil {
		return bonus.BonusResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return bonus.BonusResponse{}, err
	}

	created, err := s.bonusRepo.Create(ctx, bonus.YearEndBonus{
		EmployeeID: req.EmployeeID,
		Year:       req.Year,
		Amount:     req.Amount,
		Remark:     req.Remark,
	})
	if err != nil {
		return bonus.BonusResponse{}, err
	}

	s.cache.Bump(ctx, cache.ScopeBonus)
	return bonus.NewBonusResponse(created), nil
}

// UpdateBonus implements bonus.BonusService.
func (s *BonusServiceImpl) UpdateBonus(ctx context.Context, req bonus.UpdateBonusRequest) (bonus.BonusResponse, error) {
	if err := req.Validate(); err != nil {
		return bonus.BonusResponse{}, err
	}

	if err := s.bonusRepo.Update(ctx, req); err != nil {
		return bonus.BonusResponse{}, err
	}
	s.cache.Bump(ctx, cache.ScopeBonus)

	updated, err := s.bonusRepo.GetByID(ctx, req.ID)
	if err != nil {
		return bonus.BonusResponse{}, err
	}
	return bonus.NewBonusResponse(updated), nil
}

// DeleteBonus implements bonus.BonusService.
func (s *BonusServiceImpl) DeleteBonus(ctx context.Context, id int64) error {
	if err := s.bonusRepo.SoftDelete(ctx, id); err != nil {
		return err
	}

	s.cache.Bump(ctx, cache.ScopeBonus)
	return nil
}
