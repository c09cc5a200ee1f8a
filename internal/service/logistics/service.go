package logistics

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/logistics"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/pagination"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/cache"
)

type LogisticsServiceImpl struct {
	logisticsRepo logistics.LogisticsRepository
	employeeRepo  employee.EmployeeRepository
	cache         *cache.Cache
	ttl           time.Duration
}

func NewLogisticsService(
	logisticsRepo logistics.LogisticsRepository,
	employeeRepo employee.EmployeeRepository,
	c *cache.Cache,
	ttl time.Duration,
) logistics.LogisticsService {
	return &LogisticsServiceImpl{
		logisticsRepo: logisticsRepo,
		employeeRepo:  employeeRepo,
		cache:         c,
		ttl:           ttl,
	}
}

var readScopes = []string{cache.ScopeLogistics, cache.ScopeEmployee}

// ListLogistics implements logistics.LogisticsService.
func (s *LogisticsServiceImpl) ListLogistics(ctx context.Context, filter logistics.LogisticsFilter) (pagination.Page[logistics.LogisticsResponse], error) {
	if err := filter.Validate(); err != nil {
		return pagination.Page[logistics.LogisticsResponse]{}, err
	}
	filter.Normalize(logistics.SortFields, logistics.DefaultSort)

	entry := cache.Entry{Method: "logistics.List", Args: filter, Scopes: readScopes, TTL: s.ttl}
	return cache.Remember(ctx, s.cache, entry, func(ctx context.Context) (pagination.Page[logistics.LogisticsResponse], error) {
		rows, total, err := s.logisticsRepo.List(ctx, filter)
		if err != nil {
			return pagination.Page[logistics.LogisticsResponse]{}, fmt.Errorf("failed to list logistics data: %w", err)
		}
		return pagination.Map(pagination.NewPage(rows, total, filter.Query), logistics.NewLogisticsResponse), nil
	})
}

// GetLogistics implements logistics.LogisticsService.
func (s *LogisticsServiceImpl) GetLogistics(ctx context.Context, id int64) (logistics.LogisticsResponse, error) {
	entry := cache.Entry{Method: "logistics.Get", Args: id, Scopes: readScopes, TTL: s.ttl}
	return cache.Remember(ctx, s.cache, entry, func(ctx context.Context) (logistics.LogisticsResponse, error) {
		l, err := s.logisticsRepo.GetByID(ctx, id)
		if err != nil {
			return logistics.LogisticsResponse{}, err
		}
		return logistics.NewLogisticsResponse(l), nil
	})
}

// CreateLogistics implements logistics.LogisticsService.
func (s *LogisticsServiceImpl) CreateLogistics(ctx context.Context, req logistics.CreateLogisticsRequest) (logistics.LogisticsResponse, error) {
	if err := req.Validate(); err != nil {
		return logistics.LogisticsResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return logistics.LogisticsResponse{}, err
	}

	created, err := s.logisticsRepo.Create(ctx, logistics.LogisticsData{
		EmployeeID:         req.EmployeeID,
		Month:              req.Month,
		HousingDeduction:   req.HousingDeduction,
		MealAllowance:      req.MealAllowance,
		UtilitiesDeduction: req.UtilitiesDeduction,
	})
	if err != nil {
		return logistics.LogisticsResponse{}, err
	}

	s.cache.Bump(ctx, cache.ScopeLogistics)
	return logistics.NewLogisticsResponse(created), nil
}

// UpdateLogistics implements logistics.LogisticsService.
func (s *LogisticsServiceImpl) UpdateLogistics(ctx context.Context, req logistics.UpdateLogisticsRequest) (logistics.LogisticsResponse, error) {
	if err := req.Validate(); err != nil {
		return logistics.LogisticsResponse{}, err
	}

	if err := s.logisticsRepo.Update(ctx, req); err != nil {
		return logistics.LogisticsResponse{}, err
	}
	s.cache.Bump(ctx, cache.ScopeLogistics)

	updated, err := s.logisticsRepo.GetByID(ctx, req.ID)
	if err != nil {
		return logistics.LogisticsResponse{}, err
	}
	return logistics.NewLogisticsResponse(updated), nil
}

// DeleteLogistics implements logistics.LogisticsService.
func (s *LogisticsServiceImpl) DeleteLogistics(ctx context.Context, id int64) error {
	if err := s.logisticsRepo.SoftDelete(ctx, id); err != nil {
		return err
	}

	s.cache.Bump(ctx, cache.ScopeLogistics)
	return nil
}
