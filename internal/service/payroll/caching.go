package payroll

import (
	"context"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/pagination"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/cache"
)

// Reads depend on employee and department names joined into the payroll rows.
var payrollReadScopes = []string{cache.ScopePayroll, cache.ScopePayrollItem, cache.ScopeEmployee, cache.ScopeDepartment}

type cachingPayrollService struct {
	next  payroll.PayrollService
	cache *cache.Cache
	ttl   time.Duration
}

// NewCachingPayrollService serves reads through c and bumps the payroll
// versions after every successful mutation.
func NewCachingPayrollService(next payroll.PayrollService, c *cache.Cache, ttl time.Duration) payroll.PayrollService {
	return &cachingPayrollService{next: next, cache: c, ttl: ttl}
}

func (s *cachingPayrollService) bump(ctx context.Context) {
	s.cache.Bump(ctx, cache.ScopePayroll, cache.ScopePayrollItem)
}

func (s *cachingPayrollService) ListPayrolls(ctx context.Context, filter payroll.PayrollFilter) (pagination.Page[payroll.PayrollResponse], error) {
	filter.Normalize(payroll.SortFields, payroll.DefaultSort)

	entry := cache.Entry{Method: "payroll.List", Args: filter, Scopes: payrollReadScopes, TTL: s.ttl}
	return cache.Remember(ctx, s.cache, entry, func(ctx context.Context) (pagination.Page[payroll.PayrollResponse], error) {
		return s.next.ListPayrolls(ctx, filter)
	})
}

func (s *cachingPayrollService) GetPayroll(ctx context.Context, id int64) (payroll.PayrollResponse, error) {
	entry := cache.Entry{Method: "payroll.Get", Args: id, Scopes: payrollReadScopes, TTL: s.ttl}
	return cache.Remember(ctx, s.cache, entry, func(ctx context.Context) (payroll.PayrollResponse, error) {
		return s.next.GetPayroll(ctx, id)
	})
}

func (s *cachingPayrollService) CreatePayroll(ctx context.Context, req payroll.CreatePayrollRequest) (payroll.PayrollResponse, error) {
	resp, err := s.next.CreatePayroll(ctx, req)
	if err == nil {
		s.bump(ctx)
	}
	return resp, err
}

func (s *cachingPayrollService) UpdatePayroll(ctx context.Context, req payroll.UpdatePayrollRequest) (payroll.PayrollResponse, error) {
	resp, err := s.next.UpdatePayroll(ctx, req)
	if err == nil {
		s.bump(ctx)
	}
	return resp, err
}

func (s *cachingPayrollService) DeletePayroll(ctx context.Context, id int64) error {
	err := s.next.DeletePayroll(ctx, id)
	if err == nil {
		s.bump(ctx)
	}
	return err
}

func (s *cachingPayrollService) ConfirmPayroll(ctx context.Context, id int64) (payroll.PayrollResponse, error) {
	resp, err := s.next.ConfirmPayroll(ctx, id)
	if err == nil {
		s.bump(ctx)
	}
	return resp, err
}

func (s *cachingPayrollService) PayPayroll(ctx context.Context, id int64) (payroll.PayrollResponse, error) {
	resp, err := s.next.PayPayroll(ctx, id)
	if err == nil {
		s.bump(ctx)
	}
	return resp, err
}

// GenerateDrafts bumps even on error: isolated runs may have committed
// some employees before the failure surfaced.
func (s *cachingPayrollService) GenerateDrafts(ctx context.Context, req payroll.GenerateRequest) (payroll.GenerateResult, error) {
	result, err := s.next.GenerateDrafts(ctx, req)
	s.bump(ctx)
	return result, err
}

type cachingPayrollItemService struct {
	next  payroll.PayrollItemService
	cache *cache.Cache
	ttl   time.Duration
}

func NewCachingPayrollItemService(next payroll.PayrollItemService, c *cache.Cache, ttl time.Duration) payroll.PayrollItemService {
	return &cachingPayrollItemService{next: next, cache: c, ttl: ttl}
}

func (s *cachingPayrollItemService) bump(ctx context.Context) {
	s.cache.Bump(ctx, cache.ScopePayrollItem, cache.ScopePayroll)
}

func (s *cachingPayrollItemService) ListItems(ctx context.Context, payrollID int64) ([]payroll.PayrollItemResponse, error) {
	entry := cache.Entry{Method: "payrollItem.List", Args: payrollID, Scopes: []string{cache.ScopePayrollItem, cache.ScopePayroll}, TTL: s.ttl}
	return cache.Remember(ctx, s.cache, entry, func(ctx context.Context) ([]payroll.PayrollItemResponse, error) {
		return s.next.ListItems(ctx, payrollID)
	})
}

func (s *cachingPayrollItemService) CreateItem(ctx context.Context, req payroll.CreateItemRequest) (payroll.PayrollItemResponse, error) {
	resp, err := s.next.CreateItem(ctx, req)
	if err == nil {
		s.bump(ctx)
	}
	return resp, err
}

func (s *cachingPayrollItemService) UpdateItem(ctx context.Context, req payroll.UpdateItemRequest) (payroll.PayrollItemResponse, error) {
	resp, err := s.next.UpdateItem(ctx, req)
	if err == nil {
		s.bump(ctx)
	}
	return resp, err
}

func (s *cachingPayrollItemService) DeleteItem(ctx context.Context, payrollID, itemID int64) error {
	err := s.next.DeleteItem(ctx, payrollID, itemID)
	if err == nil {
		s.bump(ctx)
	}
	return err
}
