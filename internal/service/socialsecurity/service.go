package socialsecurity

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/pagination"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/socialsecurity"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/cache"
)

type SocialSecurityServiceImpl struct {
	socialSecurityRepo socialsecurity.SocialSecurityRepository
	employeeRepo       employee.EmployeeRepository
	cache              *cache.Cache
	ttl                time.Duration
}

func NewSocialSecurityService(
	socialSecurityRepo socialsecurity.SocialSecurityRepository,
	employeeRepo employee.EmployeeRepository,
	c *cache.Cache,
	ttl time.Duration,
) socialsecurity.SocialSecurityService {
	return &SocialSecurityServiceImpl{
		socialSecurityRepo: socialSecurityRepo,
		employeeRepo:       employeeRepo,
		cache:              c,
		ttl:                ttl,
	}
}

// ListSocialSecurities implements socialsecurity.SocialSecurityService.
func (s *SocialSecurityServiceImpl) ListSocialSecurities(ctx context.Context, filter socialsecurity.SocialSecurityFilter) (pagination.Page[socialsecurity.SocialSecurityResponse], error) {
	if err := filter.Validate(); err != nil {
		return pagination.Page[socialsecurity.SocialSecurityResponse]{}, err
	}
	filter.Normalize(socialsecurity.SortFields, socialsecurity.DefaultSort)

	entry := cache.Entry{
		Method: "socialSecurity.List",
		Args:   filter,
		Scopes: []string{cache.ScopeSocialSecurity, cache.ScopeEmployee},
		TTL:    s.ttl,
	}
	return cache.Remember(ctx, s.cache, entry, func(ctx context.Context) (pagination.Page[socialsecurity.SocialSecurityResponse], error) {
		rows, total, err := s.socialSecurityRepo.List(ctx, filter)
		if err != nil {
			return pagination.Page[socialsecurity.SocialSecurityResponse]{}, fmt.Errorf("failed to list social security records: %w", err)
		}
		return pagination.Map(pagination.NewPage(rows, total, filter.Query), socialsecurity.NewSocialSecurityResponse), nil
	})
}

// GetSocialSecurity implements socialsecurity.SocialSecurityService.
func (s *SocialSecurityServiceImpl) GetSocialSecurity(ctx context.Context, id int64) (socialsecurity.SocialSecurityResponse, error) {
	entry := cache.Entry{
		Method: "socialSecurity.Get",
		Args:   id,
		Scopes: []string{cache.ScopeSocialSecurity, cache.ScopeEmployee},
		TTL:    s.ttl,
	}
	return cache.Remember(ctx, s.cache, entry, func(ctx context.Context) (socialsecurity.SocialSecurityResponse, error) {
		record, err := s.socialSecurityRepo.GetByID(ctx, id)
		if err != nil {
			return socialsecurity.SocialSecurityResponse{}, err
		}
		return socialsecurity.NewSocialSecurityResponse(record), nil
	})
}

// CreateSocialSecurity implements socialsecurity.SocialSecurityService.
func (s *SocialSecurityServiceImpl) CreateSocialSecurity(ctx context.Context, req socialsecurity.CreateSocialSecurityRequest) (socialsecurity.SocialSecurityResponse, error) {
	if err := req.Validate(); err != nil {
		return socialsecurity.SocialSecurityResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return socialsecurity.SocialSecurityResponse{}, err
	}

	created, err := s.socialSecurityRepo.Create(ctx, socialsecurity.SocialSecurity{
		EmployeeID:   req.EmployeeID,
		Month:        req.Month,
		Pension:      req.Pension,
		Medical:      req.Medical,
		Unemployment: req.Unemployment,
		HousingFund:  req.HousingFund,
	})
	if err != nil {
		return socialsecurity.SocialSecurityResponse{}, err
	}

	s.cache.Bump(ctx, cache.ScopeSocialSecurity)
	return socialsecurity.NewSocialSecurityResponse(created), nil
}

// UpdateSocialSecurity implements socialsecurity.SocialSecurityService.
func (s *SocialSecurityServiceImpl) UpdateSocialSecurity(ctx context.Context, req socialsecurity.UpdateSocialSecurityRequest) (socialsecurity.SocialSecurityResponse, error) {
	if err := req.Validate(); err != nil {
		return socialsecurity.SocialSecurityResponse{}, err
	}

	if err := s.socialSecurityRepo.Update(ctx, req); err != nil {
		return socialsecurity.SocialSecurityResponse{}, err
	}
	s.cache.Bump(ctx, cache.ScopeSocialSecurity)

	updated, err := s.socialSecurityRepo.GetByID(ctx, req.ID)
	if err != nil {
		return socialsecurity.SocialSecurityResponse{}, err
	}
	return socialsecurity.NewSocialSecurityResponse(updated), nil
}

// DeleteSocialSecurity implements socialsecurity.SocialSecurityService.
func (s *SocialSecurityServiceImpl) DeleteSocialSecurity(ctx context.Context, id int64) error {
	if err := s.socialSecurityRepo.SoftDelete(ctx, id); err != nil {
		return err
	}

	s.cache.Bump(ctx, cache.ScopeSocialSecurity)
	return nil
}
