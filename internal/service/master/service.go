package master

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/master/department"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/master/workshop"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/pagination"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/cache"
)

type MasterService interface {
	// Department operations
	CreateDepartment(ctx context.Context, req department.CreateDepartmentRequest) (department.DepartmentResponse, error)
	GetDepartment(ctx context.Context, id int64) (department.DepartmentResponse, error)
	ListDepartments(ctx context.Context, filter department.DepartmentFilter) (pagination.Page[department.DepartmentResponse], error)
	UpdateDepartment(ctx context.Context, req department.UpdateDepartmentRequest) (department.DepartmentResponse, error)
	DeleteDepartment(ctx context.Context, id int64) error

	// Workshop operations
	CreateWorkshop(ctx context.Context, req workshop.CreateWorkshopRequest) (workshop.WorkshopResponse, error)
	GetWorkshop(ctx context.Context, id int64) (workshop.WorkshopResponse, error)
	ListWorkshops(ctx context.Context, filter workshop.WorkshopFilter) (pagination.Page[workshop.WorkshopResponse], error)
	UpdateWorkshop(ctx context.Context, req workshop.UpdateWorkshopRequest) (workshop.WorkshopResponse, error)
	DeleteWorkshop(ctx context.Context, id int64) error
}

type masterServiceImpl struct {
	departmentRepo department.DepartmentRepository
	workshopRepo   workshop.WorkshopRepository
	cache          *cache.Cache
	ttl            time.Duration
}

func NewMasterService(
	departmentRepo department.DepartmentRepository,
	workshopRepo workshop.WorkshopRepository,
	c *cache.Cache,
	ttl time.Duration,
) MasterService {
	return &masterServiceImpl{
		departmentRepo: departmentRepo,
		workshopRepo:   workshopRepo,
		cache:          c,
		ttl:            ttl,
	}
}

func toDepartmentResponse(d department.Department) department.DepartmentResponse {
	return department.DepartmentResponse{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func toWorkshopResponse(w workshop.Workshop) workshop.WorkshopResponse {
	return workshop.WorkshopResponse{
		ID:             w.ID,
		Name:           w.Name,
		DepartmentID:   w.DepartmentID,
		DepartmentName: w.DepartmentName,
		CreatedAt:      w.CreatedAt,
		UpdatedAt:      w.UpdatedAt,
	}
}

// ==================== DEPARTMENT OPERATIONS ====================

func (s *masterServiceImpl) CreateDepartment(ctx context.Context, req department.CreateDepartmentRequest) (department.DepartmentResponse, error) {
	if err := req.Validate(); err != nil {
		return department.DepartmentResponse{}, err
	}

	created, err := s.departmentRepo.Create(ctx, department.Department{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return department.DepartmentResponse{}, err
	}

	s.cache.Bump(ctx, cache.ScopeDepartment)
	return toDepartmentResponse(created), nil
}

func (s *masterServiceImpl) GetDepartment(ctx context.Context, id int64) (department.DepartmentResponse, error) {
	entry := cache.Entry{Method: "department.Get", Args: id, Scopes: []string{cache.ScopeDepartment}, TTL: s.ttl}
	return cache.Remember(ctx, s.cache, entry, func(ctx context.Context) (department.DepartmentResponse, error) {
		d, err := s.departmentRepo.GetByID(ctx, id)
		if err != nil {
			return department.DepartmentResponse{}, err
		}
		return toDepartmentResponse(d), nil
	})
}

func (s *masterServiceImpl) ListDepartments(ctx context.Context, filter department.DepartmentFilter) (pagination.Page[department.DepartmentResponse], error) {
	filter.Normalize(department.SortFields, department.DefaultSort)

	entry := cache.Entry{Method: "department.List", Args: filter, Scopes: []string{cache.ScopeDepartment}, TTL: s.ttl}
	return cache.Remember(ctx, s.cache, entry, func(ctx context.Context) (pagination.Page[department.DepartmentResponse], error) {
		departments, total, err := s.departmentRepo.List(ctx, filter)
		if err != nil {
			return pagination.Page[department.DepartmentResponse]{}, fmt.Errorf("failed to list departments: %w", err)
		}
		page := pagination.NewPage(departments, total, filter.Query)
		return pagination.Map(page, toDepartmentResponse), nil
	})
}

func (s *masterServiceImpl) UpdateDepartment(ctx context.Context, req department.UpdateDepartmentRequest) (department.DepartmentResponse, error) {
	if err := req.Validate(); err != nil {
		return department.DepartmentResponse{}, err
	}

	if err := s.departmentRepo.Update(ctx, req); err != nil {
		return department.DepartmentResponse{}, err
	}
	s.cache.Bump(ctx, cache.ScopeDepartment)

	updated, err := s.departmentRepo.GetByID(ctx, req.ID)
	if err != nil {
		return department.DepartmentResponse{}, err
	}
	return toDepartmentResponse(updated), nil
}

func (s *masterServiceImpl) DeleteDepartment(ctx context.Context, id int64) error {
	if _, err := s.departmentRepo.GetByID(ctx, id); err != nil {
		return err
	}

	inUse, err := s.departmentRepo.HasDependents(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check department dependents: %w", err)
	}
	if inUse {
		return department.ErrDepartmentInUse
	}

	if err := s.departmentRepo.SoftDelete(ctx, id); err != nil {
		return err
	}

	s.cache.Bump(ctx, cache.ScopeDepartment)
	return nil
}

// ==================== WORKSHOP OPERATIONS ====================

func (s *masterServiceImpl) CreateWorkshop(ctx context.Context, req workshop.CreateWorkshopRequest) (workshop.WorkshopResponse, error) {
	if err := req.Validate(); err != nil {
		return workshop.WorkshopResponse{}, err
	}

	if _, err := s.departmentRepo.GetByID(ctx, req.DepartmentID); err != nil {
		return workshop.WorkshopResponse{}, err
	}

	created, err := s.workshopRepo.Create(ctx, workshop.Workshop{
		Name:         req.Name,
		DepartmentID: req.DepartmentID,
	})
	if err != nil {
		return workshop.WorkshopResponse{}, err
	}
	s.cache.Bump(ctx, cache.ScopeWorkshop)

	// Re-read to pick up the joined department name
	full, err := s.workshopRepo.GetByID(ctx, created.ID)
	if err != nil {
		return toWorkshopResponse(created), nil
	}
	return toWorkshopResponse(full), nil
}

func (s *masterServiceImpl) GetWorkshop(ctx context.Context, id int64) (workshop.WorkshopResponse, error) {
	entry := cache.Entry{Method: "workshop.Get", Args: id, Scopes: []string{cache.ScopeWorkshop, cache.ScopeDepartment}, TTL: s.ttl}
	return cache.Remember(ctx, s.cache, entry, func(ctx context.Context) (workshop.WorkshopResponse, error) {
		w, err := s.workshopRepo.GetByID(ctx, id)
		if err != nil {
			return workshop.WorkshopResponse{}, err
		}
		return toWorkshopResponse(w), nil
	})
}

func (s *masterServiceImpl) ListWorkshops(ctx context.Context, filter workshop.WorkshopFilter) (pagination.Page[workshop.WorkshopResponse], error) {
	filter.Normalize(workshop.SortFields, workshop.DefaultSort)

	entry := cache.Entry{Method: "workshop.List", Args: filter, Scopes: []string{cache.ScopeWorkshop, cache.ScopeDepartment}, TTL: s.ttl}
	return cache.Remember(ctx, s.cache, entry, func(ctx context.Context) (pagination.Page[workshop.WorkshopResponse], error) {
		workshops, total, err := s.workshopRepo.List(ctx, filter)
		if err != nil {
			return pagination.Page[workshop.WorkshopResponse]{}, fmt.Errorf("failed to list workshops: %w", err)
		}
		page := pagination.NewPage(workshops, total, filter.Query)
		return pagination.Map(page, toWorkshopResponse), nil
	})
}

func (s *masterServiceImpl) UpdateWorkshop(ctx context.Context, req workshop.UpdateWorkshopRequest) (workshop.WorkshopResponse, error) {
	if err := req.Validate(); err != nil {
		return workshop.WorkshopResponse{}, err
	}

	if req.DepartmentID != nil {
		if _, err := s.departmentRepo.GetByID(ctx, *req.DepartmentID); err != nil {
			return workshop.WorkshopResponse{}, err
		}
	}

	if err := s.workshopRepo.Update(ctx, req); err != nil {
		return workshop.WorkshopResponse{}, err
	}
	s.cache.Bump(ctx, cache.ScopeWorkshop)

	updated, err := s.workshopRepo.GetByID(ctx, req.ID)
	if err != nil {
		return workshop.WorkshopResponse{}, err
	}
	return toWorkshopResponse(updated), nil
}

func (s *masterServiceImpl) DeleteWorkshop(ctx context.Context, id int64) error {
	if _, err := s.workshopRepo.GetByID(ctx, id); err != nil {
		return err
	}

	inUse, err := s.workshopRepo.HasEmployees(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check workshop employees: %w", err)
	}
	if inUse {
		return workshop.ErrWorkshopInUse
	}

	if err := s.workshopRepo.SoftDelete(ctx, id); err != nil {
		return err
	}

	s.cache.Bump(ctx, cache.ScopeWorkshop)
	return nil
}
