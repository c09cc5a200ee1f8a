package employee

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/master/department"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/master/workshop"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/pagination"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/cache"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
)

type EmployeeServiceImpl struct {
	tx               database.Transactor
	employeeRepo     employee.EmployeeRepository
	salaryChangeRepo employee.SalaryChangeRepository
	departmentRepo   department.DepartmentRepository
	workshopRepo     workshop.WorkshopRepository
	cache            *cache.Cache
	ttl              time.Duration
}

func NewEmployeeService(
	tx database.Transactor,
	employeeRepo employee.EmployeeRepository,
	salaryChangeRepo employee.SalaryChangeRepository,
	departmentRepo department.DepartmentRepository,
	workshopRepo workshop.WorkshopRepository,
	c *cache.Cache,
	ttl time.Duration,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		tx:               tx,
		employeeRepo:     employeeRepo,
		salaryChangeRepo: salaryChangeRepo,
		departmentRepo:   departmentRepo,
		workshopRepo:     workshopRepo,
		cache:            c,
		ttl:              ttl,
	}
}

var employeeScopes = []string{cache.ScopeEmployee, cache.ScopeDepartment, cache.ScopeWorkshop}

// checkPlacement verifies the department exists and, when a workshop is
// given, that the workshop belongs to it.
func (s *EmployeeServiceImpl) checkPlacement(ctx context.Context, departmentID int64, workshopID *int64) error {
	if _, err := s.departmentRepo.GetByID(ctx, departmentID); err != nil {
		return err
	}
	if workshopID == nil {
		return nil
	}

	w, err := s.workshopRepo.GetByID(ctx, *workshopID)
	if err != nil {
		return err
	}
	if w.DepartmentID != departmentID {
		return employee.ErrWorkshopDepartmentMismatch
	}
	return nil
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, filter employee.EmployeeFilter) (pagination.Page[employee.EmployeeResponse], error) {
	filter.Normalize(employee.SortFields, employee.DefaultSort)

	entry := cache.Entry{Method: "employee.List", Args: filter, Scopes: employeeScopes, TTL: s.ttl}
	return cache.Remember(ctx, s.cache, entry, func(ctx context.Context) (pagination.Page[employee.EmployeeResponse], error) {
		employees, total, err := s.employeeRepo.List(ctx, filter)
		if err != nil {
			return pagination.Page[employee.EmployeeResponse]{}, fmt.Errorf("failed to list employees: %w", err)
		}
		return pagination.Map(pagination.NewPage(employees, total, filter.Query), employee.NewEmployeeResponse), nil
	})
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id int64) (employee.EmployeeResponse, error) {
	entry := cache.Entry{Method: "employee.Get", Args: id, Scopes: employeeScopes, TTL: s.ttl}
	return cache.Remember(ctx, s.cache, entry, func(ctx context.Context) (employee.EmployeeResponse, error) {
		e, err := s.employeeRepo.GetByID(ctx, id)
		if err != nil {
			return employee.EmployeeResponse{}, err
		}
		return employee.NewEmployeeResponse(e), nil
	})
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	if err := s.checkPlacement(ctx, req.DepartmentID, req.WorkshopID); err != nil {
		return employee.EmployeeResponse{}, err
	}

	hireDate, err := time.Parse(employee.DateLayout, req.HireDate)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to parse hire date: %w", err)
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	created, err := s.employeeRepo.Create(ctx, employee.Employee{
		EmployeeNo:   req.EmployeeNo,
		FullName:     req.FullName,
		Gender:       req.Gender,
		DepartmentID: req.DepartmentID,
		WorkshopID:   req.WorkshopID,
		HireDate:     hireDate,
		BaseSalary:   req.BaseSalary,
		IsActive:     isActive,
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	s.cache.Bump(ctx, cache.ScopeEmployee)
	return employee.NewEmployeeResponse(created), nil
}

// UpdateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	current, err := s.employeeRepo.GetByID(ctx, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if req.DepartmentID != nil || req.WorkshopID != nil {
		departmentID := current.DepartmentID
		if req.DepartmentID != nil {
			departmentID = *req.DepartmentID
		}
		workshopID := current.WorkshopID
		if req.WorkshopID != nil {
			workshopID = req.WorkshopID
		}
		if err := s.checkPlacement(ctx, departmentID, workshopID); err != nil {
			return employee.EmployeeResponse{}, err
		}
	}

	if err := s.employeeRepo.Update(ctx, req); err != nil {
		return employee.EmployeeResponse{}, err
	}
	s.cache.Bump(ctx, cache.ScopeEmployee)

	updated, err := s.employeeRepo.GetByID(ctx, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.NewEmployeeResponse(updated), nil
}

// DeleteEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, id int64) error {
	if err := s.employeeRepo.SoftDelete(ctx, id); err != nil {
		return err
	}

	s.cache.Bump(ctx, cache.ScopeEmployee)
	return nil
}

// ==================== SALARY CHANGE OPERATIONS ====================

// ListSalaryChanges implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListSalaryChanges(ctx context.Context, filter employee.SalaryChangeFilter) (pagination.Page[employee.SalaryChangeResponse], error) {
	if err := filter.Validate(); err != nil {
		return pagination.Page[employee.SalaryChangeResponse]{}, err
	}
	filter.Normalize(employee.SalaryChangeSortFields, employee.DefaultSort)

	entry := cache.Entry{Method: "salaryChange.List", Args: filter, Scopes: []string{cache.ScopeSalaryChange, cache.ScopeEmployee}, TTL: s.ttl}
	return cache.Remember(ctx, s.cache, entry, func(ctx context.Context) (pagination.Page[employee.SalaryChangeResponse], error) {
		changes, total, err := s.salaryChangeRepo.List(ctx, filter)
		if err != nil {
			return pagination.Page[employee.SalaryChangeResponse]{}, fmt.Errorf("failed to list salary changes: %w", err)
		}
		return pagination.Map(pagination.NewPage(changes, total, filter.Query), employee.NewSalaryChangeResponse), nil
	})
}

// CreateSalaryChange implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateSalaryChange(ctx context.Context, req employee.CreateSalaryChangeRequest) (employee.SalaryChangeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.SalaryChangeResponse{}, err
	}

	changeDate, err := time.Parse(employee.DateLayout, req.ChangeDate)
	if err != nil {
		return employee.SalaryChangeResponse{}, fmt.Errorf("failed to parse change date: %w", err)
	}

	var created employee.SalaryChange
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		current, err := s.employeeRepo.GetByIDForUpdate(ctx, req.EmployeeID)
		if err != nil {
			return err
		}

		created, err = s.salaryChangeRepo.Create(ctx, employee.SalaryChange{
			EmployeeID:    current.ID,
			ChangeDate:    changeDate,
			OldBaseSalary: current.BaseSalary,
			NewBaseSalary: req.NewBaseSalary,
			Reason:        req.Reason,
		})
		if err != nil {
			return fmt.Errorf("failed to record salary change: %w", err)
		}

		return s.employeeRepo.UpdateBaseSalary(ctx, current.ID, req.NewBaseSalary)
	})
	if err != nil {
		return employee.SalaryChangeResponse{}, err
	}

	s.cache.Bump(ctx, cache.ScopeEmployee, cache.ScopeSalaryChange)
	return employee.NewSalaryChangeResponse(created), nil
}

// UpdateSalaryChange implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateSalaryChange(ctx context.Context, req employee.UpdateSalaryChangeRequest) (employee.SalaryChangeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.SalaryChangeResponse{}, err
	}

	if err := s.salaryChangeRepo.Update(ctx, req); err != nil {
		return employee.SalaryChangeResponse{}, err
	}
	s.cache.Bump(ctx, cache.ScopeSalaryChange)

	updated, err := s.salaryChangeRepo.GetByID(ctx, req.ID)
	if err != nil {
		return employee.SalaryChangeResponse{}, err
	}
	return employee.NewSalaryChangeResponse(updated), nil
}

// DeleteSalaryChange implements employee.EmployeeService.
func (s *EmployeeServiceImpl) DeleteSalaryChange(ctx context.Context, id int64) error {
	if err := s.salaryChangeRepo.SoftDelete(ctx, id); err != nil {
		return err
	}

	s.cache.Bump(ctx, cache.ScopeSalaryChange)
	return nil
}
