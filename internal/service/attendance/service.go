package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/pagination"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/cache"
)

type AttendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	cache          *cache.Cache
	ttl            time.Duration
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	c *cache.Cache,
	ttl time.Duration,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		cache:          c,
		ttl:            ttl,
	}
}

// ListAttendances implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListAttendances(ctx context.Context, filter attendance.AttendanceFilter) (pagination.Page[attendance.AttendanceResponse], error) {
	if err := filter.Validate(); err != nil {
		return pagination.Page[attendance.AttendanceResponse]{}, err
	}
	filter.Normalize(attendance.SortFields, attendance.DefaultSort)

	entry := cache.Entry{Method: "attendance.List", Args: filter, Scopes: []string{cache.ScopeAttendance, cache.ScopeEmployee}, TTL: s.ttl}
	return cache.Remember(ctx, s.cache, entry, func(ctx context.Context) (pagination.Page[attendance.AttendanceResponse], error) {
		rows, total, err := s.attendanceRepo.List(ctx, filter)
		if err != nil {
			return pagination.Page[attendance.AttendanceResponse]{}, fmt.Errorf("failed to list attendances: %w", err)
		}
		return pagination.Map(pagination.NewPage(rows, total, filter.Query), attendance.NewAttendanceResponse), nil
	})
}

// GetAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetAttendance(ctx context.Context, id int64) (attendance.AttendanceResponse, error) {
	entry := cache.Entry{Method: "attendance.Get", Args: id, Scopes: []string{cache.ScopeAttendance, cache.ScopeEmployee}, TTL: s.ttl}
	return cache.Remember(ctx, s.cache, entry, func(ctx context.Context) (attendance.AttendanceResponse, error) {
		a, err := s.attendanceRepo.GetByID(ctx, id)
		if err != nil {
			return attendance.AttendanceResponse{}, err
		}
		return attendance.NewAttendanceResponse(a), nil
	})
}

// CreateAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CreateAttendance(ctx context.Context, req attendance.CreateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	workDate, err := time.Parse(employee.DateLayout, req.WorkDate)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to parse work date: %w", err)
	}

	created, err := s.attendanceRepo.Create(ctx, attendance.Attendance{
		EmployeeID:    req.EmployeeID,
		WorkDate:      workDate,
		HoursWorked:   req.HoursWorked,
		OvertimeHours: req.OvertimeHours,
		AbsentHours:   req.AbsentHours,
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	s.cache.Bump(ctx, cache.ScopeAttendance)
	return attendance.NewAttendanceResponse(created), nil
}

// UpdateAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) UpdateAttendance(ctx context.Context, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if err := s.attendanceRepo.Update(ctx, req); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	s.cache.Bump(ctx, cache.ScopeAttendance)

	updated, err := s.attendanceRepo.GetByID(ctx, req.ID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return attendance.NewAttendanceResponse(updated), nil
}

// DeleteAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) DeleteAttendance(ctx context.Context, id int64) error {
	if err := s.attendanceRepo.SoftDelete(ctx, id); err != nil {
		return err
	}

	s.cache.Bump(ctx, cache.ScopeAttendance)
	return nil
}
