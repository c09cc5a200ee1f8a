package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	Create(ctx context.Context, attendance Attendance) (Attendance, error)
	GetByID(ctx context.Context, id int64) (Attendance, error)
	List(ctx context.Context, filter AttendanceFilter) ([]Attendance, int64, error)
	Update(ctx context.Context, req UpdateAttendanceRequest) error
	SoftDelete(ctx context.Context, id int64) error

	// ListByEmployeeBetween returns rows with from <= work_date < to
	ListByEmployeeBetween(ctx context.Context, employeeID int64, from, to time.Time) ([]Attendance, error)
}
