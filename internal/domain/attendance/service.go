package attendance

import (
	"context"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/pagination"
)

type AttendanceService interface {
	ListAttendances(ctx context.Context, filter AttendanceFilter) (pagination.Page[AttendanceResponse], error)
	GetAttendance(ctx context.Context, id int64) (AttendanceResponse, error)
	CreateAttendance(ctx context.Context, req CreateAttendanceRequest) (AttendanceResponse, error)
	UpdateAttendance(ctx context.Context, req UpdateAttendanceRequest) (AttendanceResponse, error)
	DeleteAttendance(ctx context.Context, id int64) error
}
