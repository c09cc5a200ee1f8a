package attendance

import (
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/pagination"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

var maxDailyHours = decimal.NewFromInt(24)

type AttendanceResponse struct {
	ID            int64           `json:"id"`
	EmployeeID    int64           `json:"employeeId"`
	EmployeeName  *string         `json:"employeeName,omitempty"`
	WorkDate      string          `json:"workDate"`
	HoursWorked   decimal.Decimal `json:"hoursWorked"`
	OvertimeHours decimal.Decimal `json:"overtimeHours"`
	AbsentHours   decimal.Decimal `json:"absentHours"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

func NewAttendanceResponse(a Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:            a.ID,
		EmployeeID:    a.EmployeeID,
		EmployeeName:  a.EmployeeName,
		WorkDate:      a.WorkDate.Format("2006-01-02"),
		HoursWorked:   a.HoursWorked,
		OvertimeHours: a.OvertimeHours,
		AbsentHours:   a.AbsentHours,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

type CreateAttendanceRequest struct {
	EmployeeID    int64           `json:"employeeId" validate:"required,gt=0"`
	WorkDate      string          `json:"workDate" validate:"required,date"`
	HoursWorked   decimal.Decimal `json:"hoursWorked"`
	OvertimeHours decimal.Decimal `json:"overtimeHours"`
	AbsentHours   decimal.Decimal `json:"absentHours"`
}

func (r *CreateAttendanceRequest) Validate() error {
	errs := validator.Struct(r)
	errs.Between("hoursWorked", r.HoursWorked, decimal.Zero, maxDailyHours)
	errs.Between("overtimeHours", r.OvertimeHours, decimal.Zero, maxDailyHours)
	errs.Between("absentHours", r.AbsentHours, decimal.Zero, maxDailyHours)
	return errs.OrNil()
}

type UpdateAttendanceRequest struct {
	ID            int64            `json:"-"`
	WorkDate      *string          `json:"workDate,omitempty" validate:"omitempty,date"`
	HoursWorked   *decimal.Decimal `json:"hoursWorked,omitempty"`
	OvertimeHours *decimal.Decimal `json:"overtimeHours,omitempty"`
	AbsentHours   *decimal.Decimal `json:"absentHours,omitempty"`
}

func (r *UpdateAttendanceRequest) Validate() error {
	errs := validator.Struct(r)
	if r.ID <= 0 {
		errs.Add("id", "id is required")
	}
	if r.HoursWorked != nil {
		errs.Between("hoursWorked", *r.HoursWorked, decimal.Zero, maxDailyHours)
	}
	if r.OvertimeHours != nil {
		errs.Between("overtimeHours", *r.OvertimeHours, decimal.Zero, maxDailyHours)
	}
	if r.AbsentHours != nil {
		errs.Between("absentHours", *r.AbsentHours, decimal.Zero, maxDailyHours)
	}
	return errs.OrNil()
}

var SortFields = map[string]string{
	"created_at":     "a.created_at",
	"work_date":      "a.work_date",
	"employee_name":  "e.full_name",
	"overtime_hours": "a.overtime_hours",
	"absent_hours":   "a.absent_hours",
	"id":             "a.id",
}

const DefaultSort = "created_at"

type AttendanceFilter struct {
	pagination.Query
	EmployeeID *int64  `json:"employeeId,omitempty"`
	DateFrom   *string `json:"dateFrom,omitempty" validate:"omitempty,date"`
	DateTo     *string `json:"dateTo,omitempty" validate:"omitempty,date"`
}

func (f *AttendanceFilter) Validate() error {
	errs := validator.Struct(f)
	return errs.OrNil()
}
