package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

type Attendance struct {
	ID            int64
	EmployeeID    int64
	WorkDate      time.Time
	HoursWorked   decimal.Decimal
	OvertimeHours decimal.Decimal
	AbsentHours   decimal.Decimal
	IsDeleted     bool
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Joined fields
	EmployeeName *string
}
