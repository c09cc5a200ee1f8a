package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is the lifecycle state of a payroll
type Status string

const (
	StatusDraft     Status = "Draft"
	StatusConfirmed Status = "Confirmed"
	StatusPaid      Status = "Paid"
)

// Item types written by draft generation. The column is an open tag, so
// operators may add items with any other non-empty type.
const (
	ItemTypeFixed          = "Fixed"
	ItemTypeAttendance     = "Attendance"
	ItemTypeBonus          = "Bonus"
	ItemTypePenalty        = "Penalty"
	ItemTypeAllowance      = "Allowance"
	ItemTypeSocialSecurity = "SocialSecurity"
	ItemTypeLogistics      = "Logistics"
	ItemTypeOther          = "Other"
)

type Payroll struct {
	ID          int64
	EmployeeID  int64
	Month       string
	GrossAmount decimal.Decimal
	Deductions  decimal.Decimal
	NetAmount   decimal.Decimal
	Status      Status
	IsDeleted   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Joined fields
	EmployeeNo     *string
	EmployeeName   *string
	DepartmentID   *int64
	DepartmentName *string
	WorkshopID     *int64

	Items []PayrollItem
}

type PayrollItem struct {
	ID        int64
	PayrollID int64
	ItemType  string
	ItemName  string
	Amount    decimal.Decimal
	SortOrder int
	IsDeleted bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SetTotals stores gross and deductions and derives net from them
func (p *Payroll) SetTotals(gross, deductions decimal.Decimal) {
	p.GrossAmount = gross
	p.Deductions = deductions
	p.NetAmount = gross.Sub(deductions)
}
