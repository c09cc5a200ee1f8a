package socialsecurity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SocialSecurity holds the monthly contributions withheld from one employee
type SocialSecurity struct {
	ID           int64
	EmployeeID   int64
	Month        string
	Pension      decimal.Decimal
	Medical      decimal.Decimal
	Unemployment decimal.Decimal
	HousingFund  decimal.Decimal
	IsDeleted    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Joined fields
	EmployeeName *string
}
