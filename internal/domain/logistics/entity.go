package logistics

import (
	"time"

	"github.com/shopspring/decimal"
)

// LogisticsData holds the monthly housing, meal and utilities adjustments of one employee
type LogisticsData struct {
	ID                 int64
	EmployeeID         int64
	Month              string
	HousingDeduction   decimal.Decimal
	MealAllowance      decimal.Decimal
	UtilitiesDeduction decimal.Decimal
	IsDeleted          bool
	CreatedAt          time.Time
	UpdatedAt          time.Time

	// Joined fields
	EmployeeName *string
}
