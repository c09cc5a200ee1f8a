package bonus

import (
	"time"

	"github.com/shopspring/decimal"
)

type YearEndBonus struct {
	ID         int64
	EmployeeID int64
	Year       int
	Amount     decimal.Decimal
	Remark     *string
	IsDeleted  bool
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Joined fields
	EmployeeName *string
}
