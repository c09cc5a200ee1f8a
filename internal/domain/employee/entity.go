package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

type Employee struct {
	ID           int64
	EmployeeNo   string
	FullName     string
	Gender       Gender
	DepartmentID int64
	WorkshopID   *int64
	HireDate     time.Time
	BaseSalary   decimal.Decimal
	IsActive     bool
	IsDeleted    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Joined fields
	DepartmentName *string
	WorkshopName   *string
}

// SalaryChange records one adjustment of an employee's base salary
type SalaryChange struct {
	ID            int64
	EmployeeID    int64
	ChangeDate    time.Time
	OldBaseSalary decimal.Decimal
	NewBaseSalary decimal.Decimal
	Reason        string
	IsDeleted     bool
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Joined fields
	EmployeeName *string
}
