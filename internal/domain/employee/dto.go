package employee

import (
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/pagination"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

const DateLayout = "2006-01-02"

type EmployeeResponse struct {
	ID             int64           `json:"id"`
	EmployeeNo     string          `json:"employeeNo"`
	FullName       string          `json:"fullName"`
	Gender         Gender          `json:"gender"`
	DepartmentID   int64           `json:"departmentId"`
	DepartmentName *string         `json:"departmentName,omitempty"`
	WorkshopID     *int64          `json:"workshopId,omitempty"`
	WorkshopName   *string         `json:"workshopName,omitempty"`
	HireDate       string          `json:"hireDate"`
	BaseSalary     decimal.Decimal `json:"baseSalary"`
	IsActive       bool            `json:"isActive"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

func NewEmployeeResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:             e.ID,
		EmployeeNo:     e.EmployeeNo,
		FullName:       e.FullName,
		Gender:         e.Gender,
		DepartmentID:   e.DepartmentID,
		DepartmentName: e.DepartmentName,
		WorkshopID:     e.WorkshopID,
		WorkshopName:   e.WorkshopName,
		HireDate:       e.HireDate.Format(DateLayout),
		BaseSalary:     e.BaseSalary,
		IsActive:       e.IsActive,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}

type CreateEmployeeRequest struct {
	EmployeeNo   string          `json:"employeeNo" validate:"required,max=30"`
	FullName     string          `json:"fullName" validate:"required,max=100"`
	Gender       Gender          `json:"gender" validate:"required,oneof=Male Female"`
	DepartmentID int64           `json:"departmentId" validate:"required,gt=0"`
	WorkshopID   *int64          `json:"workshopId,omitempty" validate:"omitempty,gt=0"`
	HireDate     string          `json:"hireDate" validate:"required,date"`
	BaseSalary   decimal.Decimal `json:"baseSalary"`
	IsActive     *bool           `json:"isActive,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	errs := validator.Struct(r)
	if r.BaseSalary.IsNegative() {
		errs.Add("baseSalary", "baseSalary must be greater than or equal to 0")
	}
	return errs.OrNil()
}

// UpdateEmployeeRequest changes profile fields. The base salary is only
// changed through a SalaryChange so every adjustment is recorded.
type UpdateEmployeeRequest struct {
	ID           int64   `json:"-"`
	EmployeeNo   *string `json:"employeeNo,omitempty" validate:"omitempty,min=1,max=30"`
	FullName     *string `json:"fullName,omitempty" validate:"omitempty,min=1,max=100"`
	Gender       *Gender `json:"gender,omitempty" validate:"omitempty,oneof=Male Female"`
	DepartmentID *int64  `json:"departmentId,omitempty" validate:"omitempty,gt=0"`
	WorkshopID   *int64  `json:"workshopId,omitempty" validate:"omitempty,gt=0"`
	HireDate     *string `json:"hireDate,omitempty" validate:"omitempty,date"`
	IsActive     *bool   `json:"isActive,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	errs := validator.Struct(r)
	if r.ID <= 0 {
		errs.Add("id", "id is required")
	}
	return errs.OrNil()
}

var SortFields = map[string]string{
	"created_at":  "e.created_at",
	"employee_no": "e.employee_no",
	"full_name":   "e.full_name",
	"hire_date":   "e.hire_date",
	"base_salary": "e.base_salary",
	"id":          "e.id",
}

const DefaultSort = "created_at"

type EmployeeFilter struct {
	pagination.Query
	DepartmentID *int64 `json:"departmentId,omitempty"`
	WorkshopID   *int64 `json:"workshopId,omitempty"`
	IsActive     *bool  `json:"isActive,omitempty"`
}

type SalaryChangeResponse struct {
	ID            int64           `json:"id"`
	EmployeeID    int64           `json:"employeeId"`
	EmployeeName  *string         `json:"employeeName,omitempty"`
	ChangeDate    string          `json:"changeDate"`
	OldBaseSalary decimal.Decimal `json:"oldBaseSalary"`
	NewBaseSalary decimal.Decimal `json:"newBaseSalary"`
	Reason        string          `json:"reason"`
	CreatedAt     time.Time       `json:"createdAt"`
}

func NewSalaryChangeResponse(c SalaryChange) SalaryChangeResponse {
	return SalaryChangeResponse{
		ID:            c.ID,
		EmployeeID:    c.EmployeeID,
		EmployeeName:  c.EmployeeName,
		ChangeDate:    c.ChangeDate.Format(DateLayout),
		OldBaseSalary: c.OldBaseSalary,
		NewBaseSalary: c.NewBaseSalary,
		Reason:        c.Reason,
		CreatedAt:     c.CreatedAt,
	}
}

type CreateSalaryChangeRequest struct {
	EmployeeID    int64           `json:"employeeId" validate:"required,gt=0"`
	ChangeDate    string          `json:"changeDate" validate:"required,date"`
	NewBaseSalary decimal.Decimal `json:"newBaseSalary"`
	Reason        string          `json:"reason" validate:"required,max=200"`
}

func (r *CreateSalaryChangeRequest) Validate() error {
	errs := validator.Struct(r)
	if r.NewBaseSalary.IsNegative() {
		errs.Add("newBaseSalary", "newBaseSalary must be greater than or equal to 0")
	}
	return errs.OrNil()
}

// UpdateSalaryChangeRequest corrects a recorded adjustment. The employee's
// current base salary is left untouched.
type UpdateSalaryChangeRequest struct {
	ID            int64            `json:"-"`
	ChangeDate    *string          `json:"changeDate,omitempty" validate:"omitempty,date"`
	OldBaseSalary *decimal.Decimal `json:"oldBaseSalary,omitempty"`
	NewBaseSalary *decimal.Decimal `json:"newBaseSalary,omitempty"`
	Reason        *string          `json:"reason,omitempty" validate:"omitempty,max=200"`
}

func (r *UpdateSalaryChangeRequest) Validate() error {
	errs := validator.Struct(r)
	if r.ID <= 0 {
		errs.Add("id", "id is required")
	}
	if r.OldBaseSalary != nil {
		errs.NonNegative("oldBaseSalary", *r.OldBaseSalary)
	}
	if r.NewBaseSalary != nil {
		errs.NonNegative("newBaseSalary", *r.NewBaseSalary)
	}
	if r.Reason != nil && validator.IsEmpty(*r.Reason) {
		errs.Add("reason", "reason must not be blank")
	}
	return errs.OrNil()
}

var SalaryChangeSortFields = map[string]string{
	"created_at":  "sc.created_at",
	"change_date": "sc.change_date",
	"id":          "sc.id",
}

type SalaryChangeFilter struct {
	pagination.Query
	EmployeeID *int64  `json:"employeeId,omitempty"`
	DateFrom   *string `json:"dateFrom,omitempty" validate:"omitempty,date"`
	DateTo     *string `json:"dateTo,omitempty" validate:"omitempty,date"`
}

func (f *SalaryChangeFilter) Validate() error {
	errs := validator.Struct(f)
	return errs.OrNil()
}
