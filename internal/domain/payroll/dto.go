package payroll

import (
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/pagination"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type PayrollResponse struct {
	ID             int64                 `json:"id"`
	EmployeeID     int64                 `json:"employeeId"`
	EmployeeNo     *string               `json:"employeeNo,omitempty"`
	EmployeeName   *string               `json:"employeeName,omitempty"`
	DepartmentID   *int64                `json:"departmentId,omitempty"`
	DepartmentName *string               `json:"departmentName,omitempty"`
	WorkshopID     *int64                `json:"workshopId,omitempty"`
	Month          string                `json:"month"`
	GrossAmount    decimal.Decimal       `json:"grossAmount"`
	Deductions     decimal.Decimal       `json:"deductions"`
	NetAmount      decimal.Decimal       `json:"netAmount"`
	Status         Status                `json:"status"`
	Items          []PayrollItemResponse `json:"items,omitempty"`
	CreatedAt      time.Time             `json:"createdAt"`
	UpdatedAt      time.Time             `json:"updatedAt"`
}

func NewPayrollResponse(p Payroll) PayrollResponse {
	resp := PayrollResponse{
		ID:             p.ID,
		EmployeeID:     p.EmployeeID,
		EmployeeNo:     p.EmployeeNo,
		EmployeeName:   p.EmployeeName,
		DepartmentID:   p.DepartmentID,
		DepartmentName: p.DepartmentName,
		WorkshopID:     p.WorkshopID,
		Month:          p.Month,
		GrossAmount:    p.GrossAmount,
		Deductions:     p.Deductions,
		NetAmount:      p.NetAmount,
		Status:         p.Status,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
	for _, item := range p.Items {
		resp.Items = append(resp.Items, NewPayrollItemResponse(item))
	}
	return resp
}

type PayrollItemResponse struct {
	ID        int64           `json:"id"`
	PayrollID int64           `json:"payrollId"`
	ItemType  string          `json:"itemType"`
	ItemName  string          `json:"itemName"`
	Amount    decimal.Decimal `json:"amount"`
	SortOrder int             `json:"sortOrder"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func NewPayrollItemResponse(i PayrollItem) PayrollItemResponse {
	return PayrollItemResponse{
		ID:        i.ID,
		PayrollID: i.PayrollID,
		ItemType:  i.ItemType,
		ItemName:  i.ItemName,
		Amount:    i.Amount,
		SortOrder: i.SortOrder,
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}

// GenerateRequest asks for Draft payrolls of one month
type GenerateRequest struct {
	Month          string           `json:"month" validate:"required,month"`
	EmployeeIDs    []int64          `json:"employeeIds,omitempty" validate:"omitempty,dive,gt=0"`
	OvertimeFactor *decimal.Decimal `json:"overtimeFactor,omitempty"`
	// Atomic runs the whole batch in one transaction so a single failure rolls everything back
	Atomic bool `json:"atomic"`
}

func (r *GenerateRequest) Validate() error {
	errs := validator.Struct(r)
	if r.OvertimeFactor != nil && !r.OvertimeFactor.IsPositive() {
		errs.Add("overtimeFactor", "overtimeFactor must be greater than 0")
	}
	return errs.OrNil()
}

type GenerateFailure struct {
	EmployeeID int64  `json:"employeeId"`
	Error      string `json:"error"`
}

type GenerateResult struct {
	Payrolls []PayrollResponse `json:"payrolls"`
	// Skipped lists employees that already had a payroll for the month
	Skipped  []int64           `json:"skipped"`
	Failures []GenerateFailure `json:"failures"`
}

type CreatePayrollRequest struct {
	EmployeeID  int64           `json:"employeeId" validate:"required,gt=0"`
	Month       string          `json:"month" validate:"required,month"`
	GrossAmount decimal.Decimal `json:"grossAmount"`
	Deductions  decimal.Decimal `json:"deductions"`
}

func (r *CreatePayrollRequest) Validate() error {
	errs := validator.Struct(r)
	errs.NonNegative("grossAmount", r.GrossAmount)
	errs.NonNegative("deductions", r.Deductions)
	return errs.OrNil()
}

// UpdatePayrollRequest changes the totals of a Draft payroll; net is always derived
type UpdatePayrollRequest struct {
	ID          int64            `json:"-"`
	GrossAmount *decimal.Decimal `json:"grossAmount,omitempty"`
	Deductions  *decimal.Decimal `json:"deductions,omitempty"`
}

func (r *UpdatePayrollRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.ID <= 0 {
		errs.Add("id", "id is required")
	}
	if r.GrossAmount == nil && r.Deductions == nil {
		errs.Add("request", "grossAmount or deductions is required")
	}
	if r.GrossAmount != nil {
		errs.NonNegative("grossAmount", *r.GrossAmount)
	}
	if r.Deductions != nil {
		errs.NonNegative("deductions", *r.Deductions)
	}
	return errs.OrNil()
}

var SortFields = map[string]string{
	"created_at":    "p.created_at",
	"month":         "p.month",
	"employee_name": "e.full_name",
	"net_amount":    "p.net_amount",
	"status":        "p.status",
	"id":            "p.id",
}

const DefaultSort = "created_at"

type PayrollFilter struct {
	pagination.Query
	DepartmentID *int64  `json:"departmentId,omitempty"`
	WorkshopID   *int64  `json:"workshopId,omitempty"`
	EmployeeID   *int64  `json:"employeeId,omitempty"`
	Month        *string `json:"month,omitempty" validate:"omitempty,month"`
	Status       *Status `json:"status,omitempty" validate:"omitempty,oneof=Draft Confirmed Paid"`
}

func (f *PayrollFilter) Validate() error {
	errs := validator.Struct(f)
	return errs.OrNil()
}

type CreateItemRequest struct {
	PayrollID int64           `json:"-"`
	ItemType  string          `json:"itemType" validate:"required,max=30"`
	ItemName  string          `json:"itemName" validate:"required,max=100"`
	Amount    decimal.Decimal `json:"amount"`
	SortOrder *int            `json:"sortOrder,omitempty" validate:"omitempty,gte=0"`
}

func (r *CreateItemRequest) Validate() error {
	errs := validator.Struct(r)
	if r.PayrollID <= 0 {
		errs.Add("payrollId", "payrollId is required")
	}
	if r.ItemType != "" && validator.IsEmpty(r.ItemType) {
		errs.Add("itemType", "itemType must not be blank")
	}
	if r.ItemName != "" && validator.IsEmpty(r.ItemName) {
		errs.Add("itemName", "itemName must not be blank")
	}
	return errs.OrNil()
}

type UpdateItemRequest struct {
	ID        int64            `json:"-"`
	PayrollID int64            `json:"-"`
	ItemType  *string          `json:"itemType,omitempty" validate:"omitempty,min=1,max=30"`
	ItemName  *string          `json:"itemName,omitempty" validate:"omitempty,min=1,max=100"`
	Amount    *decimal.Decimal `json:"amount,omitempty"`
	SortOrder *int             `json:"sortOrder,omitempty" validate:"omitempty,gte=0"`
}

func (r *UpdateItemRequest) Validate() error {
	errs := validator.Struct(r)
	if r.ID <= 0 {
		errs.Add("id", "id is required")
	}
	if r.PayrollID <= 0 {
		errs.Add("payrollId", "payrollId is required")
	}
	if r.ItemType != nil && validator.IsEmpty(*r.ItemType) {
		errs.Add("itemType", "itemType must not be blank")
	}
	if r.ItemName != nil && validator.IsEmpty(*r.ItemName) {
		errs.Add("itemName", "itemName must not be blank")
	}
	return errs.OrNil()
}
