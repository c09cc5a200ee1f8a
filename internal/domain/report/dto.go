package report

import (
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/bonus"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// SummaryRow aggregates the live payrolls of one month, department and workshop
type SummaryRow struct {
	Month           string          `json:"month"`
	DepartmentID    int64           `json:"departmentId"`
	DepartmentName  string          `json:"departmentName"`
	WorkshopID      *int64          `json:"workshopId,omitempty"`
	WorkshopName    *string         `json:"workshopName,omitempty"`
	Count           int64           `json:"count"`
	GrossTotal      decimal.Decimal `json:"grossTotal"`
	DeductionsTotal decimal.Decimal `json:"deductionsTotal"`
	NetTotal        decimal.Decimal `json:"netTotal"`
}

type SummaryFilter struct {
	Month        *string `json:"month,omitempty" validate:"omitempty,month"`
	DepartmentID *int64  `json:"departmentId,omitempty"`
	WorkshopID   *int64  `json:"workshopId,omitempty"`
}

func (f *SummaryFilter) Validate() error {
	errs := validator.Struct(f)
	return errs.OrNil()
}

type EmployeeHistory struct {
	Employee employee.EmployeeResponse `json:"employee"`
	Payrolls []payroll.PayrollResponse `json:"payrolls"`
	Bonuses  []bonus.BonusResponse     `json:"bonuses"`
}

type ExportRequest struct {
	Month string `json:"month" validate:"required,month"`
}

func (r *ExportRequest) Validate() error {
	errs := validator.Struct(r)
	return errs.OrNil()
}

const WorkbookContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Workbook is a rendered spreadsheet ready to stream
type Workbook struct {
	Filename string
	Content  []byte
}

// ArchiveResponse points at a workbook kept in file storage
type ArchiveResponse struct {
	Path string `json:"path"`
	URL  string `json:"url"`
}
