package logistics

import (
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/pagination"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type LogisticsResponse struct {
	ID                 int64           `json:"id"`
	EmployeeID         int64           `json:"employeeId"`
	EmployeeName       *string         `json:"employeeName,omitempty"`
	Month              string          `json:"month"`
	HousingDeduction   decimal.Decimal `json:"housingDeduction"`
	MealAllowance      decimal.Decimal `json:"mealAllowance"`
	UtilitiesDeduction decimal.Decimal `json:"utilitiesDeduction"`
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`
}

func NewLogisticsResponse(l LogisticsData) LogisticsResponse {
	return LogisticsResponse{
		ID:                 l.ID,
		EmployeeID:         l.EmployeeID,
		EmployeeName:       l.EmployeeName,
		Month:              l.Month,
		HousingDeduction:   l.HousingDeduction,
		MealAllowance:      l.MealAllowance,
		UtilitiesDeduction: l.UtilitiesDeduction,
		CreatedAt:          l.CreatedAt,
		UpdatedAt:          l.UpdatedAt,
	}
}

type CreateLogisticsRequest struct {
	EmployeeID         int64           `json:"employeeId" validate:"required,gt=0"`
	Month              string          `json:"month" validate:"required,month"`
	HousingDeduction   decimal.Decimal `json:"housingDeduction"`
	MealAllowance      decimal.Decimal `json:"mealAllowance"`
	UtilitiesDeduction decimal.Decimal `json:"utilitiesDeduction"`
}

func (r *CreateLogisticsRequest) Validate() error {
	errs := validator.Struct(r)
	errs.NonNegative("housingDeduction", r.HousingDeduction)
	errs.NonNegative("mealAllowance", r.MealAllowance)
	errs.NonNegative("utilitiesDeduction", r.UtilitiesDeduction)
	return errs.OrNil()
}

type UpdateLogisticsRequest struct {
	ID                 int64            `json:"-"`
	Month              *string          `json:"month,omitempty" validate:"omitempty,month"`
	HousingDeduction   *decimal.Decimal `json:"housingDeduction,omitempty"`
	MealAllowance      *decimal.Decimal `json:"mealAllowance,omitempty"`
	UtilitiesDeduction *decimal.Decimal `json:"utilitiesDeduction,omitempty"`
}

func (r *UpdateLogisticsRequest) Validate() error {
	errs := validator.Struct(r)
	if r.ID <= 0 {
		errs.Add("id", "id is required")
	}
	if r.HousingDeduction != nil {
		errs.NonNegative("housingDeduction", *r.HousingDeduction)
	}
	if r.MealAllowance != nil {
		errs.NonNegative("mealAllowance", *r.MealAllowance)
	}
	if r.UtilitiesDeduction != nil {
		errs.NonNegative("utilitiesDeduction", *r.UtilitiesDeduction)
	}
	return errs.OrNil()
}

var SortFields = map[string]string{
	"created_at":    "l.created_at",
	"month":         "l.month",
	"employee_name": "e.full_name",
	"id":            "l.id",
}

const DefaultSort = "created_at"

type LogisticsFilter struct {
	pagination.Query
	EmployeeID *int64  `json:"employeeId,omitempty"`
	Month      *string `json:"month,omitempty" validate:"omitempty,month"`
}

func (f *LogisticsFilter) Validate() error {
	errs := validator.Struct(f)
	return errs.OrNil()
}
