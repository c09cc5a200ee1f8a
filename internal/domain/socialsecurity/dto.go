package socialsecurity

import (
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/pagination"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type SocialSecurityResponse struct {
	ID           int64           `json:"id"`
	EmployeeID   int64           `json:"employeeId"`
	EmployeeName *string         `json:"employeeName,omitempty"`
	Month        string          `json:"month"`
	Pension      decimal.Decimal `json:"pension"`
	Medical      decimal.Decimal `json:"medical"`
	Unemployment decimal.Decimal `json:"unemployment"`
	HousingFund  decimal.Decimal `json:"housingFund"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

func NewSocialSecurityResponse(s SocialSecurity) SocialSecurityResponse {
	return SocialSecurityResponse{
		ID:           s.ID,
		EmployeeID:   s.EmployeeID,
		EmployeeName: s.EmployeeName,
		Month:        s.Month,
		Pension:      s.Pension,
		Medical:      s.Medical,
		Unemployment: s.Unemployment,
		HousingFund:  s.HousingFund,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

type CreateSocialSecurityRequest struct {
	EmployeeID   int64           `json:"employeeId" validate:"required,gt=0"`
	Month        string          `json:"month" validate:"required,month"`
	Pension      decimal.Decimal `json:"pension"`
	Medical      decimal.Decimal `json:"medical"`
	Unemployment decimal.Decimal `json:"unemployment"`
	HousingFund  decimal.Decimal `json:"housingFund"`
}

func (r *CreateSocialSecurityRequest) Validate() error {
	errs := validator.Struct(r)
	errs.NonNegative("pension", r.Pension)
	errs.NonNegative("medical", r.Medical)
	errs.NonNegative("unemployment", r.Unemployment)
	errs.NonNegative("housingFund", r.HousingFund)
	return errs.OrNil()
}

type UpdateSocialSecurityRequest struct {
	ID           int64            `json:"-"`
	Month        *string          `json:"month,omitempty" validate:"omitempty,month"`
	Pension      *decimal.Decimal `json:"pension,omitempty"`
	Medical      *decimal.Decimal `json:"medical,omitempty"`
	Unemployment *decimal.Decimal `json:"unemployment,omitempty"`
	HousingFund  *decimal.Decimal `json:"housingFund,omitempty"`
}

func (r *UpdateSocialSecurityRequest) Validate() error {
	errs := validator.Struct(r)
	if r.ID <= 0 {
		errs.Add("id", "id is required")
	}
	for field, v := range map[string]*decimal.Decimal{
		"pension":      r.Pension,
		"medical":      r.Medical,
		"unemployment": r.Unemployment,
		"housingFund":  r.HousingFund,
	} {
		if v != nil {
			errs.NonNegative(field, *v)
		}
	}
	return errs.OrNil()
}

var SortFields = map[string]string{
	"created_at":    "s.created_at",
	"month":         "s.month",
	"employee_name": "e.full_name",
	"id":            "s.id",
}

const DefaultSort = "created_at"

type SocialSecurityFilter struct {
	pagination.Query
	EmployeeID *int64  `json:"employeeId,omitempty"`
	Month      *string `json:"month,omitempty" validate:"omitempty,month"`
}

func (f *SocialSecurityFilter) Validate() error {
	errs := validator.Struct(f)
	return errs.OrNil()
}
