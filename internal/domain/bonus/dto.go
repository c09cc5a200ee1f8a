package bonus

import (
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/pagination"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type BonusResponse struct {
	ID           int64           `json:"id"`
	EmployeeID   int64           `json:"employeeId"`
	EmployeeName *string         `json:"employeeName,omitempty"`
	Year         int             `json:"year"`
	Amount       decimal.Decimal `json:"amount"`
	Remark       *string         `json:"remark,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

func NewBonusResponse(b YearEndBonus) BonusResponse {
	return BonusResponse{
		ID:           b.ID,
		EmployeeID:   b.EmployeeID,
		EmployeeName: b.EmployeeName,
		Year:         b.Year,
		Amount:       b.Amount,
		Remark:       b.Remark,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

type CreateBonusRequest struct {
	EmployeeID int64           `json:"employeeId" validate:"required,gt=0"`
	Year       int             `json:"year" validate:"required,gte=2000,lte=2100"`
	Amount     decimal.Decimal `json:"amount"`
	Remark     *string         `json:"remark,omitempty" validate:"omitempty,max=200"`
}

func (r *CreateBonusRequest) Validate() error {
	errs := validator.Struct(r)
	errs.NonNegative("amount", r.Amount)
	return errs.OrNil()
}

type UpdateBonusRequest struct {
	ID     int64            `json:"-"`
	Year   *int             `json:"year,omitempty" validate:"omitempty,gte=2000,lte=2100"`
	Amount *decimal.Decimal `json:"amount,omitempty"`
	Remark *string          `json:"remark,omitempty" validate:"omitempty,max=200"`
}

func (r *UpdateBonusRequest) Validate() error {
	errs := validator.Struct(r)
	if r.ID <= 0 {
		errs.Add("id", "id is required")
	}
	if r.Amount != nil {
		errs.NonNegative("amount", *r.Amount)
	}
	return errs.OrNil()
}

var SortFields = map[string]string{
	"created_at": "b.created_at",
	"year":       "b.year",
	"amount":     "b.amount",
	"id":         "b.id",
}

const DefaultSort = "created_at"

type BonusFilter struct {
	pagination.Query
	EmployeeID *int64 `json:"employeeId,omitempty"`
	Year       *int   `json:"year,omitempty"`
}
