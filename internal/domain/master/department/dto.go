package department

import (
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/pagination"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
)

// DepartmentResponse represents the response structure for a department.
type DepartmentResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateDepartmentRequest represents the request structure for creating a department.
type CreateDepartmentRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=200"`
}

func (r *CreateDepartmentRequest) Validate() error {
	errs := validator.Struct(r)
	if r.Name != "" && validator.IsEmpty(r.Name) {
		errs.Add("name", "name must not be blank")
	}
	return errs.OrNil()
}

// UpdateDepartmentRequest represents the request structure for updating a department.
type UpdateDepartmentRequest struct {
	ID          int64   `json:"-"`
	Name        *string `json:"name,omitempty" validate:"omitempty,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=200"`
}

func (r *UpdateDepartmentRequest) Validate() error {
	errs := validator.Struct(r)
	if r.ID <= 0 {
		errs.Add("id", "id is required")
	}
	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs.Add("name", "name must not be empty")
	}
	return errs.OrNil()
}

// SortFields maps the public sort keys to their SQL columns
var SortFields = map[string]string{
	"created_at": "created_at",
	"name":       "name",
	"id":         "id",
}

const DefaultSort = "created_at"

type DepartmentFilter struct {
	pagination.Query
}
