package workshop

import (
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/pagination"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
)

type WorkshopResponse struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	DepartmentID   int64     `json:"departmentId"`
	DepartmentName *string   `json:"departmentName,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type CreateWorkshopRequest struct {
	Name         string `json:"name" validate:"required,max=100"`
	DepartmentID int64  `json:"departmentId" validate:"required,gt=0"`
}

func (r *CreateWorkshopRequest) Validate() error {
	errs := validator.Struct(r)
	if r.Name != "" && validator.IsEmpty(r.Name) {
		errs.Add("name", "name must not be blank")
	}
	return errs.OrNil()
}

type UpdateWorkshopRequest struct {
	ID           int64   `json:"-"`
	Name         *string `json:"name,omitempty" validate:"omitempty,max=100"`
	DepartmentID *int64  `json:"departmentId,omitempty" validate:"omitempty,gt=0"`
}

func (r *UpdateWorkshopRequest) Validate() error {
	errs := validator.Struct(r)
	if r.ID <= 0 {
		errs.Add("id", "id is required")
	}
	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs.Add("name", "name must not be empty")
	}
	return errs.OrNil()
}

var SortFields = map[string]string{
	"created_at": "w.created_at",
	"name":       "w.name",
	"department": "d.name",
	"id":         "w.id",
}

const DefaultSort = "created_at"

type WorkshopFilter struct {
	pagination.Query
	DepartmentID *int64 `json:"departmentId,omitempty"`
}
