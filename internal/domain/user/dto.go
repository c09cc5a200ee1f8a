package user

import "github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"

// CreateUserRequest represents request to create a user
type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Role     string `json:"role" validate:"required,oneof=Admin HR User"`
}

func (r *CreateUserRequest) Validate() error {
	errs := validator.Struct(r)
	return errs.OrNil()
}

type UserResponse struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt"`
}
