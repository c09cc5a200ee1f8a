package auth

import "github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"

type LoginRequest struct {
	Username string `json:"username" validate:"required,max=50"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Validate() error {
	errs := validator.Struct(r)
	return errs.OrNil()
}

type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	ExpiresAt   int64  `json:"expiresAt"`
	Username    string `json:"username"`
	Role        string `json:"role"`
}

// Claims is the caller identity carried by an access token
type Claims struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	Role     string `json:"role"`
}
