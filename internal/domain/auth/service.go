package auth

import (
	"context"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/user"
)

type AuthService interface {
	// Login verifies the password and issues an access token
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)

	// CreateUser registers a user with a bcrypt password hash
	CreateUser(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error)

	// EnsureUser creates the account if the username is free and leaves an existing one untouched
	EnsureUser(ctx context.Context, username, password string, role user.Role) error
}
