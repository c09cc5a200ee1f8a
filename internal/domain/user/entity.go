package user

import "time"

type Role string

const (
	RoleAdmin Role = "Admin"
	RoleHR    Role = "HR"
	RoleUser  Role = "User"
)

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleHR, RoleUser:
		return true
	}
	return false
}

type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Role         Role
	IsDeleted    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
