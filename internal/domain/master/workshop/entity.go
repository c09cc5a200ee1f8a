package workshop

import "time"

type Workshop struct {
	ID           int64
	Name         string
	DepartmentID int64
	IsDeleted    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Joined fields
	DepartmentName *string
}
