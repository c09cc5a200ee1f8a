package department

import "time"

type Department struct {
	ID          int64
	Name        string
	Description *string
	IsDeleted   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
