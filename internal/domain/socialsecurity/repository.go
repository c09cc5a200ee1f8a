package socialsecurity

import "context"

type SocialSecurityRepository interface {
	Create(ctx context.Context, record SocialSecurity) (SocialSecurity, error)
	GetByID(ctx context.Context, id int64) (SocialSecurity, error)
	// GetByEmployeeMonth returns ErrSocialSecurityNotFound when the employee has no row for month
	GetByEmployeeMonth(ctx context.Context, employeeID int64, month string) (SocialSecurity, error)
	List(ctx context.Context, filter SocialSecurityFilter) ([]SocialSecurity, int64, error)
	Update(ctx context.Context, req UpdateSocialSecurityRequest) error
	SoftDelete(ctx context.Context, id int64) error
}
