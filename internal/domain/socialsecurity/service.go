package socialsecurity

import (
	"context"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/pagination"
)

type SocialSecurityService interface {
	ListSocialSecurities(ctx context.Context, filter SocialSecurityFilter) (pagination.Page[SocialSecurityResponse], error)
	GetSocialSecurity(ctx context.Context, id int64) (SocialSecurityResponse, error)
	CreateSocialSecurity(ctx context.Context, req CreateSocialSecurityRequest) (SocialSecurityResponse, error)
	UpdateSocialSecurity(ctx context.Context, req UpdateSocialSecurityRequest) (SocialSecurityResponse, error)
	DeleteSocialSecurity(ctx context.Context, id int64) error
}
