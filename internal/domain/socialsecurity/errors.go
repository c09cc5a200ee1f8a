package socialsecurity

import "errors"

var (
	ErrSocialSecurityNotFound = errors.New("social security record not found")
	ErrSocialSecurityExists   = errors.New("social security already recorded for this employee and month")
)
