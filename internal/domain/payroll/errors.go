package payroll

import (
	"errors"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
)

var (
	ErrPayrollNotFound      = errors.New("payroll not found")
	ErrPayrollItemNotFound  = errors.New("payroll item not found")
	ErrPayrollAlreadyExists = errors.New("payroll already exists for this employee and month")

	// Lifecycle violations
	ErrOnlyDraftUpdatable   = errors.New("only Draft can be updated")
	ErrOnlyDraftDeletable   = errors.New("only Draft can be deleted")
	ErrOnlyDraftConfirmable = errors.New("only Draft can be confirmed")
	ErrOnlyConfirmedPayable = errors.New("only Confirmed can be paid")
	ErrItemsLocked          = errors.New("items locked when not Draft")
)

// IsLifecycleViolation reports whether err is a rejected status transition or Draft lock
func IsLifecycleViolation(err error) bool {
	return errors.Is(err, ErrOnlyDraftUpdatable) ||
		errors.Is(err, ErrOnlyDraftDeletable) ||
		errors.Is(err, ErrOnlyDraftConfirmable) ||
		errors.Is(err, ErrOnlyConfirmedPayable) ||
		errors.Is(err, ErrItemsLocked)
}

// IsNotFound reports whether err names a missing payroll, item or employee
func IsNotFound(err error) bool {
	return errors.Is(err, ErrPayrollNotFound) ||
		errors.Is(err, ErrPayrollItemNotFound) ||
		errors.Is(err, employee.ErrEmployeeNotFound)
}

// IsBusinessFault reports whether err is an expected rejection of the
// request rather than an infrastructure failure. Its message is safe to
// show to callers.
func IsBusinessFault(err error) bool {
	if err == nil {
		return false
	}
	var verrs validator.ValidationErrors
	return IsLifecycleViolation(err) ||
		IsNotFound(err) ||
		errors.Is(err, ErrPayrollAlreadyExists) ||
		errors.As(err, &verrs)
}
