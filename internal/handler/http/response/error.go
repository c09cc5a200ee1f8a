package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/bonus"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/logistics"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/master/department"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/master/workshop"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/socialsecurity"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
)

var notFoundErrors = []error{
	user.ErrUserNotFound,
	department.ErrDepartmentNotFound,
	workshop.ErrWorkshopNotFound,
	employee.ErrEmployeeNotFound,
	employee.ErrSalaryChangeNotFound,
	attendance.ErrAttendanceNotFound,
	logistics.ErrLogisticsNotFound,
	socialsecurity.ErrSocialSecurityNotFound,
	bonus.ErrBonusNotFound,
	payroll.ErrPayrollNotFound,
	payroll.ErrPayrollItemNotFound,
}

var conflictErrors = []error{
	user.ErrUsernameExists,
	department.ErrDepartmentNameExists,
	department.ErrDepartmentInUse,
	workshop.ErrWorkshopInUse,
	employee.ErrEmployeeNoExists,
	attendance.ErrAttendanceExists,
	logistics.ErrLogisticsExists,
	socialsecurity.ErrSocialSecurityExists,
	bonus.ErrBonusExists,
	payroll.ErrPayrollAlreadyExists,
}

func matchAny(err error, targets []error) (error, bool) {
	for _, target := range targets {
		if errors.Is(err, target) {
			return target, true
		}
	}
	return nil, false
}

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	if target, ok := matchAny(err, notFoundErrors); ok {
		NotFound(w, target.Error())
		return
	}
	if target, ok := matchAny(err, conflictErrors); ok {
		Conflict(w, target.Error())
		return
	}

	switch {
	case payroll.IsLifecycleViolation(err):
		Conflict(w, err.Error())

	case errors.Is(err, employee.ErrWorkshopDepartmentMismatch):
		ValidationError(w, map[string]string{"workshopId": err.Error()})

	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid username or password")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, "Insufficient permissions")

	default:
		slog.Error("unhandled error", slog.String("error", err.Error()))
		InternalServerError(w, "An unexpected error occurred")
	}
}
