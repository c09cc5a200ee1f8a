package employee

import "errors"

var (
	ErrEmployeeNotFound           = errors.New("employee not found")
	ErrEmployeeNoExists           = errors.New("employee number already exists")
	ErrWorkshopDepartmentMismatch = errors.New("workshop does not belong to the department")
	ErrSalaryChangeNotFound       = errors.New("salary change not found")
)
