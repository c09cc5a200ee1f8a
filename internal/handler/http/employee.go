package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/handler/http/response"
)

type EmployeeHandler interface {
	ListEmployees(w http.ResponseWriter, r *http.Request)
	GetEmployee(w http.ResponseWriter, r *http.Request)
	CreateEmployee(w http.ResponseWriter, r *http.Request)
	UpdateEmployee(w http.ResponseWriter, r *http.Request)
	DeleteEmployee(w http.ResponseWriter, r *http.Request)

	ListSalaryChanges(w http.ResponseWriter, r *http.Request)
	CreateSalaryChange(w http.ResponseWriter, r *http.Request)
	UpdateSalaryChange(w http.ResponseWriter, r *http.Request)
	DeleteSalaryChange(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employeeService employee.EmployeeService
}

func NewEmployeeHandler(employeeService employee.EmployeeService) EmployeeHandler {
	return &employeeHandlerImpl{
		employeeService: employeeService,
	}
}

// ListEmployees implements EmployeeHandler
func (h *employeeHandlerImpl) ListEmployees(w http.ResponseWriter, r *http.Request) {
	q := newQueryParser(r)
	filter := employee.EmployeeFilter{
		Query:        q.Page(),
		DepartmentID: q.Int64("departmentId"),
		WorkshopID:   q.Int64("workshopId"),
		IsActive:     q.Bool("isActive"),
	}
	if err := q.Err(); err != nil {
		response.HandleError(w, err)
		return
	}

	page, err := h.employeeService.ListEmployees(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Page(w, page)
}

// GetEmployee implements EmployeeHandler
func (h *employeeHandlerImpl) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	result, err := h.employeeService.GetEmployee(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// CreateEmployee implements EmployeeHandler
func (h *employeeHandlerImpl) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req employee.CreateEmployeeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.employeeService.CreateEmployee(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	slog.Info("Employee created", "employee_id", result.ID, "employee_no", result.EmployeeNo)
	response.Created(w, "Employee created successfully", result)
}

// UpdateEmployee implements EmployeeHandler
func (h *employeeHandlerImpl) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req employee.UpdateEmployeeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.ID = id

	result, err := h.employeeService.UpdateEmployee(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee updated successfully", result)
}

// DeleteEmployee implements EmployeeHandler
func (h *employeeHandlerImpl) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.employeeService.DeleteEmployee(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee deleted successfully", nil)
}

// ListSalaryChanges implements EmployeeHandler
func (h *employeeHandlerImpl) ListSalaryChanges(w http.ResponseWriter, r *http.Request) {
	q := newQueryParser(r)
	filter := employee.SalaryChangeFilter{
		Query:      q.Page(),
		EmployeeID: q.Int64("employeeId"),
		DateFrom:   q.String("dateFrom"),
		DateTo:     q.String("dateTo"),
	}
	if err := q.Err(); err != nil {
		response.HandleError(w, err)
		return
	}

	page, err := h.employeeService.ListSalaryChanges(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Page(w, page)
}

// CreateSalaryChange implements EmployeeHandler
func (h *employeeHandlerImpl) CreateSalaryChange(w http.ResponseWriter, r *http.Request) {
	var req employee.CreateSalaryChangeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.employeeService.CreateSalaryChange(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Salary change recorded successfully", result)
}

// UpdateSalaryChange implements EmployeeHandler
func (h *employeeHandlerImpl) UpdateSalaryChange(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req employee.UpdateSalaryChangeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.ID = id

	result, err := h.employeeService.UpdateSalaryChange(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary change updated successfully", result)
}

// DeleteSalaryChange implements EmployeeHandler
func (h *employeeHandlerImpl) DeleteSalaryChange(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.employeeService.DeleteSalaryChange(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary change deleted successfully", nil)
}
