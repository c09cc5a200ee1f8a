package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-backend-go/internal/handler/http/response"
)

type PayrollHandler interface {
	// Payroll records
	ListPayrolls(w http.ResponseWriter, r *http.Request)
	GetPayroll(w http.ResponseWriter, r *http.Request)
	CreatePayroll(w http.ResponseWriter, r *http.Request)
	UpdatePayroll(w http.ResponseWriter, r *http.Request)
	DeletePayroll(w http.ResponseWriter, r *http.Request)

	// Generation and lifecycle
	GeneratePayrolls(w http.ResponseWriter, r *http.Request)
	ConfirmPayroll(w http.ResponseWriter, r *http.Request)
	PayPayroll(w http.ResponseWriter, r *http.Request)

	// Items
	ListItems(w http.ResponseWriter, r *http.Request)
	CreateItem(w http.ResponseWriter, r *http.Request)
	UpdateItem(w http.ResponseWriter, r *http.Request)
	DeleteItem(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
	itemService    payroll.PayrollItemService
}

func NewPayrollHandler(payrollService payroll.PayrollService, itemService payroll.PayrollItemService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService, itemService: itemService}
}

// ========== PAYROLL RECORDS ==========

func (h *payrollHandlerImpl) ListPayrolls(w http.ResponseWriter, r *http.Request) {
	q := newQueryParser(r)
	filter := payroll.PayrollFilter{
		Query:        q.Page(),
		DepartmentID: q.Int64("departmentId"),
		WorkshopID:   q.Int64("workshopId"),
		EmployeeID:   q.Int64("employeeId"),
		Month:        q.String("month"),
	}
	if status := q.String("status"); status != nil {
		s := payroll.Status(*status)
		filter.Status = &s
	}
	if err := q.Err(); err != nil {
		response.HandleError(w, err)
		return
	}

	page, err := h.payrollService.ListPayrolls(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Page(w, page)
}

func (h *payrollHandlerImpl) GetPayroll(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	result, err := h.payrollService.GetPayroll(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) CreatePayroll(w http.ResponseWriter, r *http.Request) {
	var req payroll.CreatePayrollRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.payrollService.CreatePayroll(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll created successfully", result)
}

func (h *payrollHandlerImpl) UpdatePayroll(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req payroll.UpdatePayrollRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.ID = id

	result, err := h.payrollService.UpdatePayroll(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll updated successfully", result)
}

func (h *payrollHandlerImpl) DeletePayroll(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.payrollService.DeletePayroll(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll deleted successfully", nil)
}

// ========== GENERATION AND LIFECYCLE ==========

func (h *payrollHandlerImpl) GeneratePayrolls(w http.ResponseWriter, r *http.Request) {
	var req payroll.GenerateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.payrollService.GenerateDrafts(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if len(result.Failures) > 0 {
		slog.Warn("Payroll generation finished with failures", "month", req.Month, "failures", len(result.Failures))
	}

	message := fmt.Sprintf("Generated %d payroll(s), skipped %d, failed %d",
		len(result.Payrolls), len(result.Skipped), len(result.Failures))
	response.SuccessWithMessage(w, message, result)
}

func (h *payrollHandlerImpl) ConfirmPayroll(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	result, err := h.payrollService.ConfirmPayroll(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll confirmed", result)
}

func (h *payrollHandlerImpl) PayPayroll(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	result, err := h.payrollService.PayPayroll(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll paid", result)
}

// ========== ITEMS ==========

func (h *payrollHandlerImpl) ListItems(w http.ResponseWriter, r *http.Request) {
	payrollID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	items, err := h.itemService.ListItems(r.Context(), payrollID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, items)
}

func (h *payrollHandlerImpl) CreateItem(w http.ResponseWriter, r *http.Request) {
	payrollID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req payroll.CreateItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.PayrollID = payrollID

	result, err := h.itemService.CreateItem(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll item created successfully", result)
}

func (h *payrollHandlerImpl) UpdateItem(w http.ResponseWriter, r *http.Request) {
	payrollID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	itemID, ok := pathID(w, r, "itemId")
	if !ok {
		return
	}

	var req payroll.UpdateItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.ID = itemID
	req.PayrollID = payrollID

	result, err := h.itemService.UpdateItem(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll item updated successfully", result)
}

func (h *payrollHandlerImpl) DeleteItem(w http.ResponseWriter, r *http.Request) {
	payrollID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	itemID, ok := pathID(w, r, "itemId")
	if !ok {
		return
	}

	if err := h.itemService.DeleteItem(r.Context(), payrollID, itemID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll item deleted successfully", nil)
}
