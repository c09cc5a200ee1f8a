package http

import (
	"net/http"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/master/department"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/master/workshop"
	"github.com/cmlabs-hris/payroll-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/payroll-backend-go/internal/service/master"
)

type MasterHandler interface {
	// Department handlers
	CreateDepartment(w http.ResponseWriter, r *http.Request)
	GetDepartment(w http.ResponseWriter, r *http.Request)
	ListDepartments(w http.ResponseWriter, r *http.Request)
	UpdateDepartment(w http.ResponseWriter, r *http.Request)
	DeleteDepartment(w http.ResponseWriter, r *http.Request)

	// Workshop handlers
	CreateWorkshop(w http.ResponseWriter, r *http.Request)
	GetWorkshop(w http.ResponseWriter, r *http.Request)
	ListWorkshops(w http.ResponseWriter, r *http.Request)
	UpdateWorkshop(w http.ResponseWriter, r *http.Request)
	DeleteWorkshop(w http.ResponseWriter, r *http.Request)
}

type masterHandlerImpl struct {
	masterService master.MasterService
}

func NewMasterHandler(masterService master.MasterService) MasterHandler {
	return &masterHandlerImpl{
		masterService: masterService,
	}
}

// ==================== DEPARTMENT HANDLERS ====================

func (h *masterHandlerImpl) CreateDepartment(w http.ResponseWriter, r *http.Request) {
	var req department.CreateDepartmentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.masterService.CreateDepartment(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Department created successfully", result)
}

func (h *masterHandlerImpl) GetDepartment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	result, err := h.masterService.GetDepartment(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *masterHandlerImpl) ListDepartments(w http.ResponseWriter, r *http.Request) {
	q := newQueryParser(r)
	filter := department.DepartmentFilter{Query: q.Page()}
	if err := q.Err(); err != nil {
		response.HandleError(w, err)
		return
	}

	page, err := h.masterService.ListDepartments(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Page(w, page)
}

func (h *masterHandlerImpl) UpdateDepartment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req department.UpdateDepartmentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.ID = id

	result, err := h.masterService.UpdateDepartment(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Department updated successfully", result)
}

func (h *masterHandlerImpl) DeleteDepartment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.masterService.DeleteDepartment(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Department deleted successfully", nil)
}

// ==================== WORKSHOP HANDLERS ====================

func (h *masterHandlerImpl) CreateWorkshop(w http.ResponseWriter, r *http.Request) {
	var req workshop.CreateWorkshopRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.masterService.CreateWorkshop(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Workshop created successfully", result)
}

func (h *masterHandlerImpl) GetWorkshop(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	result, err := h.masterService.GetWorkshop(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *masterHandlerImpl) ListWorkshops(w http.ResponseWriter, r *http.Request) {
	q := newQueryParser(r)
	filter := workshop.WorkshopFilter{
		Query:        q.Page(),
		DepartmentID: q.Int64("departmentId"),
	}
	if err := q.Err(); err != nil {
		response.HandleError(w, err)
		return
	}

	page, err := h.masterService.ListWorkshops(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Page(w, page)
}

func (h *masterHandlerImpl) UpdateWorkshop(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req workshop.UpdateWorkshopRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.ID = id

	result, err := h.masterService.UpdateWorkshop(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Workshop updated successfully", result)
}

func (h *masterHandlerImpl) DeleteWorkshop(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.masterService.DeleteWorkshop(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Workshop deleted successfully", nil)
}
