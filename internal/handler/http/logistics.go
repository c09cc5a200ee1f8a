package http

import (
	"net/http"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/logistics"
	"github.com/cmlabs-hris/payroll-backend-go/internal/handler/http/response"
)

type LogisticsHandler interface {
	ListLogistics(w http.ResponseWriter, r *http.Request)
	GetLogistics(w http.ResponseWriter, r *http.Request)
	CreateLogistics(w http.ResponseWriter, r *http.Request)
	UpdateLogistics(w http.ResponseWriter, r *http.Request)
	DeleteLogistics(w http.ResponseWriter, r *http.Request)
}

type logisticsHandlerImpl struct {
	logisticsService logistics.LogisticsService
}

func NewLogisticsHandler(logisticsService logistics.LogisticsService) LogisticsHandler {
	return &logisticsHandlerImpl{
		logisticsService: logisticsService,
	}
}

func (h *logisticsHandlerImpl) ListLogistics(w http.ResponseWriter, r *http.Request) {
	q := newQueryParser(r)
	filter := logistics.LogisticsFilter{
		Query:      q.Page(),
		EmployeeID: q.Int64("employeeId"),
		Month:      q.String("month"),
	}
	if err := q.Err(); err != nil {
		response.HandleError(w, err)
		return
	}

	page, err := h.logisticsService.ListLogistics(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Page(w, page)
}

func (h *logisticsHandlerImpl) GetLogistics(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	result, err := h.logisticsService.GetLogistics(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *logisticsHandlerImpl) CreateLogistics(w http.ResponseWriter, r *http.Request) {
	var req logistics.CreateLogisticsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.logisticsService.CreateLogistics(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Logistics data created successfully", result)
}

func (h *logisticsHandlerImpl) UpdateLogistics(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req logistics.UpdateLogisticsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.ID = id

	result, err := h.logisticsService.UpdateLogistics(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Logistics data updated successfully", result)
}

func (h *logisticsHandlerImpl) DeleteLogistics(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.logisticsService.DeleteLogistics(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Logistics data deleted successfully", nil)
}
