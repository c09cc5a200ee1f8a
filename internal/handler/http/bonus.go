package http

import (
	"net/http"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/bonus"
	"github.com/cmlabs-hris/payroll-backend-go/internal/handler/http/response"
)

type BonusHandler interface {
	ListBonuses(w http.ResponseWriter, r *http.Request)
	GetBonus(w http.ResponseWriter, r *http.Request)
	CreateBonus(w http.ResponseWriter, r *http.Request)
	UpdateBonus(w http.ResponseWriter, r *http.Request)
	DeleteBonus(w http.ResponseWriter, r *http.Request)
}

type bonusHandlerImpl struct {
	bonusService bonus.BonusService
}

func NewBonusHandler(bonusService bonus.BonusService) BonusHandler {
	return &bonusHandlerImpl{
		bonusService: bonusService,
	}
}

func (h *bonusHandlerImpl) ListBonuses(w http.ResponseWriter, r *http.Request) {
	q := newQueryParser(r)
	filter := bonus.BonusFilter{
		Query:      q.Page(),
		EmployeeID: q.Int64("employeeId"),
		Year:       q.Int("year"),
	}
	if err := q.Err(); err != nil {
		response.HandleError(w, err)
		return
	}

	page, err := h.bonusService.ListBonuses(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Page(w, page)
}

func (h *bonusHandlerImpl) GetBonus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	result, err := h.bonusService.GetBonus(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *bonusHandlerImpl) CreateBonus(w http.ResponseWriter, r *http.Request) {
	var req bonus.CreateBonusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.bonusService.CreateBonus(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Year-end bonus created successfully", result)
}

func (h *bonusHandlerImpl) UpdateBonus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req bonus.UpdateBonusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.ID = id

	result, err := h.bonusService.UpdateBonus(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Year-end bonus updated successfully", result)
}

func (h *bonusHandlerImpl) DeleteBonus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.bonusService.DeleteBonus(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Year-end bonus deleted successfully", nil)
}
