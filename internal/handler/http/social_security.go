package http

import (
	"net/http"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/socialsecurity"
	"github.com/cmlabs-hris/payroll-backend-go/internal/handler/http/response"
)

type SocialSecurityHandler interface {
	ListSocialSecurities(w http.ResponseWriter, r *http.Request)
	GetSocialSecurity(w http.ResponseWriter, r *http.Request)
	CreateSocialSecurity(w http.ResponseWriter, r *http.Request)
	UpdateSocialSecurity(w http.ResponseWriter, r *http.Request)
	DeleteSocialSecurity(w http.ResponseWriter, r *http.Request)
}

type socialSecurityHandlerImpl struct {
	socialSecurityService socialsecurity.SocialSecurityService
}

func NewSocialSecurityHandler(socialSecurityService socialsecurity.SocialSecurityService) SocialSecurityHandler {
	return &socialSecurityHandlerImpl{
		socialSecurityService: socialSecurityService,
	}
}

func (h *socialSecurityHandlerImpl) ListSocialSecurities(w http.ResponseWriter, r *http.Request) {
	q := newQueryParser(r)
	filter := socialsecurity.SocialSecurityFilter{
		Query:      q.Page(),
		EmployeeID: q.Int64("employeeId"),
		Month:      q.String("month"),
	}
	if err := q.Err(); err != nil {
		response.HandleError(w, err)
		return
	}

	page, err := h.socialSecurityService.ListSocialSecurities(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Page(w, page)
}

func (h *socialSecurityHandlerImpl) GetSocialSecurity(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	result, err := h.socialSecurityService.GetSocialSecurity(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *socialSecurityHandlerImpl) CreateSocialSecurity(w http.ResponseWriter, r *http.Request) {
	var req socialsecurity.CreateSocialSecurityRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.socialSecurityService.CreateSocialSecurity(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Social security created successfully", result)
}

func (h *socialSecurityHandlerImpl) UpdateSocialSecurity(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req socialsecurity.UpdateSocialSecurityRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.ID = id

	result, err := h.socialSecurityService.UpdateSocialSecurity(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Social security updated successfully", result)
}

func (h *socialSecurityHandlerImpl) DeleteSocialSecurity(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.socialSecurityService.DeleteSocialSecurity(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Social security deleted successfully", nil)
}
