package handler

import (
	"net/http"

	"realty_portal_backend/internal/requests/service"
	"realty_portal_backend/internal/requests/transport"
	"realty_portal_backend/platform/httpkit"
	"realty_portal_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Handler handles HTTP requests for the request lifecycle and listings.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new requests handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes registers visit and reservation request routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	visits := rg.Group("/visits")
	visits.GET("", h.ListVisits)
	visits.POST("/:id/approve", h.ApproveVisit)
	visits.POST("/:id/deny", h.DenyVisit)
	visits.POST("/:id/complete", h.CompleteVisit)
	visits.POST("/:id/cancel", h.CancelVisit)

	reservations := rg.Group("/reservations")
	reservations.GET("", h.ListReservations)
	reservations.POST("/:id/approve", h.ApproveReservation)
	reservations.POST("/:id/deny", h.DenyReservation)
	reservations.POST("/:id/complete", h.CompleteReservation)
	reservations.POST("/:id/cancel", h.CancelReservation)
}

func (h *Handler) ListVisits(c *gin.Context) {
	var query transport.ListRequestsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(query); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.ListVisits(c.Request.Context(), query)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

func (h *Handler) ApproveVisit(c *gin.Context) {
	id, ok := requestID(c)
	if !ok {
		return
	}

	var req transport.ApproveVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	if httpkit.HandleError(c, h.svc.ApproveVisit(c.Request.Context(), id, req)) {
		return
	}

	httpkit.NoContent(c)
}

func (h *Handler) DenyVisit(c *gin.Context) {
	id, ok := requestID(c)
	if !ok {
		return
	}

	var req transport.DenyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	if httpkit.HandleError(c, h.svc.DenyVisit(c.Request.Context(), id, req)) {
		return
	}

	httpkit.NoContent(c)
}

func (h *Handler) CompleteVisit(c *gin.Context) {
	id, ok := requestID(c)
	if !ok {
		return
	}

	if httpkit.HandleError(c, h.svc.CompleteVisit(c.Request.Context(), id)) {
		return
	}

	httpkit.NoContent(c)
}

func (h *Handler) CancelVisit(c *gin.Context) {
	id, ok := requestID(c)
	if !ok {
		return
	}

	req, bound := bindCancel(c)
	if !bound {
		return
	}

	if httpkit.HandleError(c, h.svc.CancelVisit(c.Request.Context(), id, req)) {
		return
	}

	httpkit.NoContent(c)
}

func (h *Handler) ListReservations(c *gin.Context) {
	var query transport.ListRequestsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(query); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.ListReservations(c.Request.Context(), query)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

func (h *Handler) ApproveReservation(c *gin.Context) {
	id, ok := requestID(c)
	if !ok {
		return
	}

	if httpkit.HandleError(c, h.svc.ApproveReservation(c.Request.Context(), id)) {
		return
	}

	httpkit.NoContent(c)
}

func (h *Handler) DenyReservation(c *gin.Context) {
	id, ok := requestID(c)
	if !ok {
		return
	}

	var req transport.DenyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	if httpkit.HandleError(c, h.svc.DenyReservation(c.Request.Context(), id, req)) {
		return
	}

	httpkit.NoContent(c)
}

func (h *Handler) CompleteReservation(c *gin.Context) {
	id, ok := requestID(c)
	if !ok {
		return
	}

	if httpkit.HandleError(c, h.svc.CompleteReservation(c.Request.Context(), id)) {
		return
	}

	httpkit.NoContent(c)
}

func (h *Handler) CancelReservation(c *gin.Context) {
	id, ok := requestID(c)
	if !ok {
		return
	}

	req, bound := bindCancel(c)
	if !bound {
		return
	}

	if httpkit.HandleError(c, h.svc.CancelReservation(c.Request.Context(), id, req)) {
		return
	}

	httpkit.NoContent(c)
}

func requestID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return uuid.Nil, false
	}
	return id, true
}

// bindCancel reads the optional cancel payload. An empty body is accepted;
// cancellation messages are optional.
func bindCancel(c *gin.Context) (transport.CancelRequest, bool) {
	var req transport.CancelRequest
	if c.Request.Body != nil && c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
			return transport.CancelRequest{}, false
		}
	}
	return req, true
}
