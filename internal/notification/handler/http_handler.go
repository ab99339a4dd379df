package handler

import (
	"net/http"
	"strconv"

	"realty_portal_backend/internal/notification/inapp"
	"realty_portal_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler exposes the back-office notification feed.
type Handler struct {
	svc *inapp.Service
}

func New(svc *inapp.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers notification routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("/:id/read", h.MarkRead)
	rg.POST("/read-all", h.MarkAllRead)
}

func (h *Handler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	result, err := h.svc.List(c.Request.Context(), page, pageSize)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

func (h *Handler) MarkRead(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}

	if httpkit.HandleError(c, h.svc.MarkRead(c.Request.Context(), id)) {
		return
	}

	httpkit.NoContent(c)
}

func (h *Handler) MarkAllRead(c *gin.Context) {
	if httpkit.HandleError(c, h.svc.MarkAllRead(c.Request.Context())) {
		return
	}

	httpkit.NoContent(c)
}
