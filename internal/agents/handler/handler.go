package handler

import (
	"realty_portal_backend/internal/agents/service"
	"realty_portal_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for agents.
type Handler struct {
	svc *service.Service
}

// New creates a new agents handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers agent routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
}

func (h *Handler) List(c *gin.Context) {
	result, err := h.svc.List(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}
