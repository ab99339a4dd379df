// Package agents provides the agents bounded context module.
package agents

import (
	"realty_portal_backend/internal/agents/handler"
	"realty_portal_backend/internal/agents/repository"
	"realty_portal_backend/internal/agents/service"
	apphttp "realty_portal_backend/internal/http"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the agents bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the agents module with all its dependencies.
func NewModule(pool *pgxpool.Pool) *Module {
	repo := repository.New(pool)
	svc := service.New(repo)
	h := handler.New(svc)

	return &Module{handler: h, service: svc}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "agents"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts agent routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	agentsGroup := ctx.V1.Group("/agents")
	m.handler.RegisterRoutes(agentsGroup)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
