// Package requests provides the request lifecycle bounded context module:
// visit and reservation requests, their state machine and listings.
package requests

import (
	apphttp "realty_portal_backend/internal/http"
	"realty_portal_backend/internal/requests/handler"
	"realty_portal_backend/internal/requests/ports"
	"realty_portal_backend/internal/requests/repository"
	"realty_portal_backend/internal/requests/service"
	"realty_portal_backend/platform/events"
	"realty_portal_backend/platform/logger"
	"realty_portal_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the requests bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the requests module with all its
// dependencies. reminders may be nil when no task queue is configured.
func NewModule(
	pool *pgxpool.Pool,
	agents ports.AgentProvider,
	units ports.UnitLocker,
	sender service.Sender,
	eventBus events.Bus,
	reminders ports.ReminderScheduler,
	val *validator.Validator,
	log *logger.Logger,
) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, agents, units, sender, eventBus, reminders, log)
	h := handler.New(svc, val)

	return &Module{handler: h, service: svc}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "requests"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts request routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	requestsGroup := ctx.V1.Group("/requests")
	m.handler.RegisterRoutes(requestsGroup)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
