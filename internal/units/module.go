// Package units provides the rental units bounded context module.
package units

import (
	"realty_portal_backend/internal/units/repository"
	"realty_portal_backend/internal/units/service"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the units bounded context module. It exposes no routes of its
// own; the requests module drives it through the service layer.
type Module struct {
	service *service.Service
}

// NewModule creates and initializes the units module.
func NewModule(pool *pgxpool.Pool) *Module {
	repo := repository.New(pool)
	svc := service.New(repo)

	return &Module{service: svc}
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}
