package adapters

import (
	"context"

	"realty_portal_backend/internal/requests/ports"
	unitservice "realty_portal_backend/internal/units/service"

	"github.com/google/uuid"
)

// UnitsLocker adapts the units service to the requests domain's UnitLocker
// interface.
type UnitsLocker struct {
	svc *unitservice.Service
}

// NewUnitsLocker creates a new adapter wrapping the units service.
func NewUnitsLocker(svc *unitservice.Service) *UnitsLocker {
	return &UnitsLocker{svc: svc}
}

func (l *UnitsLocker) TryLock(ctx context.Context, unitID uuid.UUID) (bool, error) {
	return l.svc.TryLock(ctx, unitID)
}

func (l *UnitsLocker) Release(ctx context.Context, unitID uuid.UUID) error {
	return l.svc.Release(ctx, unitID)
}

// Compile-time check that UnitsLocker implements ports.UnitLocker
var _ ports.UnitLocker = (*UnitsLocker)(nil)
