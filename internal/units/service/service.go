package service

import (
	"context"

	"realty_portal_backend/internal/units/repository"

	"github.com/google/uuid"
)

// Service provides business logic for rental units.
type Service struct {
	repo *repository.Repository
}

// New creates a new units service.
func New(repo *repository.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetUnit(ctx context.Context, id uuid.UUID) (repository.Unit, error) {
	return s.repo.GetByID(ctx, id)
}

// TryLock atomically claims an available unit. Returns false when the unit
// is already reserved.
func (s *Service) TryLock(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.repo.TryLock(ctx, id)
}

// Release makes a unit available again.
func (s *Service) Release(ctx context.Context, id uuid.UUID) error {
	return s.repo.Release(ctx, id)
}
