package service

import (
	"context"

	"realty_portal_backend/internal/agents/repository"
	"realty_portal_backend/internal/agents/transport"
	"realty_portal_backend/platform/apperr"

	"github.com/google/uuid"
)

// Service provides business logic for agents.
type Service struct {
	repo *repository.Repository
}

// New creates a new agents service.
func New(repo *repository.Repository) *Service {
	return &Service{repo: repo}
}

// GetActiveAgent loads an agent and verifies they can take assignments.
// Approval flows use this to vet an assignee before snapshotting their
// details. A missing user is AgentNotFound; an existing user without the
// agent role is invalid input.
func (s *Service) GetActiveAgent(ctx context.Context, id uuid.UUID) (repository.Agent, error) {
	agent, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return repository.Agent{}, err
	}
	if agent.Role != "agent" {
		return repository.Agent{}, apperr.InvalidInput("user is not an agent")
	}
	if !agent.Active {
		return repository.Agent{}, apperr.AgentNotFound("agent is not active")
	}
	return agent, nil
}

// List returns all agents for admin assignment pickers.
func (s *Service) List(ctx context.Context) ([]transport.AgentResponse, error) {
	agents, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]transport.AgentResponse, 0, len(agents))
	for _, agent := range agents {
		result = append(result, transport.AgentResponse{
			ID:            agent.ID.String(),
			Name:          agent.Name,
			Email:         agent.Email,
			Phone:         agent.Phone,
			LicenseNumber: agent.LicenseNumber,
			Active:        agent.Active,
		})
	}
	return result, nil
}

// ResolveAssignments loads agent snapshots for a batch of requests keyed by
// request id. Missing keys mean the request has no assignments.
func (s *Service) ResolveAssignments(ctx context.Context, kind string, requestIDs []uuid.UUID) (map[uuid.UUID][]repository.AssignedAgent, error) {
	return s.repo.AssignmentsForRequests(ctx, kind, requestIDs)
}
