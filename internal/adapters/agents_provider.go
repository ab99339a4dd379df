// Package adapters contains adapters that bridge bounded contexts. Each
// adapter implements an interface defined by a consuming domain while
// wrapping a service from a providing domain, so neither side imports the
// other's internals.
package adapters

import (
	"context"

	agentservice "realty_portal_backend/internal/agents/service"
	"realty_portal_backend/internal/requests/ports"
	"realty_portal_backend/platform/phone"

	"github.com/google/uuid"
)

// AgentsProvider adapts the agents service to the requests domain's
// AgentProvider interface.
type AgentsProvider struct {
	svc *agentservice.Service
}

// NewAgentsProvider creates a new adapter wrapping the agents service.
func NewAgentsProvider(svc *agentservice.Service) *AgentsProvider {
	return &AgentsProvider{svc: svc}
}

// GetActiveAgent resolves an assignable agent. Phone numbers are normalized
// to E.164 before they enter an assignment snapshot.
func (p *AgentsProvider) GetActiveAgent(ctx context.Context, id uuid.UUID) (ports.Agent, error) {
	agent, err := p.svc.GetActiveAgent(ctx, id)
	if err != nil {
		return ports.Agent{}, err
	}

	return ports.Agent{
		ID:            agent.ID,
		Name:          agent.Name,
		Email:         agent.Email,
		Phone:         normalizePhonePtr(agent.Phone),
		LicenseNumber: agent.LicenseNumber,
	}, nil
}

// ResolveAssignments returns agent snapshots for a batch of requests.
func (p *AgentsProvider) ResolveAssignments(ctx context.Context, kind string, requestIDs []uuid.UUID) (map[uuid.UUID][]ports.AssignedAgent, error) {
	assignments, err := p.svc.ResolveAssignments(ctx, kind, requestIDs)
	if err != nil {
		return nil, err
	}

	result := make(map[uuid.UUID][]ports.AssignedAgent, len(assignments))
	for requestID, assigned := range assignments {
		mapped := make([]ports.AssignedAgent, 0, len(assigned))
		for _, a := range assigned {
			mapped = append(mapped, ports.AssignedAgent{
				Agent: ports.Agent{
					ID:            a.AgentID,
					Name:          a.Name,
					Email:         a.Email,
					Phone:         a.Phone,
					LicenseNumber: a.LicenseNumber,
				},
				AssignedAt: a.AssignedAt,
			})
		}
		result[requestID] = mapped
	}

	return result, nil
}

func normalizePhonePtr(p *string) *string {
	if p == nil || *p == "" {
		return p
	}
	normalized := phone.NormalizeE164(*p)
	return &normalized
}

// Compile-time check that AgentsProvider implements ports.AgentProvider
var _ ports.AgentProvider = (*AgentsProvider)(nil)
