package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"realty_portal_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const agentNotFoundMsg = "agent not found"

// Repository provides database operations for agents.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new agents repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Agent is the live agent record, joined from users and agent_profiles.
// Role is carried so callers can tell a non-agent user apart from a missing
// one.
type Agent struct {
	ID            uuid.UUID
	Name          string
	Email         string
	Phone         *string
	Role          string
	LicenseNumber *string
	Active        bool
	CreatedAt     time.Time
}

// AssignedAgent is the snapshot stored on an assignment row. It reflects the
// agent's details at the moment of assignment, not the current user record.
type AssignedAgent struct {
	AgentID       uuid.UUID
	Name          string
	Email         string
	Phone         *string
	LicenseNumber *string
	AssignedAt    time.Time
}

// GetByID loads a user with their agent profile, if any. Non-agent users
// come back with a nil license and Active false; the service layer decides
// how to surface them.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Agent, error) {
	query := `
		SELECT u.id, u.name, u.email, u.phone, u.role,
			p.license_number, COALESCE(p.active, FALSE), u.created_at
		FROM users u
		LEFT JOIN agent_profiles p ON p.user_id = u.id
		WHERE u.id = $1
	`

	var agent Agent
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&agent.ID,
		&agent.Name,
		&agent.Email,
		&agent.Phone,
		&agent.Role,
		&agent.LicenseNumber,
		&agent.Active,
		&agent.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Agent{}, apperr.AgentNotFound(agentNotFoundMsg)
		}
		return Agent{}, fmt.Errorf("get agent: %w", err)
	}

	return agent, nil
}

// List returns all agents, active first, for admin assignment pickers.
func (r *Repository) List(ctx context.Context) ([]Agent, error) {
	query := `
		SELECT u.id, u.name, u.email, u.phone, u.role,
			p.license_number, p.active, u.created_at
		FROM users u
		JOIN agent_profiles p ON p.user_id = u.id
		WHERE u.role = 'agent'
		ORDER BY p.active DESC, u.name ASC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list agents: %w", err)
	}
	defer rows.Close()

	var agents []Agent
	for rows.Next() {
		var agent Agent
		if err := rows.Scan(
			&agent.ID,
			&agent.Name,
			&agent.Email,
			&agent.Phone,
			&agent.Role,
			&agent.LicenseNumber,
			&agent.Active,
			&agent.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan agent: %w", err)
		}
		agents = append(agents, agent)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list agents: %w", err)
	}

	return agents, nil
}

// AssignmentsForRequests loads the agent snapshots for a batch of requests in
// one query. The result maps request id to its assignments in assignment
// order; requests without assignments are absent from the map.
func (r *Repository) AssignmentsForRequests(ctx context.Context, kind string, requestIDs []uuid.UUID) (map[uuid.UUID][]AssignedAgent, error) {
	if len(requestIDs) == 0 {
		return map[uuid.UUID][]AssignedAgent{}, nil
	}

	query := `
		SELECT request_id, agent_id, agent_name, agent_email,
			agent_phone, agent_license_number, assigned_at
		FROM request_assignments
		WHERE request_kind = $1 AND request_id = ANY($2)
		ORDER BY assigned_at ASC
	`

	rows, err := r.pool.Query(ctx, query, kind, requestIDs)
	if err != nil {
		return nil, fmt.Errorf("load request assignments: %w", err)
	}
	defer rows.Close()

	result := make(map[uuid.UUID][]AssignedAgent)
	for rows.Next() {
		var requestID uuid.UUID
		var assigned AssignedAgent
		if err := rows.Scan(
			&requestID,
			&assigned.AgentID,
			&assigned.Name,
			&assigned.Email,
			&assigned.Phone,
			&assigned.LicenseNumber,
			&assigned.AssignedAt,
		); err != nil {
			return nil, fmt.Errorf("scan assignment: %w", err)
		}
		result[requestID] = append(result[requestID], assigned)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load request assignments: %w", err)
	}

	return result, nil
}
