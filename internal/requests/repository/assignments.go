package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ReplaceAssignment removes any existing assignments for the request and
// inserts a single new one carrying the agent snapshot. Delete runs first so
// an interruption leaves the request unassigned rather than double-assigned.
func (r *Repository) ReplaceAssignment(ctx context.Context, kind string, requestID uuid.UUID, assignment Assignment) error {
	if err := r.DeleteAssignments(ctx, kind, requestID); err != nil {
		return err
	}

	query := `
		INSERT INTO request_assignments (
			id, request_id, request_kind, agent_id,
			agent_name, agent_email, agent_phone, agent_license_number, assigned_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.pool.Exec(ctx, query,
		uuid.New(),
		requestID,
		kind,
		assignment.AgentID,
		assignment.AgentName,
		assignment.AgentEmail,
		assignment.AgentPhone,
		assignment.LicenseNumber,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert assignment: %w", err)
	}

	return nil
}

func (r *Repository) DeleteAssignments(ctx context.Context, kind string, requestID uuid.UUID) error {
	query := `DELETE FROM request_assignments WHERE request_kind = $1 AND request_id = $2`

	if _, err := r.pool.Exec(ctx, query, kind, requestID); err != nil {
		return fmt.Errorf("delete assignments: %w", err)
	}

	return nil
}
