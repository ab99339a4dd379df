package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"realty_portal_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const visitNotFoundMsg = "visit request not found"

const visitColumns = `id, client_id, client_name, client_email, client_phone,
	property_id, property_name, property_address,
	unit_id, unit_identifier, unit_block,
	status, requested_slots, scheduled_slot,
	client_msg, agent_msg, created_at, updated_at`

func scanVisit(row pgx.Row) (VisitRequest, error) {
	var v VisitRequest
	err := row.Scan(
		&v.ID, &v.ClientID, &v.ClientName, &v.ClientEmail, &v.ClientPhone,
		&v.PropertyID, &v.PropertyName, &v.PropertyAddress,
		&v.UnitID, &v.UnitIdentifier, &v.UnitBlock,
		&v.Status, &v.RequestedSlots, &v.ScheduledSlot,
		&v.ClientMsg, &v.AgentMsg, &v.CreatedAt, &v.UpdatedAt,
	)
	return v, err
}

func (r *Repository) GetVisitByID(ctx context.Context, id uuid.UUID) (VisitRequest, error) {
	query := fmt.Sprintf(`SELECT %s FROM visit_requests WHERE id = $1`, visitColumns)

	visit, err := scanVisit(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return VisitRequest{}, apperr.NotFound(visitNotFoundMsg)
		}
		return VisitRequest{}, fmt.Errorf("get visit request: %w", err)
	}

	return visit, nil
}

// ApproveVisit moves a pending visit to approved, recording the slot and
// replacing the messages. Returns false when the request was not pending.
func (r *Repository) ApproveVisit(ctx context.Context, id uuid.UUID, scheduledSlot time.Time, agentMsg *string) (bool, error) {
	query := `
		UPDATE visit_requests
		SET status = 'approved',
			scheduled_slot = $2,
			client_msg = NULL,
			agent_msg = $3,
			updated_at = now()
		WHERE id = $1 AND status = 'pending'
	`

	tag, err := r.pool.Exec(ctx, query, id, scheduledSlot, agentMsg)
	if err != nil {
		return false, fmt.Errorf("approve visit request: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// DenyVisit moves a pending visit to denied. The slot is cleared even though
// a pending visit should not have one.
func (r *Repository) DenyVisit(ctx context.Context, id uuid.UUID, clientMsg string, agentMsg *string) (bool, error) {
	query := `
		UPDATE visit_requests
		SET status = 'denied',
			scheduled_slot = NULL,
			client_msg = $2,
			agent_msg = $3,
			updated_at = now()
		WHERE id = $1 AND status = 'pending'
	`

	tag, err := r.pool.Exec(ctx, query, id, clientMsg, agentMsg)
	if err != nil {
		return false, fmt.Errorf("deny visit request: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

func (r *Repository) CompleteVisit(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `
		UPDATE visit_requests
		SET status = 'completed', updated_at = now()
		WHERE id = $1 AND status = 'approved'
	`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("complete visit request: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// CancelVisit moves an approved visit back to denied, clearing the slot.
func (r *Repository) CancelVisit(ctx context.Context, id uuid.UUID, clientMsg *string, agentMsg *string) (bool, error) {
	query := `
		UPDATE visit_requests
		SET status = 'denied',
			scheduled_slot = NULL,
			client_msg = $2,
			agent_msg = $3,
			updated_at = now()
		WHERE id = $1 AND status = 'approved'
	`

	tag, err := r.pool.Exec(ctx, query, id, clientMsg, agentMsg)
	if err != nil {
		return false, fmt.Errorf("cancel visit request: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

func (r *Repository) ListVisits(ctx context.Context, params ListParams) ([]VisitRequest, int, error) {
	whereClause, args, argIdx := buildRequestListWhere(params)

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM visit_requests WHERE %s", whereClause)
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count visit requests: %w", err)
	}

	limit, offset := pageWindow(params)
	args = append(args, limit, offset)

	query := fmt.Sprintf(`
		SELECT %s
		FROM visit_requests
		WHERE %s
		ORDER BY created_at DESC, id
		LIMIT $%d OFFSET $%d
	`, visitColumns, whereClause, argIdx, argIdx+1)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list visit requests: %w", err)
	}
	defer rows.Close()

	visits := make([]VisitRequest, 0)
	for rows.Next() {
		visit, err := scanVisit(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan visit request: %w", err)
		}
		visits = append(visits, visit)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list visit requests: %w", err)
	}

	return visits, total, nil
}
