package repository

import (
	"context"
	"errors"
	"fmt"

	"realty_portal_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const reservationNotFoundMsg = "reservation request not found"

const reservationColumns = `id, client_id, client_name, client_email, client_phone,
	property_id, property_name, property_address,
	unit_id, unit_identifier, unit_block,
	status, client_msg, agent_msg,
	address_proof_urls, income_proof_urls, identity_doc_urls, certificate_urls,
	created_at, updated_at`

func scanReservation(row pgx.Row) (ReservationRequest, error) {
	var res ReservationRequest
	err := row.Scan(
		&res.ID, &res.ClientID, &res.ClientName, &res.ClientEmail, &res.ClientPhone,
		&res.PropertyID, &res.PropertyName, &res.PropertyAddress,
		&res.UnitID, &res.UnitIdentifier, &res.UnitBlock,
		&res.Status, &res.ClientMsg, &res.AgentMsg,
		&res.AddressProofURLs, &res.IncomeProofURLs, &res.IdentityDocURLs, &res.CertificateURLs,
		&res.CreatedAt, &res.UpdatedAt,
	)
	return res, err
}

func (r *Repository) GetReservationByID(ctx context.Context, id uuid.UUID) (ReservationRequest, error) {
	query := fmt.Sprintf(`SELECT %s FROM reservation_requests WHERE id = $1`, reservationColumns)

	res, err := scanReservation(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ReservationRequest{}, apperr.NotFound(reservationNotFoundMsg)
		}
		return ReservationRequest{}, fmt.Errorf("get reservation request: %w", err)
	}

	return res, nil
}

// ApproveReservation moves a pending reservation to approved. The unit lock
// happens separately, before this call; see the service layer.
func (r *Repository) ApproveReservation(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `
		UPDATE reservation_requests
		SET status = 'approved', client_msg = NULL, updated_at = now()
		WHERE id = $1 AND status = 'pending'
	`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("approve reservation request: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

func (r *Repository) DenyReservation(ctx context.Context, id uuid.UUID, clientMsg string, agentMsg *string) (bool, error) {
	query := `
		UPDATE reservation_requests
		SET status = 'denied', client_msg = $2, agent_msg = $3, updated_at = now()
		WHERE id = $1 AND status = 'pending'
	`

	tag, err := r.pool.Exec(ctx, query, id, clientMsg, agentMsg)
	if err != nil {
		return false, fmt.Errorf("deny reservation request: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

func (r *Repository) CompleteReservation(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `
		UPDATE reservation_requests
		SET status = 'completed', updated_at = now()
		WHERE id = $1 AND status = 'approved'
	`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("complete reservation request: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

func (r *Repository) CancelReservation(ctx context.Context, id uuid.UUID, clientMsg *string, agentMsg *string) (bool, error) {
	query := `
		UPDATE reservation_requests
		SET status = 'denied', client_msg = $2, agent_msg = $3, updated_at = now()
		WHERE id = $1 AND status = 'approved'
	`

	tag, err := r.pool.Exec(ctx, query, id, clientMsg, agentMsg)
	if err != nil {
		return false, fmt.Errorf("cancel reservation request: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

func (r *Repository) ListReservations(ctx context.Context, params ListParams) ([]ReservationRequest, int, error) {
	whereClause, args, argIdx := buildRequestListWhere(params)

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM reservation_requests WHERE %s", whereClause)
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count reservation requests: %w", err)
	}

	limit, offset := pageWindow(params)
	args = append(args, limit, offset)

	query := fmt.Sprintf(`
		SELECT %s
		FROM reservation_requests
		WHERE %s
		ORDER BY created_at DESC, id
		LIMIT $%d OFFSET $%d
	`, reservationColumns, whereClause, argIdx, argIdx+1)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list reservation requests: %w", err)
	}
	defer rows.Close()

	reservations := make([]ReservationRequest, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan reservation request: %w", err)
		}
		reservations = append(reservations, res)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list reservation requests: %w", err)
	}

	return reservations, total, nil
}
