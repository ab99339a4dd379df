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

const unitNotFoundMsg = "unit not found"

// Repository provides database operations for rental units.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new units repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

type Unit struct {
	ID           uuid.UUID
	PropertyID   uuid.UUID
	PropertyName string
	Label        string
	IsAvailable  bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Unit, error) {
	query := `
		SELECT id, property_id, property_name, label, is_available, created_at, updated_at
		FROM units
		WHERE id = $1
	`

	var unit Unit
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&unit.ID,
		&unit.PropertyID,
		&unit.PropertyName,
		&unit.Label,
		&unit.IsAvailable,
		&unit.CreatedAt,
		&unit.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Unit{}, apperr.NotFound(unitNotFoundMsg)
		}
		return Unit{}, fmt.Errorf("get unit: %w", err)
	}

	return unit, nil
}

// TryLock flips is_available from true to false in one conditional update.
// It reports false when the unit was already taken, which callers surface as
// a conflict rather than an error.
func (r *Repository) TryLock(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `
		UPDATE units
		SET is_available = FALSE, updated_at = now()
		WHERE id = $1 AND is_available = TRUE
	`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("lock unit: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// Release marks the unit available again. Used both as the saga compensation
// after a failed reservation approval and when an approved reservation is
// cancelled.
func (r *Repository) Release(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE units
		SET is_available = TRUE, updated_at = now()
		WHERE id = $1
	`

	if _, err := r.pool.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("release unit: %w", err)
	}

	return nil
}
