// Package inapp persists the back-office notification feed. Rows are created
// by the event subscriber and read by the admin UI; a nil user id means the
// notification belongs to the shared feed rather than a specific agent.
package inapp

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Notification struct {
	ID           uuid.UUID  `json:"id"`
	UserID       *uuid.UUID `json:"userId,omitempty"`
	Title        string     `json:"title"`
	Content      string     `json:"content"`
	ResourceID   *uuid.UUID `json:"resourceId,omitempty"`
	ResourceKind *string    `json:"resourceKind,omitempty"`
	Category     string     `json:"category"`
	IsRead       bool       `json:"isRead"`
	CreatedAt    time.Time  `json:"createdAt"`
}

type CreateParams struct {
	UserID       *uuid.UUID
	Title        string
	Content      string
	ResourceID   *uuid.UUID
	ResourceKind *string
	Category     string
}

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) Create(ctx context.Context, p CreateParams) (Notification, error) {
	category := p.Category
	if category == "" {
		category = "info"
	}

	query := `
		INSERT INTO notifications (id, user_id, title, content, resource_id, resource_kind, category)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, user_id, title, content, resource_id, resource_kind, category, is_read, created_at
	`

	var n Notification
	err := r.pool.QueryRow(ctx, query,
		uuid.New(), p.UserID, p.Title, p.Content, p.ResourceID, p.ResourceKind, category,
	).Scan(
		&n.ID, &n.UserID, &n.Title, &n.Content, &n.ResourceID, &n.ResourceKind, &n.Category, &n.IsRead, &n.CreatedAt,
	)
	if err != nil {
		return Notification{}, fmt.Errorf("create notification: %w", err)
	}

	return n, nil
}

func (r *Repository) List(ctx context.Context, limit, offset int) ([]Notification, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM notifications`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count notifications: %w", err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, title, content, resource_id, resource_kind, category, is_read, created_at
		FROM notifications
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	items := make([]Notification, 0, limit)
	for rows.Next() {
		var n Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Content, &n.ResourceID, &n.ResourceKind, &n.Category, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan notification: %w", err)
		}
		items = append(items, n)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list notifications: %w", err)
	}

	return items, total, nil
}

func (r *Repository) CountUnread(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM notifications WHERE is_read = FALSE`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return count, nil
}

func (r *Repository) MarkRead(ctx context.Context, notificationID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE notifications SET is_read = TRUE WHERE id = $1
	`, notificationID)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	return nil
}

func (r *Repository) MarkAllRead(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE notifications SET is_read = TRUE WHERE is_read = FALSE
	`)
	if err != nil {
		return fmt.Errorf("mark all notifications read: %w", err)
	}
	return nil
}
