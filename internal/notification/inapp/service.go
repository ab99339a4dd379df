package inapp

import (
	"context"

	"github.com/google/uuid"
)

const defaultPageSize = 20

// ListResult is a page of the notification feed with the unread badge count.
type ListResult struct {
	Items       []Notification `json:"items"`
	Total       int            `json:"total"`
	UnreadCount int            `json:"unreadCount"`
}

// Service provides the in-app notification feed.
type Service struct {
	repo *Repository
}

func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Notify(ctx context.Context, p CreateParams) (Notification, error) {
	return s.repo.Create(ctx, p)
}

func (s *Service) List(ctx context.Context, page, pageSize int) (ListResult, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	items, total, err := s.repo.List(ctx, pageSize, (page-1)*pageSize)
	if err != nil {
		return ListResult{}, err
	}

	unread, err := s.repo.CountUnread(ctx)
	if err != nil {
		return ListResult{}, err
	}

	return ListResult{Items: items, Total: total, UnreadCount: unread}, nil
}

func (s *Service) MarkRead(ctx context.Context, id uuid.UUID) error {
	return s.repo.MarkRead(ctx, id)
}

func (s *Service) MarkAllRead(ctx context.Context) error {
	return s.repo.MarkAllRead(ctx)
}
