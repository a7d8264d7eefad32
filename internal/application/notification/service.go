package notification

import (
	"context"
	"fmt"

	"github.com/findr-api/internal/domain"
)

type Service interface {
	ListForUser(ctx context.Context, userID string) ([]domain.Notification, error)
	UnreadCount(ctx context.Context, userID string) (int, error)
	MarkRead(ctx context.Context, notificationID, userID string) (*domain.Notification, error)
}

type notificationStore interface {
	Get(ctx context.Context, notificationID string) (*domain.Notification, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Notification, error)
	CountUnread(ctx context.Context, userID string) (int, error)
	MarkAsRead(ctx context.Context, notificationID string) (*domain.Notification, error)
}

type service struct {
	repo notificationStore
}

func NewService(repo notificationStore) Service {
	return &service{repo: repo}
}

func (s *service) ListForUser(ctx context.Context, userID string) ([]domain.Notification, error) {
	list, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return list, nil
}

func (s *service) UnreadCount(ctx context.Context, userID string) (int, error) {
	return s.repo.CountUnread(ctx, userID)
}

// MarkRead is idempotent. Only the recipient may mark a notification.
func (s *service) MarkRead(ctx context.Context, notificationID, userID string) (*domain.Notification, error) {
	n, err := s.repo.Get(ctx, notificationID)
	if err != nil {
		return nil, err
	}
	if n.UserID != userID {
		return nil, fmt.Errorf("notification %s: %w", notificationID, domain.ErrForbidden)
	}
	if n.IsRead {
		return n, nil
	}
	return s.repo.MarkAsRead(ctx, notificationID)
}
