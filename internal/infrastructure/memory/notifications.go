package memory

import (
	"context"
	"fmt"

	"github.com/findr-api/internal/domain"
)

// NotificationRepo is the notification collection of a Store.
type NotificationRepo struct {
	s *Store
}

func (r *NotificationRepo) Put(_ context.Context, n *domain.Notification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *n
	r.s.notifications = append([]*domain.Notification{&cp}, r.s.notifications...)
	return nil
}

func (r *NotificationRepo) Get(_ context.Context, notificationID string) (*domain.Notification, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if n := r.find(notificationID); n != nil {
		cp := *n
		return &cp, nil
	}
	return nil, fmt.Errorf("notification %s: %w", notificationID, domain.ErrNotFound)
}

// ListByUser returns the user's notifications, newest first.
func (r *NotificationRepo) ListByUser(_ context.Context, userID string) ([]domain.Notification, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []domain.Notification
	for _, n := range r.s.notifications {
		if n.UserID == userID {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (r *NotificationRepo) CountUnread(_ context.Context, userID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	count := 0
	for _, n := range r.s.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

// MarkAsRead is idempotent.
func (r *NotificationRepo) MarkAsRead(_ context.Context, notificationID string) (*domain.Notification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := r.find(notificationID)
	if n == nil {
		return nil, fmt.Errorf("notification %s: %w", notificationID, domain.ErrNotFound)
	}
	n.IsRead = true
	cp := *n
	return &cp, nil
}

func (r *NotificationRepo) find(notificationID string) *domain.Notification {
	for _, n := range r.s.notifications {
		if n.NotificationID == notificationID {
			return n
		}
	}
	return nil
}
