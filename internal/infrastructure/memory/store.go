// Package memory is the process-lifetime Entity Store. One Store owns the
// items, claims, notifications and users collections behind a single lock,
// so transitions that touch a claim and its item happen in one critical
// section.
package memory

import (
	"sync"

	"github.com/findr-api/internal/domain"
)

// Store is safe for concurrent use. Construct it once and share it.
type Store struct {
	mu            sync.RWMutex
	items         []*domain.Item // newest first
	claims        []*domain.Claim
	notifications []*domain.Notification // newest first
	users         map[string]*domain.User
}

func NewStore() *Store {
	return &Store{users: make(map[string]*domain.User)}
}

func (s *Store) Items() *ItemRepo                 { return &ItemRepo{s: s} }
func (s *Store) Claims() *ClaimRepo               { return &ClaimRepo{s: s} }
func (s *Store) Notifications() *NotificationRepo { return &NotificationRepo{s: s} }
func (s *Store) Users() *UserRepo                 { return &UserRepo{s: s} }

// findItem returns the stored pointer and its index. Callers hold s.mu.
func (s *Store) findItem(itemID string) (*domain.Item, int) {
	for i, it := range s.items {
		if it.ItemID == itemID {
			return it, i
		}
	}
	return nil, -1
}

func (s *Store) findClaim(claimID string) *domain.Claim {
	for _, c := range s.claims {
		if c.ClaimID == claimID {
			return c
		}
	}
	return nil
}
