package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/findr-api/internal/domain"
)

// UserRepo is the user collection of a Store.
type UserRepo struct {
	s *Store
}

func (r *UserRepo) Put(_ context.Context, u *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *u
	r.s.users[u.UserID] = &cp
	return nil
}

func (r *UserRepo) Get(_ context.Context, userID string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[userID]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", userID, domain.ErrNotFound)
	}
	cp := *u
	return &cp, nil
}

// FirstByRole returns the user with the lowest id holding role.
func (r *UserRepo) FirstByRole(_ context.Context, role string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var ids []string
	for id, u := range r.s.users {
		if u.Role == role {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("no user with role %s: %w", role, domain.ErrNotFound)
	}
	sort.Strings(ids)
	cp := *r.s.users[ids[0]]
	return &cp, nil
}
