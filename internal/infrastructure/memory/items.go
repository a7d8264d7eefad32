package memory

import (
	"context"
	"fmt"

	"github.com/findr-api/internal/domain"
)

// ItemRepo is the item collection of a Store. Returned items are copies.
type ItemRepo struct {
	s *Store
}

// Put inserts a new item at the head of the collection, or replaces an
// existing one in place.
func (r *ItemRepo) Put(_ context.Context, item *domain.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *item
	if _, i := r.s.findItem(item.ItemID); i >= 0 {
		r.s.items[i] = &cp
		return nil
	}
	r.s.items = append([]*domain.Item{&cp}, r.s.items...)
	return nil
}

func (r *ItemRepo) Get(_ context.Context, itemID string) (*domain.Item, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	it, _ := r.s.findItem(itemID)
	if it == nil {
		return nil, fmt.Errorf("item %s: %w", itemID, domain.ErrNotFound)
	}
	cp := *it
	return &cp, nil
}

// List returns the items matching f, newest first.
func (r *ItemRepo) List(_ context.Context, f domain.ItemFilter) ([]domain.Item, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]domain.Item, 0, len(r.s.items))
	for _, it := range r.s.items {
		if f.Match(it) {
			out = append(out, *it)
		}
	}
	return out, nil
}

func (r *ItemRepo) ListByReporter(_ context.Context, userID string) ([]domain.Item, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []domain.Item
	for _, it := range r.s.items {
		if it.ReporterID == userID {
			out = append(out, *it)
		}
	}
	return out, nil
}

func (r *ItemRepo) MarkVerified(_ context.Context, itemID string) (*domain.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	it, _ := r.s.findItem(itemID)
	if it == nil {
		return nil, fmt.Errorf("item %s: %w", itemID, domain.ErrNotFound)
	}
	it.IsVerified = true
	cp := *it
	return &cp, nil
}

// Resolve settles an OPEN item directly. A PENDING item must be settled
// through its claim instead.
func (r *ItemRepo) Resolve(_ context.Context, itemID string) (*domain.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	it, _ := r.s.findItem(itemID)
	if it == nil {
		return nil, fmt.Errorf("item %s: %w", itemID, domain.ErrNotFound)
	}
	if it.Status == domain.ItemStatusPending {
		return nil, fmt.Errorf("item %s has a pending claim: %w", itemID, domain.ErrInvalidState)
	}
	it.Status = domain.ItemStatusResolved
	cp := *it
	return &cp, nil
}

// Delete removes the item permanently.
func (r *ItemRepo) Delete(_ context.Context, itemID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, i := r.s.findItem(itemID)
	if i < 0 {
		return fmt.Errorf("item %s: %w", itemID, domain.ErrNotFound)
	}
	r.s.items = append(r.s.items[:i], r.s.items[i+1:]...)
	return nil
}
