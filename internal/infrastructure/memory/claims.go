package memory

import (
	"context"
	"fmt"

	"github.com/findr-api/internal/domain"
)

// ClaimRepo is the claim collection of a Store.
type ClaimRepo struct {
	s *Store
}

// Submit records c and moves its item from OPEN to PENDING in one step.
// A PENDING item yields ErrConflict, a RESOLVED one ErrInvalidState.
func (r *ClaimRepo) Submit(_ context.Context, c *domain.Claim) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	it, _ := r.s.findItem(c.ItemID)
	if it == nil {
		return fmt.Errorf("item %s: %w", c.ItemID, domain.ErrNotFound)
	}
	switch it.Status {
	case domain.ItemStatusPending:
		return fmt.Errorf("item %s already has an active claim: %w", c.ItemID, domain.ErrConflict)
	case domain.ItemStatusResolved:
		return fmt.Errorf("item %s is resolved: %w", c.ItemID, domain.ErrInvalidState)
	}
	it.Status = domain.ItemStatusPending
	cp := *c
	r.s.claims = append(r.s.claims, &cp)
	return nil
}

// Resolve settles a PENDING claim. Approval resolves the item; rejection
// releases it back to OPEN. A claim whose item was deleted still settles.
func (r *ClaimRepo) Resolve(_ context.Context, claimID string, approved bool) (*domain.Claim, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := r.s.findClaim(claimID)
	if c == nil {
		return nil, fmt.Errorf("claim %s: %w", claimID, domain.ErrNotFound)
	}
	if c.Status != domain.ClaimStatusPending {
		return nil, fmt.Errorf("claim %s is %s: %w", claimID, c.Status, domain.ErrInvalidState)
	}
	next := domain.ItemStatusOpen
	c.Status = domain.ClaimStatusRejected
	if approved {
		next = domain.ItemStatusResolved
		c.Status = domain.ClaimStatusApproved
	}
	if it, _ := r.s.findItem(c.ItemID); it != nil {
		it.Status = next
	}
	cp := *c
	return &cp, nil
}

func (r *ClaimRepo) Get(_ context.Context, claimID string) (*domain.Claim, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c := r.s.findClaim(claimID)
	if c == nil {
		return nil, fmt.Errorf("claim %s: %w", claimID, domain.ErrNotFound)
	}
	cp := *c
	return &cp, nil
}

func (r *ClaimRepo) ListByClaimant(_ context.Context, userID string) ([]domain.Claim, error) {
	return r.filter(func(c *domain.Claim) bool { return c.ClaimantID == userID }), nil
}

func (r *ClaimRepo) ListPending(_ context.Context) ([]domain.Claim, error) {
	return r.filter(func(c *domain.Claim) bool { return c.Status == domain.ClaimStatusPending }), nil
}

func (r *ClaimRepo) filter(keep func(*domain.Claim) bool) []domain.Claim {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []domain.Claim
	for _, c := range r.s.claims {
		if keep(c) {
			out = append(out, *c)
		}
	}
	return out
}
