package claim

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/findr-api/internal/application/events"
	"github.com/findr-api/internal/domain"
	"github.com/findr-api/internal/pkg/id"
)

type Service interface {
	Submit(ctx context.Context, itemID, claimantID string, req domain.SubmitClaimRequest) (*domain.Claim, error)
	ListByClaimant(ctx context.Context, userID string) ([]domain.ClaimWithItem, error)
}

type claimStore interface {
	Submit(ctx context.Context, c *domain.Claim) error
	ListByClaimant(ctx context.Context, userID string) ([]domain.Claim, error)
}

// ItemGetter is the item lookup used to attach items to claims.
type ItemGetter interface {
	Get(ctx context.Context, itemID string) (*domain.Item, error)
}

type userStore interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
}

type service struct {
	claims         claimStore
	items          ItemGetter
	users          userStore
	events         events.Publisher
	allowSelfClaim bool
	now            func() time.Time
}

type ServiceDeps struct {
	ClaimRepo      claimStore
	ItemRepo       ItemGetter
	UserRepo       userStore
	Events         events.Publisher
	AllowSelfClaim bool
}

func NewService(deps ServiceDeps) Service {
	return &service{
		claims:         deps.ClaimRepo,
		items:          deps.ItemRepo,
		users:          deps.UserRepo,
		events:         deps.Events,
		allowSelfClaim: deps.AllowSelfClaim,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// Submit files a PENDING claim and locks the item in PENDING. Only one
// claim can hold an item at a time; the loser of a race gets ErrConflict.
func (s *service) Submit(ctx context.Context, itemID, claimantID string, req domain.SubmitClaimRequest) (*domain.Claim, error) {
	u, err := s.users.Get(ctx, claimantID)
	if err != nil {
		return nil, fmt.Errorf("claimant: %w", err)
	}
	item, err := s.items.Get(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !s.allowSelfClaim && item.ReporterID == claimantID {
		return nil, fmt.Errorf("cannot claim own report %s: %w", itemID, domain.ErrInvalidState)
	}

	c := &domain.Claim{
		ClaimID:          id.New(),
		ItemID:           itemID,
		ClaimantID:       claimantID,
		ClaimantName:     u.Name,
		Status:           domain.ClaimStatusPending,
		Date:             s.now(),
		ProofDescription: req.ProofDescription,
	}
	if err := s.claims.Submit(ctx, c); err != nil {
		return nil, err
	}

	e := domain.NewEvent(domain.EventClaimSubmitted, itemID)
	e.ClaimID = c.ClaimID
	e.UserID = claimantID
	events.Emit(ctx, s.events, e)
	return c, nil
}

func (s *service) ListByClaimant(ctx context.Context, userID string) ([]domain.ClaimWithItem, error) {
	claims, err := s.claims.ListByClaimant(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list claims of %s: %w", userID, err)
	}
	return WithItems(ctx, s.items, claims)
}

// WithItems pairs each claim with its item, newest claim first. A claim
// whose item was deleted keeps a nil Item.
func WithItems(ctx context.Context, getter ItemGetter, claims []domain.Claim) ([]domain.ClaimWithItem, error) {
	sort.SliceStable(claims, func(i, j int) bool { return claims[i].Date.After(claims[j].Date) })

	out := make([]domain.ClaimWithItem, 0, len(claims))
	for _, c := range claims {
		item, err := getter.Get(ctx, c.ItemID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("item of claim %s: %w", c.ClaimID, err)
		}
		out = append(out, domain.ClaimWithItem{Claim: c, Item: item})
	}
	return out, nil
}
