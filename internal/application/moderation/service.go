package moderation

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/findr-api/internal/application/claim"
	"github.com/findr-api/internal/application/events"
	"github.com/findr-api/internal/domain"
)

// Service is the staff-only review surface. Callers enforce the role.
type Service interface {
	ListUnverified(ctx context.Context) ([]domain.Item, error)
	VerifyItem(ctx context.Context, itemID string) (*domain.Item, error)
	RejectItem(ctx context.Context, itemID string) error
	ResolveItem(ctx context.Context, itemID string) (*domain.Item, error)
	ListPendingClaims(ctx context.Context) ([]domain.ClaimWithItem, error)
	ProcessClaim(ctx context.Context, claimID string, approved bool) (*domain.Claim, error)
}

type itemStore interface {
	Get(ctx context.Context, itemID string) (*domain.Item, error)
	List(ctx context.Context, f domain.ItemFilter) ([]domain.Item, error)
	MarkVerified(ctx context.Context, itemID string) (*domain.Item, error)
	Resolve(ctx context.Context, itemID string) (*domain.Item, error)
	Delete(ctx context.Context, itemID string) error
}

type claimStore interface {
	ListPending(ctx context.Context) ([]domain.Claim, error)
	Resolve(ctx context.Context, claimID string, approved bool) (*domain.Claim, error)
}

type photoStore interface {
	KeyFromURL(objectURL string) (string, bool)
	Delete(ctx context.Context, key string) error
}

type service struct {
	items  itemStore
	claims claimStore
	photos photoStore
	events events.Publisher
}

// ServiceDeps wires the workflow. Photos is optional; when set, rejecting an
// item also removes its uploaded photo.
type ServiceDeps struct {
	ItemRepo  itemStore
	ClaimRepo claimStore
	Photos    photoStore
	Events    events.Publisher
}

func NewService(deps ServiceDeps) Service {
	return &service{
		items:  deps.ItemRepo,
		claims: deps.ClaimRepo,
		photos: deps.Photos,
		events: deps.Events,
	}
}

func (s *service) ListUnverified(ctx context.Context) ([]domain.Item, error) {
	unverified := false
	items, err := s.items.List(ctx, domain.ItemFilter{IsVerified: &unverified})
	if err != nil {
		return nil, fmt.Errorf("list unverified items: %w", err)
	}
	return items, nil
}

// VerifyItem is idempotent.
func (s *service) VerifyItem(ctx context.Context, itemID string) (*domain.Item, error) {
	item, err := s.items.MarkVerified(ctx, itemID)
	if err != nil {
		return nil, err
	}
	s.emit(ctx, domain.EventItemVerified, item.ItemID, "", item.ReporterID)
	return item, nil
}

// RejectItem deletes the report permanently. The item.rejected event keeps
// the reporter and title on record.
func (s *service) RejectItem(ctx context.Context, itemID string) error {
	item, err := s.items.Get(ctx, itemID)
	if err != nil {
		return err
	}
	if err := s.items.Delete(ctx, itemID); err != nil {
		return err
	}
	s.emit(ctx, domain.EventItemRejected, itemID, "", item.ReporterID)
	s.dropPhoto(ctx, item)
	return nil
}

// ResolveItem closes an OPEN item without a claim. Items waiting on a claim
// must go through ProcessClaim.
func (s *service) ResolveItem(ctx context.Context, itemID string) (*domain.Item, error) {
	item, err := s.items.Resolve(ctx, itemID)
	if err != nil {
		return nil, err
	}
	s.emit(ctx, domain.EventItemResolved, itemID, "", item.ReporterID)
	return item, nil
}

func (s *service) ListPendingClaims(ctx context.Context) ([]domain.ClaimWithItem, error) {
	pending, err := s.claims.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pending claims: %w", err)
	}
	return claim.WithItems(ctx, s.items, pending)
}

// ProcessClaim approves (item RESOLVED) or rejects (item back to OPEN) a
// PENDING claim.
func (s *service) ProcessClaim(ctx context.Context, claimID string, approved bool) (*domain.Claim, error) {
	c, err := s.claims.Resolve(ctx, claimID, approved)
	if err != nil {
		return nil, err
	}
	eventType := domain.EventClaimRejected
	if approved {
		eventType = domain.EventClaimApproved
	}
	s.emit(ctx, eventType, c.ItemID, c.ClaimID, c.ClaimantID)
	return c, nil
}

func (s *service) emit(ctx context.Context, eventType, itemID, claimID, userID string) {
	e := domain.NewEvent(eventType, itemID)
	e.ClaimID = claimID
	e.UserID = userID
	events.Emit(ctx, s.events, e)
}

func (s *service) dropPhoto(ctx context.Context, item *domain.Item) {
	if s.photos == nil || item.ImageURL == "" {
		return
	}
	key, ok := s.photos.KeyFromURL(item.ImageURL)
	if !ok {
		return
	}
	if err := s.photos.Delete(ctx, key); err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("item_id", item.ItemID).Str("key", key).Msg("photo cleanup failed")
	}
}
