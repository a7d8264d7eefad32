package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/findr-api/internal/application/events"
	"github.com/findr-api/internal/domain"
	"github.com/findr-api/internal/pkg/id"
)

type Service interface {
	List(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, error)
	Get(ctx context.Context, itemID string) (*domain.Item, error)
	ListByReporter(ctx context.Context, userID string) ([]domain.Item, error)
	Create(ctx context.Context, reporterID string, req domain.CreateItemRequest) (*domain.Item, error)
}

type itemStore interface {
	Put(ctx context.Context, item *domain.Item) error
	Get(ctx context.Context, itemID string) (*domain.Item, error)
	List(ctx context.Context, f domain.ItemFilter) ([]domain.Item, error)
	ListByReporter(ctx context.Context, userID string) ([]domain.Item, error)
}

type matcher interface {
	OnItemCreated(ctx context.Context, item *domain.Item) ([]domain.Notification, error)
}

type service struct {
	repo    itemStore
	matcher matcher
	events  events.Publisher
	now     func() time.Time
}

type ServiceDeps struct {
	ItemRepo itemStore
	Matcher  matcher
	Events   events.Publisher
}

func NewService(deps ServiceDeps) Service {
	return &service{
		repo:    deps.ItemRepo,
		matcher: deps.Matcher,
		events:  deps.Events,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) List(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, error) {
	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

func (s *service) Get(ctx context.Context, itemID string) (*domain.Item, error) {
	return s.repo.Get(ctx, itemID)
}

func (s *service) ListByReporter(ctx context.Context, userID string) ([]domain.Item, error) {
	items, err := s.repo.ListByReporter(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list items of %s: %w", userID, err)
	}
	return items, nil
}

// Create stores a new report as OPEN and unverified whatever the request
// says, then runs matching against the existing catalog before returning.
func (s *service) Create(ctx context.Context, reporterID string, req domain.CreateItemRequest) (*domain.Item, error) {
	item := &domain.Item{
		ItemID:      id.New(),
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		Status:      domain.ItemStatusOpen,
		Location:    req.Location,
		Date:        req.Date,
		ImageURL:    req.ImageURL,
		ContactName: req.ContactName,
		Category:    req.Category,
		ReporterID:  reporterID,
		IsVerified:  false,
		CreatedAt:   s.now(),
	}
	if err := s.repo.Put(ctx, item); err != nil {
		return nil, fmt.Errorf("store item: %w", err)
	}

	if s.matcher != nil {
		if _, err := s.matcher.OnItemCreated(ctx, item); err != nil {
			log.Ctx(ctx).Error().Err(err).Str("item_id", item.ItemID).Msg("matching failed")
		}
	}

	e := domain.NewEvent(domain.EventItemCreated, item.ItemID)
	e.UserID = reporterID
	events.Emit(ctx, s.events, e)
	return item, nil
}
