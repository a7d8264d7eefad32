package matching

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/findr-api/internal/application/events"
	"github.com/findr-api/internal/domain"
	"github.com/findr-api/internal/pkg/id"
)

const matchTitle = "New Item Match!"

type Service interface {
	OnItemCreated(ctx context.Context, item *domain.Item) ([]domain.Notification, error)
}

type itemStore interface {
	List(ctx context.Context, f domain.ItemFilter) ([]domain.Item, error)
}

type notificationStore interface {
	Put(ctx context.Context, n *domain.Notification) error
}

type userStore interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
}

type mailer interface {
	SendEmail(to, subject, body string) error
}

type alertPublisher interface {
	PublishAlert(ctx context.Context, userID, subject, message string) error
}

type service struct {
	items         itemStore
	notifications notificationStore
	users         userStore
	mailer        mailer
	alerts        alertPublisher
	events        events.Publisher
	now           func() time.Time
}

// ServiceDeps wires the engine. Users, Mailer and Alerts are optional and
// only drive out-of-band alerts.
type ServiceDeps struct {
	ItemRepo         itemStore
	NotificationRepo notificationStore
	UserRepo         userStore
	Mailer           mailer
	Alerts           alertPublisher
	Events           events.Publisher
}

func NewService(deps ServiceDeps) Service {
	return &service{
		items:         deps.ItemRepo,
		notifications: deps.NotificationRepo,
		users:         deps.UserRepo,
		mailer:        deps.Mailer,
		alerts:        deps.Alerts,
		events:        deps.Events,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// OnItemCreated notifies the reporter of every stored item that IsMatch
// pairs with item. One notification is written per matching item; the same
// reporter may receive several.
func (s *service) OnItemCreated(ctx context.Context, item *domain.Item) ([]domain.Notification, error) {
	existing, err := s.items.List(ctx, domain.ItemFilter{})
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}

	message := Message(item)
	var created []domain.Notification
	for i := range existing {
		if !domain.IsMatch(item, &existing[i]) {
			continue
		}
		related := item.ItemID
		n := domain.Notification{
			NotificationID: id.New(),
			UserID:         existing[i].ReporterID,
			Title:          matchTitle,
			Message:        message,
			IsRead:         false,
			Date:           s.now(),
			RelatedItemID:  &related,
		}
		if err := s.notifications.Put(ctx, &n); err != nil {
			return created, fmt.Errorf("store match notification: %w", err)
		}
		created = append(created, n)

		e := domain.NewEvent(domain.EventMatchFound, item.ItemID)
		e.UserID = n.UserID
		events.Emit(ctx, s.events, e)
		s.alert(ctx, &n)
	}
	return created, nil
}

// Message is the notification body sent to owners of matching reports.
func Message(item *domain.Item) string {
	return fmt.Sprintf("A new %s item \"%s\" might match your report.", strings.ToLower(string(item.Type)), item.Title)
}

// alert sends the optional email and SNS copies of n. Failures are logged.
func (s *service) alert(ctx context.Context, n *domain.Notification) {
	logger := log.Ctx(ctx).With().Str("user_id", n.UserID).Str("notification_id", n.NotificationID).Logger()

	if s.alerts != nil {
		if err := s.alerts.PublishAlert(ctx, n.UserID, n.Title, n.Message); err != nil {
			logger.Warn().Err(err).Msg("sns match alert failed")
		}
	}
	if s.mailer == nil || s.users == nil {
		return
	}
	u, err := s.users.Get(ctx, n.UserID)
	if err != nil {
		logger.Warn().Err(err).Msg("match alert recipient lookup failed")
		return
	}
	if u.Email == "" {
		return
	}
	if err := s.mailer.SendEmail(u.Email, n.Title, n.Message); err != nil {
		logger.Warn().Err(err).Msg("match alert email failed")
	}
}
