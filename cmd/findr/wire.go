package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/findr-api/internal/application/catalog"
	"github.com/findr-api/internal/application/claim"
	"github.com/findr-api/internal/application/events"
	"github.com/findr-api/internal/application/matching"
	"github.com/findr-api/internal/application/media"
	"github.com/findr-api/internal/application/moderation"
	"github.com/findr-api/internal/application/notification"
	"github.com/findr-api/internal/application/session"
	"github.com/findr-api/internal/config"
	"github.com/findr-api/internal/domain"
	"github.com/findr-api/internal/infrastructure/dynamo"
	"github.com/findr-api/internal/infrastructure/imaging"
	jwtinfra "github.com/findr-api/internal/infrastructure/jwt"
	"github.com/findr-api/internal/infrastructure/memory"
	"github.com/findr-api/internal/infrastructure/rabbitmq"
	s3infra "github.com/findr-api/internal/infrastructure/s3"
	"github.com/findr-api/internal/infrastructure/seed"
	"github.com/findr-api/internal/infrastructure/smtp"
	"github.com/findr-api/internal/infrastructure/sns"
	transporthttp "github.com/findr-api/internal/transport/http"
)

type itemRepo interface {
	Put(ctx context.Context, item *domain.Item) error
	Get(ctx context.Context, itemID string) (*domain.Item, error)
	List(ctx context.Context, f domain.ItemFilter) ([]domain.Item, error)
	ListByReporter(ctx context.Context, userID string) ([]domain.Item, error)
	MarkVerified(ctx context.Context, itemID string) (*domain.Item, error)
	Resolve(ctx context.Context, itemID string) (*domain.Item, error)
	Delete(ctx context.Context, itemID string) error
}

type claimRepo interface {
	Submit(ctx context.Context, c *domain.Claim) error
	Resolve(ctx context.Context, claimID string, approved bool) (*domain.Claim, error)
	Get(ctx context.Context, claimID string) (*domain.Claim, error)
	ListByClaimant(ctx context.Context, userID string) ([]domain.Claim, error)
	ListPending(ctx context.Context) ([]domain.Claim, error)
}

type notificationRepo interface {
	Put(ctx context.Context, n *domain.Notification) error
	Get(ctx context.Context, notificationID string) (*domain.Notification, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Notification, error)
	CountUnread(ctx context.Context, userID string) (int, error)
	MarkAsRead(ctx context.Context, notificationID string) (*domain.Notification, error)
}

type userRepo interface {
	Put(ctx context.Context, u *domain.User) error
	Get(ctx context.Context, userID string) (*domain.User, error)
	FirstByRole(ctx context.Context, role string) (*domain.User, error)
}

// backend is the Entity Store the services share, whichever kind it is.
type backend struct {
	items         itemRepo
	claims        claimRepo
	notifications notificationRepo
	users         userRepo
}

type eventBus interface {
	events.Publisher
	HealthCheck() error
	Close() error
}

func openBackend(ctx context.Context, cfg *config.Config) (*backend, error) {
	switch cfg.StoreBackend {
	case config.StoreMemory:
		store := memory.NewStore()
		b := &backend{store.Items(), store.Claims(), store.Notifications(), store.Users()}
		if cfg.SeedDemo {
			if err := seed.Load(ctx, b.users, b.items, b.notifications, time.Now().UTC()); err != nil {
				return nil, err
			}
			log.Info().Msg("memory store seeded with demo data")
		}
		return b, nil
	case config.StoreDynamo:
		client, err := dynamo.NewClient(ctx, cfg)
		if err != nil {
			return nil, err
		}
		store := dynamo.NewStore(client, cfg.DynamoTables)
		return &backend{store.Items, store.Claims, store.Notifications, store.Users}, nil
	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}
}

// openTokens loads the RS256 key pair, or in development falls back to a
// throwaway key so the API still starts.
func openTokens(cfg *config.Config) (*jwtinfra.Provider, error) {
	p, err := jwtinfra.NewProvider(cfg)
	if err == nil {
		return p, nil
	}
	if !cfg.IsDevelopment() {
		return nil, err
	}
	log.Warn().Err(err).Msg("JWT key pair not available, using an ephemeral key")
	return jwtinfra.NewEphemeralProvider(cfg.JWTExpiry)
}

func openEvents(cfg *config.Config) eventBus {
	if cfg.RabbitMQURL == "" {
		return rabbitmq.LogPublisher{}
	}
	p, err := rabbitmq.NewPublisher(cfg.RabbitMQURL, cfg.RabbitMQExchange)
	if err != nil {
		log.Warn().Err(err).Msg("RabbitMQ not available, domain events go to the log")
		return rabbitmq.LogPublisher{}
	}
	return p
}

// buildDeps wires every service around one backend. Optional integrations
// stay nil interfaces when unconfigured.
func buildDeps(ctx context.Context, cfg *config.Config, b *backend, tokens *jwtinfra.Provider, bus eventBus) *transporthttp.Deps {
	matchDeps := matching.ServiceDeps{
		ItemRepo:         b.items,
		NotificationRepo: b.notifications,
		UserRepo:         b.users,
		Events:           bus,
	}
	if cfg.SMTPEnabled {
		matchDeps.Mailer = smtp.NewMailer(cfg)
	}
	if cfg.SNSTopicARN != "" {
		if alerts, err := sns.NewTopicPublisher(ctx, cfg); err == nil {
			matchDeps.Alerts = alerts
		} else {
			log.Warn().Err(err).Msg("SNS alerts disabled")
		}
	}

	modDeps := moderation.ServiceDeps{ItemRepo: b.items, ClaimRepo: b.claims, Events: bus}
	mediaDeps := media.ServiceDeps{Processor: imaging.NewProcessor(cfg.ImageMaxDim), KeyFor: s3infra.ItemImageKey}
	if cfg.S3BucketName != "" {
		if client, err := s3infra.NewClient(ctx, cfg); err == nil {
			photos := s3infra.NewStore(client, cfg)
			modDeps.Photos = photos
			mediaDeps.Store = photos
		} else {
			log.Warn().Err(err).Msg("photo uploads disabled")
		}
	}

	return &transporthttp.Deps{
		Catalog: catalog.NewService(catalog.ServiceDeps{
			ItemRepo: b.items,
			Matcher:  matching.NewService(matchDeps),
			Events:   bus,
		}),
		Claims: claim.NewService(claim.ServiceDeps{
			ClaimRepo:      b.claims,
			ItemRepo:       b.items,
			UserRepo:       b.users,
			Events:         bus,
			AllowSelfClaim: cfg.AllowSelfClaim,
		}),
		Moderation:    moderation.NewService(modDeps),
		Notifications: notification.NewService(b.notifications),
		Sessions:      session.NewService(b.users, tokens),
		Media:         media.NewService(mediaDeps),
		Tokens:        tokens,
		Events:        bus,
	}
}
