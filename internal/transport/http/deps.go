package http

import (
	"github.com/findr-api/internal/application/catalog"
	"github.com/findr-api/internal/application/claim"
	"github.com/findr-api/internal/application/media"
	"github.com/findr-api/internal/application/moderation"
	"github.com/findr-api/internal/application/notification"
	"github.com/findr-api/internal/application/session"
	"github.com/findr-api/internal/transport/http/handler"
	"github.com/findr-api/internal/transport/http/middleware"
)

// Deps holds the application services and auth plumbing the router mounts.
// Services are built once in cmd/findr around a single store.
type Deps struct {
	Catalog       catalog.Service
	Claims        claim.Service
	Moderation    moderation.Service
	Notifications notification.Service
	Sessions      session.Service
	Media         media.Service
	Tokens        middleware.TokenVerifier
	Events        handler.Pinger
}
