package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/findr-api/internal/config"
	"github.com/findr-api/internal/domain"
	"github.com/findr-api/internal/transport/http/handler"
	appmiddleware "github.com/findr-api/internal/transport/http/middleware"
)

// NewRouter builds and returns the application router. ctx bounds the
// lifetime of background work such as rate-limiter cleanup.
func NewRouter(ctx context.Context, cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(appmiddleware.RequestLogger(log.Logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(cfg.RequestTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Applied to the write endpoints a single client could flood.
	writeRL := appmiddleware.NewRateLimiter(ctx, rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)

	healthH := handler.NewHealthHandler(deps.Events)
	sessionH := handler.NewSessionHandler(deps.Sessions)
	itemH := handler.NewItemHandler(deps.Catalog)
	claimH := handler.NewClaimHandler(deps.Claims)
	imageH := handler.NewImageHandler(deps.Media)
	notifH := handler.NewNotificationHandler(deps.Notifications)
	modH := handler.NewModerationHandler(deps.Moderation)

	r.Route("/v1", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health-check/{action}", healthH.Ping)
		r.With(writeRL.Limit).Post("/sessions/login", sessionH.Login)

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(appmiddleware.Auth(deps.Tokens))

			r.Get("/users/me", sessionH.Me)
			r.Get("/users/me/items", itemH.ListMine)
			r.Get("/users/me/claims", claimH.ListMine)

			r.Get("/items", itemH.List)
			r.With(writeRL.Limit).Post("/items", itemH.Create)
			r.Post("/items/images", imageH.Upload)
			r.Get("/items/{id}", itemH.Get)
			r.With(writeRL.Limit).Post("/items/{id}/claims", claimH.Submit)

			r.Get("/notifications", notifH.List)
			r.Get("/notifications/unread-count", notifH.UnreadCount)
			r.Put("/notifications/{id}/read", notifH.MarkRead)

			// Staff-only routes
			r.Route("/moderation", func(r chi.Router) {
				r.Use(appmiddleware.RequireRole(domain.RoleStaff))

				r.Get("/items", modH.ListUnverified)
				r.Post("/items/{id}/verify", modH.Verify)
				r.Post("/items/{id}/resolve", modH.Resolve)
				r.Delete("/items/{id}", modH.Reject)
				r.Get("/claims", modH.ListPendingClaims)
				r.Post("/claims/{id}", modH.ProcessClaim)
			})
		})
	})

	return r
}
