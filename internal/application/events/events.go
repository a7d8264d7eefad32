// Package events fans domain events out to the configured publisher.
package events

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/findr-api/internal/domain"
)

type Publisher interface {
	Publish(ctx context.Context, e domain.Event) error
}

// Emit publishes e and only logs a failure; a state change that already
// committed is never undone because its event could not be delivered.
func Emit(ctx context.Context, p Publisher, e domain.Event) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, e); err != nil {
		log.Ctx(ctx).Warn().Err(err).
			Str("type", e.Type).
			Str("item_id", e.ItemID).
			Msg("event publish failed")
	}
}
