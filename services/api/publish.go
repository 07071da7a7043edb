package api

import (
	"context"

	"github.com/rs/zerolog"
)

const (
	factoryCreatedEvent     = "factories.created"
	factoryDeletedEvent     = "factories.deleted"
	deviceDeletedEvent      = "devices.deleted"
	deviceGroupCreatedEvent = "device-groups.created"
	deviceGroupDeletedEvent = "device-groups.deleted"
	waveRolloutEvent        = "waves.rollout"
	waveCancelEvent         = "waves.cancel"
	waveCompleteEvent       = "waves.complete"
)

// Publisher delivers events about mock mutations.
type Publisher interface {
	Publish(ctx context.Context, name string, data map[string]any) error
}

func (a *API) publish(ctx context.Context, name string, payload map[string]any) {
	if a.bus == nil || name == "" {
		return
	}
	if err := a.bus.Publish(ctx, name, payload); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("event", name).Msg("publish event")
	}
}
