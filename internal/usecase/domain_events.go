package usecase

import (
	"context"
	"eventos_inscricoes/internal/usecase/interfaces"
	"time"

	log "github.com/sirupsen/logrus"
)

// publishEvent is fire-and-forget: the write already happened, so a broker
// failure is logged and never reported to the caller.
func publishEvent(ctx context.Context, pub interfaces.IEventPublisher, eventType, key string, data map[string]any) {
	if pub == nil {
		return
	}
	evt := interfaces.DomainEvent{
		Type:       eventType,
		Key:        key,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	}
	if err := pub.Publish(ctx, evt); err != nil {
		log.WithFields(log.Fields{"type": eventType, "key": key}).WithError(err).
			Warn("[events][usecase] publish failed")
	}
}
