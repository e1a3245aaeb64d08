package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"eventos_inscricoes/internal/domain/entities"
	"eventos_inscricoes/internal/usecase/interfaces"
)

const eventKeyPrefix = "event:"

type redisStore interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// CachedEventRepository is a read-through Redis cache in front of the event
// repository. Cache failures are logged and fall through to the repository;
// missing events are never cached.
type CachedEventRepository struct {
	next  interfaces.IEventRepository
	store redisStore
	ttl   time.Duration
}

var _ interfaces.IEventRepository = (*CachedEventRepository)(nil)

// NewCachedEventRepository wraps next. With a nil client it returns next
// unchanged.
func NewCachedEventRepository(next interfaces.IEventRepository, client *redis.Client, ttl time.Duration) interfaces.IEventRepository {
	if client == nil {
		return next
	}
	return newCachedEventRepository(next, client, ttl)
}

func newCachedEventRepository(next interfaces.IEventRepository, store redisStore, ttl time.Duration) *CachedEventRepository {
	return &CachedEventRepository{next: next, store: store, ttl: ttl}
}

func (r *CachedEventRepository) GetByID(ctx context.Context, id string) (entities.Event, error) {
	key := eventKeyPrefix + id

	raw, err := r.store.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var e entities.Event
		if jsonErr := json.Unmarshal(raw, &e); jsonErr == nil {
			return e, nil
		}
		log.WithField("event_id", id).Warn("[event][cache] corrupt entry ignored")
	case !errors.Is(err, redis.Nil):
		log.WithField("event_id", id).WithError(err).Warn("[event][cache] get failed")
	}

	e, err := r.next.GetByID(ctx, id)
	if err != nil || e.ID == "" {
		return e, err
	}

	data, err := json.Marshal(e)
	if err != nil {
		return e, nil
	}
	if err := r.store.Set(ctx, key, data, r.ttl).Err(); err != nil {
		log.WithField("event_id", id).WithError(err).Warn("[event][cache] set failed")
	}
	return e, nil
}
