package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"eventos_inscricoes/internal/infrastructure/config"
)

// NewRedisClient connects to REDIS_ADDR. It returns nil when no address is
// configured or the server does not answer a ping; callers then run without
// a cache.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) *redis.Client {
	if cfg.Addr == "" {
		log.Info("[cache][infra] REDIS_ADDR not set, event cache disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.WithField("addr", cfg.Addr).WithError(err).Warn("[cache][infra] redis unreachable, event cache disabled")
		_ = client.Close()
		return nil
	}
	log.WithField("addr", cfg.Addr).Info("[cache][infra] redis connected")
	return client
}
