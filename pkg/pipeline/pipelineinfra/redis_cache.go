package pipelineinfra

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Abraxas-365/stagetrack/pkg/logx"
	"github.com/Abraxas-365/stagetrack/pkg/pipeline"
	"github.com/redis/go-redis/v9"
)

// RedisStore is the part of the go-redis client used by the cache
type RedisStore interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisDefinitionCache cachea en Redis la definición obtenida de otra fuente.
// Cache failures are logged and never fail a load. Only definitions that
// pass validation are stored.
type RedisDefinitionCache struct {
	client RedisStore
	source pipeline.DefinitionSource
	name   string
	origin string
	ttl    time.Duration
	opts   []pipeline.Option
}

// NewRedisDefinitionCache decorates source with a cache entry for name.
// origin identifies where source reads from (a path, or "builtin") and is
// part of the key, so pointing the service at another document misses.
// opts are the validation options applied before an entry is stored.
func NewRedisDefinitionCache(client RedisStore, source pipeline.DefinitionSource, name, origin string, ttl time.Duration, opts ...pipeline.Option) *RedisDefinitionCache {
	return &RedisDefinitionCache{
		client: client,
		source: source,
		name:   name,
		origin: origin,
		ttl:    ttl,
		opts:   opts,
	}
}

func (c *RedisDefinitionCache) key() string {
	return fmt.Sprintf("pipeline_definition:%s:%s", c.name, c.origin)
}

// Load returns the cached definition or falls through to the source
func (c *RedisDefinitionCache) Load(ctx context.Context) (*pipeline.Definition, error) {
	raw, err := c.client.Get(ctx, c.key()).Result()
	switch {
	case err == nil:
		var def pipeline.Definition
		if jsonErr := json.Unmarshal([]byte(raw), &def); jsonErr == nil {
			if _, cfgErr := pipeline.NewConfig(&def, c.opts...); cfgErr == nil {
				logx.WithField("key", c.key()).Debug("pipeline definition served from cache")
				return &def, nil
			}
		}
		logx.WithField("key", c.key()).Warn("discarding invalid cached pipeline definition")
		c.drop(ctx)
	case errors.Is(err, redis.Nil):
	default:
		logx.WithFields(logx.Fields{"key": c.key(), "error": err.Error()}).
			Warn("pipeline definition cache unavailable")
	}

	def, err := c.source.Load(ctx)
	if err != nil {
		return nil, err
	}

	// Una definición inválida se devuelve sin cachear; el llamador la rechaza
	if _, err := pipeline.NewConfig(def, c.opts...); err != nil {
		return def, nil
	}

	data, err := json.Marshal(def)
	if err == nil {
		err = c.client.Set(ctx, c.key(), data, c.ttl).Err()
	}
	if err != nil {
		logx.WithFields(logx.Fields{"key": c.key(), "error": err.Error()}).
			Warn("failed to cache pipeline definition")
	}

	return def, nil
}

func (c *RedisDefinitionCache) drop(ctx context.Context) {
	if err := c.Invalidate(ctx); err != nil {
		logx.WithField("key", c.key()).Warn(err.Error())
	}
}

// Invalidate removes the cached entry
func (c *RedisDefinitionCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, c.key()).Err(); err != nil {
		return fmt.Errorf("failed to invalidate pipeline definition cache: %w", err)
	}
	return nil
}
